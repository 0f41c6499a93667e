package upload

import (
	"fmt"
	"os"
)

// Disk wraps an existing file on disk as an Upload, for pre-assigned
// sources that did not arrive through a form.
type Disk struct {
	path string
}

// NewDisk wraps the file at path. The file must exist.
func NewDisk(path string) (*Disk, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFailedToOpenFile, path)
	}
	return &Disk{path: path}, nil
}

// Extension returns the file's extension without the leading dot.
func (u *Disk) Extension() string {
	return extensionOf(u.path)
}

// TempPath returns the wrapped file's own path.
func (u *Disk) TempPath() (string, error) {
	return u.path, nil
}

// SaveAs writes a copy of the file to the destination path.
func (u *Disk) SaveAs(dst string) error {
	src, err := os.Open(u.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	return writeFile(dst, src)
}
