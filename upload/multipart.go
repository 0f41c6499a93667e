package upload

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Multipart wraps a multipart form file as an Upload. The part is
// materialized to a temporary file only when a readable path is needed.
type Multipart struct {
	fh  *multipart.FileHeader
	tmp string
}

// NewMultipart wraps a multipart file header.
func NewMultipart(fh *multipart.FileHeader) (*Multipart, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	return &Multipart{fh: fh}, nil
}

// Filename returns the sanitized reported filename.
func (u *Multipart) Filename() string {
	return SanitizeFilename(u.fh.Filename)
}

// Extension returns the reported extension without the leading dot.
func (u *Multipart) Extension() string {
	return extensionOf(u.fh.Filename)
}

// TempPath materializes the part to a uniquely named file in the system
// temp directory on first call and returns its path.
func (u *Multipart) TempPath() (string, error) {
	if u.tmp != "" {
		return u.tmp, nil
	}

	tmp := filepath.Join(os.TempDir(), "upload-"+uuid.NewString()+filepath.Ext(u.Filename()))
	if err := u.SaveAs(tmp); err != nil {
		return "", err
	}
	u.tmp = tmp
	return tmp, nil
}

// SaveAs writes a copy of the part to the destination path.
func (u *Multipart) SaveAs(dst string) error {
	src, err := u.fh.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	return writeFile(dst, src)
}

// Cleanup removes the materialized temporary file, if any.
func (u *Multipart) Cleanup() error {
	if u.tmp == "" {
		return nil
	}
	tmp := u.tmp
	u.tmp = ""
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
