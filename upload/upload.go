package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Upload is an uploaded source file: a readable temporary location, a
// reported extension, and a way to persist it. SaveAs is non-destructive so
// the same source can be written to multiple destinations.
type Upload interface {
	// TempPath returns a path the source can be read from, materializing
	// the upload to disk if necessary.
	TempPath() (string, error)
	// Extension returns the reported file extension without the leading
	// dot, e.g. "jpg". Empty when the source has none.
	Extension() string
	// SaveAs writes a copy of the source to the destination path, creating
	// parent directories as needed.
	SaveAs(dst string) error
}

// Cleaner is implemented by uploads that materialize a temporary file for
// TempPath and can release it again. The attachment manager calls Cleanup
// once it is done processing a source.
type Cleaner interface {
	Cleanup() error
}

// Resolver fetches the upload bound to an entity attribute from the
// request/form layer. A missing upload resolves to (nil, nil).
type Resolver interface {
	Resolve(attribute string) (Upload, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(attribute string) (Upload, error)

func (f ResolverFunc) Resolve(attribute string) (Upload, error) { return f(attribute) }

// SanitizeFilename strips path components and NUL bytes from a reported
// filename so it is safe to derive names from. Returns "unnamed" for empty
// or special directory references.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

// extensionOf returns the extension of a reported filename without the
// leading dot.
func extensionOf(filename string) string {
	return strings.TrimPrefix(filepath.Ext(SanitizeFilename(filename)), ".")
}

// writeFile copies everything from r to a new file at dst, creating parent
// directories.
func writeFile(dst string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}
