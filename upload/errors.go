package upload

import "errors"

var (
	// ErrNilFileHeader is returned when a nil multipart file header is provided
	ErrNilFileHeader = errors.New("file header is nil")

	// ErrFileNotFound is returned when the source file does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrFailedToOpenFile is returned when the source cannot be opened
	ErrFailedToOpenFile = errors.New("failed to open file")

	// ErrFailedToWriteFile is returned when the destination cannot be written
	ErrFailedToWriteFile = errors.New("failed to write file")

	// ErrFailedToCreateFile is returned when the destination cannot be created
	ErrFailedToCreateFile = errors.New("failed to create file")

	// ErrFailedToCreateDirectory is returned when a parent directory cannot be created
	ErrFailedToCreateDirectory = errors.New("failed to create directory")

	// ErrFailedToParseForm is returned when the multipart form cannot be parsed
	ErrFailedToParseForm = errors.New("failed to parse multipart form")
)
