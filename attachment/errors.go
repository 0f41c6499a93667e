package attachment

import "errors"

var (
	// ErrMissingAttribute is returned when the upload attribute is not configured
	ErrMissingAttribute = errors.New("upload attribute is not configured")

	// ErrMissingDir is returned when the storage directory is not configured
	ErrMissingDir = errors.New("storage directory is not configured")

	// ErrInvalidDir is returned when the storage directory escapes the root directory
	ErrInvalidDir = errors.New("storage directory is outside the root directory")

	// ErrMissingFormatName is returned when a configured format has no name
	ErrMissingFormatName = errors.New("format name is empty")

	// ErrDuplicateFormat is returned when two formats share the same name
	ErrDuplicateFormat = errors.New("duplicate format name")

	// ErrDuplicateSuffix is returned when two formats share the same suffix
	ErrDuplicateSuffix = errors.New("duplicate format suffix")

	// ErrEmptySuffix is returned when a format other than "normal" has no suffix
	ErrEmptySuffix = errors.New("format suffix is empty")

	// ErrUnknownFormat is returned when a format name is not in the format table
	ErrUnknownFormat = errors.New("unknown format")

	// ErrUnresolvedIdentity is returned when a naming attribute of the owner
	// entity has no value yet, e.g. before an insert assigned the primary key
	ErrUnresolvedIdentity = errors.New("owner identity is not resolved")

	// ErrFileNotFound is returned when no stored file matches the requested format
	ErrFileNotFound = errors.New("file not found")

	// ErrProcessingFailed is returned when a processing step or the processor
	// itself fails for a format
	ErrProcessingFailed = errors.New("processing failed")

	// ErrFailedToReadDirectory is returned when the storage directory cannot be read
	ErrFailedToReadDirectory = errors.New("failed to read directory")

	// ErrFailedToCreateDirectory is returned when the storage directory cannot be created
	ErrFailedToCreateDirectory = errors.New("failed to create directory")

	// ErrFailedToDeleteFile is returned when a stored file cannot be deleted
	ErrFailedToDeleteFile = errors.New("failed to delete file")

	// ErrFailedToWriteFile is returned when a stored file cannot be written
	ErrFailedToWriteFile = errors.New("failed to write file")

	// ErrFailedToStatPath is returned when file info cannot be obtained
	ErrFailedToStatPath = errors.New("failed to stat path")

	// ErrFailedToGetAbsolutePath is returned when absolute path cannot be determined
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")
)
