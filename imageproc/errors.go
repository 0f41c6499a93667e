package imageproc

import "errors"

var (
	// ErrUnknownOp is returned when a processing step names an operation
	// the processor does not implement
	ErrUnknownOp = errors.New("unknown operation")

	// ErrBadArgs is returned when a processing step's arguments do not
	// match the operation's signature
	ErrBadArgs = errors.New("bad operation arguments")

	// ErrFailedToOpenImage is returned when the source image cannot be decoded
	ErrFailedToOpenImage = errors.New("failed to open image")

	// ErrFailedToSaveImage is returned when the result cannot be encoded
	ErrFailedToSaveImage = errors.New("failed to save image")
)
