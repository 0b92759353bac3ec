package raster

import "errors"

// Error kinds shared by every processing package. Callers match them with errors.Is;
// the wrapped message carries the offending shapes, indices or values.
var (
	// ErrInvalidShape reports an unsupported image layout or a histogram/LUT set of
	// the wrong rank for the requested operation.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrIncompatibleShape reports two images that must match in size and channel count but don't.
	ErrIncompatibleShape = errors.New("incompatible shape")

	// ErrMissingOperand reports a binary operation invoked without its second image.
	ErrMissingOperand = errors.New("missing operand")

	// ErrUnknownOperation reports an operation name outside the recognized set.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidArgument reports a malformed parameter.
	ErrInvalidArgument = errors.New("invalid argument")
)
