package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Precondition violations - surfaced to the caller before any test runs
	ErrDimensionMismatch    = errors.New("index dimensions disagree")
	ErrCoordinateMismatch   = fmt.Errorf("%w: coordinate labels differ", ErrDimensionMismatch)
	ErrSampleDimMissing     = errors.New("sample dimension not present in grid")
	ErrPairedLengthMismatch = errors.New("paired sample dimension lengths differ")

	// Construction errors
	ErrInvalidDimension = errors.New("invalid dimension definition")
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrShapeMismatch    = errors.New("value count does not match grid shape")
	ErrIndexOutOfRange  = errors.New("grid index out of range")
)

// NewDimensionError wraps a dimension-related sentinel with the offending name.
func NewDimensionError(sentinel error, dim string) error {
	return fmt.Errorf("%w: %q", sentinel, dim)
}
