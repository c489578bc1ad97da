package serialization

import (
	"errors"
	"fmt"
)

// Decode errors.
var (
	ErrReferenceNotFound = errors.New("referenced tensor not found")
	ErrUnknownNodeType   = errors.New("unknown node type")
	ErrMissingInput      = errors.New("missing input")
	ErrMissingParameter  = errors.New("missing parameter")
	ErrInvalidPayload    = errors.New("invalid tensor payload")
	ErrInvalidDocument   = errors.New("invalid document")
)

// Variable file errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnknownVariable    = errors.New("variable not present in graph")
)

// DecodeError reports which record a decode failure happened at.
type DecodeError struct {
	Index int    // Position of the record in the document
	Type  string // Record type as written in the document
	Err   error  // Underlying cause, usually wrapping one of the sentinels above
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.Type, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Tensor  string // Primary tensor name involved
	Tensor2 string // Secondary tensor name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tensor2 != "" {
		return fmt.Sprintf("%s: tensors %q and %q: %s", e.Type, e.Tensor, e.Tensor2, e.Details)
	}
	if e.Tensor != "" {
		return fmt.Sprintf("%s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
