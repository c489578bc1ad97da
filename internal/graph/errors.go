package graph

import "errors"

// Construction errors.
var (
	ErrNilInput        = errors.New("nil input tensor")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotVariable     = errors.New("tensor is not produced by a variable")
)
