package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch    = errors.New("shapes not compatible for broadcasting")
	ErrReshapeSize      = errors.New("reshape changes number of elements")
	ErrInvalidShape     = errors.New("invalid shape")
	ErrUnsupportedDType = errors.New("unsupported dtype")
)

// ShapeError describes a shape failure raised by a backend operation.
//
// Backends panic with a *ShapeError so the dispatcher can tell shape
// problems apart from every other kernel failure.
type ShapeError struct {
	Op   string // Operation that failed (e.g. "mul", "where", "reshape")
	A    Shape  // Left operand shape
	B    Shape  // Right operand shape (or target shape for reshape)
	Axis int    // Output axis that failed to align, -1 if not applicable
	Err  error  // ErrShapeMismatch or ErrReshapeSize
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Axis >= 0 {
		return fmt.Sprintf("%s: %v: %v vs %v (axis %d)", e.Op, e.Err, e.A, e.B, e.Axis)
	}
	return fmt.Sprintf("%s: %v: %v vs %v", e.Op, e.Err, e.A, e.B)
}

// Unwrap returns the sentinel error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}

// DTypeError reports an operand whose dtype an operation cannot handle.
type DTypeError struct {
	Op  string
	Got DataType
}

// Error implements the error interface.
func (e *DTypeError) Error() string {
	return fmt.Sprintf("%s: %v %s", e.Op, ErrUnsupportedDType, e.Got)
}

// Unwrap returns ErrUnsupportedDType.
func (e *DTypeError) Unwrap() error {
	return ErrUnsupportedDType
}
