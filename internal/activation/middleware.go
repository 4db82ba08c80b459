package activation

import (
	"fmt"

	"github.com/born-ml/activation/internal/tensor"
)

// handleExceptions runs a backend call and turns a kernel panic into an *Error.
// Panics carrying an error keep it as the cause; anything else becomes ErrBackend.
func handleExceptions(op, backend string, f func() *tensor.RawTensor) (result *tensor.RawTensor, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		result = nil
		switch v := r.(type) {
		case error:
			err = &Error{Op: op, Backend: backend, Err: v}
		default:
			err = &Error{Op: op, Backend: backend, Err: fmt.Errorf("%w: %v", ErrBackend, v)}
		}
	}()
	return f(), nil
}

// checkOut validates a caller-supplied output buffer before any backend call,
// so a rejected call never touches it.
func checkOut(op string, out *tensor.RawTensor, shape tensor.Shape, dtype tensor.DataType) error {
	if out == nil {
		return nil
	}
	if !out.Shape().Equal(shape) {
		return fmt.Errorf("%s: %w: shape %v, result shape %v", op, ErrOutBuffer, out.Shape(), shape)
	}
	if out.DType() != dtype {
		return fmt.Errorf("%s: %w: dtype %s, result dtype %s", op, ErrOutBuffer, out.DType(), dtype)
	}
	return nil
}

// handleOut makes out the value returned to the caller. Backends that honour
// out already returned it; for any other result the elements are copied in.
func handleOut(out, result *tensor.RawTensor) (*tensor.RawTensor, error) {
	if out == nil || out == result {
		return result, nil
	}
	if err := out.CopyFrom(result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutBuffer, err)
	}
	return out, nil
}
