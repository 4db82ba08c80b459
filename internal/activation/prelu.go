package activation

import (
	"errors"
	"math"

	"github.com/samber/lo"

	"github.com/born-ml/activation/internal/tensor"
)

// PReLUOption configures a PReLU call.
type PReLUOption interface {
	applyPReLU(*preluConfig)
}

type preluConfig struct {
	out *tensor.RawTensor
}

// PReLU computes the parametrized ReLU elementwise:
//
//	f(x, slope) = slope * x  where x < 0
//	            = x          where x >= 0
//
// slope is expected to be unidirectionally broadcastable to x. When direct
// broadcasting fails and slope is one-dimensional with a length that matches
// exactly one axis of x, slope is applied along that axis instead. Any other
// shape mismatch is returned unchanged and wraps tensor.ErrShapeMismatch.
//
// An integer x with a fractional slope is promoted to the dispatcher's float
// dtype, so the result is slope*x rather than a truncated product. out must
// then have the float dtype.
func (d *Dispatcher) PReLU(x, slope any, opts ...PReLUOption) (*tensor.RawTensor, error) {
	var cfg preluConfig
	for _, opt := range opts {
		opt.applyPReLU(&cfg)
	}

	xt, err := toRaw(x, d.dtype, d.backend.Device())
	if err != nil {
		return nil, err
	}
	st, err := toRaw(slope, tensor.Float64, d.backend.Device())
	if err != nil {
		return nil, err
	}

	dtype := xt.DType()
	if !dtype.IsFloat() && !integral(st) {
		dtype = d.floatDType()
	}
	if xt, err = convert(xt, dtype); err != nil {
		return nil, err
	}
	if st, err = convert(st, dtype); err != nil {
		return nil, err
	}

	if err := checkOut("prelu", cfg.out, preluShape(xt.Shape(), st.Shape()), dtype); err != nil {
		return nil, err
	}

	result, err := handleExceptions("prelu", d.backend.Name(), func() *tensor.RawTensor {
		return d.selectNegative(xt, d.scaled(xt, st), cfg.out)
	})
	if err == nil {
		return handleOut(cfg.out, result)
	}
	if !errors.Is(err, tensor.ErrShapeMismatch) {
		return nil, err
	}

	target, ok := fallbackShape(xt.Shape(), st.Shape())
	if !ok {
		return nil, err
	}

	result, err = handleExceptions("prelu", d.backend.Name(), func() *tensor.RawTensor {
		reshaped := d.backend.Reshape(st, target)
		return d.selectNegative(xt, d.backend.Mul(xt, reshaped), cfg.out)
	})
	if err != nil {
		return nil, err
	}
	return handleOut(cfg.out, result)
}

// scaled returns x * slope. A 0-D slope goes through MulScalar.
func (d *Dispatcher) scaled(x, slope *tensor.RawTensor) *tensor.RawTensor {
	if len(slope.Shape()) == 0 {
		return d.backend.MulScalar(x, scalarOf(slope))
	}
	return d.backend.Mul(x, slope)
}

// selectNegative returns where(x > 0, x, negative).
func (d *Dispatcher) selectNegative(x, negative, out *tensor.RawTensor) *tensor.RawTensor {
	zero := tensor.Scalar(0, x.DType(), x.Device())
	return d.backend.Where(d.backend.Greater(x, zero), x, negative, out)
}

// fallbackShape decides whether a slope that failed to broadcast against x
// can be applied along a single axis of x, and returns the shape slope must
// be reshaped to. slope must be one-dimensional and its length must equal
// exactly one axis of x. The target has x's rank with that axis set to the
// slope length and every other axis set to 1.
// Reshaping slope to x's full shape instead fails whenever the element
// counts differ, as for slope (4,) against x (4,3).
func fallbackShape(xShape, slopeShape tensor.Shape) (tensor.Shape, bool) {
	if len(slopeShape) != 1 {
		return nil, false
	}
	dim := slopeShape[0]

	if lo.Count(xShape, dim) != 1 {
		return nil, false
	}

	target := make(tensor.Shape, len(xShape))
	for i, d := range xShape {
		if d == dim {
			target[i] = dim
		} else {
			target[i] = 1
		}
	}
	return target, true
}

// preluShape is the result shape PReLU produces for the given operands.
// A slope that broadcasts unidirectionally to x leaves x's shape unchanged.
func preluShape(xShape, slopeShape tensor.Shape) tensor.Shape {
	if slopeShape.BroadcastableTo(xShape) {
		return xShape
	}
	out, _, err := tensor.BroadcastShapes(xShape, slopeShape)
	if err != nil {
		return xShape
	}
	return out
}

// integral reports whether every element of t is a whole number.
func integral(t *tensor.RawTensor) bool {
	if !t.DType().IsFloat() {
		return true
	}
	for _, v := range t.Float64s() {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}

// scalarOf returns the single element of a 0-D tensor as the Go type
// matching its dtype.
func scalarOf(t *tensor.RawTensor) any {
	switch t.DType() {
	case tensor.Float32:
		return t.AsFloat32()[0]
	case tensor.Float64:
		return t.AsFloat64()[0]
	case tensor.Int32:
		return t.AsInt32()[0]
	case tensor.Int64:
		return t.AsInt64()[0]
	default:
		return t.Float64At(0)
	}
}
