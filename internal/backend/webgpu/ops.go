//go:build windows

package webgpu

import (
	"fmt"

	"github.com/born-ml/activation/internal/tensor"
)

// Logit computes log(x / (1 - x)) on GPU, clamping to [eps, 1-eps] when eps is set.
func (b *Backend) Logit(x *tensor.RawTensor, eps *float64, out *tensor.RawTensor) *tensor.RawTensor {
	checkOut("logit", out, x.Shape())

	var params []byte
	if eps != nil {
		params = elementwiseParams(x.NumElements(), 1, float32(*eps), float32(1-*eps))
	} else {
		params = elementwiseParams(x.NumElements(), 0, 0, 0)
	}

	result, err := b.runElementwise([]*tensor.RawTensor{x}, params, out, "logit", logitShader)
	must("Logit", err)
	return result
}

// Mul performs element-wise multiplication with broadcasting.
// Operands are broadcast on the host before upload.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	outShape := broadcastShape("mul", a.Shape(), other.Shape())
	inputs := []*tensor.RawTensor{expand(a, outShape), expand(other, outShape)}

	result, err := b.runElementwise(inputs, elementwiseParams(outShape.NumElements()), nil, "mul", mulShader)
	must("Mul", err)
	return result
}

// Greater performs element-wise a > b with broadcasting and returns a bool tensor.
func (b *Backend) Greater(a, other *tensor.RawTensor) *tensor.RawTensor {
	outShape := broadcastShape("greater", a.Shape(), other.Shape())
	inputs := []*tensor.RawTensor{expand(a, outShape), expand(other, outShape)}

	mask, err := b.runElementwise(inputs, elementwiseParams(outShape.NumElements()), nil, "greater", greaterShader)
	must("Greater", err)

	result, err := tensor.NewRaw(outShape, tensor.Bool, tensor.WebGPU)
	must("Greater", err)
	dst := result.AsBool()
	for i, v := range mask.AsFloat32() {
		dst[i] = v != 0
	}
	return result
}

// MulScalar multiplies tensor elements by a scalar on GPU.
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	params := elementwiseParams(x.NumElements(), toFloat32(scalar))
	result, err := b.runElementwise([]*tensor.RawTensor{x}, params, nil, "scalarMul", scalarMulShader)
	must("MulScalar", err)
	return result
}

// Where performs conditional selection with broadcasting, writing into out when set.
func (b *Backend) Where(condition, x, y, out *tensor.RawTensor) *tensor.RawTensor {
	outShape := broadcastShape("where", condition.Shape(), x.Shape())
	outShape = broadcastShape("where", outShape, y.Shape())
	checkOut("where", out, outShape)

	mask, err := tensor.NewRaw(condition.Shape(), tensor.Float32, tensor.WebGPU)
	must("Where", err)
	for i := 0; i < condition.NumElements(); i++ {
		mask.SetFloat64(i, condition.Float64At(i))
	}

	inputs := []*tensor.RawTensor{expand(mask, outShape), expand(x, outShape), expand(y, outShape)}
	result, err := b.runElementwise(inputs, elementwiseParams(outShape.NumElements()), out, "where", whereShader)
	must("Where", err)
	return result
}

// Reshape returns a view of t with the new shape. No GPU work is involved.
func (b *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := t.View(newShape)
	if err != nil {
		panic(err)
	}
	return view
}

// must panics with err so typed errors survive to the dispatcher.
func must(op string, err error) {
	if err != nil {
		panic(fmt.Errorf("webgpu: %s: %w", op, err))
	}
}

func checkOut(op string, out *tensor.RawTensor, shape tensor.Shape) {
	if out != nil && !out.Shape().Equal(shape) {
		panic(&tensor.ShapeError{Op: op, A: shape, B: out.Shape(), Axis: -1, Err: tensor.ErrShapeMismatch})
	}
}

// toFloat32 converts any numeric type to float32.
func toFloat32(v any) float32 {
	switch val := v.(type) {
	case float32:
		return val
	case float64:
		return float32(val)
	case int:
		return float32(val)
	case int32:
		return float32(val)
	case int64:
		return float32(val)
	default:
		panic("webgpu: unsupported scalar type")
	}
}
