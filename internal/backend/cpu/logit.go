package cpu

import (
	"math"

	"github.com/born-ml/activation/internal/tensor"
)

// Logit computes log(x / (1 - x)) element-wise.
//
// Without eps the IEEE-754 edge cases carry through: NaN outside [0, 1],
// -Inf at 0 and +Inf at 1. With eps, x is clamped to [eps, 1-eps] first.
// The result is written into out when it is non-nil.
func (cpu *CPUBackend) Logit(x *tensor.RawTensor, eps *float64, out *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.resultTensor("logit", out, x.Shape(), x.DType())

	f := logit
	if eps != nil {
		lo, hi := *eps, 1-*eps
		f = func(v float64) float64 { return logit(clamp(v, lo, hi)) }
	}

	switch x.DType() {
	case tensor.Float32:
		unaryKernel(result.AsFloat32(), x.AsFloat32(), func(v float32) float32 {
			return float32(f(float64(v)))
		}, cpu.parallel)
	case tensor.Float64:
		unaryKernel(result.AsFloat64(), x.AsFloat64(), f, cpu.parallel)
	default:
		panic(&tensor.DTypeError{Op: "logit", Got: x.DType()})
	}

	return result
}

func logit(v float64) float64 {
	return math.Log(v / (1 - v))
}

// clamp limits v to [lo, hi]. NaN stays NaN.
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

