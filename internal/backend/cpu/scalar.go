package cpu

import (
	"fmt"

	"github.com/born-ml/activation/internal/tensor"
)

// MulScalar multiplies each element by a scalar.
// The scalar must match the tensor's element type (float32 for Float32, etc.);
// float64 scalars are converted for float32 tensors.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.resultTensor("mul_scalar", nil, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		s := scalarAs[float32]("mul_scalar", scalar)
		unaryKernel(result.AsFloat32(), x.AsFloat32(), func(v float32) float32 { return v * s }, cpu.parallel)
	case tensor.Float64:
		s := scalarAs[float64]("mul_scalar", scalar)
		unaryKernel(result.AsFloat64(), x.AsFloat64(), func(v float64) float64 { return v * s }, cpu.parallel)
	case tensor.Int32:
		s := scalarAs[int32]("mul_scalar", scalar)
		unaryKernel(result.AsInt32(), x.AsInt32(), func(v int32) int32 { return v * s }, cpu.parallel)
	case tensor.Int64:
		s := scalarAs[int64]("mul_scalar", scalar)
		unaryKernel(result.AsInt64(), x.AsInt64(), func(v int64) int64 { return v * s }, cpu.parallel)
	case tensor.Uint8:
		s := scalarAs[uint8]("mul_scalar", scalar)
		unaryKernel(result.AsUint8(), x.AsUint8(), func(v uint8) uint8 { return v * s }, cpu.parallel)
	default:
		panic(&tensor.DTypeError{Op: "mul_scalar", Got: x.DType()})
	}

	return result
}

// scalarAs converts a Go numeric scalar to T.
func scalarAs[T number](op string, scalar any) T {
	switch s := scalar.(type) {
	case T:
		return s
	case float64:
		return T(s)
	case float32:
		return T(s)
	case int:
		return T(s)
	case int32:
		return T(s)
	case int64:
		return T(s)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", op, scalar))
	}
}
