package cpu

import (
	"github.com/born-ml/activation/internal/tensor"
)

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(&tensor.DTypeError{Op: "mul", Got: b.DType()})
	}
	outShape := broadcastShape("mul", a.Shape(), b.Shape())
	result := cpu.resultTensor("mul", nil, outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, mul[float32], cpu.parallel)
	case tensor.Float64:
		binaryKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, mul[float64], cpu.parallel)
	case tensor.Int32:
		binaryKernel(result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, mul[int32], cpu.parallel)
	case tensor.Int64:
		binaryKernel(result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, mul[int64], cpu.parallel)
	case tensor.Uint8:
		binaryKernel(result.AsUint8(), a.AsUint8(), b.AsUint8(), a.Shape(), b.Shape(), outShape, mul[uint8], cpu.parallel)
	default:
		panic(&tensor.DTypeError{Op: "mul", Got: a.DType()})
	}

	return result
}

// Greater performs element-wise a > b with broadcasting, returning a bool tensor.
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(&tensor.DTypeError{Op: "greater", Got: b.DType()})
	}
	outShape := broadcastShape("greater", a.Shape(), b.Shape())
	result := cpu.resultTensor("greater", nil, outShape, tensor.Bool)
	dst := result.AsBool()

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(dst, a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, greater[float32], cpu.parallel)
	case tensor.Float64:
		binaryKernel(dst, a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, greater[float64], cpu.parallel)
	case tensor.Int32:
		binaryKernel(dst, a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, greater[int32], cpu.parallel)
	case tensor.Int64:
		binaryKernel(dst, a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, greater[int64], cpu.parallel)
	case tensor.Uint8:
		binaryKernel(dst, a.AsUint8(), b.AsUint8(), a.Shape(), b.Shape(), outShape, greater[uint8], cpu.parallel)
	default:
		panic(&tensor.DTypeError{Op: "greater", Got: a.DType()})
	}

	return result
}

func mul[T number](x, y T) T { return x * y }

func greater[T number](x, y T) bool { return x > y }
