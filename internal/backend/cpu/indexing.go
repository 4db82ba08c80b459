package cpu

import (
	"fmt"

	"github.com/born-ml/activation/internal/parallel"
	"github.com/born-ml/activation/internal/tensor"
)

// Where performs conditional element selection: condition ? x : y.
// All three operands are broadcast together. The result is written into out
// when it is non-nil; out may alias x or y when it has the output shape.
func (cpu *CPUBackend) Where(condition, x, y, out *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool && condition.DType() != tensor.Uint8 {
		panic(fmt.Sprintf("where: condition must be bool or uint8, got %s", condition.DType()))
	}
	if x.DType() != y.DType() {
		panic(&tensor.DTypeError{Op: "where", Got: y.DType()})
	}

	outShape := broadcastShape("where", condition.Shape(), x.Shape())
	outShape = broadcastShape("where", outShape, y.Shape())

	result := cpu.resultTensor("where", out, outShape, x.DType())
	cond := getConditionAsUint8(condition)

	switch x.DType() {
	case tensor.Float32:
		whereKernel(result.AsFloat32(), cond, x.AsFloat32(), y.AsFloat32(),
			outShape, condition.Shape(), x.Shape(), y.Shape(), cpu.parallel)
	case tensor.Float64:
		whereKernel(result.AsFloat64(), cond, x.AsFloat64(), y.AsFloat64(),
			outShape, condition.Shape(), x.Shape(), y.Shape(), cpu.parallel)
	case tensor.Int32:
		whereKernel(result.AsInt32(), cond, x.AsInt32(), y.AsInt32(),
			outShape, condition.Shape(), x.Shape(), y.Shape(), cpu.parallel)
	case tensor.Int64:
		whereKernel(result.AsInt64(), cond, x.AsInt64(), y.AsInt64(),
			outShape, condition.Shape(), x.Shape(), y.Shape(), cpu.parallel)
	case tensor.Uint8:
		whereKernel(result.AsUint8(), cond, x.AsUint8(), y.AsUint8(),
			outShape, condition.Shape(), x.Shape(), y.Shape(), cpu.parallel)
	default:
		panic(&tensor.DTypeError{Op: "where", Got: x.DType()})
	}

	return result
}

func whereKernel[T any](dst []T, cond []uint8, xData, yData []T,
	outShape, condShape, xShape, yShape tensor.Shape, cfg parallel.Config,
) {
	outStrides := outShape.ComputeStrides()
	condStrides := computeBroadcastStridesForShape(condShape, outShape)
	xStrides := computeBroadcastStridesForShape(xShape, outShape)
	yStrides := computeBroadcastStridesForShape(yShape, outShape)

	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			if cond[computeFlatIndex(i, outStrides, condStrides)] != 0 {
				dst[i] = xData[computeFlatIndex(i, outStrides, xStrides)]
			} else {
				dst[i] = yData[computeFlatIndex(i, outStrides, yStrides)]
			}
		}
	}, cfg)
}

// getConditionAsUint8 converts condition tensor to uint8 data (bool -> uint8).
func getConditionAsUint8(condition *tensor.RawTensor) []uint8 {
	if condition.DType() == tensor.Bool {
		boolData := condition.AsBool()
		uint8Data := make([]uint8, len(boolData))
		for i, b := range boolData {
			if b {
				uint8Data[i] = 1
			}
		}
		return uint8Data
	}
	return condition.AsUint8()
}
