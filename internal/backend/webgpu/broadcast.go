package webgpu

import (
	"github.com/born-ml/activation/internal/tensor"
)

// broadcastShape resolves the output shape of a binary op or panics with the
// *tensor.ShapeError describing the misalignment.
func broadcastShape(op string, a, b tensor.Shape) tensor.Shape {
	outShape, _, err := tensor.BroadcastShapes(a, b)
	if err != nil {
		shapeErr := err.(*tensor.ShapeError) //nolint:errorlint // BroadcastShapes only returns *ShapeError
		shapeErr.Op = op
		panic(shapeErr)
	}
	return outShape
}

// expand materialises x broadcast to dstShape on the host. x is returned
// unchanged when it already has dstShape.
func expand(x *tensor.RawTensor, dstShape tensor.Shape) *tensor.RawTensor {
	if x.Shape().Equal(dstShape) {
		return x
	}

	result, err := tensor.NewRaw(dstShape, x.DType(), x.Device())
	if err != nil {
		panic(err)
	}

	switch x.DType() {
	case tensor.Float32:
		expandGeneric(x.AsFloat32(), result.AsFloat32(), x.Shape(), dstShape)
	case tensor.Float64:
		expandGeneric(x.AsFloat64(), result.AsFloat64(), x.Shape(), dstShape)
	case tensor.Int32:
		expandGeneric(x.AsInt32(), result.AsInt32(), x.Shape(), dstShape)
	case tensor.Int64:
		expandGeneric(x.AsInt64(), result.AsInt64(), x.Shape(), dstShape)
	case tensor.Uint8:
		expandGeneric(x.AsUint8(), result.AsUint8(), x.Shape(), dstShape)
	case tensor.Bool:
		expandGeneric(x.AsBool(), result.AsBool(), x.Shape(), dstShape)
	}

	return result
}

// expandGeneric broadcasts data from source shape to target shape.
func expandGeneric[T any](src, dst []T, srcShape, dstShape tensor.Shape) {
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dstShape.ComputeStrides()

	// Pad source shape to match destination dimensions
	dimDiff := len(dstShape) - len(srcShape)
	paddedSrcShape := make(tensor.Shape, len(dstShape))
	paddedSrcStrides := make([]int, len(dstShape))
	for i := 0; i < dimDiff; i++ {
		paddedSrcShape[i] = 1
	}
	for i := 0; i < len(srcShape); i++ {
		paddedSrcShape[dimDiff+i] = srcShape[i]
		paddedSrcStrides[dimDiff+i] = srcStrides[i]
	}

	for i := range dst {
		temp := i
		srcIdx := 0
		for d := 0; d < len(dstShape); d++ {
			coord := temp / dstStrides[d]
			temp %= dstStrides[d]

			if paddedSrcShape[d] == 1 {
				coord = 0
			}
			srcIdx += coord * paddedSrcStrides[d]
		}
		dst[i] = src[srcIdx]
	}
}
