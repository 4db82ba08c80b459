// Package cpu implements the pure Go CPU backend for the activation kernels.
package cpu

import (
	"fmt"

	"github.com/born-ml/activation/internal/parallel"
	"github.com/born-ml/activation/internal/tensor"
)

// CPUBackend implements the elementwise kernels on CPU, splitting large
// tensors across goroutines.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
	features Features
}

// New creates a new CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend using cfg for kernel fan-out.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
		features: DetectFeatures(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Features returns the instruction set extensions detected at construction.
func (cpu *CPUBackend) Features() Features {
	return cpu.features
}

// ParallelConfig returns the fan-out configuration used by the kernels.
func (cpu *CPUBackend) ParallelConfig() parallel.Config {
	return cpu.parallel
}

// resultTensor returns out after checking it can hold a result of the given
// shape and dtype, or allocates a fresh tensor when out is nil.
func (cpu *CPUBackend) resultTensor(op string, out *tensor.RawTensor, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	if out != nil {
		if !out.Shape().Equal(shape) {
			panic(&tensor.ShapeError{Op: op, A: shape.Clone(), B: out.Shape().Clone(), Axis: -1, Err: tensor.ErrShapeMismatch})
		}
		if out.DType() != dtype {
			panic(&tensor.DTypeError{Op: op, Got: out.DType()})
		}
		return out
	}

	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

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
