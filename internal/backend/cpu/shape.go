package cpu

import (
	"github.com/born-ml/activation/internal/tensor"
)

// Reshape returns a view of t with newShape. The view shares t's buffer.
// Panics with a *tensor.ShapeError if the element counts differ.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := t.View(newShape)
	if err != nil {
		panic(err)
	}
	return view
}
