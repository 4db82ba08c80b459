//go:build !windows

package webgpu

import (
	"github.com/born-ml/activation/internal/tensor"
)

// Backend is the WebGPU backend. On this platform it cannot be constructed.
type Backend struct{}

// New always fails with ErrUnavailable on this platform.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string { return "WebGPU" }

// Device returns the compute device.
func (b *Backend) Device() tensor.Device { return tensor.WebGPU }

// Logit is unavailable on this platform.
func (b *Backend) Logit(_ *tensor.RawTensor, _ *float64, _ *tensor.RawTensor) *tensor.RawTensor {
	panic(ErrUnavailable)
}

// Mul is unavailable on this platform.
func (b *Backend) Mul(_, _ *tensor.RawTensor) *tensor.RawTensor { panic(ErrUnavailable) }

// Greater is unavailable on this platform.
func (b *Backend) Greater(_, _ *tensor.RawTensor) *tensor.RawTensor { panic(ErrUnavailable) }

// MulScalar is unavailable on this platform.
func (b *Backend) MulScalar(_ *tensor.RawTensor, _ any) *tensor.RawTensor { panic(ErrUnavailable) }

// Where is unavailable on this platform.
func (b *Backend) Where(_, _, _, _ *tensor.RawTensor) *tensor.RawTensor { panic(ErrUnavailable) }

// Reshape is unavailable on this platform.
func (b *Backend) Reshape(_ *tensor.RawTensor, _ tensor.Shape) *tensor.RawTensor {
	panic(ErrUnavailable)
}
