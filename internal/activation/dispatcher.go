// Package activation dispatches elementwise activation functions to the
// configured numeric backend.
package activation

import (
	"github.com/born-ml/activation/internal/tensor"
)

// Dispatcher routes activation calls to one backend. It holds no tensors
// between calls and is safe for concurrent use if the backend is.
type Dispatcher struct {
	backend tensor.Backend
	dtype   tensor.DataType // dtype for values that are not already tensors
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDefaultDType sets the dtype used when coercing Go scalars and slices.
// Non-float dtypes are ignored for Logit, which always computes in float.
func WithDefaultDType(dtype tensor.DataType) Option {
	return func(d *Dispatcher) {
		d.dtype = dtype
	}
}

// New creates a Dispatcher over backend.
func New(backend tensor.Backend, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		backend: backend,
		dtype:   tensor.Float32,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Backend returns the configured backend.
func (d *Dispatcher) Backend() tensor.Backend {
	return d.backend
}

// DefaultDType returns the dtype used for coerced Go values.
func (d *Dispatcher) DefaultDType() tensor.DataType {
	return d.dtype
}

// Close releases backend resources when the backend holds any (GPU devices).
func (d *Dispatcher) Close() {
	if r, ok := d.backend.(interface{ Release() }); ok {
		r.Release()
	}
}

// floatDType is the dtype Logit promotes non-float input to.
func (d *Dispatcher) floatDType() tensor.DataType {
	if d.dtype.IsFloat() {
		return d.dtype
	}
	return tensor.Float32
}

// OutOption directs the result of an activation into a caller-owned tensor.
type OutOption struct {
	out *tensor.RawTensor
}

// WithOut writes the result into out and returns out itself.
// out must already have the result's shape and dtype.
func WithOut(out *tensor.RawTensor) OutOption {
	return OutOption{out: out}
}

func (o OutOption) applyLogit(c *logitConfig) { c.out = o.out }

func (o OutOption) applyPReLU(c *preluConfig) { c.out = o.out }
