// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package activation provides the logit and PReLU activations on a pluggable
// numeric backend.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/activation/activation"
//	    "github.com/born-ml/activation/backend/cpu"
//	)
//
//	func main() {
//	    d := activation.New(cpu.New())
//
//	    z, err := d.Logit([]float64{1, 2, -0.9}, activation.WithEps(0.2))
//	    y, err := d.PReLU(x, slope, activation.WithOut(buf))
//	}
//
// Arguments may be tensors, Go scalars or rectangular numeric slices.
//
// # Configuration
//
// NewFromConfig picks the backend by name. ConfigFromEnv reads ACTIV_BACKEND,
// ACTIV_DTYPE, ACTIV_NO_PARALLEL and ACTIV_WORKERS.
//
// # Errors
//
// Backend failures are returned as *Error. Shape problems wrap
// tensor.ErrShapeMismatch, so errors.Is works across the boundary.
package activation

import (
	"github.com/born-ml/activation/internal/activation"
	"github.com/born-ml/activation/internal/dispatch"
	"github.com/born-ml/activation/tensor"
)

// Dispatcher routes activation calls to one backend.
type Dispatcher = activation.Dispatcher

// Option configures a Dispatcher.
type Option = activation.Option

// LogitOption configures a Logit call.
type LogitOption = activation.LogitOption

// PReLUOption configures a PReLU call.
type PReLUOption = activation.PReLUOption

// OutOption directs a result into a caller-owned tensor.
type OutOption = activation.OutOption

// Error is returned when an activation fails inside a backend.
type Error = activation.Error

// Type identifies an activation function.
type Type = activation.Type

// Params carries the arguments Dispatcher.Apply passes to an activation.
type Params = activation.Params

// Config selects and configures the backend of a Dispatcher.
type Config = dispatch.Config

// Supported activations.
const (
	TypeLogit = activation.TypeLogit
	TypePReLU = activation.TypePReLU
)

// Errors.
var (
	ErrBackend        = activation.ErrBackend
	ErrInvalidInput   = activation.ErrInvalidInput
	ErrOutBuffer      = activation.ErrOutBuffer
	ErrUnknownBackend = dispatch.ErrUnknownBackend
)

// New creates a Dispatcher over backend.
func New(backend tensor.Backend, opts ...Option) *Dispatcher {
	return activation.New(backend, opts...)
}

// WithDefaultDType sets the dtype used when coercing Go scalars and slices.
func WithDefaultDType(dtype tensor.DataType) Option {
	return activation.WithDefaultDType(dtype)
}

// WithEps clamps the Logit input to [eps, 1-eps].
func WithEps(eps float64) LogitOption {
	return activation.WithEps(eps)
}

// WithOut writes the result into out and returns out itself.
func WithOut(out *tensor.RawTensor) OutOption {
	return activation.WithOut(out)
}

// Types returns every supported activation.
func Types() []Type {
	return activation.Types()
}

// FromName returns the activation with the given name.
func FromName(name string) (Type, error) {
	return activation.FromName(name)
}

// DefaultConfig returns a CPU configuration with parallel kernels enabled.
func DefaultConfig() Config {
	return dispatch.DefaultConfig()
}

// ConfigFromEnv returns DefaultConfig overridden by the ACTIV_* environment variables.
func ConfigFromEnv() (Config, error) {
	return dispatch.ConfigFromEnv()
}

// NewFromConfig opens the configured backend and returns a Dispatcher over it.
func NewFromConfig(cfg Config) (*Dispatcher, error) {
	return dispatch.New(cfg)
}

// Backends returns the names of the registered backends.
func Backends() []string {
	return dispatch.Names()
}
