// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/activation/internal/backend/cpu"
	"github.com/born-ml/activation/internal/parallel"
	"github.com/born-ml/activation/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of the activation kernels,
// splitting large tensors across goroutines.
type Backend = internalcpu.CPUBackend

// Features lists the instruction set extensions of the host CPU.
type Features = internalcpu.Features

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/activation/activation"
//	    "github.com/born-ml/activation/backend/cpu"
//	)
//
//	func main() {
//	    d := activation.New(cpu.New())
//	    z, err := d.Logit([]float64{0.1, 0.5, 0.9})
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultParallelConfig returns the parallel configuration New uses.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig returns a configuration that runs every kernel on the calling goroutine.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}
