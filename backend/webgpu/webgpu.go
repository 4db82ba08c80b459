// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated activations.
//
// The kernels run as WGSL compute shaders through go-webgpu, which currently
// ships native bindings for windows. On other platforms New returns
// ErrUnavailable.
//
// Example:
//
//	import (
//	    "github.com/born-ml/activation/activation"
//	    "github.com/born-ml/activation/backend/webgpu"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    d := activation.New(gpu)
//	    z, err := d.Logit([]float64{0.1, 0.5, 0.9})
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/activation/internal/backend/webgpu"
	"github.com/born-ml/activation/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// ErrUnavailable is returned when no WebGPU adapter or native library is present.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// Call Release() when done to free GPU resources.
// Returns an error wrapping ErrUnavailable if no compatible GPU is found.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
