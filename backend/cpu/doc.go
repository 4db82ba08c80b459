// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the activation kernels.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 kernels (integer Mul/Greater/Where)
//   - NumPy-compatible broadcasting
//   - Chunked fan-out across goroutines for large tensors
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/activation/activation"
//	    "github.com/born-ml/activation/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.NewWithConfig(cpu.SequentialConfig())
//	    d := activation.New(backend)
//	    y, err := d.PReLU([]float64{-1, 2}, 0.1)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation allocates its
// own result and does not share mutable state.
package cpu
