// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the tensor representation the activation backends
// operate on.
//
// # Overview
//
// A RawTensor is a row-major, reference-counted buffer with a Shape, a
// DataType and a Device. A tensor with an empty Shape is a scalar.
//
// # Basic Usage
//
//	import "github.com/born-ml/activation/tensor"
//
//	func main() {
//	    x, err := tensor.FromFloat64([]float64{0.1, 0.5, 0.9}, tensor.Shape{3}, tensor.Float32, tensor.CPU)
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(x.Shape(), x.AsFloat32())
//	}
//
// # Broadcasting
//
// Binary backend operations follow NumPy broadcasting rules: shapes are
// aligned from the trailing axis and each pair of axes must be equal or 1.
//
//	out, _, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{4}) // (3, 4)
//
// Misaligned shapes produce a *ShapeError wrapping ErrShapeMismatch.
//
// # Memory Management
//
// Reshaped views share the buffer of the tensor they were taken from. The
// buffer is reference-counted and freed when the last view is released.
package tensor
