// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/activation/internal/tensor"
)

// Backend is the set of kernels an activation needs from a compute backend.
//
// Implementations panic on invalid input: shape problems with a *ShapeError,
// dtype problems with a *DTypeError. Callers that want returned errors go
// through the activation package.
type Backend = tensor.Backend

// ShapeError describes a shape failure raised by a backend operation.
type ShapeError = tensor.ShapeError

// DTypeError reports an operand whose dtype an operation cannot handle.
type DTypeError = tensor.DTypeError

// Sentinel errors.
var (
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrReshapeSize      = tensor.ErrReshapeSize
	ErrInvalidShape     = tensor.ErrInvalidShape
	ErrUnsupportedDType = tensor.ErrUnsupportedDType
)
