// Package webgpu implements the activation kernels as WGSL compute shaders.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings,
// which are currently available on windows builds only.
package webgpu

import "errors"

// ErrUnavailable is returned when no WebGPU adapter or native library is present.
var ErrUnavailable = errors.New("webgpu: not available")
