package tensor

// Backend defines the numeric capability the activation dispatcher delegates to.
// Backends handle the actual computation for elementwise kernels.
//
// Kernels panic on invalid input. Shape failures panic with a *ShapeError and
// dtype failures with a *DTypeError so callers can recover and classify them.
//
// Implementations:
//   - CPU: Pure Go kernels with parallel fan-out
//   - WebGPU: WGSL compute shaders (windows builds)
type Backend interface {
	// Logit computes log(x / (1 - x)) elementwise. When eps is non-nil, x is
	// first clamped to [*eps, 1-*eps]. When out is non-nil the result is
	// written into out and out is returned.
	Logit(x *RawTensor, eps *float64, out *RawTensor) *RawTensor

	// Element-wise binary operations (NumPy-style broadcasting)
	Mul(a, b *RawTensor) *RawTensor
	Greater(a, b *RawTensor) *RawTensor // a > b, bool result

	// MulScalar multiplies every element by a Go numeric scalar.
	MulScalar(x *RawTensor, scalar any) *RawTensor

	// Where selects x where condition holds and y elsewhere, broadcasting all
	// three operands. When out is non-nil the result is written into out.
	Where(condition, x, y, out *RawTensor) *RawTensor

	// Reshape returns t with a new shape and the same elements.
	Reshape(t *RawTensor, newShape Shape) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
