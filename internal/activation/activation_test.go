package activation

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/activation/internal/backend/cpu"
	"github.com/born-ml/activation/internal/parallel"
	"github.com/born-ml/activation/internal/tensor"
)

func newDispatcher(opts ...Option) *Dispatcher {
	return New(cpu.NewWithConfig(parallel.Sequential()), opts...)
}

func mustTensor(t *testing.T, values []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromFloat64(values, shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	return r
}

func filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestLogitExamples(t *testing.T) {
	d := newDispatcher(WithDefaultDType(tensor.Float64))

	out, err := d.Logit([]float64{1, 0, 0.9})
	require.NoError(t, err)
	got := out.AsFloat64()
	assert.True(t, math.IsInf(got[0], 1))
	assert.True(t, math.IsInf(got[1], -1))
	assert.InDelta(t, 2.19722458, got[2], 1e-8)

	out, err = d.Logit([]float64{1, 2, -0.9}, WithEps(0.2))
	require.NoError(t, err)
	got = out.AsFloat64()
	assert.InDelta(t, 1.38629436, got[0], 1e-8)
	assert.InDelta(t, 1.38629436, got[1], 1e-8)
	assert.InDelta(t, -1.38629436, got[2], 1e-8)
}

func TestLogitFloat32(t *testing.T) {
	d := newDispatcher()

	out, err := d.Logit([]float64{1, 2, -0.9}, WithEps(0.2))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, out.DType())
	assert.InDeltaSlice(t, []float32{1.3862944, 1.3862944, -1.3862944}, out.AsFloat32(), 1e-5)
}

func TestLogitOutsideUnitInterval(t *testing.T) {
	d := newDispatcher()

	out, err := d.Logit([]float64{-0.5, 1.5, 0.5})
	require.NoError(t, err)
	got := out.Float64s()
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 0.0, got[2], 1e-7)
}

func TestLogitEpsMatchesClampThenLogit(t *testing.T) {
	d := newDispatcher()
	values := []float64{-3, 0, 0.05, 0.3, 0.5, 0.77, 0.95, 1, 4}
	x := mustTensor(t, values, tensor.Shape{3, 3})

	withEps, err := d.Logit(x, WithEps(0.1))
	require.NoError(t, err)

	clampedValues := make([]float64, len(values))
	for i, v := range values {
		clampedValues[i] = math.Min(math.Max(v, 0.1), 0.9)
	}
	manual, err := d.Logit(mustTensor(t, clampedValues, tensor.Shape{3, 3}))
	require.NoError(t, err)

	assert.InDeltaSlice(t, manual.Float64s(), withEps.Float64s(), 1e-6)
	assert.Equal(t, tensor.Shape{3, 3}, withEps.Shape())
}

func TestLogitPromotesIntegers(t *testing.T) {
	d := newDispatcher(WithDefaultDType(tensor.Int32))

	out, err := d.Logit([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, out.DType())
	assert.True(t, math.IsInf(float64(out.AsFloat32()[0]), -1))
	assert.True(t, math.IsInf(float64(out.AsFloat32()[1]), 1))

	ints, err := tensor.FromFloat64([]float64{0, 1}, tensor.Shape{2}, tensor.Int64, tensor.CPU)
	require.NoError(t, err)
	out, err = d.Logit(ints)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, out.DType())
}

func TestLogitScalar(t *testing.T) {
	d := newDispatcher()

	out, err := d.Logit(0.5)
	require.NoError(t, err)
	assert.Empty(t, out.Shape())
	assert.InDelta(t, 0.0, out.Float64At(0), 1e-7)
}

func TestLogitOut(t *testing.T) {
	d := newDispatcher()
	x := mustTensor(t, []float64{0.25, 0.5, 0.75}, tensor.Shape{3})
	out, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	result, err := d.Logit(x, WithOut(out))
	require.NoError(t, err)
	assert.Same(t, out, result)
	assert.InDeltaSlice(t, []float32{-1.0986123, 0, 1.0986123}, out.AsFloat32(), 1e-6)
}

func TestLogitRejectedOutIsUntouched(t *testing.T) {
	d := newDispatcher()
	x := mustTensor(t, []float64{0.25, 0.5, 0.75}, tensor.Shape{3})

	tests := []struct {
		name  string
		shape tensor.Shape
		dtype tensor.DataType
	}{
		{"wrong shape", tensor.Shape{4}, tensor.Float32},
		{"wrong dtype", tensor.Shape{3}, tensor.Float64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := filled(tt.shape.NumElements(), 7)
			out, err := tensor.FromFloat64(values, tt.shape, tt.dtype, tensor.CPU)
			require.NoError(t, err)

			_, err = d.Logit(x, WithOut(out))
			require.ErrorIs(t, err, ErrOutBuffer)
			assert.Equal(t, values, out.Float64s())
		})
	}
}

func TestLogitInvalidInput(t *testing.T) {
	d := newDispatcher()

	for _, v := range []any{nil, "0.5", []float64{}, [][]float64{{1, 2}, {3}}} {
		_, err := d.Logit(v)
		require.ErrorIs(t, err, ErrInvalidInput, "%#v", v)
	}
}

func TestPReLUScalarSlope(t *testing.T) {
	d := newDispatcher()

	out, err := d.PReLU([]float64{-2, 0, 3}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 0, 3}, out.AsFloat32())
}

func TestPReLUBroadcastsTrailingAxis(t *testing.T) {
	d := newDispatcher()
	x := mustTensor(t, filled(12, -1), tensor.Shape{3, 4})

	out, err := d.PReLU(x, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 4}, out.Shape())
	assert.Equal(t, []float32{
		-1, -2, -3, -4,
		-1, -2, -3, -4,
		-1, -2, -3, -4,
	}, out.AsFloat32())
}

func TestPReLUFallbackAlongLeadingAxis(t *testing.T) {
	d := newDispatcher()
	x := mustTensor(t, []float64{
		-1, -1, 5,
		-1, -1, 5,
		-1, -1, 5,
		-1, -1, 5,
	}, tensor.Shape{4, 3})

	out, err := d.PReLU(x, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 3}, out.Shape())
	assert.Equal(t, []float32{
		-1, -1, 5,
		-2, -2, 5,
		-3, -3, 5,
		-4, -4, 5,
	}, out.AsFloat32())
}

func TestPReLUFallbackAlongMiddleAxis(t *testing.T) {
	d := newDispatcher()
	x := mustTensor(t, filled(24, -1), tensor.Shape{2, 4, 3})

	out, err := d.PReLU(x, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 4, 3}, out.Shape())

	want := make([]float32, 0, 24)
	for range 2 {
		for s := 1; s <= 4; s++ {
			want = append(want, float32(-s), float32(-s), float32(-s))
		}
	}
	assert.Equal(t, want, out.AsFloat32())
}

func TestPReLUAmbiguousAxesReturnShapeMismatch(t *testing.T) {
	d := newDispatcher()
	x := mustTensor(t, filled(48, -1), tensor.Shape{4, 4, 3})

	_, err := d.PReLU(x, []float64{1, 2, 3, 4})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	var actErr *Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, "prelu", actErr.Op)
	assert.Equal(t, "CPU", actErr.Backend)

	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "mul", shapeErr.Op)
}

func TestPReLUSlopeMatchingNoAxisReturnsShapeMismatch(t *testing.T) {
	d := newDispatcher()
	x := mustTensor(t, filled(12, -1), tensor.Shape{4, 3})

	_, err := d.PReLU(x, []float64{1, 2, 3, 4, 5})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

// Reshaping the slope to x's full shape cannot work for (4,3)/(4,): the
// element counts differ. The fallback instead reshapes to (4,1).
func TestPReLUSlopeCannotTakeInputShape(t *testing.T) {
	d := newDispatcher()
	slope := mustTensor(t, []float64{1, 2, 3, 4}, tensor.Shape{4})

	_, err := handleExceptions("prelu", "CPU", func() *tensor.RawTensor {
		return d.Backend().Reshape(slope, tensor.Shape{4, 3})
	})
	require.ErrorIs(t, err, tensor.ErrReshapeSize)

	target, ok := fallbackShape(tensor.Shape{4, 3}, slope.Shape())
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{4, 1}, target)
}

func TestPReLUOut(t *testing.T) {
	d := newDispatcher()
	x := mustTensor(t, []float64{-1, 2, -1, 2, -1, 2, -1, 2}, tensor.Shape{4, 2})
	out, err := tensor.NewRaw(tensor.Shape{4, 2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	result, err := d.PReLU(x, []float64{0.1, 0.2, 0.3, 0.4}, WithOut(out))
	require.NoError(t, err)
	assert.Same(t, out, result)
	assert.InDeltaSlice(t, []float32{-0.1, 2, -0.2, 2, -0.3, 2, -0.4, 2}, out.AsFloat32(), 1e-6)
}

func TestPReLURejectedOutIsUntouched(t *testing.T) {
	d := newDispatcher()
	x := mustTensor(t, filled(6, -1), tensor.Shape{2, 3})
	out := mustTensor(t, filled(3, 9), tensor.Shape{3})

	_, err := d.PReLU(x, 0.5, WithOut(out))
	require.ErrorIs(t, err, ErrOutBuffer)
	assert.Equal(t, []float32{9, 9, 9}, out.AsFloat32())
}

func TestPReLUSlopeFollowsInputDType(t *testing.T) {
	d := newDispatcher()
	x, err := tensor.FromFloat64([]float64{-4, 4}, tensor.Shape{2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	slope := mustTensor(t, []float64{0.25}, tensor.Shape{1})

	out, err := d.PReLU(x, slope)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.DType())
	assert.Equal(t, []float64{-1, 4}, out.AsFloat64())
}

func TestPReLUIntegerInput(t *testing.T) {
	d := newDispatcher()

	tests := []struct {
		name  string
		dtype tensor.DataType
		slope any
		want  []float64
		out   tensor.DataType
	}{
		{"int64 scalar slope", tensor.Int64, 0.5, []float64{-2, 0, 2}, tensor.Float32},
		{"int32 slope slice", tensor.Int32, []float64{0.25, 0.25, 0.25}, []float64{-1, 0, 2}, tensor.Float32},
		{"int64 whole slope", tensor.Int64, 2, []float64{-8, 0, 2}, tensor.Int64},
		{"int32 whole slope tensor", tensor.Int32, mustTensor(t, []float64{3}, tensor.Shape{1}), []float64{-12, 0, 2}, tensor.Int32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := tensor.FromFloat64([]float64{-4, 0, 2}, tensor.Shape{3}, tt.dtype, tensor.CPU)
			require.NoError(t, err)

			out, err := d.PReLU(x, tt.slope)
			require.NoError(t, err)
			assert.Equal(t, tt.out, out.DType())
			assert.Equal(t, tt.want, out.Float64s())
		})
	}
}

func TestPReLUIntegerInputOutDType(t *testing.T) {
	d := newDispatcher()
	x, err := tensor.FromFloat64([]float64{-4, 2}, tensor.Shape{2}, tensor.Int64, tensor.CPU)
	require.NoError(t, err)

	intOut, err := tensor.NewRaw(tensor.Shape{2}, tensor.Int64, tensor.CPU)
	require.NoError(t, err)
	_, err = d.PReLU(x, 0.5, WithOut(intOut))
	require.ErrorIs(t, err, ErrOutBuffer)
	assert.Equal(t, []int64{0, 0}, intOut.AsInt64())

	floatOut, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	result, err := d.PReLU(x, 0.5, WithOut(floatOut))
	require.NoError(t, err)
	assert.Same(t, floatOut, result)
	assert.Equal(t, []float32{-2, 2}, floatOut.AsFloat32())
}

// countingBackend records which multiply kernel PReLU used.
type countingBackend struct {
	*cpu.CPUBackend
	mul, mulScalar int
}

func (c *countingBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	c.mul++
	return c.CPUBackend.Mul(a, b)
}

func (c *countingBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	c.mulScalar++
	return c.CPUBackend.MulScalar(x, scalar)
}

func TestPReLUScalarSlopeUsesMulScalar(t *testing.T) {
	backend := &countingBackend{CPUBackend: cpu.New()}
	d := New(backend)

	out, err := d.PReLU([]float64{-2, 4}, 0.25)
	require.NoError(t, err)
	assert.Equal(t, []float32{-0.5, 4}, out.AsFloat32())
	assert.Equal(t, 1, backend.mulScalar)
	assert.Zero(t, backend.mul)

	_, err = d.PReLU([]float64{-2, 4}, []float64{0.25, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1, backend.mul)
	assert.Equal(t, 1, backend.mulScalar)
}

func TestPreluShape(t *testing.T) {
	assert.Equal(t, tensor.Shape{4, 3}, preluShape(tensor.Shape{4, 3}, tensor.Shape{3}))
	assert.Equal(t, tensor.Shape{4, 3}, preluShape(tensor.Shape{4, 3}, tensor.Shape{}))
	assert.Equal(t, tensor.Shape{2, 4, 3}, preluShape(tensor.Shape{4, 3}, tensor.Shape{2, 1, 1}))
	assert.Equal(t, tensor.Shape{4, 3}, preluShape(tensor.Shape{4, 3}, tensor.Shape{4}))
}

func TestPReLUMatchesDefinition(t *testing.T) {
	d := newDispatcher()
	values := []float64{-3, -0.5, 0, 0.5, 3, -7}
	slope := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}

	out, err := d.PReLU(values, slope)
	require.NoError(t, err)

	for i, v := range values {
		want := v
		if v <= 0 {
			want = v * slope[i]
		}
		assert.InDelta(t, want, out.Float64At(i), 1e-6, "index %d", i)
	}
}

// failingBackend wraps the CPU backend and replaces Mul with a custom panic.
type failingBackend struct {
	*cpu.CPUBackend
	panicValue any
	reshapes   int
}

func (f *failingBackend) Mul(_, _ *tensor.RawTensor) *tensor.RawTensor {
	panic(f.panicValue)
}

func (f *failingBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	f.reshapes++
	return f.CPUBackend.Reshape(t, newShape)
}

func TestPReLUDoesNotCatchOtherFailures(t *testing.T) {
	errDeviceLost := errors.New("device lost")
	backend := &failingBackend{CPUBackend: cpu.New(), panicValue: errDeviceLost}
	d := New(backend)

	x := mustTensor(t, filled(12, -1), tensor.Shape{4, 3})
	_, err := d.PReLU(x, []float64{1, 2, 3, 4})
	require.ErrorIs(t, err, errDeviceLost)
	assert.NotErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Zero(t, backend.reshapes)
}

func TestPReLUFallbackRetriesOnce(t *testing.T) {
	shapeErr := &tensor.ShapeError{Op: "mul", Axis: -1, Err: tensor.ErrShapeMismatch}
	backend := &failingBackend{CPUBackend: cpu.New(), panicValue: shapeErr}
	d := New(backend)

	x := mustTensor(t, filled(12, -1), tensor.Shape{4, 3})
	_, err := d.PReLU(x, []float64{1, 2, 3, 4})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, 1, backend.reshapes)
}

func TestHandleExceptions(t *testing.T) {
	want := mustTensor(t, []float64{1}, tensor.Shape{1})

	got, err := handleExceptions("logit", "CPU", func() *tensor.RawTensor { return want })
	require.NoError(t, err)
	assert.Same(t, want, got)

	errKernel := errors.New("kernel")
	_, err = handleExceptions("logit", "CPU", func() *tensor.RawTensor { panic(errKernel) })
	require.ErrorIs(t, err, errKernel)
	assert.Equal(t, "logit [CPU]: kernel", err.Error())

	_, err = handleExceptions("prelu", "CPU", func() *tensor.RawTensor { panic("boom") })
	require.ErrorIs(t, err, ErrBackend)
	assert.Contains(t, err.Error(), "boom")
}

func TestHandleOutCopiesForeignResult(t *testing.T) {
	result := mustTensor(t, []float64{1, 2}, tensor.Shape{2})
	out := mustTensor(t, []float64{0, 0}, tensor.Shape{2})

	got, err := handleOut(out, result)
	require.NoError(t, err)
	assert.Same(t, out, got)
	assert.Equal(t, []float32{1, 2}, out.AsFloat32())
	assert.False(t, out.SharesStorage(result))

	got, err = handleOut(nil, result)
	require.NoError(t, err)
	assert.Same(t, result, got)
}

func TestFallbackShape(t *testing.T) {
	tests := []struct {
		name   string
		x      tensor.Shape
		slope  tensor.Shape
		want   tensor.Shape
		wantOK bool
	}{
		{"leading axis", tensor.Shape{4, 3}, tensor.Shape{4}, tensor.Shape{4, 1}, true},
		{"middle axis", tensor.Shape{2, 4, 3}, tensor.Shape{4}, tensor.Shape{1, 4, 1}, true},
		{"trailing axis", tensor.Shape{3, 4}, tensor.Shape{4}, tensor.Shape{1, 4}, true},
		{"ambiguous", tensor.Shape{4, 4, 3}, tensor.Shape{4}, nil, false},
		{"no match", tensor.Shape{4, 3}, tensor.Shape{5}, nil, false},
		{"scalar slope", tensor.Shape{4, 3}, tensor.Shape{}, nil, false},
		{"rank-2 slope", tensor.Shape{4, 3}, tensor.Shape{4, 1}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fallbackShape(tt.x, tt.slope)
			assert.Equal(t, tt.wantOK, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("fallbackShape(%v, %v) mismatch (-want +got):\n%s", tt.x, tt.slope, diff)
			}
		})
	}
}
