package tensor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/activation/tensor"
)

func TestFacadeRoundTrip(t *testing.T) {
	x, err := tensor.FromFloat64([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, tensor.Float64, x.DType())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, x.AsFloat64())

	s := tensor.Scalar(2, tensor.Int32, tensor.CPU)
	assert.Empty(t, s.Shape())
	assert.Equal(t, []int32{2}, s.AsInt32())
}

func TestFacadeBroadcastErrors(t *testing.T) {
	out, _, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{4})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 4}, out)

	_, _, err = tensor.BroadcastShapes(tensor.Shape{4, 3}, tensor.Shape{4})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	var shapeErr *tensor.ShapeError
	require.True(t, errors.As(err, &shapeErr))
}

func TestFacadeParseDataType(t *testing.T) {
	dt, err := tensor.ParseDataType("uint8")
	require.NoError(t, err)
	assert.Equal(t, tensor.Uint8, dt)

	_, err = tensor.ParseDataType("float16")
	require.ErrorIs(t, err, tensor.ErrUnsupportedDType)
}
