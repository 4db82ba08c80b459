package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/activation/internal/tensor"
)

func TestApply(t *testing.T) {
	d := newDispatcher()
	eps := 0.2

	tests := []struct {
		name   string
		typ    Type
		x      any
		params Params
		want   []float32
	}{
		{"logit", TypeLogit, []float64{0.5}, Params{}, []float32{0}},
		{"logit eps", TypeLogit, []float64{1, -0.9}, Params{Eps: &eps}, []float32{1.3862944, -1.3862944}},
		{"prelu", TypePReLU, []float64{-2, 3}, Params{Slope: 0.5}, []float32{-1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := d.Apply(tt.typ, tt.x, tt.params)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, out.AsFloat32(), 1e-6)
		})
	}
}

func TestApplyOut(t *testing.T) {
	d := newDispatcher()
	out, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	result, err := d.Apply(TypePReLU, []float64{-2, 3}, Params{Slope: []float64{0.5, 0.5}, Out: out})
	require.NoError(t, err)
	assert.Same(t, out, result)

	result, err = d.Apply(TypeLogit, []float64{0.5, 0.5}, Params{Out: out})
	require.NoError(t, err)
	assert.Same(t, out, result)
	assert.Equal(t, []float32{0, 0}, out.AsFloat32())
}

func TestApplyErrors(t *testing.T) {
	d := newDispatcher()

	_, err := d.Apply(TypePReLU, []float64{1}, Params{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = d.Apply(Type(7), []float64{1}, Params{})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "Type(7)")
}
