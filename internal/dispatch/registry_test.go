package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/activation/internal/backend/cpu"
	"github.com/born-ml/activation/internal/tensor"
)

func TestNamesIncludesBuiltins(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "cpu")
	assert.Contains(t, names, "webgpu")
	assert.IsNonDecreasing(t, names)
}

func TestOpenCPU(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = " CPU "

	backend, err := Open(cfg)
	require.NoError(t, err)
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())

	cpuBackend, ok := backend.(*cpu.CPUBackend)
	require.True(t, ok)
	assert.Equal(t, cfg.Parallel, cpuBackend.ParallelConfig())
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "tpu"

	_, err := Open(cfg)
	require.ErrorIs(t, err, ErrUnknownBackend)
	assert.Contains(t, err.Error(), "tpu")

	_, err = New(cfg)
	require.ErrorIs(t, err, ErrUnknownBackend, "unknown names are never replaced by the CPU fallback")
}

func TestNewFallsBackToCPU(t *testing.T) {
	errBroken := errors.New("broken device")
	Register("broken-test", func(_ Config) (tensor.Backend, error) {
		return nil, errBroken
	})

	cfg := DefaultConfig()
	cfg.Backend = "broken-test"

	cfg.FallbackToCPU = false
	_, err := New(cfg)
	require.ErrorIs(t, err, errBroken)

	cfg.FallbackToCPU = true
	d, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "CPU", d.Backend().Name())
}

func TestNewUsesConfiguredDType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DType = tensor.Float64

	d, err := New(cfg)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, tensor.Float64, d.DefaultDType())

	out, err := d.Logit([]float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.DType())
	assert.InDelta(t, 0.0, out.AsFloat64()[0], 1e-12)
}

func TestRegisterNilFactoryPanics(t *testing.T) {
	assert.Panics(t, func() { Register("nil-test", nil) })
}
