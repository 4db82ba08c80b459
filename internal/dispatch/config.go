package dispatch

import (
	"fmt"
	"os"
	"strconv"

	"github.com/born-ml/activation/internal/activation"
	"github.com/born-ml/activation/internal/backend/cpu"
	"github.com/born-ml/activation/internal/parallel"
	"github.com/born-ml/activation/internal/tensor"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvBackend    = "ACTIV_BACKEND"     // backend name, default "cpu"
	EnvDType      = "ACTIV_DTYPE"       // dtype for coerced Go values, default "float32"
	EnvNoParallel = "ACTIV_NO_PARALLEL" // any non-empty value disables CPU fan-out
	EnvWorkers    = "ACTIV_WORKERS"     // CPU worker count, values below 2 run kernels sequentially
)

// Config selects and configures the backend of a Dispatcher.
type Config struct {
	Backend       string
	DType         tensor.DataType
	Parallel      parallel.Config
	FallbackToCPU bool // use the CPU backend when Backend cannot be opened
}

// DefaultConfig returns a CPU configuration with parallel kernels enabled.
func DefaultConfig() Config {
	return Config{
		Backend:       "cpu",
		DType:         tensor.Float32,
		Parallel:      parallel.DefaultConfig(),
		FallbackToCPU: true,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the ACTIV_* environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if name := os.Getenv(EnvBackend); name != "" {
		cfg.Backend = name
	}
	if name := os.Getenv(EnvDType); name != "" {
		dtype, err := tensor.ParseDataType(name)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDType, err)
		}
		cfg.DType = dtype
	}
	if os.Getenv(EnvNoParallel) != "" {
		cfg.Parallel = parallel.Sequential()
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("%s: invalid worker count %q", EnvWorkers, v)
		}
		cfg.Parallel.NumWorkers = n
	}

	return cfg, nil
}

// New opens the configured backend and returns a Dispatcher over it.
// When the backend cannot be opened and cfg.FallbackToCPU is set, the CPU
// backend is used instead; an unknown backend name is always an error.
func New(cfg Config) (*activation.Dispatcher, error) {
	backend, err := Open(cfg)
	if err != nil {
		if !cfg.FallbackToCPU || isUnknown(err) {
			return nil, err
		}
		backend = cpu.NewWithConfig(cfg.Parallel)
	}
	return activation.New(backend, activation.WithDefaultDType(cfg.DType)), nil
}
