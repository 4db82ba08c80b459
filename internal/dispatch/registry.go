// Package dispatch resolves the numeric backend an activation Dispatcher runs on.
//
// Backends are registered by name with a factory. The built-in names are
// "cpu" and "webgpu"; the WebGPU factory fails with webgpu.ErrUnavailable on
// platforms or machines without an adapter.
package dispatch

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/born-ml/activation/internal/backend/cpu"
	"github.com/born-ml/activation/internal/backend/webgpu"
	"github.com/born-ml/activation/internal/tensor"
)

// ErrUnknownBackend is returned when no factory is registered under a name.
var ErrUnknownBackend = errors.New("unknown backend")

// Factory builds a backend for the given configuration.
type Factory func(cfg Config) (tensor.Backend, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func init() {
	Register("cpu", func(cfg Config) (tensor.Backend, error) {
		return cpu.NewWithConfig(cfg.Parallel), nil
	})
	Register("webgpu", func(_ Config) (tensor.Backend, error) {
		return webgpu.New()
	})
}

// Register makes a backend factory available under name (case-insensitive).
// Registering an existing name replaces its factory.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("dispatch: Register factory is nil")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[normalize(name)] = factory
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open builds the backend named by cfg.Backend.
func Open(cfg Config) (tensor.Backend, error) {
	registryMu.RLock()
	factory, ok := registry[normalize(cfg.Backend)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnknownBackend, cfg.Backend, strings.Join(Names(), ", "))
	}

	backend, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("open backend %q: %w", cfg.Backend, err)
	}
	return backend, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
