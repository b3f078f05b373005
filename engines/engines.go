// Package engines registers speech backend factories so callers can select
// one by name. Backends register themselves from their package init.
package engines

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spektralhq/speech"
)

// Factory builds an engine from configuration.
type Factory func(cfg speech.Config) (speech.Engine, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a backend available under name. It panics on a nil
// factory or a duplicate name, which indicates a programming error.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("engines: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("engines: Register called twice for " + name)
	}
	registry[name] = factory
}

// New builds the backend named by cfg.Backend.
func New(cfg speech.Config) (speech.Engine, error) {
	registryMu.RLock()
	factory, ok := registry[cfg.Backend]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("engines: unknown backend %q (registered: %v)",
			cfg.Backend, Backends())
	}
	return factory(cfg)
}

// Backends lists registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend is registered under name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
