// Package registry maps _target_ identifiers found in configuration to
// factory functions registered at startup. This keeps dynamic instantiation
// statically analyzable: there is no lookup of code paths by qualified name,
// only a string-keyed table the application populates explicitly.
package registry

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/sprigconfig/sprigconfig/pkg/config"
	"github.com/sprigconfig/sprigconfig/pkg/errors"
	"github.com/sprigconfig/sprigconfig/pkg/logger"
)

// TargetKey is the configuration key naming the factory to instantiate.
const TargetKey = "_target_"

// Factory creates a component from its configuration section. The section
// is the plain mapping at the instantiation key, without the _target_ entry;
// secret values arrive as *secret.LazySecret for the factory to reveal.
type Factory func(section map[string]interface{}) (interface{}, error)

// Registry manages factory registration and instantiation
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *zap.Logger
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new factory registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger.Get().With(zap.String("component", "registry")),
	}
}

// Register registers a factory under a target name
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return errors.Newf(errors.ErrorTypeConfig, "factory %q already registered", name)
	}

	r.factories[name] = factory
	r.logger.Debug("factory registered", zap.String("name", name))
	return nil
}

// Lookup returns the factory registered under name
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// List returns the registered target names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Instantiate reads the mapping at a dotted key, resolves its _target_
// entry against the registry, and calls the factory with the remaining
// section.
func (r *Registry) Instantiate(cfg *config.Config, key string) (interface{}, error) {
	v, ok := cfg.Get(key)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeConfig, "no section at %q", key)
	}
	section, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeConfig, "value at %q is not a mapping", key)
	}

	target, ok := section[TargetKey].(string)
	if !ok || target == "" {
		return nil, errors.Newf(errors.ErrorTypeConfig, "section %q has no %s entry", key, TargetKey)
	}

	factory, ok := r.Lookup(target)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown target %q at %q", target, key)
	}

	args := make(map[string]interface{}, len(section)-1)
	for k, val := range section {
		if k != TargetKey {
			args[k] = val
		}
	}

	r.logger.Debug("instantiating target",
		zap.String("target", target),
		zap.String("key", key))
	return factory(args)
}

// Register registers a factory in the global registry
func Register(name string, factory Factory) error {
	return globalRegistry.Register(name, factory)
}

// Instantiate instantiates a target from the global registry
func Instantiate(cfg *config.Config, key string) (interface{}, error) {
	return globalRegistry.Instantiate(cfg, key)
}

// List returns the global registry's target names
func List() []string {
	return globalRegistry.List()
}
