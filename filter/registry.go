package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry holds named filter presets
type Registry struct {
	compiler *Compiler
	filters  map[string]*ExprFilter
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry backed by the given compiler
func NewRegistry(compiler *Compiler) *Registry {
	if compiler == nil {
		compiler = NewCompiler(DefaultCacheSize)
	}
	return &Registry{
		compiler: compiler,
		filters:  make(map[string]*ExprFilter),
	}
}

// RegisterFilters compiles and registers presets. Nothing is registered if any fails.
func (r *Registry) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]*ExprFilter, len(filters))

	for name, expression := range filters {
		filter, err := r.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	r.mu.Lock()
	maps.Copy(r.filters, compiled)
	r.mu.Unlock()

	return nil
}

// Get returns a preset by name
func (r *Registry) Get(name string) (*ExprFilter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	filter, ok := r.filters[name]
	return filter, ok
}

// Names returns the registered preset names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.filters))
}

// Resolve picks the filter to apply: an explicit expression wins over a preset.
// It returns nil when neither is given.
func (r *Registry) Resolve(expression, preset string) (*ExprFilter, error) {
	if expression != "" {
		return r.compiler.Compile(expression)
	}
	if preset == "" {
		return nil, nil
	}
	filter, ok := r.Get(preset)
	if !ok {
		return nil, fmt.Errorf("preset '%s' not found in config", preset)
	}
	return filter, nil
}
