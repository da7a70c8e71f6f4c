package vectors

import (
	"fmt"
	"sync"
)

// ErrNotFound is returned when no table is registered for a locale key.
var ErrNotFound = fmt.Errorf("vectors: no table registered for locale")

// Provider resolves an embedding table by language/locale key.
//
// Consumers resolve the table fresh on every call rather than caching it, so
// a provider may swap tables underneath a running model.
type Provider interface {
	Vectors(lang string) (*Table, error)
}

// Registry is a thread-safe Provider backed by an in-memory map.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[string]*Table),
	}
}

// Register installs a table under a locale key, replacing any previous one.
// Replacing a key is the hot-swap path: layers resolve per call and pick up
// the new table on their next forward pass.
func (r *Registry) Register(lang string, table *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[lang] = table
}

// Vectors returns the table registered under a locale key.
func (r *Registry) Vectors(lang string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.tables[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, lang)
	}
	return table, nil
}

// Langs returns the registered locale keys.
func (r *Registry) Langs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]string, 0, len(r.tables))
	for lang := range r.tables {
		langs = append(langs, lang)
	}
	return langs
}
