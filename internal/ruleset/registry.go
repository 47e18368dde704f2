package ruleset

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ddbrown30/item-browser/internal/i18n"
)

// DefaultID is the id of the fallback handler.
const DefaultID = "default"

// Factory builds a handler for a language.
type Factory func(l *i18n.Localizer) Handler

// Registry maps ruleset ids to handler factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry. Lookups of unknown ids still
// succeed with the default handler.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a ruleset. Panics if the id is empty or already taken.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		panic("ruleset must define an id")
	}
	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("ruleset %s already registered", id))
	}
	r.factories[id] = f
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[strings.TrimSpace(id)]
	return ok
}

// Lookup returns the handler for id, or the default handler when the id is
// unknown.
func (r *Registry) Lookup(id string, l *i18n.Localizer) Handler {
	if l == nil {
		l = i18n.Default()
	}
	r.mu.RLock()
	f, ok := r.factories[strings.TrimSpace(id)]
	r.mu.RUnlock()
	if !ok {
		return NewDefault(l)
	}
	return f(l)
}

// IDs returns the registered ids in order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRegistry holds the built-in rulesets. Each ruleset package
// registers itself from init.
var DefaultRegistry = NewRegistry()

// Register adds a ruleset to DefaultRegistry.
func Register(id string, f Factory) {
	DefaultRegistry.Register(id, f)
}

// Lookup resolves id against DefaultRegistry.
func Lookup(id string, l *i18n.Localizer) Handler {
	return DefaultRegistry.Lookup(id, l)
}
