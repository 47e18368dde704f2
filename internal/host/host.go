// Package host defines what the browser needs from the application that
// owns the entities: world items, content packs and id resolution.
package host

import (
	"context"
	"sync"

	"github.com/ddbrown30/item-browser/internal/entity"
)

// DocumentItem is the document kind of packs the browser reads.
const DocumentItem = "Item"

// Package types of a pack's owner.
const (
	PackageWorld  = "world"
	PackageSystem = "system"
	PackageModule = "module"
)

// PackMetadata describes a content pack.
type PackMetadata struct {
	ID           string // "<package>.<name>"
	Name         string
	Title        string
	PackageType  string
	PackageName  string
	DocumentName string
}

// Pack is a read-only content pack.
type Pack interface {
	Metadata() PackMetadata
	// Permission is the current user's access level to the pack.
	Permission() entity.Permission
	// Index returns the pack's entities with system data reduced to the
	// requested field paths. An empty field list returns only identity fields.
	Index(ctx context.Context, fields []string) ([]entity.Entity, error)
}

// Resolver resolves a fully-qualified entity id.
type Resolver interface {
	Resolve(ctx context.Context, id string) (entity.Entity, error)
}

// Host is the full collaborator surface.
type Host interface {
	Resolver
	WorldItems(ctx context.Context) ([]entity.Entity, error)
	Packs(ctx context.Context) ([]Pack, error)
}

// Memo caches Resolve results, including failures, for the lifetime of one
// aggregation cycle.
type Memo struct {
	next Resolver

	mu      sync.Mutex
	results map[string]memoResult
}

type memoResult struct {
	e   entity.Entity
	err error
}

// NewMemo wraps r with a per-cycle cache.
func NewMemo(r Resolver) *Memo {
	return &Memo{next: r, results: make(map[string]memoResult)}
}

// Resolve returns the cached result for id, resolving it on first use.
func (m *Memo) Resolve(ctx context.Context, id string) (entity.Entity, error) {
	m.mu.Lock()
	if r, ok := m.results[id]; ok {
		m.mu.Unlock()
		return r.e, r.err
	}
	m.mu.Unlock()

	e, err := m.next.Resolve(ctx, id)
	if ctx.Err() != nil {
		// Cancellation is not a property of the id; don't remember it.
		return e, err
	}

	m.mu.Lock()
	m.results[id] = memoResult{e: e, err: err}
	m.mu.Unlock()
	return e, err
}
