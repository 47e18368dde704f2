package host

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/entity"
)

// Memory is an in-memory Host, used for tests and for worlds assembled in
// code.
type Memory struct {
	Items    []entity.Entity
	PackList []*MemoryPack
	WorldErr error
	PacksErr error

	mu       sync.Mutex
	resolves int
}

// ResolveCount returns how many times Resolve has been called.
func (m *Memory) ResolveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolves
}

// WorldItems returns the world items.
func (m *Memory) WorldItems(ctx context.Context) ([]entity.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.WorldErr != nil {
		return nil, m.WorldErr
	}
	out := make([]entity.Entity, len(m.Items))
	copy(out, m.Items)
	return out, nil
}

// Packs returns the packs.
func (m *Memory) Packs(ctx context.Context) ([]Pack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.PacksErr != nil {
		return nil, m.PacksErr
	}
	out := make([]Pack, 0, len(m.PackList))
	for _, p := range m.PackList {
		out = append(out, p)
	}
	return out, nil
}

// Resolve looks an id up among world and pack items.
func (m *Memory) Resolve(ctx context.Context, id string) (entity.Entity, error) {
	m.mu.Lock()
	m.resolves++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return entity.Entity{}, err
	}
	ref, err := entity.ParseID(id)
	if err != nil {
		return entity.Entity{}, apperr.Wrap(apperr.CodeEntityNotFound, id, err)
	}
	if ref.PackID == "" {
		for _, e := range m.Items {
			if e.ID == id {
				return e, nil
			}
		}
		return entity.Entity{}, apperr.New(apperr.CodeEntityNotFound, id)
	}
	for _, p := range m.PackList {
		if p.Meta.ID != ref.PackID {
			continue
		}
		for _, e := range p.Items {
			if e.ID == id {
				e.Scope = entity.PackScope(p.Meta.ID, p.Meta.Title, p.Meta.Name)
				return e, nil
			}
		}
	}
	return entity.Entity{}, apperr.New(apperr.CodeEntityNotFound, id)
}

// MemoryPack is an in-memory Pack.
type MemoryPack struct {
	Meta   PackMetadata
	Access entity.Permission
	Items  []entity.Entity
	Err    error
	// Fields records the field list of the most recent Index call.
	Fields []string
}

// Metadata returns the pack metadata.
func (p *MemoryPack) Metadata() PackMetadata { return p.Meta }

// Permission returns the configured access level.
func (p *MemoryPack) Permission() entity.Permission { return p.Access }

// Index returns the pack items with system data projected to fields.
func (p *MemoryPack) Index(ctx context.Context, fields []string) ([]entity.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	p.Fields = append([]string(nil), fields...)
	out := make([]entity.Entity, 0, len(p.Items))
	for _, e := range p.Items {
		out = append(out, Project(e, fields))
	}
	return out, nil
}

// Project reduces an entity's data blobs to the listed field paths
// ("system", "labels", "system.price"). Identity fields are always kept and
// the source entity is never modified.
func Project(e entity.Entity, fields []string) entity.Entity {
	out := e
	out.System = projectRoot(e.System, "system", fields)
	out.Labels = projectRoot(e.Labels, "labels", fields)
	return out
}

func projectRoot(src map[string]any, root string, fields []string) map[string]any {
	if src == nil {
		return nil
	}
	var paths []string
	for _, f := range fields {
		r, rest, _ := strings.Cut(f, ".")
		if r != root {
			continue
		}
		if rest == "" {
			return src
		}
		paths = append(paths, rest)
	}
	if len(paths) == 0 {
		return nil
	}
	sort.Strings(paths)
	dst := map[string]any{}
	for _, path := range paths {
		v, ok := entity.Lookup(src, path)
		if !ok {
			continue
		}
		parts := strings.Split(path, ".")
		cur := dst
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = v
	}
	return dst
}
