package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/host"
)

// Library serves a world file and a directory of pack databases.
type Library struct {
	world World
	items []entity.Entity
	packs []*Pack
}

var _ host.Host = (*Library)(nil)

// Open loads the world file and opens every *.db file in packsDir. A
// missing world file or packs directory is treated as empty.
func Open(ctx context.Context, worldPath, packsDir string) (*Library, error) {
	w, err := LoadWorld(worldPath)
	if err != nil {
		return nil, err
	}
	items, err := w.Entities()
	if err != nil {
		return nil, fmt.Errorf("loading world %s: %w", worldPath, err)
	}
	lib := &Library{world: w, items: items}

	files, err := PackFiles(packsDir)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		p, err := OpenPack(ctx, f)
		if err != nil {
			_ = lib.Close()
			return nil, fmt.Errorf("opening pack %s: %w", f, err)
		}
		lib.packs = append(lib.packs, p)
	}
	return lib, nil
}

// PackFiles lists the pack databases of dir in name order.
func PackFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading packs directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".db" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Close closes every pack.
func (l *Library) Close() error {
	var errs []error
	for _, p := range l.packs {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.packs = nil
	return errors.Join(errs...)
}

// Ruleset returns the world's ruleset id.
func (l *Library) Ruleset() string { return l.world.Ruleset }

// User returns the world's current user name.
func (l *Library) User() string { return l.world.User }

// WorldItems returns the world items.
func (l *Library) WorldItems(ctx context.Context) ([]entity.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]entity.Entity, len(l.items))
	copy(out, l.items)
	return out, nil
}

// Packs returns the open packs.
func (l *Library) Packs(ctx context.Context) ([]host.Pack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]host.Pack, 0, len(l.packs))
	for _, p := range l.packs {
		out = append(out, p)
	}
	return out, nil
}

// PackList returns the open packs with their concrete type.
func (l *Library) PackList() []*Pack {
	return append([]*Pack(nil), l.packs...)
}

// Resolve returns the full entity for a fully-qualified id.
func (l *Library) Resolve(ctx context.Context, id string) (entity.Entity, error) {
	if err := ctx.Err(); err != nil {
		return entity.Entity{}, err
	}
	ref, err := entity.ParseID(id)
	if err != nil {
		return entity.Entity{}, apperr.Wrap(apperr.CodeEntityNotFound, id, err)
	}
	if ref.PackID == "" {
		for _, e := range l.items {
			if e.ID == id {
				return e, nil
			}
		}
		return entity.Entity{}, apperr.New(apperr.CodeEntityNotFound, id)
	}
	for _, p := range l.packs {
		if p.meta.ID == ref.PackID {
			return p.Get(ctx, ref.ID)
		}
	}
	return entity.Entity{}, apperr.New(apperr.CodeEntityNotFound, id)
}
