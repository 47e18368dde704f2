package library_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const worldYAML = `ruleset: dnd5e
user: gm
folders:
  - id: loot
    name: Loot
  - id: gems
    name: Gems
    parent: loot
items:
  - id: ruby
    type: loot
    name: Ruby
    folder: gems
    system:
      price: {value: 50, denomination: gp}
  - id: secret
    type: loot
    name: Secret
    permission: limited
  - id: rope
    type: equipment
    name: Rope
`

const packYAML = `id: dnd5e.items
name: items
title: Items (SRD)
package_type: system
package_name: dnd5e
permission: observer
items:
  - id: longsword
    type: weapon
    name: Longsword
    img: sword.png
    system:
      damage: {parts: [["1d8", "slashing"]]}
      price: {value: 15, denomination: gp}
      description: {value: "A blade."}
    labels:
      damage: "1d8"
  - id: dagger
    type: weapon
    name: Dagger
`

func writeFixtures(t *testing.T) (worldPath, packsDir string) {
	t.Helper()
	dir := t.TempDir()
	worldPath = filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(worldPath, []byte(worldYAML), 0o644))

	packsDir = filepath.Join(dir, "packs")
	def, err := library.ParsePackDef([]byte(packYAML))
	require.NoError(t, err)
	require.NoError(t, library.Import(context.Background(), def, filepath.Join(packsDir, def.ID+".db")))
	return worldPath, packsDir
}

func TestWorldEntities(t *testing.T) {
	w, err := library.ParseWorld([]byte(worldYAML))
	require.NoError(t, err)
	assert.Equal(t, "dnd5e", w.Ruleset)

	items, err := w.Entities()
	require.NoError(t, err)
	require.Len(t, items, 3)

	ruby := items[0]
	assert.Equal(t, "Item.ruby", ruby.ID)
	assert.Equal(t, []string{"Loot", "Gems"}, ruby.Folder)
	assert.Equal(t, entity.PermissionOwner, ruby.Permission)
	assert.True(t, ruby.Scope.IsWorld())
	v, ok := ruby.Float("system.price.value")
	assert.True(t, ok)
	assert.Equal(t, 50.0, v)

	assert.Equal(t, entity.PermissionLimited, items[1].Permission)
	assert.Nil(t, items[2].Folder)
}

func TestWorldErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown folder", yaml: "items:\n  - {id: a, name: A, folder: nope}\n"},
		{name: "folder cycle", yaml: "folders:\n  - {id: a, name: A, parent: b}\n  - {id: b, name: B, parent: a}\nitems:\n  - {id: x, name: X, folder: a}\n"},
		{name: "bad permission", yaml: "items:\n  - {id: a, name: A, permission: god}\n"},
		{name: "missing id", yaml: "items:\n  - {name: A}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := library.ParseWorld([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = w.Entities()
			assert.Error(t, err)
		})
	}

	_, err := library.ParseWorld([]byte("{{{"))
	assert.Error(t, err)
}

func TestLoadWorldMissingFile(t *testing.T) {
	w, err := library.LoadWorld(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, w.Items)
}

func TestParsePackDefValidates(t *testing.T) {
	_, err := library.ParsePackDef([]byte("title: No id\n"))
	assert.Equal(t, apperr.CodePackInvalid, apperr.CodeOf(err))

	_, err = library.ParsePackDef([]byte("id: p\nitems:\n  - {id: a}\n  - {id: a}\n"))
	assert.Equal(t, apperr.CodePackInvalid, apperr.CodeOf(err))
}

func TestLibrary(t *testing.T) {
	worldPath, packsDir := writeFixtures(t)
	ctx := context.Background()

	lib, err := library.Open(ctx, worldPath, packsDir)
	require.NoError(t, err)
	defer lib.Close()

	assert.Equal(t, "dnd5e", lib.Ruleset())
	assert.Equal(t, "gm", lib.User())

	world, err := lib.WorldItems(ctx)
	require.NoError(t, err)
	assert.Len(t, world, 3)

	packs, err := lib.Packs(ctx)
	require.NoError(t, err)
	require.Len(t, packs, 1)

	p := packs[0]
	assert.Equal(t, host.PackMetadata{
		ID:           "dnd5e.items",
		Name:         "items",
		Title:        "Items (SRD)",
		PackageType:  host.PackageSystem,
		PackageName:  "dnd5e",
		DocumentName: host.DocumentItem,
	}, p.Metadata())
	assert.Equal(t, entity.PermissionObserver, p.Permission())

	index, err := p.Index(ctx, []string{"system.price", "labels"})
	require.NoError(t, err)
	require.Len(t, index, 2)

	sword := index[0]
	assert.Equal(t, "Compendium.dnd5e.items.Item.longsword", sword.ID)
	assert.Equal(t, "sword.png", sword.Img)
	assert.Equal(t, "dnd5e.items", sword.Scope.PackID)
	assert.Equal(t, "gp", sword.Text("system.price.denomination"))
	assert.False(t, sword.Has("system.description.value", "A blade."))
	_, ok := sword.Field("system.damage")
	assert.False(t, ok)
	assert.Equal(t, "1d8", sword.Text("labels.damage"))

	bare, err := p.Index(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, bare[0].System)
	assert.Equal(t, "Longsword", bare[0].Name)
}

func TestLibraryResolve(t *testing.T) {
	worldPath, packsDir := writeFixtures(t)
	ctx := context.Background()
	lib, err := library.Open(ctx, worldPath, packsDir)
	require.NoError(t, err)
	defer lib.Close()

	e, err := lib.Resolve(ctx, "Compendium.dnd5e.items.Item.longsword")
	require.NoError(t, err)
	assert.Equal(t, "A blade.", e.Text("system.description.value"))

	e, err = lib.Resolve(ctx, "Item.rope")
	require.NoError(t, err)
	assert.Equal(t, "Rope", e.Name)

	for _, id := range []string{"Item.nothing", "Compendium.dnd5e.items.Item.nothing", "Compendium.other.Item.x", "junk"} {
		_, err := lib.Resolve(ctx, id)
		assert.Equal(t, apperr.CodeEntityNotFound, apperr.CodeOf(err), id)
	}
}

func TestImportReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.db")
	ctx := context.Background()

	require.NoError(t, library.Import(ctx, library.PackDef{ID: "p", Items: []library.PackDoc{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}}, path))
	require.NoError(t, library.Import(ctx, library.PackDef{ID: "p", Title: "Second", Items: []library.PackDoc{{ID: "c", Name: "C"}}}, path))

	p, err := library.OpenPack(ctx, path)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "Second", p.Metadata().Title)
	assert.Equal(t, entity.PermissionOwner, p.Permission())
	index, err := p.Index(ctx, nil)
	require.NoError(t, err)
	require.Len(t, index, 1)
	assert.Equal(t, "C", index[0].Name)
}

func TestOpenEmpty(t *testing.T) {
	dir := t.TempDir()
	lib, err := library.Open(context.Background(), filepath.Join(dir, "world.yaml"), filepath.Join(dir, "packs"))
	require.NoError(t, err)
	defer lib.Close()

	items, err := lib.WorldItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	files, err := library.PackFiles(filepath.Join(dir, "packs"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
