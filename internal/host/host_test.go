package host_test

import (
	"context"
	"testing"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHost() *host.Memory {
	return &host.Memory{
		Items: []entity.Entity{
			{ID: entity.WorldID("a"), Type: "weapon", Name: "Axe"},
		},
		PackList: []*host.MemoryPack{{
			Meta:   host.PackMetadata{ID: "dnd5e.items", Name: "items", Title: "Items (SRD)", PackageType: host.PackageSystem, PackageName: "dnd5e", DocumentName: host.DocumentItem},
			Access: entity.PermissionObserver,
			Items: []entity.Entity{{
				ID:   entity.PackItemID("dnd5e.items", "longsword"),
				Type: "weapon",
				Name: "Longsword",
				System: map[string]any{
					"price":       map[string]any{"value": 15, "denomination": "gp"},
					"description": map[string]any{"value": "A sword."},
				},
				Labels: map[string]any{"damage": "1d8"},
			}},
		}},
	}
}

func TestMemoryResolve(t *testing.T) {
	h := testHost()
	ctx := context.Background()

	e, err := h.Resolve(ctx, "Item.a")
	require.NoError(t, err)
	assert.Equal(t, "Axe", e.Name)

	e, err = h.Resolve(ctx, "Compendium.dnd5e.items.Item.longsword")
	require.NoError(t, err)
	assert.Equal(t, "Longsword", e.Name)
	assert.Equal(t, "dnd5e.items", e.Scope.PackID)

	_, err = h.Resolve(ctx, "Item.missing")
	assert.ErrorIs(t, err, apperr.New(apperr.CodeEntityNotFound, ""))

	_, err = h.Resolve(ctx, "garbage")
	assert.Equal(t, apperr.CodeEntityNotFound, apperr.CodeOf(err))
}

func TestMemoryPackIndexProjects(t *testing.T) {
	h := testHost()
	pack := h.PackList[0]

	items, err := pack.Index(context.Background(), []string{"system.price"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, map[string]any{"price": map[string]any{"value": 15, "denomination": "gp"}}, items[0].System)
	assert.Nil(t, items[0].Labels)
	assert.Equal(t, []string{"system.price"}, pack.Fields)
	assert.Contains(t, pack.Items[0].System, "description", "source entity untouched")
}

func TestProject(t *testing.T) {
	e := entity.Entity{
		ID:     "Item.x",
		System: map[string]any{"a": 1, "b": map[string]any{"c": 2, "d": 3}},
		Labels: map[string]any{"l": "x"},
	}

	full := host.Project(e, []string{"system", "labels"})
	assert.Equal(t, e.System, full.System)
	assert.Equal(t, e.Labels, full.Labels)

	nested := host.Project(e, []string{"system.b.c", "system.missing"})
	assert.Equal(t, map[string]any{"b": map[string]any{"c": 2}}, nested.System)
	assert.Nil(t, nested.Labels)

	none := host.Project(e, nil)
	assert.Equal(t, "Item.x", none.ID)
	assert.Nil(t, none.System)
}

func TestMemoryHonoursCancellation(t *testing.T) {
	h := testHost()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.WorldItems(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = h.Packs(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemo(t *testing.T) {
	h := testHost()
	m := host.NewMemo(h)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		e, err := m.Resolve(ctx, "Item.a")
		require.NoError(t, err)
		assert.Equal(t, "Axe", e.Name)
	}
	for i := 0; i < 2; i++ {
		_, err := m.Resolve(ctx, "Item.nope")
		require.Error(t, err)
	}
	assert.Equal(t, 2, h.ResolveCount(), "hits and misses are both cached")
}

func TestMemoSkipsCancelledResults(t *testing.T) {
	h := testHost()
	m := host.NewMemo(h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Resolve(ctx, "Item.a")
	require.Error(t, err)

	e, err := m.Resolve(context.Background(), "Item.a")
	require.NoError(t, err)
	assert.Equal(t, "Axe", e.Name)
	assert.Equal(t, 2, h.ResolveCount())
}
