package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/browser"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/notify"
	"github.com/ddbrown30/item-browser/internal/row"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

type weightRuleset struct {
	ruleset.Base
}

func (w weightRuleset) Project(_ context.Context, _ host.Resolver, e entity.Entity) row.Row {
	r := w.NewRow(e)
	if v, ok := e.Float("system.weight"); ok {
		row.Set(r.Columns, "weight", row.NumberCell(v))
	}
	return r
}

func gear(id, name string, weight float64) entity.Entity {
	return entity.Entity{
		ID:         entity.WorldID(id),
		Name:       name,
		Type:       "gear",
		Permission: entity.PermissionOwner,
		System:     map[string]any{"weight": weight},
	}
}

func testDeps() browser.Deps {
	h := &host.Memory{Items: []entity.Entity{
		gear("1", "Rope", 10),
		gear("2", "Torch", 1),
		gear("3", "Anvil", 100),
	}}
	return browser.Deps{
		Host: h,
		Ruleset: weightRuleset{ruleset.Base{
			L:          i18n.Default(),
			RulesetID:  "test",
			Types:      []string{"gear"},
			ColumnSets: map[string][]string{"gear": {"weight"}},
			Fields:     []string{"system.weight"},
		}},
		L:        i18n.Default(),
		Notifier: &notify.Recorder{},
	}
}

func TestListSources(t *testing.T) {
	_, out, err := ListSourcesHandler(testDeps())(context.Background(), nil, ListSourcesInput{})
	require.NoError(t, err)

	ids := make([]string, 0, len(out.Sources))
	for _, s := range out.Sources {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"all", "worldItems"}, ids)
	assert.Equal(t, "all", out.InitialSource)
	require.Len(t, out.Types, 1)
	assert.Equal(t, "gear", out.Types[0].ID)
	assert.Equal(t, "gear", out.DefaultType)
}

func TestBrowseItems(t *testing.T) {
	handler := BrowseItemsHandler(testDeps())

	_, out, err := handler(context.Background(), nil, BrowseItemsInput{})
	require.NoError(t, err)
	assert.Equal(t, "name", out.Sort)
	assert.Equal(t, []string{"weight"}, out.Columns)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Rows, 3)
	assert.Equal(t, "Anvil", out.Rows[0].Name)
	assert.Equal(t, "100", out.Rows[0].Columns["weight"])

	_, out, err = handler(context.Background(), nil, BrowseItemsInput{Sort: "weight", Descending: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "weight", out.Sort)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "Anvil", out.Rows[0].Name)
	assert.Equal(t, "Rope", out.Rows[1].Name)

	_, out, err = handler(context.Background(), nil, BrowseItemsInput{Name: "TOR"})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Item.2", out.Rows[0].ID)
}

func TestGetItem(t *testing.T) {
	deps := testDeps()
	handler := GetItemHandler(deps.Host)

	_, out, err := handler(context.Background(), nil, GetItemInput{ID: "Item.1"})
	require.NoError(t, err)
	assert.Equal(t, "Rope", out.Name)
	assert.JSONEq(t, `{"type":"Item","uuid":"Item.1"}`, out.DragData)

	_, _, err = handler(context.Background(), nil, GetItemInput{ID: "  "})
	assert.Error(t, err)

	_, _, err = handler(context.Background(), nil, GetItemInput{ID: "Item.404"})
	assert.Equal(t, apperr.CodeEntityNotFound, apperr.CodeOf(err))
}

func TestNewRegistersTools(t *testing.T) {
	s := New(testDeps(), "")
	require.NotNil(t, s)
	require.NotNil(t, s.mcpServer)
}
