package aggregate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ddbrown30/item-browser/internal/aggregate"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gearRuleset() ruleset.Handler {
	return ruleset.Base{
		L:          i18n.Default(),
		RulesetID:  "test",
		Types:      []string{"gear"},
		ColumnSets: map[string][]string{"gear": {"weight"}},
		Fields:     []string{"system.weight"},
	}
}

func worldItem(id, name, typ string) entity.Entity {
	return entity.Entity{ID: entity.WorldID(id), Name: name, Type: typ, Permission: entity.PermissionOwner}
}

func pack(id, title, pkgType, pkgName string, items ...entity.Entity) *host.MemoryPack {
	return &host.MemoryPack{
		Meta: host.PackMetadata{
			ID:           id,
			Name:         id,
			Title:        title,
			PackageType:  pkgType,
			PackageName:  pkgName,
			DocumentName: host.DocumentItem,
		},
		Access: entity.PermissionObserver,
		Items:  items,
	}
}

func packItem(packID, id, name, typ string) entity.Entity {
	return entity.Entity{ID: entity.PackItemID(packID, id), Name: name, Type: typ}
}

func sourceIDs(sources []aggregate.Source) []string {
	ids := make([]string, 0, len(sources))
	for _, s := range sources {
		ids = append(ids, s.ID)
	}
	return ids
}

func itemNames(items []entity.Entity) []string {
	names := make([]string, 0, len(items))
	for _, e := range items {
		names = append(names, e.Name)
	}
	return names
}

func TestRunWorldOnlyItems(t *testing.T) {
	h := &host.Memory{Items: []entity.Entity{
		worldItem("1", "Apple", "gear"),
		worldItem("2", "Banana", "gear"),
	}}

	res, err := aggregate.Run(context.Background(), h, gearRuleset(), nil, aggregate.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{filter.AllSources, filter.WorldItems}, sourceIDs(res.Sources))
	assert.Equal(t, "All Items", res.Sources[0].Label)
	assert.Equal(t, []string{"Apple", "Banana"}, itemNames(res.Items))
	assert.Equal(t, filter.AllSources, res.InitialSource)
	require.NotNil(t, res.Resolver)
	for _, e := range res.Items {
		assert.True(t, e.Scope.IsWorld())
	}
}

func TestRunSkipsUnobservableWorldItems(t *testing.T) {
	hidden := worldItem("3", "Secret", "gear")
	hidden.Permission = entity.PermissionLimited
	h := &host.Memory{Items: []entity.Entity{worldItem("1", "Apple", "gear"), hidden}}

	res, err := aggregate.Run(context.Background(), h, gearRuleset(), nil, aggregate.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple"}, itemNames(res.Items))
}

func TestRunPacks(t *testing.T) {
	srd := pack("dnd5e.items", "Items (SRD)", host.PackageSystem, "dnd5e",
		packItem("dnd5e.items", "a", "Rope", "gear"),
		packItem("dnd5e.items", "b", "Fireball", "spell"))
	homebrew := pack("world.loot", "Loot", host.PackageWorld, "myworld",
		packItem("world.loot", "c", "Gem", "gear"))
	spells := pack("dnd5e.spells", "Spells", host.PackageSystem, "dnd5e",
		packItem("dnd5e.spells", "d", "Light", "spell"))
	locked := pack("mod.locked", "Locked", host.PackageModule, "mod",
		packItem("mod.locked", "e", "Key", "gear"))
	locked.Access = entity.PermissionLimited
	actors := pack("dnd5e.monsters", "Monsters", host.PackageSystem, "dnd5e",
		packItem("dnd5e.monsters", "f", "Goblin", "gear"))
	actors.Meta.DocumentName = "Actor"

	h := &host.Memory{
		Items:    []entity.Entity{worldItem("1", "Apple", "gear")},
		PackList: []*host.MemoryPack{srd, homebrew, spells, locked, actors},
	}

	res, err := aggregate.Run(context.Background(), h, gearRuleset(), nil, aggregate.Options{})
	require.NoError(t, err)

	assert.Equal(t, []aggregate.Source{
		{ID: filter.AllSources, Label: "All Items"},
		{ID: filter.WorldItems, Label: "World Items"},
		{ID: "dnd5e.items", Label: "Items (SRD) (dnd5e)"},
		{ID: "world.loot", Label: "Loot (World Compendium)"},
	}, res.Sources)
	assert.Equal(t, []string{"Apple", "Rope", "Gem"}, itemNames(res.Items))

	rope := res.Items[1]
	assert.False(t, rope.Scope.IsWorld())
	assert.Equal(t, "dnd5e.items", rope.Scope.PackID)
	assert.Equal(t, "Items (SRD)", rope.Scope.PackLabel)

	assert.Equal(t, []string{"system.weight"}, srd.Fields)
	assert.Nil(t, locked.Fields)
	assert.Nil(t, actors.Fields)
}

func TestRunDedupsByID(t *testing.T) {
	dup := worldItem("1", "Apple again", "gear")
	h := &host.Memory{Items: []entity.Entity{worldItem("1", "Apple", "gear"), dup}}

	res, err := aggregate.Run(context.Background(), h, gearRuleset(), nil, aggregate.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple"}, itemNames(res.Items))
}

func TestTypes(t *testing.T) {
	tests := []struct {
		name          string
		ruleset, user []string
		want          []string
	}{
		{name: "both empty", want: nil},
		{name: "ruleset only", ruleset: []string{"gear", "weapon"}, want: []string{"gear", "weapon"}},
		{name: "caller only", user: []string{"spell"}, want: []string{"spell"}},
		{name: "intersection", ruleset: []string{"gear", "weapon"}, user: []string{"weapon", "spell"}, want: []string{"weapon"}},
		{name: "disjoint", ruleset: []string{"gear"}, user: []string{"spell"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregate.Types(tt.ruleset, tt.user)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, aggregate.Accepts(nil, "anything"))
	assert.False(t, aggregate.Accepts([]string{}, "gear"))
	assert.True(t, aggregate.Accepts([]string{"gear"}, "gear"))
}

func TestRunCallerTypes(t *testing.T) {
	h := &host.Memory{Items: []entity.Entity{
		worldItem("1", "Sword", "weapon"),
		worldItem("2", "Rope", "gear"),
		worldItem("3", "Light", "spell"),
	}}
	rs := ruleset.Base{L: i18n.Default(), RulesetID: "test", Types: []string{"gear", "weapon"}}

	res, err := aggregate.Run(context.Background(), h, rs, nil, aggregate.Options{ItemTypes: []string{"weapon", "spell"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sword"}, itemNames(res.Items))
}

func TestRunValidSources(t *testing.T) {
	newHost := func() *host.Memory {
		return &host.Memory{
			Items: []entity.Entity{worldItem("1", "Apple", "gear")},
			PackList: []*host.MemoryPack{
				pack("dnd5e.items", "Items", host.PackageSystem, "dnd5e", packItem("dnd5e.items", "a", "Rope", "gear")),
			},
		}
	}

	t.Run("restricts sources and items", func(t *testing.T) {
		res, err := aggregate.Run(context.Background(), newHost(), gearRuleset(), nil,
			aggregate.Options{ValidSources: []string{"dnd5e.items", "missing"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"dnd5e.items"}, sourceIDs(res.Sources))
		assert.Equal(t, []string{"Rope"}, itemNames(res.Items))
		assert.Equal(t, "dnd5e.items", res.InitialSource)
	})

	t.Run("fails open", func(t *testing.T) {
		res, err := aggregate.Run(context.Background(), newHost(), gearRuleset(), nil,
			aggregate.Options{ValidSources: []string{"nowhere"}})
		require.NoError(t, err)
		assert.Equal(t, []string{filter.AllSources, filter.WorldItems, "dnd5e.items"}, sourceIDs(res.Sources))
		assert.Len(t, res.Items, 2)
	})

	t.Run("keeps everything while all is listed", func(t *testing.T) {
		res, err := aggregate.Run(context.Background(), newHost(), gearRuleset(), nil,
			aggregate.Options{ValidSources: []string{filter.AllSources, filter.WorldItems}})
		require.NoError(t, err)
		assert.Equal(t, []string{filter.AllSources, filter.WorldItems}, sourceIDs(res.Sources))
		assert.Len(t, res.Items, 2)
	})
}

func TestRunInitialSource(t *testing.T) {
	h := &host.Memory{Items: []entity.Entity{worldItem("1", "Apple", "gear")}}

	res, err := aggregate.Run(context.Background(), h, gearRuleset(), nil, aggregate.Options{InitialSource: filter.WorldItems})
	require.NoError(t, err)
	assert.Equal(t, filter.WorldItems, res.InitialSource)

	res, err = aggregate.Run(context.Background(), h, gearRuleset(), nil, aggregate.Options{InitialSource: "gone"})
	require.NoError(t, err)
	assert.Equal(t, filter.AllSources, res.InitialSource)
}

func TestRunWorldItemsOnly(t *testing.T) {
	p := pack("dnd5e.items", "Items", host.PackageSystem, "dnd5e", packItem("dnd5e.items", "a", "Rope", "gear"))
	h := &host.Memory{
		Items:    []entity.Entity{worldItem("1", "Apple", "gear")},
		PackList: []*host.MemoryPack{p},
		PacksErr: errors.New("packs must not be listed"),
	}

	res, err := aggregate.Run(context.Background(), h, gearRuleset(), nil, aggregate.Options{WorldItemsOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filter.WorldItems}, sourceIDs(res.Sources))
	assert.Equal(t, filter.WorldItems, res.InitialSource)
	assert.Equal(t, []string{"Apple"}, itemNames(res.Items))
}

func TestRunHostErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := aggregate.Run(context.Background(), &host.Memory{WorldErr: boom}, gearRuleset(), nil, aggregate.Options{})
	assert.ErrorIs(t, err, boom)

	_, err = aggregate.Run(context.Background(), &host.Memory{PacksErr: boom}, gearRuleset(), nil, aggregate.Options{})
	assert.ErrorIs(t, err, boom)

	broken := pack("dnd5e.items", "Items", host.PackageSystem, "dnd5e")
	broken.Err = boom
	_, err = aggregate.Run(context.Background(), &host.Memory{PackList: []*host.MemoryPack{broken}}, gearRuleset(), nil, aggregate.Options{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "dnd5e.items")
}

func TestRunnerLatestWins(t *testing.T) {
	var r aggregate.Runner
	started := make(chan struct{})
	release := make(chan struct{})

	type outcome struct {
		res aggregate.Result
		ok  bool
		ctx error
	}
	first := make(chan outcome, 1)
	go func() {
		var ctxErr error
		res, ok, _ := r.Do(context.Background(), func(ctx context.Context) (aggregate.Result, error) {
			close(started)
			<-release
			ctxErr = ctx.Err()
			return aggregate.Result{InitialSource: "stale"}, nil
		})
		first <- outcome{res: res, ok: ok, ctx: ctxErr}
	}()

	<-started
	res, ok, err := r.Do(context.Background(), func(context.Context) (aggregate.Result, error) {
		return aggregate.Result{InitialSource: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", res.InitialSource)
	assert.Equal(t, uint64(2), res.Generation)
	assert.True(t, r.Current(2))
	assert.False(t, r.Current(1))

	close(release)
	select {
	case got := <-first:
		assert.False(t, got.ok)
		assert.Empty(t, got.res.InitialSource)
		assert.ErrorIs(t, got.ctx, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("superseded run did not return")
	}
	assert.Equal(t, uint64(2), r.Generation())
}

func TestRunnerClose(t *testing.T) {
	var r aggregate.Runner
	started := make(chan struct{})
	done := make(chan bool, 1)

	go func() {
		_, ok, _ := r.Do(context.Background(), func(ctx context.Context) (aggregate.Result, error) {
			close(started)
			<-ctx.Done()
			return aggregate.Result{}, ctx.Err()
		})
		done <- ok
	}()

	<-started
	r.Close()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("closing did not cancel the run")
	}
	assert.True(t, r.Closed())
	assert.False(t, r.Current(r.Generation()))

	called := false
	_, ok, err := r.Do(context.Background(), func(context.Context) (aggregate.Result, error) {
		called = true
		return aggregate.Result{}, nil
	})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, called)
}
