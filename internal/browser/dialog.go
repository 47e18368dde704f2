// Package browser is the item browser dialog: it owns one filter state and
// one selection, re-derives the visible rows after every input, and
// resolves with the selected item id when used as a selector.
//
// A Dialog is driven from a single goroutine. Only Fetch, Wait, Done and
// Close may be called from elsewhere.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ddbrown30/item-browser/internal/aggregate"
	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/notify"
	"github.com/ddbrown30/item-browser/internal/pipeline"
	"github.com/ddbrown30/item-browser/internal/row"
	"github.com/ddbrown30/item-browser/internal/ruleset"
	"github.com/ddbrown30/item-browser/internal/selection"
)

// Deps are the collaborators shared by every dialog of a session.
type Deps struct {
	Host     host.Host
	Ruleset  ruleset.Handler
	L        *i18n.Localizer
	Notifier notify.Notifier
}

// Action is what a row activation asks the surface to do next.
type Action int

const (
	ActionNone Action = iota
	// ActionResolved means the dialog closed with a value.
	ActionResolved
	// ActionOpenSheet asks the surface to show the selected item's sheet.
	ActionOpenSheet
)

// Dialog is one open item browser.
type Dialog struct {
	deps Deps
	opts Options

	ctx    context.Context
	cancel context.CancelFunc
	runner aggregate.Runner

	result      aggregate.Result
	loaded      bool
	typeOptions []ruleset.Option
	state       filter.State
	view        pipeline.View
	sel         selection.State

	done      chan struct{}
	closeOnce sync.Once
	value     string
	resolved  bool
}

// New creates a dialog without loading it. Surfaces that load in the
// background call Fetch and Apply themselves.
func New(ctx context.Context, deps Deps, opts Options) *Dialog {
	if deps.L == nil {
		deps.L = i18n.Default()
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Discard
	}
	if deps.Ruleset == nil {
		deps.Ruleset = ruleset.NewDefault(deps.L)
	}
	dctx, cancel := context.WithCancel(ctx)
	d := &Dialog{
		deps:   deps,
		opts:   opts,
		ctx:    dctx,
		cancel: cancel,
		state:  filter.New(),
		done:   make(chan struct{}),
	}
	d.refresh()
	return d
}

// Open creates a dialog and runs the first aggregation. Aggregation errors
// are returned and the dialog is discarded.
func Open(ctx context.Context, deps Deps, opts Options) (*Dialog, error) {
	d := New(ctx, deps, opts)
	if err := d.Reload(ctx); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Fetch runs one aggregation. A run superseded by a later Fetch, or
// finishing after Close, reports ok=false.
func (d *Dialog) Fetch(ctx context.Context) (aggregate.Result, bool, error) {
	return d.runner.Do(ctx, func(ctx context.Context) (aggregate.Result, error) {
		return aggregate.Run(ctx, d.deps.Host, d.deps.Ruleset, d.deps.L, d.opts.aggregate())
	})
}

// Apply installs an aggregation result. Stale results are ignored and
// reported as false.
func (d *Dialog) Apply(res aggregate.Result) bool {
	if d.Closed() || !d.runner.Current(res.Generation) {
		return false
	}
	first := !d.loaded
	d.result = res
	d.loaded = true

	if first || !d.hasSource(d.state.Source) {
		d.state = d.state.WithSource(res.InitialSource)
	}
	d.typeOptions = pipeline.TypeOptions(d.deps.L, d.deps.Ruleset, res.Items)
	if first || !pipeline.HasType(d.typeOptions, d.state.Type) {
		d.state = d.state.WithType(pipeline.DefaultType(d.deps.Ruleset, d.typeOptions))
	}
	d.refresh()
	return true
}

// Reload re-runs aggregation and applies its result.
func (d *Dialog) Reload(ctx context.Context) error {
	res, ok, err := d.Fetch(ctx)
	if !ok {
		if d.Closed() {
			return apperr.New(apperr.CodeDialogClosed, "dialog closed during aggregation")
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("aggregating items: %w", err)
	}
	d.Apply(res)
	return nil
}

func (d *Dialog) hasSource(id string) bool {
	for _, s := range d.result.Sources {
		if s.ID == id {
			return true
		}
	}
	return false
}

// refresh re-derives the visible rows from the current state.
func (d *Dialog) refresh() {
	in := pipeline.Input{
		Candidates: d.result.Items,
		Handler:    d.deps.Ruleset,
		ItemTypes:  d.opts.ItemTypes,
		L:          d.deps.L,
	}
	if d.result.Resolver != nil {
		in.Resolver = d.result.Resolver
	} else {
		in.Resolver = d.deps.Host
	}
	d.view = pipeline.Derive(d.ctx, in, d.state)
	d.state = d.view.State
	d.sel = d.sel.Revalidate(d.view.Rows)
}

// Options returns the options the dialog was opened with.
func (d *Dialog) Options() Options { return d.opts }

// Ruleset returns the active handler.
func (d *Dialog) Ruleset() ruleset.Handler { return d.deps.Ruleset }

// Localizer returns the dialog's localizer.
func (d *Dialog) Localizer() *i18n.Localizer { return d.deps.L }

// Loaded reports whether an aggregation result has been applied.
func (d *Dialog) Loaded() bool { return d.loaded }

// Sources returns the source filter entries.
func (d *Dialog) Sources() []aggregate.Source { return d.result.Sources }

// TypeOptions returns the type filter entries.
func (d *Dialog) TypeOptions() []ruleset.Option { return d.typeOptions }

// Controls returns the ruleset's structured filters, computed from the
// candidates in the current source and type.
func (d *Dialog) Controls() []ruleset.Control { return d.view.Controls }

// Searches returns the ruleset's secondary search controls.
func (d *Dialog) Searches() []ruleset.Search { return d.deps.Ruleset.Searches() }

// State returns the current filter state.
func (d *Dialog) State() filter.State { return d.state }

// Rows returns the visible rows in display order.
func (d *Dialog) Rows() []row.Row { return d.view.Rows }

// Total is the number of aggregated items before any filter.
func (d *Dialog) Total() int { return len(d.result.Items) }

// Headers returns the table headers: name first, then the type's columns.
func (d *Dialog) Headers() []ruleset.Header {
	headers := []ruleset.Header{d.deps.Ruleset.Header(row.NameColumn)}
	for _, c := range d.view.Columns {
		headers = append(headers, d.deps.Ruleset.Header(c))
	}
	return headers
}

// Selection returns the selection state.
func (d *Dialog) Selection() selection.State { return d.sel }

// Selected returns the selected row.
func (d *Dialog) Selected() (row.Row, bool) {
	i := d.sel.Index(d.view.Rows)
	if i < 0 {
		return row.Row{}, false
	}
	return d.view.Rows[i], true
}

// SetSource changes the source filter.
func (d *Dialog) SetSource(id string) {
	d.state = d.state.WithSource(id)
	d.refresh()
}

// SetType changes the type filter. The sort resets to name when the
// active column does not exist for the new type.
func (d *Dialog) SetType(typ string) {
	d.state = d.state.WithType(typ)
	d.refresh()
}

// SetName changes the name search.
func (d *Dialog) SetName(name string) {
	d.state = d.state.WithName(name)
	d.refresh()
}

// SetFilter changes one structured filter; "" clears it.
func (d *Dialog) SetFilter(key, value string) {
	d.state = d.state.WithValue(key, value)
	d.refresh()
}

// SetSearch changes one secondary search.
func (d *Dialog) SetSearch(key, text string) {
	d.state = d.state.WithSearch(key, text)
	d.refresh()
}

// SetState replaces the whole filter state.
func (d *Dialog) SetState(st filter.State) {
	d.state = st
	d.refresh()
}

// ClickHeader sorts by column, flipping the order on a repeated click.
// Clicks on headers that cannot sort are ignored.
func (d *Dialog) ClickHeader(column string) {
	if !pipeline.Sortable(d.deps.Ruleset, d.state.Type, column) {
		return
	}
	d.state = d.state.WithSort(column)
	d.refresh()
}

// ClickRow selects a visible row.
func (d *Dialog) ClickRow(id string) {
	if d.Closed() {
		return
	}
	if s := selection.Select(id); s.Index(d.view.Rows) >= 0 {
		d.sel = s
	}
}

// MoveSelection steps the highlight by delta visible rows.
func (d *Dialog) MoveSelection(delta int) {
	d.sel = d.sel.Step(d.view.Rows, delta)
}

// DoubleClickRow selects the row and activates it: a selector resolves
// with it, a browse dialog asks for its sheet.
func (d *Dialog) DoubleClickRow(id string) Action {
	d.ClickRow(id)
	if !d.sel.IsSelected(id) {
		return ActionNone
	}
	if d.opts.Browse {
		return ActionOpenSheet
	}
	d.resolve(id, true)
	return ActionResolved
}

// Confirm resolves a selector with the selected row. It does nothing
// while no row is selected. Confirming a browse dialog is a usage error:
// the user is notified and the dialog closes without a value.
func (d *Dialog) Confirm() error {
	if d.Closed() {
		return apperr.New(apperr.CodeDialogClosed, "confirm after close")
	}
	if d.opts.Browse {
		err := apperr.New(apperr.CodeBrowseModeConfirm, "confirm in browse mode")
		d.deps.Notifier.Notify(notify.Notification{Level: notify.Error, Message: d.deps.L.T(err.Key())})
		d.resolve("", false)
		return err
	}
	id, ok := d.sel.ID()
	if !ok {
		return nil
	}
	d.resolve(id, true)
	return nil
}

// Dismiss closes the dialog without a value.
func (d *Dialog) Dismiss() {
	d.resolve("", false)
}

// SelectLabel is the text of the confirm button: the action followed by
// the selected row's name.
func (d *Dialog) SelectLabel() string {
	label := d.deps.L.T("ITEM_BROWSER.Select")
	if d.opts.Browse {
		label = d.deps.L.T("ITEM_BROWSER.Open")
	}
	if r, ok := d.Selected(); ok {
		return label + " " + r.Name.Display
	}
	return label
}

// DragPayload is the data handed to a drop target.
type DragPayload struct {
	Type string `json:"type"`
	UUID string `json:"uuid"`
}

// Payload builds the drag payload of an item id.
func Payload(id string) ([]byte, error) {
	return json.Marshal(DragPayload{Type: host.DocumentItem, UUID: id})
}

// DragData returns the JSON drag payload of the selected row.
func (d *Dialog) DragData() ([]byte, bool) {
	id, ok := d.sel.ID()
	if !ok {
		return nil, false
	}
	data, err := Payload(id)
	if err != nil {
		return nil, false
	}
	return data, true
}

// OpenSheet resolves the selected row's full entity through the host.
func (d *Dialog) OpenSheet(ctx context.Context) (entity.Entity, error) {
	id, ok := d.sel.ID()
	if !ok {
		return entity.Entity{}, apperr.New(apperr.CodeEntityNotFound, "no row selected")
	}
	e, err := d.deps.Host.Resolve(ctx, id)
	if err != nil {
		return entity.Entity{}, fmt.Errorf("opening sheet for %s: %w", id, err)
	}
	return e, nil
}

func (d *Dialog) resolve(id string, ok bool) {
	d.closeOnce.Do(func() {
		d.value, d.resolved = id, ok
		d.cancel()
		d.runner.Close()
		close(d.done)
	})
}

// Close discards the dialog: in-flight aggregation is cancelled and a
// selector resolves with no value.
func (d *Dialog) Close() {
	d.resolve("", false)
}

// Closed reports whether the dialog has closed.
func (d *Dialog) Closed() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Done is closed when the dialog closes.
func (d *Dialog) Done() <-chan struct{} { return d.done }

// Wait blocks until the dialog closes and returns the selected id. A
// browse dialog always returns false.
func (d *Dialog) Wait(ctx context.Context) (string, bool) {
	select {
	case <-d.done:
		return d.value, d.resolved
	case <-ctx.Done():
		return "", false
	}
}
