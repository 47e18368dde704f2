package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ddbrown30/item-browser/internal/aggregate"
	"github.com/ddbrown30/item-browser/internal/browser"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/filter"
	"github.com/ddbrown30/item-browser/internal/host"
	"github.com/ddbrown30/item-browser/internal/row"
)

func options(worldItemsOnly bool, validSources, itemTypes []string, initialSource string) browser.Options {
	return browser.Options{
		Browse:              true,
		WorldItemsOnly:      worldItemsOnly,
		ValidFilterSources:  validSources,
		InitialSourceFilter: initialSource,
		ItemTypes:           itemTypes,
	}
}

// ListSourcesInput is the input of list_sources.
type ListSourcesInput struct {
	WorldItemsOnly     bool     `json:"world_items_only,omitempty" jsonschema:"only list items owned by the world"`
	ValidFilterSources []string `json:"valid_filter_sources,omitempty" jsonschema:"restrict the source list to these ids when any of them exist"`
	ItemTypes          []string `json:"item_types,omitempty" jsonschema:"restrict items to these types"`
	InitialSource      string   `json:"initial_source,omitempty" jsonschema:"requested starting source"`
}

// ListSourcesResult is the output of list_sources.
type ListSourcesResult struct {
	Sources       []aggregate.Source `json:"sources" jsonschema:"selectable sources in display order"`
	InitialSource string             `json:"initial_source" jsonschema:"source selected when the browser opens"`
	Types         []TypeResult       `json:"types" jsonschema:"type filter choices"`
	DefaultType   string             `json:"default_type" jsonschema:"type selected when the browser opens"`
}

// TypeResult is one type filter choice.
type TypeResult struct {
	ID    string `json:"id" jsonschema:"type id; empty means every type"`
	Label string `json:"label" jsonschema:"display label"`
}

// ListSourcesTool defines list_sources.
func ListSourcesTool() *sdk.Tool {
	return &sdk.Tool{
		Name:        "list_sources",
		Description: "Lists the item sources and type filters the browser offers for the given options.",
	}
}

// ListSourcesHandler runs list_sources.
func ListSourcesHandler(deps browser.Deps) sdk.ToolHandlerFor[ListSourcesInput, ListSourcesResult] {
	return func(ctx context.Context, _ *sdk.CallToolRequest, input ListSourcesInput) (*sdk.CallToolResult, ListSourcesResult, error) {
		d, err := browser.Open(ctx, deps, options(input.WorldItemsOnly, input.ValidFilterSources, input.ItemTypes, input.InitialSource))
		if err != nil {
			return nil, ListSourcesResult{}, fmt.Errorf("list sources: %w", err)
		}
		defer d.Close()

		result := ListSourcesResult{
			Sources:       d.Sources(),
			InitialSource: d.State().Source,
			DefaultType:   d.State().Type,
		}
		for _, o := range d.TypeOptions() {
			result.Types = append(result.Types, TypeResult{ID: o.Value, Label: o.Label})
		}
		return nil, result, nil
	}
}

// BrowseItemsInput is the input of browse_items.
type BrowseItemsInput struct {
	WorldItemsOnly     bool              `json:"world_items_only,omitempty" jsonschema:"only list items owned by the world"`
	ValidFilterSources []string          `json:"valid_filter_sources,omitempty" jsonschema:"restrict the source list to these ids when any of them exist"`
	ItemTypes          []string          `json:"item_types,omitempty" jsonschema:"restrict items to these types"`
	Source             string            `json:"source,omitempty" jsonschema:"source id (all, worldItems or a pack id)"`
	Type               string            `json:"type,omitempty" jsonschema:"item type; omitted uses the browser default"`
	Name               string            `json:"name,omitempty" jsonschema:"case-insensitive name search"`
	Filters            map[string]string `json:"filters,omitempty" jsonschema:"ruleset filter values by control key"`
	Search             map[string]string `json:"search,omitempty" jsonschema:"ruleset text searches by control key"`
	Sort               string            `json:"sort,omitempty" jsonschema:"column to sort by (default name)"`
	Descending         bool              `json:"descending,omitempty" jsonschema:"sort in descending order"`
	Limit              int               `json:"limit,omitempty" jsonschema:"maximum rows to return (0 for all)"`
}

// BrowseItemsResult is the output of browse_items.
type BrowseItemsResult struct {
	Source  string      `json:"source" jsonschema:"effective source id"`
	Type    string      `json:"type" jsonschema:"effective type filter"`
	Sort    string      `json:"sort" jsonschema:"effective sort column"`
	Columns []string    `json:"columns" jsonschema:"column keys after name, in display order"`
	Rows    []RowResult `json:"rows" jsonschema:"matching rows in display order"`
	Total   int         `json:"total" jsonschema:"number of matching rows before the limit"`
}

// RowResult is one projected row.
type RowResult struct {
	ID      string            `json:"id" jsonschema:"fully-qualified item id"`
	Name    string            `json:"name" jsonschema:"item name"`
	Type    string            `json:"type" jsonschema:"item type"`
	Tooltip string            `json:"tooltip" jsonschema:"where the item comes from"`
	Columns map[string]string `json:"columns" jsonschema:"display values by column key"`
}

// BrowseItemsTool defines browse_items.
func BrowseItemsTool() *sdk.Tool {
	return &sdk.Tool{
		Name:        "browse_items",
		Description: "Filters and sorts items the way the item browser does and returns the visible rows.",
	}
}

// BrowseItemsHandler runs browse_items.
func BrowseItemsHandler(deps browser.Deps) sdk.ToolHandlerFor[BrowseItemsInput, BrowseItemsResult] {
	return func(ctx context.Context, _ *sdk.CallToolRequest, input BrowseItemsInput) (*sdk.CallToolResult, BrowseItemsResult, error) {
		d, err := browser.Open(ctx, deps, options(input.WorldItemsOnly, input.ValidFilterSources, input.ItemTypes, input.Source))
		if err != nil {
			return nil, BrowseItemsResult{}, fmt.Errorf("browse items: %w", err)
		}
		defer d.Close()

		d.SetState(input.apply(d.State()))
		st := d.State()
		result := BrowseItemsResult{
			Source:  st.Source,
			Type:    st.Type,
			Sort:    st.SortColumn,
			Columns: d.Ruleset().Columns(st.Type),
		}
		rows := d.Rows()
		result.Total = len(rows)
		if input.Limit > 0 && len(rows) > input.Limit {
			rows = rows[:input.Limit]
		}
		for _, r := range rows {
			result.Rows = append(result.Rows, rowResult(r))
		}
		return nil, result, nil
	}
}

func (in BrowseItemsInput) apply(st filter.State) filter.State {
	if in.Source != "" {
		st = st.WithSource(in.Source)
	}
	if in.Type != "" {
		st = st.WithType(in.Type)
	}
	st = st.WithName(in.Name)
	for k, v := range in.Filters {
		st = st.WithValue(k, v)
	}
	for k, v := range in.Search {
		st = st.WithSearch(k, v)
	}
	if col := strings.TrimSpace(in.Sort); col != "" {
		st.SortColumn = col
	}
	st.SortOrder = filter.Ascending
	if in.Descending {
		st.SortOrder = filter.Descending
	}
	return st
}

func rowResult(r row.Row) RowResult {
	out := RowResult{
		ID:      r.ID,
		Name:    r.Name.Display,
		Type:    r.Type,
		Tooltip: r.Tooltip,
		Columns: make(map[string]string, len(r.Columns)),
	}
	for k, c := range r.Columns {
		out.Columns[k] = c.Display
	}
	return out
}

// GetItemInput is the input of get_item.
type GetItemInput struct {
	ID string `json:"id" jsonschema:"fully-qualified item id"`
}

// GetItemResult is the output of get_item.
type GetItemResult struct {
	ID       string         `json:"id" jsonschema:"fully-qualified item id"`
	Name     string         `json:"name" jsonschema:"item name"`
	Type     string         `json:"type" jsonschema:"item type"`
	Img      string         `json:"img,omitempty" jsonschema:"image path"`
	Folder   []string       `json:"folder,omitempty" jsonschema:"world folder path, root first"`
	System   map[string]any `json:"system,omitempty" jsonschema:"ruleset data"`
	DragData string         `json:"drag_data" jsonschema:"JSON payload for dropping the item elsewhere"`
}

// GetItemTool defines get_item.
func GetItemTool() *sdk.Tool {
	return &sdk.Tool{
		Name:        "get_item",
		Description: "Returns one item with its drag payload.",
	}
}

// GetItemHandler runs get_item.
func GetItemHandler(h host.Host) sdk.ToolHandlerFor[GetItemInput, GetItemResult] {
	return func(ctx context.Context, _ *sdk.CallToolRequest, input GetItemInput) (*sdk.CallToolResult, GetItemResult, error) {
		id := strings.TrimSpace(input.ID)
		if id == "" {
			return nil, GetItemResult{}, fmt.Errorf("id is required")
		}
		e, err := h.Resolve(ctx, id)
		if err != nil {
			return nil, GetItemResult{}, fmt.Errorf("get item: %w", err)
		}
		drag, err := dragData(e)
		if err != nil {
			return nil, GetItemResult{}, err
		}
		return nil, GetItemResult{
			ID:       e.ID,
			Name:     e.Name,
			Type:     e.Type,
			Img:      e.Img,
			Folder:   e.Folder,
			System:   e.System,
			DragData: drag,
		}, nil
	}
}

func dragData(e entity.Entity) (string, error) {
	data, err := browser.Payload(e.ID)
	if err != nil {
		return "", fmt.Errorf("drag data: %w", err)
	}
	return string(data), nil
}
