// Package entity describes the host-owned item records the browser reads.
// Entities are never mutated by the browser.
package entity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Permission is the current user's access level to an entity or pack.
type Permission int

const (
	PermissionNone Permission = iota
	PermissionLimited
	PermissionObserver
	PermissionOwner
)

var permissionNames = map[Permission]string{
	PermissionNone:     "none",
	PermissionLimited:  "limited",
	PermissionObserver: "observer",
	PermissionOwner:    "owner",
}

func (p Permission) String() string {
	if s, ok := permissionNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Permission(%d)", int(p))
}

// CanObserve reports whether the level grants at least observer access.
func (p Permission) CanObserve() bool {
	return p >= PermissionObserver
}

// ParsePermission parses a permission name. An empty string means owner,
// matching a world whose single user created every record.
func ParsePermission(s string) (Permission, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PermissionOwner, nil
	}
	for p, name := range permissionNames {
		if name == s {
			return p, nil
		}
	}
	return PermissionNone, fmt.Errorf("unknown permission %q", s)
}

// MarshalYAML writes the permission by name.
func (p Permission) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML reads the permission by name.
func (p *Permission) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParsePermission(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ScopeKind tells world-owned entities from pack entities.
type ScopeKind int

const (
	ScopeWorld ScopeKind = iota
	ScopePack
)

// Scope records where an entity came from. It is assigned during
// aggregation and is what source filtering matches on.
type Scope struct {
	Kind      ScopeKind
	PackID    string
	PackLabel string
	PackName  string
}

// WorldScope is the scope of world-owned entities.
func WorldScope() Scope { return Scope{Kind: ScopeWorld} }

// PackScope is the scope of entities read from a content pack.
func PackScope(id, label, name string) Scope {
	return Scope{Kind: ScopePack, PackID: id, PackLabel: label, PackName: name}
}

// IsWorld reports whether the entity is owned by the world.
func (s Scope) IsWorld() bool { return s.Kind == ScopeWorld }

// Entity is one item record.
type Entity struct {
	ID         string
	Type       string
	Name       string
	Img        string
	Folder     []string
	Permission Permission
	Scope      Scope
	System     map[string]any
	Labels     map[string]any
}

// WorldID returns the fully-qualified id of a world item.
func WorldID(id string) string {
	return "Item." + id
}

// PackItemID returns the fully-qualified id of an item inside a pack.
func PackItemID(packID, id string) string {
	return "Compendium." + packID + ".Item." + id
}

// Ref is a parsed fully-qualified id.
type Ref struct {
	PackID string // empty for world items
	ID     string
}

// ParseID splits a fully-qualified id into its pack and local parts.
func ParseID(uuid string) (Ref, error) {
	if rest, ok := strings.CutPrefix(uuid, "Compendium."); ok {
		i := strings.LastIndex(rest, ".Item.")
		if i <= 0 || i+len(".Item.") >= len(rest) {
			return Ref{}, fmt.Errorf("malformed pack id %q", uuid)
		}
		return Ref{PackID: rest[:i], ID: rest[i+len(".Item."):]}, nil
	}
	if rest, ok := strings.CutPrefix(uuid, "Item."); ok && rest != "" {
		return Ref{ID: rest}, nil
	}
	return Ref{}, fmt.Errorf("malformed id %q", uuid)
}

// Field returns the value at a dotted path rooted at "system" or "labels".
func (e Entity) Field(path string) (any, bool) {
	root, rest, _ := strings.Cut(path, ".")
	var cur any
	switch root {
	case "system":
		cur = e.System
	case "labels":
		cur = e.Labels
	default:
		return nil, false
	}
	if cur == nil {
		return nil, false
	}
	if rest == "" {
		return cur, true
	}
	return Lookup(cur, rest)
}

// Lookup walks a dotted path through nested maps.
func Lookup(v any, path string) (any, bool) {
	cur := v
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// Text returns the field as a string; numbers are formatted.
func (e Entity) Text(path string) string {
	v, ok := e.Field(path)
	if !ok {
		return ""
	}
	return AsString(v)
}

// Float returns the field as a number.
func (e Entity) Float(path string) (float64, bool) {
	v, ok := e.Field(path)
	if !ok {
		return 0, false
	}
	return AsFloat(v)
}

// Bool returns the field as a boolean. Non-empty strings other than
// "false" and non-zero numbers count as true.
func (e Entity) Bool(path string) bool {
	v, ok := e.Field(path)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != "" && !strings.EqualFold(b, "false")
	default:
		f, ok := AsFloat(v)
		return ok && f != 0
	}
}

// Strings returns the field as a list of strings. A map of booleans is
// read as a set of its true keys.
func (e Entity) Strings(path string) []string {
	v, ok := e.Field(path)
	if !ok {
		return nil
	}
	return AsStrings(v)
}

// Map returns the field as a map.
func (e Entity) Map(path string) map[string]any {
	v, ok := e.Field(path)
	if !ok {
		return nil
	}
	m, _ := asMap(v)
	return m
}

// List returns the field as a slice.
func (e Entity) List(path string) []any {
	v, ok := e.Field(path)
	if !ok {
		return nil
	}
	l, _ := v.([]any)
	return l
}

// Has reports whether the list field at path contains s.
func (e Entity) Has(path, s string) bool {
	for _, v := range e.Strings(path) {
		if v == s {
			return true
		}
	}
	return false
}

// AsString formats a loosely-typed value as a string.
func AsString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(v)
	}
}

// AsFloat converts a loosely-typed value to a number.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// AsStrings converts a list or a set-like map to strings.
func AsStrings(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			out = append(out, AsString(item))
		}
		return out
	case string:
		if l == "" {
			return nil
		}
		return []string{l}
	}
	if m, ok := asMap(v); ok {
		var out []string
		for k, val := range m {
			if b, ok := val.(bool); ok && b {
				out = append(out, k)
			}
		}
		sort.Strings(out)
		return out
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}
