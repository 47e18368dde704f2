// Package library is the file-backed host: a YAML world file plus one
// SQLite database per content pack.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/ddbrown30/item-browser/internal/entity"
)

// World is the content of world.yaml.
type World struct {
	Ruleset string      `yaml:"ruleset"`
	User    string      `yaml:"user,omitempty"`
	Folders []Folder    `yaml:"folders,omitempty"`
	Items   []WorldItem `yaml:"items"`
}

// Folder is one node of the world's item folder tree.
type Folder struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
}

// WorldItem is one item as written in world.yaml.
type WorldItem struct {
	ID     string `yaml:"id"`
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	Img    string `yaml:"img,omitempty"`
	Folder string `yaml:"folder,omitempty"`
	// Permission is the current user's access; empty means owner.
	Permission string         `yaml:"permission,omitempty"`
	System     map[string]any `yaml:"system,omitempty"`
	Labels     map[string]any `yaml:"labels,omitempty"`
}

// ParseWorld parses world.yaml bytes.
func ParseWorld(data []byte) (World, error) {
	var w World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return World{}, fmt.Errorf("parsing world: %w", err)
	}
	return w, nil
}

// MarshalWorld serializes a world to YAML.
func MarshalWorld(w World) ([]byte, error) {
	return yaml.Marshal(w)
}

// LoadWorld reads a world file. A missing file is an empty world.
func LoadWorld(path string) (World, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return World{}, nil
	}
	if err != nil {
		return World{}, fmt.Errorf("reading world: %w", err)
	}
	return ParseWorld(data)
}

// Entities converts the world items. Folder references are expanded to
// their root-first name path.
func (w World) Entities() ([]entity.Entity, error) {
	folders := make(map[string]Folder, len(w.Folders))
	for _, f := range w.Folders {
		folders[f.ID] = f
	}
	out := make([]entity.Entity, 0, len(w.Items))
	for _, it := range w.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("world item %q has no id", it.Name)
		}
		perm, err := entity.ParsePermission(it.Permission)
		if err != nil {
			return nil, fmt.Errorf("world item %s: %w", it.ID, err)
		}
		path, err := folderPath(folders, it.Folder)
		if err != nil {
			return nil, fmt.Errorf("world item %s: %w", it.ID, err)
		}
		out = append(out, entity.Entity{
			ID:         entity.WorldID(it.ID),
			Type:       it.Type,
			Name:       it.Name,
			Img:        it.Img,
			Folder:     path,
			Permission: perm,
			Scope:      entity.WorldScope(),
			System:     it.System,
			Labels:     it.Labels,
		})
	}
	return out, nil
}

func folderPath(folders map[string]Folder, id string) ([]string, error) {
	var rev []string
	seen := map[string]bool{}
	for id != "" {
		if seen[id] {
			return nil, fmt.Errorf("folder cycle at %q", id)
		}
		seen[id] = true
		f, ok := folders[id]
		if !ok {
			return nil, fmt.Errorf("unknown folder %q", id)
		}
		rev = append(rev, f.Name)
		id = f.Parent
	}
	if len(rev) == 0 {
		return nil, nil
	}
	path := make([]string, len(rev))
	for i, name := range rev {
		path[len(rev)-1-i] = name
	}
	return path, nil
}
