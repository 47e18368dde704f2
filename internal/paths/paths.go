package paths

import (
	"os"
	"path/filepath"
)

// DirName is the name of the data directory under the user's home.
const DirName = ".item-browser"

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// Layout locates the files of one data directory.
type Layout struct {
	Root string
}

// Default returns the layout rooted at ~/.item-browser.
func Default() Layout {
	return Layout{Root: filepath.Join(home(), DirName)}
}

// At returns the layout rooted at dir, or the default for an empty dir.
func At(dir string) Layout {
	if dir == "" {
		return Default()
	}
	return Layout{Root: dir}
}

// ConfigFile returns <root>/config.yaml.
func (l Layout) ConfigFile() string {
	return filepath.Join(l.Root, "config.yaml")
}

// WorldFile returns <root>/world.yaml.
func (l Layout) WorldFile() string {
	return filepath.Join(l.Root, "world.yaml")
}

// PacksDir returns <root>/packs.
func (l Layout) PacksDir() string {
	return filepath.Join(l.Root, "packs")
}

// PackFile returns the database path of a pack id inside PacksDir.
func (l Layout) PackFile(id string) string {
	return filepath.Join(l.PacksDir(), id+".db")
}
