package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.yaml.in/yaml/v3"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/paths"
)

// Version is the current config file format.
const Version = "1"

// Setting keys accepted by Set.
const (
	KeyRuleset          = "ruleset"
	KeyLocale           = "locale"
	KeyWorld            = "world"
	KeyPacks            = "packs"
	KeyShowEntryPoint   = "show-entry-point-button"
	KeyUseCompactButton = "use-compact-button"
)

// Config represents ~/.item-browser/config.yaml.
type Config struct {
	Version string `yaml:"version"`
	// Ruleset is the handler id; empty falls back to the world file's ruleset.
	Ruleset  string   `yaml:"ruleset,omitempty"`
	Locale   string   `yaml:"locale,omitempty"`
	World    string   `yaml:"world,omitempty"`
	Packs    string   `yaml:"packs,omitempty"`
	Settings Settings `yaml:"settings"`
}

// Settings are the two directory-view flags.
type Settings struct {
	ShowEntryPointButton bool `yaml:"show-entry-point-button"`
	UseCompactButton     bool `yaml:"use-compact-button"`
}

// Env holds the environment overrides.
type Env struct {
	Home    string `env:"ITEM_BROWSER_HOME"`
	Ruleset string `env:"ITEM_BROWSER_RULESET"`
	Locale  string `env:"ITEM_BROWSER_LOCALE"`
	World   string `env:"ITEM_BROWSER_WORLD"`
	Packs   string `env:"ITEM_BROWSER_PACKS"`
}

// Default returns a config with default values.
func Default() Config {
	return Config{
		Version: Version,
		Settings: Settings{
			ShowEntryPointButton: true,
		},
	}
}

// Parse parses config.yaml bytes into a Config. Missing keys keep their
// defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = Version
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ParseEnv reads the environment overrides.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// WithEnv returns cfg with every non-empty override applied.
func (cfg Config) WithEnv(e Env) Config {
	if e.Ruleset != "" {
		cfg.Ruleset = e.Ruleset
	}
	if e.Locale != "" {
		cfg.Locale = e.Locale
	}
	if e.World != "" {
		cfg.World = e.World
	}
	if e.Packs != "" {
		cfg.Packs = e.Packs
	}
	return cfg
}

// WorldFile returns the configured world file, defaulting into the layout.
func (cfg Config) WorldFile(l paths.Layout) string {
	if cfg.World != "" {
		return cfg.World
	}
	return l.WorldFile()
}

// PacksDir returns the configured packs directory, defaulting into the
// layout.
func (cfg Config) PacksDir(l paths.Layout) string {
	if cfg.Packs != "" {
		return cfg.Packs
	}
	return l.PacksDir()
}

// Load reads the config file of a layout. A missing file yields defaults.
func Load(l paths.Layout) (Config, error) {
	data, err := os.ReadFile(l.ConfigFile())
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Save writes cfg to the layout's config file.
func Save(l paths.Layout, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.ConfigFile()), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(l.ConfigFile(), data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Keys lists the keys accepted by Set.
func Keys() []string {
	return []string{KeyRuleset, KeyLocale, KeyWorld, KeyPacks, KeyShowEntryPoint, KeyUseCompactButton}
}

// Set returns cfg with one key changed.
func Set(cfg Config, key, value string) (Config, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case KeyRuleset:
		cfg.Ruleset = value
	case KeyLocale:
		cfg.Locale = value
	case KeyWorld:
		cfg.World = value
	case KeyPacks:
		cfg.Packs = value
	case KeyShowEntryPoint:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return cfg, apperr.Wrap(apperr.CodeConfigInvalid, key, err)
		}
		cfg.Settings.ShowEntryPointButton = b
	case KeyUseCompactButton:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return cfg, apperr.Wrap(apperr.CodeConfigInvalid, key, err)
		}
		cfg.Settings.UseCompactButton = b
	default:
		return cfg, apperr.WithMetadata(apperr.CodeConfigInvalid, "unknown config key "+key, map[string]string{"key": key})
	}
	return cfg, nil
}
