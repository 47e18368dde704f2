package config_test

import (
	"os"
	"testing"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/config"
	"github.com/ddbrown30/item-browser/internal/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("full format", func(t *testing.T) {
		input := []byte(`version: "1"
ruleset: dnd5e
locale: en-GB
world: /srv/worlds/tomb.yaml
settings:
  show-entry-point-button: false
  use-compact-button: true
`)
		cfg, err := config.Parse(input)
		require.NoError(t, err)
		assert.Equal(t, "1", cfg.Version)
		assert.Equal(t, "dnd5e", cfg.Ruleset)
		assert.Equal(t, "en-GB", cfg.Locale)
		assert.Equal(t, "/srv/worlds/tomb.yaml", cfg.World)
		assert.False(t, cfg.Settings.ShowEntryPointButton)
		assert.True(t, cfg.Settings.UseCompactButton)
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`ruleset: swade`))
		require.NoError(t, err)
		assert.Equal(t, config.Version, cfg.Version)
		assert.True(t, cfg.Settings.ShowEntryPointButton)
		assert.False(t, cfg.Settings.UseCompactButton)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.Parse([]byte(`{{{`))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config")
	})
}

func TestMarshalConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Ruleset = "pf2e"

	data, err := config.Marshal(cfg)
	require.NoError(t, err)

	parsed, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
	assert.Contains(t, string(data), "show-entry-point-button: true")
}

func TestLoadAndSave(t *testing.T) {
	l := paths.At(t.TempDir())

	cfg, err := config.Load(l)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg.Ruleset = "dnd5e"
	cfg.Settings.UseCompactButton = true
	require.NoError(t, config.Save(l, cfg))

	loaded, err := config.Load(l)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	require.NoError(t, os.WriteFile(l.ConfigFile(), []byte(`{{{`), 0o644))
	_, err = config.Load(l)
	assert.Error(t, err)
}

func TestEnv(t *testing.T) {
	t.Setenv("ITEM_BROWSER_HOME", "/tmp/ib")
	t.Setenv("ITEM_BROWSER_RULESET", "swade")
	t.Setenv("ITEM_BROWSER_PACKS", "/tmp/packs")

	e, err := config.ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ib", e.Home)

	cfg := config.Default()
	cfg.Ruleset = "dnd5e"
	cfg.Locale = "fr"
	cfg = cfg.WithEnv(e)
	assert.Equal(t, "swade", cfg.Ruleset)
	assert.Equal(t, "fr", cfg.Locale)
	assert.Equal(t, "/tmp/packs", cfg.PacksDir(paths.At("/root")))
	assert.Equal(t, paths.At("/root").WorldFile(), cfg.WorldFile(paths.At("/root")))
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(t *testing.T, cfg config.Config)
	}{
		{key: "ruleset", value: "pf2e", check: func(t *testing.T, cfg config.Config) { assert.Equal(t, "pf2e", cfg.Ruleset) }},
		{key: "locale", value: "de", check: func(t *testing.T, cfg config.Config) { assert.Equal(t, "de", cfg.Locale) }},
		{key: "world", value: "/w.yaml", check: func(t *testing.T, cfg config.Config) { assert.Equal(t, "/w.yaml", cfg.World) }},
		{key: "packs", value: "/p", check: func(t *testing.T, cfg config.Config) { assert.Equal(t, "/p", cfg.Packs) }},
		{key: "show-entry-point-button", value: "false", check: func(t *testing.T, cfg config.Config) {
			assert.False(t, cfg.Settings.ShowEntryPointButton)
		}},
		{key: "use-compact-button", value: "true", check: func(t *testing.T, cfg config.Config) {
			assert.True(t, cfg.Settings.UseCompactButton)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg, err := config.Set(config.Default(), tt.key, tt.value)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}

	_, err := config.Set(config.Default(), "use-compact-button", "maybe")
	assert.Equal(t, apperr.CodeConfigInvalid, apperr.CodeOf(err))
	_, err = config.Set(config.Default(), "colour", "red")
	assert.Equal(t, apperr.CodeConfigInvalid, apperr.CodeOf(err))
	assert.Len(t, config.Keys(), 6)
}
