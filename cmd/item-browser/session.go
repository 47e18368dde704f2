package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ddbrown30/item-browser/internal/browser"
	"github.com/ddbrown30/item-browser/internal/config"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/library"
	"github.com/ddbrown30/item-browser/internal/notify"
	"github.com/ddbrown30/item-browser/internal/paths"
	"github.com/ddbrown30/item-browser/internal/ruleset"

	// Built-in rulesets register themselves.
	_ "github.com/ddbrown30/item-browser/internal/ruleset/dnd5e"
	_ "github.com/ddbrown30/item-browser/internal/ruleset/pf2e"
	_ "github.com/ddbrown30/item-browser/internal/ruleset/swade"
)

// session is everything a command needs to open a browser: the loaded
// config, the library it points at and the active ruleset.
type session struct {
	layout  paths.Layout
	cfg     config.Config
	lib     *library.Library
	handler ruleset.Handler
	l       *i18n.Localizer
}

// layout resolves the data directory, honouring ITEM_BROWSER_HOME.
func layout() (paths.Layout, config.Env, error) {
	e, err := config.ParseEnv()
	if err != nil {
		return paths.Layout{}, config.Env{}, err
	}
	return paths.At(e.Home), e, nil
}

func openSession(ctx context.Context) (*session, error) {
	l, e, err := layout()
	if err != nil {
		return nil, err
	}
	return openSessionAt(ctx, l, e)
}

func openSessionAt(ctx context.Context, l paths.Layout, e config.Env) (*session, error) {
	cfg, err := config.Load(l)
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithEnv(e)

	lib, err := library.Open(ctx, cfg.WorldFile(l), cfg.PacksDir(l))
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}

	loc := i18n.New(cfg.Locale)
	id := cfg.Ruleset
	if id == "" {
		id = lib.Ruleset()
	}
	return &session{
		layout:  l,
		cfg:     cfg,
		lib:     lib,
		handler: ruleset.Lookup(id, loc),
		l:       loc,
	}, nil
}

func (s *session) Close() error {
	return s.lib.Close()
}

func (s *session) deps(n notify.Notifier) browser.Deps {
	return browser.Deps{Host: s.lib, Ruleset: s.handler, L: s.l, Notifier: n}
}

// scopeFlags are the browser options shared by browse, select, list and
// sources.
type scopeFlags struct {
	worldOnly bool
	sources   []string
	source    string
	types     []string
	raw       string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.worldOnly, "world-only", false, "Only show items owned by the world")
	cmd.Flags().StringArrayVar(&f.sources, "valid-source", nil, "Restrict the source list to this id (repeatable)")
	cmd.Flags().StringVar(&f.source, "source", "", "Initial source filter (all, worldItems or a pack id)")
	cmd.Flags().StringArrayVar(&f.types, "item-type", nil, "Only show items of this type (repeatable)")
	cmd.Flags().StringVar(&f.raw, "options", "", "Browser options as a JSON object")
}

// options builds browser options. A JSON --options object is decoded the
// loose way, reporting bad keys through n; explicit flags win over it.
func (f scopeFlags) options(l *i18n.Localizer, n notify.Notifier, browse bool) (browser.Options, error) {
	var opts browser.Options
	if strings.TrimSpace(f.raw) != "" {
		var raw map[string]any
		if err := json.Unmarshal([]byte(f.raw), &raw); err != nil {
			return browser.Options{}, fmt.Errorf("parsing --options: %w", err)
		}
		opts = browser.DecodeOptions(raw, l, n)
	}
	opts.Browse = browse
	if f.worldOnly {
		opts.WorldItemsOnly = true
	}
	if len(f.sources) > 0 {
		opts.ValidFilterSources = f.sources
	}
	if f.source != "" {
		opts.InitialSourceFilter = f.source
	}
	if len(f.types) > 0 {
		opts.ItemTypes = f.types
	}
	return opts, nil
}

// parsePairs reads repeatable key=value flags.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --%s %q: expected key=value", flag, pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid --%s %q: empty key", flag, pair)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
