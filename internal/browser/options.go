package browser

import (
	"fmt"

	"github.com/ddbrown30/item-browser/internal/aggregate"
	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/ddbrown30/item-browser/internal/notify"
)

// Options configure one dialog. The zero value opens a selector over every
// source.
type Options struct {
	// Browse opens the dialog without a selection result.
	Browse              bool     `json:"browse,omitempty" yaml:"browse,omitempty"`
	WorldItemsOnly      bool     `json:"worldItemsOnly,omitempty" yaml:"worldItemsOnly,omitempty"`
	ValidFilterSources  []string `json:"validFilterSources,omitempty" yaml:"validFilterSources,omitempty"`
	InitialSourceFilter string   `json:"initialSourceFilter,omitempty" yaml:"initialSourceFilter,omitempty"`
	ItemTypes           []string `json:"itemTypes,omitempty" yaml:"itemTypes,omitempty"`
}

// Selector reports whether the dialog resolves with a selected id.
func (o Options) Selector() bool { return !o.Browse }

func (o Options) aggregate() aggregate.Options {
	return aggregate.Options{
		WorldItemsOnly: o.WorldItemsOnly,
		ValidSources:   o.ValidFilterSources,
		InitialSource:  o.InitialSourceFilter,
		ItemTypes:      o.ItemTypes,
	}
}

// DecodeOptions reads options from loosely-typed input such as decoded JSON
// or YAML. Keys follow the host's option names ("selector",
// "validFilterSources", ...). A malformed option is reported once through n
// and dropped; decoding never fails.
func DecodeOptions(raw map[string]any, l *i18n.Localizer, n notify.Notifier) Options {
	if l == nil {
		l = i18n.Default()
	}
	if n == nil {
		n = notify.Discard
	}
	var opts Options
	bad := func(key string, err error) {
		n.Notify(notify.Notification{Level: notify.Error, Message: message(l, key, err)})
	}

	if v, ok := raw["selector"]; ok {
		b, isBool := v.(bool)
		if isBool {
			opts.Browse = !b
		} else {
			bad("selector", fmt.Errorf("selector is %T, not a boolean", v))
		}
	}
	if v, ok := raw["worldItemsOnly"]; ok {
		b, isBool := v.(bool)
		if isBool {
			opts.WorldItemsOnly = b
		} else {
			bad("worldItemsOnly", fmt.Errorf("worldItemsOnly is %T, not a boolean", v))
		}
	}
	if v, ok := raw["validFilterSources"]; ok && v != nil {
		list, err := stringList(v)
		if err != nil {
			bad("validFilterSources", err)
		} else {
			opts.ValidFilterSources = list
		}
	}
	if v, ok := raw["initialSourceFilter"]; ok && v != nil {
		s, isString := v.(string)
		if isString {
			opts.InitialSourceFilter = s
		} else {
			bad("initialSourceFilter", fmt.Errorf("initialSourceFilter is %T, not a string", v))
		}
	}
	if v, ok := raw["itemTypes"]; ok && v != nil {
		list, err := stringList(v)
		if err != nil {
			bad("itemTypes", err)
		} else {
			opts.ItemTypes = list
		}
	}
	return opts
}

func message(l *i18n.Localizer, key string, err error) string {
	if key == "validFilterSources" {
		return l.T("ITEM_BROWSER.ValidSourcesError")
	}
	e := apperr.Wrap(apperr.CodeConfigInvalid, key, err)
	return l.T(e.Key()) + ": " + key
}

func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list entry is %T, not a string", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("value is %T, not a list", v)
}
