// Package i18n resolves ITEM_BROWSER.* message keys through the
// golang.org/x/text message catalog and provides locale-aware collation.
package i18n

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTag is the language used when no configured locale matches.
var DefaultTag = language.English

var supported = []language.Tag{language.English}

var matcher = language.NewMatcher(supported)

// Register adds messages for a language to the default catalog. Rulesets
// call it from init with their own keys.
func Register(tag language.Tag, messages map[string]string) {
	keys := make([]string, 0, len(messages))
	for k := range messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_ = message.SetString(tag, k, messages[k])
	}
}

// Match returns the supported tag closest to locale.
func Match(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return DefaultTag
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultTag
	}
	_, index, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultTag
	}
	return supported[index]
}

// Localizer renders message keys for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for the configured locale.
func New(locale string) *Localizer {
	tag := Match(locale)
	return &Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// Default returns an English Localizer.
func Default() *Localizer {
	return New("")
}

// Tag returns the resolved language.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T renders key with optional arguments. Unknown keys render as themselves.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Has reports whether key has a catalog entry.
func (l *Localizer) Has(key string) bool {
	return l.printer.Sprintf(key) != key
}

// TOr renders key, or fallback when the catalog has no entry for it.
func (l *Localizer) TOr(key, fallback string) string {
	if s := l.printer.Sprintf(key); s != key {
		return s
	}
	return fallback
}

// Collator returns a new collator for the language. Collators are not safe
// for concurrent use, so callers keep one per sort.
func (l *Localizer) Collator() *collate.Collator {
	return collate.New(l.tag)
}

// SortStrings sorts labels in collation order.
func (l *Localizer) SortStrings(labels []string) {
	c := l.Collator()
	sort.SliceStable(labels, func(i, j int) bool {
		return c.CompareString(labels[i], labels[j]) < 0
	})
}

// List joins items as a localized conjunction: "a, b and c".
func (l *Localizer) List(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	and := l.T("ITEM_BROWSER.ListAnd")
	return strings.Join(items[:len(items)-1], ", ") + " " + and + " " + items[len(items)-1]
}

// Humanize turns an identifier such as "veryRare" or "base_weapon" into
// "Very Rare" / "Base Weapon" for entries with no catalog label.
func Humanize(id string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range id {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z' && len(cur) > 0:
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
