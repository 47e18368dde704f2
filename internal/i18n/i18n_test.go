package i18n_test

import (
	"testing"

	"github.com/ddbrown30/item-browser/internal/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	assert.Equal(t, language.English, i18n.Match(""))
	assert.Equal(t, language.English, i18n.Match("en-GB"))
	assert.Equal(t, language.English, i18n.Match("not a tag!"))
}

func TestT(t *testing.T) {
	l := i18n.Default()
	assert.Equal(t, "World Items", l.T("ITEM_BROWSER.FilterWorldItems"))
	assert.Equal(t, "Compendium: Items (items)", l.T("ITEM_BROWSER.CompendiumTip", "Items", "items"))
	assert.Equal(t, "ITEM_BROWSER.Missing", l.T("ITEM_BROWSER.Missing"))
}

func TestTOrAndHas(t *testing.T) {
	l := i18n.Default()
	assert.True(t, l.Has("ITEM_BROWSER.Select"))
	assert.False(t, l.Has("ITEM_BROWSER.Nope"))
	assert.Equal(t, "Fallback", l.TOr("ITEM_BROWSER.Nope", "Fallback"))
	assert.Equal(t, "Select", l.TOr("ITEM_BROWSER.Select", "Fallback"))
}

func TestRegister(t *testing.T) {
	i18n.Register(language.English, map[string]string{"ITEM_BROWSER.Test.Registered": "Registered"})
	assert.Equal(t, "Registered", i18n.Default().T("ITEM_BROWSER.Test.Registered"))
}

func TestSortStrings(t *testing.T) {
	labels := []string{"banana", "Apple", "cherry", "apple"}
	i18n.Default().SortStrings(labels)
	assert.Equal(t, "cherry", labels[3])
	assert.Equal(t, "banana", labels[2])
}

func TestList(t *testing.T) {
	l := i18n.Default()
	assert.Equal(t, "", l.List(nil))
	assert.Equal(t, "Head", l.List([]string{"Head"}))
	assert.Equal(t, "Head and Torso", l.List([]string{"Head", "Torso"}))
	assert.Equal(t, "Head, Torso and Arms", l.List([]string{"Head", "Torso", "Arms"}))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Very Rare", i18n.Humanize("veryRare"))
	assert.Equal(t, "Base Weapon", i18n.Humanize("base_weapon"))
	assert.Equal(t, "Longsword", i18n.Humanize("longsword"))
	assert.Equal(t, "", i18n.Humanize(""))
}
