package ruleset

import (
	"golang.org/x/text/language"

	"github.com/ddbrown30/item-browser/internal/i18n"
)

func init() {
	i18n.Register(language.English, headers)
}

// Column and control labels shared by several rulesets.
var headers = map[string]string{
	"ITEM_BROWSER.AC":            "AC",
	"ITEM_BROWSER.AP":            "AP",
	"ITEM_BROWSER.Armor":         "Armor",
	"ITEM_BROWSER.Attunement":    "Attunement",
	"ITEM_BROWSER.BaseWeapon":    "Base Weapon",
	"ITEM_BROWSER.CastTime":      "Casting Time",
	"ITEM_BROWSER.Category":      "Category",
	"ITEM_BROWSER.Components":    "Components",
	"ITEM_BROWSER.Cost":          "Cost",
	"ITEM_BROWSER.Cover":         "Cover",
	"ITEM_BROWSER.Damage":        "Damage",
	"ITEM_BROWSER.Duration":      "Duration",
	"ITEM_BROWSER.EquipmentType": "Type",
	"ITEM_BROWSER.Healing":       "Healing",
	"ITEM_BROWSER.Level":         "Level",
	"ITEM_BROWSER.Locations":     "Locations",
	"ITEM_BROWSER.Magical":       "Magical",
	"ITEM_BROWSER.MinStr":        "Min Str",
	"ITEM_BROWSER.Parry":         "Parry",
	"ITEM_BROWSER.PP":            "PP",
	"ITEM_BROWSER.Price":         "Price",
	"ITEM_BROWSER.Range":         "Range",
	"ITEM_BROWSER.Rank":          "Rank",
	"ITEM_BROWSER.Rarity":        "Rarity",
	"ITEM_BROWSER.Requirements":  "Requirements",
	"ITEM_BROWSER.ROF":           "ROF",
	"ITEM_BROWSER.School":        "School",
	"ITEM_BROWSER.Shots":         "Shots",
	"ITEM_BROWSER.Size":          "Size",
	"ITEM_BROWSER.Target":        "Target",
	"ITEM_BROWSER.ToHit":         "To Hit",
	"ITEM_BROWSER.Toughness":     "Toughness",
	"ITEM_BROWSER.Trait":         "Trait",
	"ITEM_BROWSER.Traits":        "Traits",
	"ITEM_BROWSER.Weight":        "Weight",

	"ITEM_BROWSER.FilterAll":          "All",
	"ITEM_BROWSER.AttunementRequired": "Requires Attunement",
	"ITEM_BROWSER.AttunementNone":     "No Attunement",
	"ITEM_BROWSER.MagicalOnly":        "Magical",
	"ITEM_BROWSER.Mundane":            "Mundane",
}
