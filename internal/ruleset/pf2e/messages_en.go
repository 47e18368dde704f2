package pf2e

var messages = map[string]string{
	"ITEM_BROWSER.PF2e.Rarity.common":   "Common",
	"ITEM_BROWSER.PF2e.Rarity.uncommon": "Uncommon",
	"ITEM_BROWSER.PF2e.Rarity.rare":     "Rare",
	"ITEM_BROWSER.PF2e.Rarity.unique":   "Unique",

	"ITEM_BROWSER.PF2e.Size.tiny": "Tiny",
	"ITEM_BROWSER.PF2e.Size.sm":   "Small",
	"ITEM_BROWSER.PF2e.Size.med":  "Medium",
	"ITEM_BROWSER.PF2e.Size.lg":   "Large",
	"ITEM_BROWSER.PF2e.Size.huge": "Huge",
	"ITEM_BROWSER.PF2e.Size.grg":  "Gargantuan",

	"ITEM_BROWSER.PF2e.Trait.magical":    "Magical",
	"ITEM_BROWSER.PF2e.Trait.consumable": "Consumable",
	"ITEM_BROWSER.PF2e.Trait.finesse":    "Finesse",
	"ITEM_BROWSER.PF2e.Trait.agile":      "Agile",
	"ITEM_BROWSER.PF2e.Trait.invested":   "Invested",
	"ITEM_BROWSER.PF2e.Trait.potion":     "Potion",
	"ITEM_BROWSER.PF2e.Trait.healing":    "Healing",
}
