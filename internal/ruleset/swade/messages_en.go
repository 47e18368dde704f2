package swade

var messages = map[string]string{
	"ITEM_BROWSER.TypeFilters.ability":    "Abilities",
	"ITEM_BROWSER.TypeFilters.ancestry":   "Ancestries",
	"ITEM_BROWSER.TypeFilters.armor":      "Armor",
	"ITEM_BROWSER.TypeFilters.consumable": "Consumables",
	"ITEM_BROWSER.TypeFilters.edge":       "Edges",
	"ITEM_BROWSER.TypeFilters.gear":       "Gear",
	"ITEM_BROWSER.TypeFilters.hindrance":  "Hindrances",
	"ITEM_BROWSER.TypeFilters.power":      "Powers",
	"ITEM_BROWSER.TypeFilters.shield":     "Shields",
	"ITEM_BROWSER.TypeFilters.skill":      "Skills",
	"ITEM_BROWSER.TypeFilters.weapon":     "Weapons",

	"ITEM_BROWSER.Swade.Rank.novice":    "Novice",
	"ITEM_BROWSER.Swade.Rank.seasoned":  "Seasoned",
	"ITEM_BROWSER.Swade.Rank.veteran":   "Veteran",
	"ITEM_BROWSER.Swade.Rank.heroic":    "Heroic",
	"ITEM_BROWSER.Swade.Rank.legendary": "Legendary",

	"ITEM_BROWSER.Swade.Location.head":  "Head",
	"ITEM_BROWSER.Swade.Location.torso": "Torso",
	"ITEM_BROWSER.Swade.Location.arms":  "Arms",
	"ITEM_BROWSER.Swade.Location.legs":  "Legs",

	"ITEM_BROWSER.Swade.Or":       "or",
	"ITEM_BROWSER.Swade.WildCard": "Wild Card",
	"ITEM_BROWSER.Swade.Extra":    "Extra",

	"ITEM_BROWSER.Swade.Attribute.agility":  "Agility",
	"ITEM_BROWSER.Swade.Attribute.smarts":   "Smarts",
	"ITEM_BROWSER.Swade.Attribute.spirit":   "Spirit",
	"ITEM_BROWSER.Swade.Attribute.strength": "Strength",
	"ITEM_BROWSER.Swade.Attribute.vigor":    "Vigor",
}
