package dnd5e

var messages = map[string]string{
	"ITEM_BROWSER.TypeFilters.background": "Backgrounds",
	"ITEM_BROWSER.TypeFilters.class":      "Classes",
	"ITEM_BROWSER.TypeFilters.consumable": "Consumables",
	"ITEM_BROWSER.TypeFilters.container":  "Containers",
	"ITEM_BROWSER.TypeFilters.equipment":  "Equipment",
	"ITEM_BROWSER.TypeFilters.feat":       "Features",
	"ITEM_BROWSER.TypeFilters.loot":       "Loot",
	"ITEM_BROWSER.TypeFilters.race":       "Species",
	"ITEM_BROWSER.TypeFilters.spell":      "Spells",
	"ITEM_BROWSER.TypeFilters.subclass":   "Subclasses",
	"ITEM_BROWSER.TypeFilters.tool":       "Tools",
	"ITEM_BROWSER.TypeFilters.weapon":     "Weapons",

	"ITEM_BROWSER.DnD5e.Reach":         "Reach",
	"ITEM_BROWSER.DnD5e.Dex":           "Dex",
	"ITEM_BROWSER.DnD5e.Concentration": "Concentration, up to %s",
	"ITEM_BROWSER.DnD5e.AnyTarget":     "Any %s",

	"ITEM_BROWSER.DnD5e.Rarity.common":    "Common",
	"ITEM_BROWSER.DnD5e.Rarity.uncommon":  "Uncommon",
	"ITEM_BROWSER.DnD5e.Rarity.rare":      "Rare",
	"ITEM_BROWSER.DnD5e.Rarity.veryRare":  "Very Rare",
	"ITEM_BROWSER.DnD5e.Rarity.legendary": "Legendary",
	"ITEM_BROWSER.DnD5e.Rarity.artifact":  "Artifact",

	"ITEM_BROWSER.DnD5e.Damage.acid":        "Acid",
	"ITEM_BROWSER.DnD5e.Damage.bludgeoning": "Bludgeoning",
	"ITEM_BROWSER.DnD5e.Damage.cold":        "Cold",
	"ITEM_BROWSER.DnD5e.Damage.fire":        "Fire",
	"ITEM_BROWSER.DnD5e.Damage.force":       "Force",
	"ITEM_BROWSER.DnD5e.Damage.lightning":   "Lightning",
	"ITEM_BROWSER.DnD5e.Damage.necrotic":    "Necrotic",
	"ITEM_BROWSER.DnD5e.Damage.piercing":    "Piercing",
	"ITEM_BROWSER.DnD5e.Damage.poison":      "Poison",
	"ITEM_BROWSER.DnD5e.Damage.psychic":     "Psychic",
	"ITEM_BROWSER.DnD5e.Damage.radiant":     "Radiant",
	"ITEM_BROWSER.DnD5e.Damage.slashing":    "Slashing",
	"ITEM_BROWSER.DnD5e.Damage.thunder":     "Thunder",
	"ITEM_BROWSER.DnD5e.Damage.healing":     "Healing",
	"ITEM_BROWSER.DnD5e.Damage.temphp":      "Temp HP",

	"ITEM_BROWSER.DnD5e.Equipment.light":    "Light Armor",
	"ITEM_BROWSER.DnD5e.Equipment.medium":   "Medium Armor",
	"ITEM_BROWSER.DnD5e.Equipment.heavy":    "Heavy Armor",
	"ITEM_BROWSER.DnD5e.Equipment.natural":  "Natural Armor",
	"ITEM_BROWSER.DnD5e.Equipment.shield":   "Shield",
	"ITEM_BROWSER.DnD5e.Equipment.clothing": "Clothing",
	"ITEM_BROWSER.DnD5e.Equipment.trinket":  "Trinket",
	"ITEM_BROWSER.DnD5e.Equipment.ring":     "Ring",
	"ITEM_BROWSER.DnD5e.Equipment.rod":      "Rod",
	"ITEM_BROWSER.DnD5e.Equipment.vehicle":  "Vehicle Equipment",
	"ITEM_BROWSER.DnD5e.Equipment.wand":     "Wand",
	"ITEM_BROWSER.DnD5e.Equipment.wondrous": "Wondrous Item",

	"ITEM_BROWSER.DnD5e.SpellLevel.0": "Cantrip",
	"ITEM_BROWSER.DnD5e.SpellLevel.1": "1st Level",
	"ITEM_BROWSER.DnD5e.SpellLevel.2": "2nd Level",
	"ITEM_BROWSER.DnD5e.SpellLevel.3": "3rd Level",
	"ITEM_BROWSER.DnD5e.SpellLevel.4": "4th Level",
	"ITEM_BROWSER.DnD5e.SpellLevel.5": "5th Level",
	"ITEM_BROWSER.DnD5e.SpellLevel.6": "6th Level",
	"ITEM_BROWSER.DnD5e.SpellLevel.7": "7th Level",
	"ITEM_BROWSER.DnD5e.SpellLevel.8": "8th Level",
	"ITEM_BROWSER.DnD5e.SpellLevel.9": "9th Level",

	"ITEM_BROWSER.DnD5e.School.abj": "Abjuration",
	"ITEM_BROWSER.DnD5e.School.con": "Conjuration",
	"ITEM_BROWSER.DnD5e.School.div": "Divination",
	"ITEM_BROWSER.DnD5e.School.enc": "Enchantment",
	"ITEM_BROWSER.DnD5e.School.evo": "Evocation",
	"ITEM_BROWSER.DnD5e.School.ill": "Illusion",
	"ITEM_BROWSER.DnD5e.School.nec": "Necromancy",
	"ITEM_BROWSER.DnD5e.School.trs": "Transmutation",

	"ITEM_BROWSER.DnD5e.Activation.action":    "Action",
	"ITEM_BROWSER.DnD5e.Activation.bonus":     "Bonus Action",
	"ITEM_BROWSER.DnD5e.Activation.reaction":  "Reaction",
	"ITEM_BROWSER.DnD5e.Activation.minute":    "Minute",
	"ITEM_BROWSER.DnD5e.Activation.hour":      "Hour",
	"ITEM_BROWSER.DnD5e.Activation.day":       "Day",
	"ITEM_BROWSER.DnD5e.Activation.legendary": "Legendary Action",
	"ITEM_BROWSER.DnD5e.Activation.special":   "Special",

	"ITEM_BROWSER.DnD5e.Time.inst":   "Instantaneous",
	"ITEM_BROWSER.DnD5e.Time.turn":   "Turn",
	"ITEM_BROWSER.DnD5e.Time.round":  "Round",
	"ITEM_BROWSER.DnD5e.Time.minute": "Minute",
	"ITEM_BROWSER.DnD5e.Time.hour":   "Hour",
	"ITEM_BROWSER.DnD5e.Time.day":    "Day",
	"ITEM_BROWSER.DnD5e.Time.month":  "Month",
	"ITEM_BROWSER.DnD5e.Time.year":   "Year",
	"ITEM_BROWSER.DnD5e.Time.perm":   "Permanent",
	"ITEM_BROWSER.DnD5e.Time.spec":   "Special",
	"ITEM_BROWSER.DnD5e.Time.disp":   "Until Dispelled",
	"ITEM_BROWSER.DnD5e.Time.dstr":   "Until Dispelled or Triggered",

	"ITEM_BROWSER.DnD5e.Area.cone":     "Cone",
	"ITEM_BROWSER.DnD5e.Area.cube":     "Cube",
	"ITEM_BROWSER.DnD5e.Area.cylinder": "Cylinder",
	"ITEM_BROWSER.DnD5e.Area.line":     "Line",
	"ITEM_BROWSER.DnD5e.Area.radius":   "Radius",
	"ITEM_BROWSER.DnD5e.Area.sphere":   "Sphere",
	"ITEM_BROWSER.DnD5e.Area.square":   "Square",
	"ITEM_BROWSER.DnD5e.Area.wall":     "Wall",

	"ITEM_BROWSER.DnD5e.Affects.self":     "Self",
	"ITEM_BROWSER.DnD5e.Affects.creature": "Creature",
	"ITEM_BROWSER.DnD5e.Affects.ally":     "Ally",
	"ITEM_BROWSER.DnD5e.Affects.enemy":    "Enemy",
	"ITEM_BROWSER.DnD5e.Affects.object":   "Object",
	"ITEM_BROWSER.DnD5e.Affects.space":    "Space",
}
