package i18n

import "golang.org/x/text/language"

func init() {
	Register(language.English, english)
}

var english = map[string]string{
	"ITEM_BROWSER.ItemBrowser":      "Item Browser",
	"ITEM_BROWSER.OpenItemBrowser":  "Open Item Browser",
	"ITEM_BROWSER.ItemDirectory":    "Items",
	"ITEM_BROWSER.Select":           "Select",
	"ITEM_BROWSER.Open":             "Open",
	"ITEM_BROWSER.Close":            "Close",
	"ITEM_BROWSER.Name":             "Name",
	"ITEM_BROWSER.Source":           "Source",
	"ITEM_BROWSER.Type":             "Type",
	"ITEM_BROWSER.SearchName":       "Search by name",
	"ITEM_BROWSER.SearchDesc":       "Search description",
	"ITEM_BROWSER.FilterAllItems":   "All Items",
	"ITEM_BROWSER.FilterWorldItems": "World Items",
	"ITEM_BROWSER.WorldCompendium":  "World Compendium",
	"ITEM_BROWSER.CompendiumTip":    "Compendium: %s (%s)",
	"ITEM_BROWSER.WorldTip":         "World/%s",
	"ITEM_BROWSER.Yes":              "Yes",
	"ITEM_BROWSER.No":               "No",
	"ITEM_BROWSER.None":             "None",
	"ITEM_BROWSER.ListAnd":          "and",
	"ITEM_BROWSER.Loading":          "Loading items...",
	"ITEM_BROWSER.NoResults":        "No items match the current filters",
	"ITEM_BROWSER.ItemCount":        "%d of %d items",
	"ITEM_BROWSER.RollResult":       "%s rolled %d (%s)",
	"ITEM_BROWSER.Filters":          "Filters",
	"ITEM_BROWSER.SortBy":           "Sort by",
	"ITEM_BROWSER.DragData":         "Drag data: %s",
	"ITEM_BROWSER.NothingToRoll":    "The selected item has no dice formula",

	"ITEM_BROWSER.WaitError":                "This browser was not opened for selection",
	"ITEM_BROWSER.ValidSourcesError":        "validFilterSources was not an array",
	"ITEM_BROWSER.Errors.ConfigInvalid":     "An invalid browser option was ignored",
	"ITEM_BROWSER.Errors.EntityNotFound":    "The item could not be found",
	"ITEM_BROWSER.Errors.PackInvalid":       "A content pack could not be read",
	"ITEM_BROWSER.Errors.FormulaInvalid":    "The dice formula could not be read",
	"ITEM_BROWSER.Errors.DialogClosed":      "The browser was closed",
	"ITEM_BROWSER.Errors.Unknown":           "Something went wrong",
	"ITEM_BROWSER.Errors.AggregationFailed": "Items could not be loaded: %s",

	"ITEM_BROWSER.TypeFilters.NoItems":  "No Items",
	"ITEM_BROWSER.TypeFilters.AllTypes": "All Types",

	"ITEM_BROWSER.Settings.ShowOnItemDirectoryN": "Show Item Browser Button",
	"ITEM_BROWSER.Settings.ShowOnItemDirectoryH": "Adds a button to the item directory that opens the item browser.",
	"ITEM_BROWSER.Settings.UseSmallButtonN":      "Use Compact Button",
	"ITEM_BROWSER.Settings.UseSmallButtonH":      "Shows a small icon beside the directory search instead of a full-width button.",
	"ITEM_BROWSER.Settings.RulesetN":             "Ruleset",
	"ITEM_BROWSER.Settings.RulesetH":             "Game system whose columns and filters the browser uses.",
}
