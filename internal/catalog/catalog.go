// Package catalog holds the static brand menus and home-brew presets the
// tracker offers as quick-entry templates. Prices and caffeine numbers are
// starting points; every logged cup stays independently editable.
package catalog

import "github.com/coffeehead/coffeehead-cli/internal/model"

var brands = []model.Brand{
	{
		ID:    "luckin",
		Name:  "Luckin",
		Color: "#003DA5",
		BestSellers: []model.BestSeller{
			{Name: "Americano", BaseCaffeine: 150, BasePrice: 13},
			{Name: "Latte", BaseCaffeine: 130, BasePrice: 16},
			{Name: "Mocha", BaseCaffeine: 140, BasePrice: 18},
			{Name: "Coconut Latte", BaseCaffeine: 140, BasePrice: 18},
			{Name: "Velvet Latte", BaseCaffeine: 130, BasePrice: 19},
			{Name: "Orange Americano", BaseCaffeine: 140, BasePrice: 17},
		},
	},
	{
		ID:    "starbucks",
		Name:  "Starbucks",
		Color: "#00704A",
		BestSellers: []model.BestSeller{
			{Name: "Americano", BaseCaffeine: 150, BasePrice: 30},
			{Name: "Latte", BaseCaffeine: 150, BasePrice: 33},
			{Name: "Mocha", BaseCaffeine: 175, BasePrice: 36},
			{Name: "Caramel Macchiato", BaseCaffeine: 150, BasePrice: 38},
			{Name: "Cold Brew", BaseCaffeine: 200, BasePrice: 36},
			{Name: "Flat White", BaseCaffeine: 195, BasePrice: 36},
		},
	},
	{
		ID:    "arabica",
		Name:  "Arabica",
		Color: "#1A1A1A",
		BestSellers: []model.BestSeller{
			{Name: "Americano", BaseCaffeine: 160, BasePrice: 35},
			{Name: "Latte", BaseCaffeine: 160, BasePrice: 40},
			{Name: "Mocha", BaseCaffeine: 160, BasePrice: 45},
			{Name: "Spanish Latte", BaseCaffeine: 160, BasePrice: 45},
			{Name: "Kyoto Latte", BaseCaffeine: 160, BasePrice: 45},
			{Name: "Dark Latte", BaseCaffeine: 170, BasePrice: 45},
		},
	},
	{
		ID:    "bluebottle",
		Name:  "Blue Bottle",
		Color: "#00A9E0",
		BestSellers: []model.BestSeller{
			{Name: "Americano", BaseCaffeine: 150, BasePrice: 38},
			{Name: "Latte", BaseCaffeine: 150, BasePrice: 42},
			{Name: "Mocha", BaseCaffeine: 160, BasePrice: 45},
			{Name: "New Orleans", BaseCaffeine: 170, BasePrice: 42},
			{Name: "Single Origin Drip", BaseCaffeine: 180, BasePrice: 45},
			{Name: "Cortado", BaseCaffeine: 130, BasePrice: 40},
		},
	},
}

var homePresets = []model.HomePreset{
	{ID: "americano", Name: "Americano", Description: "Espresso & Water", CaffeineMg: 150, ExtraCost: 0, DefaultDoseG: 18},
	{ID: "latte", Name: "Cafe Latte", Description: "Espresso & Silky Milk", CaffeineMg: 130, ExtraCost: 4, DefaultDoseG: 18},
	{ID: "flatwhite", Name: "Flat White", Description: "Espresso & Microfoam", CaffeineMg: 150, ExtraCost: 4, DefaultDoseG: 18},
	{ID: "dirty", Name: "Dirty Coffee", Description: "Hot Espresso over Cold Milk", CaffeineMg: 150, ExtraCost: 5, DefaultDoseG: 20},
	{ID: "handdrip", Name: "Hand Drip", Description: "Clean & Floral Notes", CaffeineMg: 160, ExtraCost: 0, DefaultDoseG: 18},
	{ID: "coldbrew", Name: "Cold Brew", Description: "12h Slow Steeped", CaffeineMg: 200, ExtraCost: 0, DefaultDoseG: 20},
}

var quotes = []string{
	"Coffee: because adulting is hard.",
	"Good ideas start with great coffee.",
	"Life begins after coffee.",
	"Procaffeinating: The tendency to not start anything until you've had coffee.",
	"Coffee is a language in itself.",
	"Behind every successful person is a substantial amount of coffee.",
}

// Origins is the suggestion list shown when adding a bean. Origin stays
// free text; the list is not a validation whitelist.
var Origins = []string{
	"Ethiopia", "Brazil", "Vietnam", "Colombia", "Indonesia", "Honduras",
	"India", "Mexico", "Peru", "Uganda", "Guatemala", "Kenya", "Tanzania",
	"Papua New Guinea", "El Salvador", "Costa Rica", "Rwanda", "Burundi",
	"Panama", "Jamaica", "China (Yunnan)", "USA (Hawaii)", "Yemen",
	"Ecuador", "Bolivia", "East Timor",
}

func Brands() []model.Brand {
	return brands
}

func BrandByID(id string) (model.Brand, bool) {
	for _, b := range brands {
		if b.ID == id {
			return b, true
		}
	}
	return model.Brand{}, false
}

func HomePresets() []model.HomePreset {
	return homePresets
}

func HomePresetByID(id string) (model.HomePreset, bool) {
	for _, p := range homePresets {
		if p.ID == id {
			return p, true
		}
	}
	return model.HomePreset{}, false
}

// Quote returns a deterministic quote for the given seed, so the status
// banner rotates daily instead of flickering per invocation.
func Quote(seed int) string {
	if seed < 0 {
		seed = -seed
	}
	return quotes[seed%len(quotes)]
}
