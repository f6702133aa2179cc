package model

import "time"

// Shared defaults used by the binary and the TUI.
const (
	DefaultExercisePageSize = 10
	DefaultNewsPageSize     = 4
	DefaultRequestTimeout   = 15 * time.Second
	DefaultCacheTTL         = 10 * time.Minute
)

// FoodPreset is a one-key nutrition lookup shortcut.
type FoodPreset struct {
	Name string
	Icon string
}

// DefaultFoodPresets are the preset options offered on the nutrition tab.
var DefaultFoodPresets = []FoodPreset{
	{Name: "Brisket", Icon: "🥩"},
	{Name: "Fries", Icon: "🍟"},
	{Name: "Apple", Icon: "🍎"},
	{Name: "Banana", Icon: "🍌"},
	{Name: "Chicken Breast", Icon: "🍗"},
	{Name: "Eggs", Icon: "🥚"},
}
