package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
)

// Tab is one dashboard tab (Exercise, Nutrition, News).
type Tab interface {
	ID() string
	Title() string
	// Mount starts the tab's first fetch. It is called once, on the first
	// activation after sign-in.
	Mount() tea.Cmd
	// Apply receives the tab's TabDataMsg on the update loop.
	Apply(msg TabDataMsg) tea.Cmd
	// Reset drops all state and cancels in-flight work, e.g. on logout.
	Reset()
	Loading() bool
	Render(ctx ViewContext, width, height int, selIdx int) string
	ItemCount() int
	OnSelect(ctx ViewContext, selIdx int) tea.Cmd
}

// PagedTab extends Tab with next/prev page navigation.
type PagedTab interface {
	Tab
	NextPage() tea.Cmd
	PrevPage() tea.Cmd
}

// InputTab is implemented by tabs that own a text input. While the input
// is focused it receives every key press.
type InputTab interface {
	Tab
	Focused() bool
	Focus() tea.Cmd
	HandleInput(msg tea.KeyMsg) tea.Cmd
}

// TabDataMsg carries a fetch result back to the tab that started it.
type TabDataMsg struct {
	TabID string
	Data  any
}

// TabDeps provides dependencies for tab constructors.
type TabDeps struct {
	Ctx       context.Context
	Exercises model.ExerciseSource
	News      model.NewsSource
	Nutrition model.NutritionSource
	Clicks    model.ClickCounter
	Log       zerolog.Logger
	Keys      KeyMap

	ExercisePageSize   int
	NewsPageSize       int
	ReverseScrollWheel bool
}

// TabSpec defines how to build a tab.
type TabSpec struct {
	ID    string
	Title string
	Build func(deps TabDeps) Tab
}

// DefaultTabSpecs declares the dashboard tabs in display order.
func DefaultTabSpecs() []TabSpec {
	return []TabSpec{
		{ID: tabExercise, Title: "Exercise", Build: func(d TabDeps) Tab { return NewExerciseTab(d) }},
		{ID: tabNutrition, Title: "Nutrition", Build: func(d TabDeps) Tab { return NewNutritionTab(d) }},
		{ID: tabNews, Title: "News", Build: func(d TabDeps) Tab { return NewNewsTab(d) }},
	}
}

const (
	tabExercise  = "exercise"
	tabNutrition = "nutrition"
	tabNews      = "news"
)

// clampSel keeps a selection index inside [0, n).
func clampSel(idx, n int) int {
	if n <= 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// listWindow returns the [start, end) slice of n rows to show in height
// lines so that sel stays visible.
func listWindow(n, sel, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	if n <= height {
		return 0, n
	}
	start := sel - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
