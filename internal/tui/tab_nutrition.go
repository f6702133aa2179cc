package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/healthtoday/healthtoday/internal/fetch"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
)

const (
	nutritionFailMsg  = "Error fetching nutrition data. Please try again."
	nutritionEmptyMsg = "No nutrition data available for this food item."
)

// NutritionTab looks up nutrient data by free-text search or preset foods.
type NutritionTab struct {
	ctx           context.Context
	search        *fetch.Search[model.NutritionFacts]
	input         textinput.Model
	presets       []model.FoodPreset
	clicks        model.ClickCounter
	log           zerolog.Logger
	reverseScroll bool
}

// NewNutritionTab creates the nutrition tab.
func NewNutritionTab(deps TabDeps) *NutritionTab {
	in := textinput.New()
	in.Placeholder = "Search for a food item"
	in.Prompt = "🔍 "
	in.CharLimit = 100
	in.Width = 40

	return &NutritionTab{
		ctx:           deps.Ctx,
		search:        fetch.NewSearch(deps.Nutrition.Nutrition, nutritionFailMsg, nutritionEmptyMsg),
		input:         in,
		presets:       model.DefaultFoodPresets,
		clicks:        deps.Clicks,
		log:           deps.Log,
		reverseScroll: deps.ReverseScrollWheel,
	}
}

func (t *NutritionTab) ID() string     { return tabNutrition }
func (t *NutritionTab) Title() string  { return "Nutrition" }
func (t *NutritionTab) Loading() bool  { return t.search.Loading() }
func (t *NutritionTab) ItemCount() int { return len(t.presets) }
func (t *NutritionTab) Focused() bool  { return t.input.Focused() }

// Search exposes the fetch state for tests and the status line.
func (t *NutritionTab) Search() *fetch.Search[model.NutritionFacts] { return t.search }

// Mount does nothing: the tab waits for a query.
func (t *NutritionTab) Mount() tea.Cmd { return nil }

func (t *NutritionTab) Reset() {
	t.search.Reset()
	t.input.SetValue("")
	t.input.Blur()
}

func (t *NutritionTab) Focus() tea.Cmd {
	return t.input.Focus()
}

// HandleInput is called for every key while the search input is focused.
func (t *NutritionTab) HandleInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "escape":
		t.input.Blur()
		return nil
	case "enter":
		t.input.Blur()
		return t.submit(t.input.Value())
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

// OnSelect runs the chosen preset as a query and counts the interaction.
func (t *NutritionTab) OnSelect(_ ViewContext, selIdx int) tea.Cmd {
	if selIdx < 0 || selIdx >= len(t.presets) {
		return nil
	}
	t.clicks.Increment()
	name := t.presets[selIdx].Name
	t.input.SetValue(name)
	return t.submit(name)
}

func (t *NutritionTab) submit(query string) tea.Cmd {
	req, ok := t.search.Submit(t.ctx, query)
	if !ok {
		return nil
	}
	search := t.search
	return func() tea.Msg {
		return TabDataMsg{TabID: tabNutrition, Data: search.Load(req)}
	}
}

// Apply records a search result and opens the nutrition modal when food
// was found.
func (t *NutritionTab) Apply(msg TabDataMsg) tea.Cmd {
	res, ok := msg.Data.(fetch.Result[model.NutritionFacts])
	if !ok {
		return nil
	}
	if !t.search.Apply(res) {
		return nil
	}
	if res.Err != nil && !isCanceled(res.Err) {
		t.log.Error().Err(res.Err).Str("query", res.Query).Msg("load nutrition")
	}
	if t.search.Status() != fetch.StatusLoaded || len(t.search.Items()) == 0 {
		return nil
	}
	return pushModal(newNutritionModal(t.search.Items()[0], t.reverseScroll))
}

func (t *NutritionTab) Render(ctx ViewContext, width, height int, selIdx int) string {
	title := deckTitleStyle.Render("Nutrition Information")

	inputBox := sectionStyle.Width(max(width-6, 20)).Render(t.input.View())
	if t.input.Focused() {
		inputBox = activeSectionStyle.Width(max(width-6, 20)).Render(t.input.View())
	}

	presets := t.renderPresets(width-4, selIdx)

	var status string
	switch {
	case t.search.Loading():
		status = helpStyle.Render(spinnerFrame() + " Loading nutrition data...")
	case t.search.ErrMessage() != "":
		status = errorStyle.Render(t.search.ErrMessage())
	case t.search.Status() == fetch.StatusLoaded && len(t.search.Items()) > 0:
		f := t.search.Items()[0]
		status = helpStyle.Render(fmt.Sprintf("Last result: %s, %s kcal", titleCase(f.Name), formatAmount(f.Calories)))
	}

	hint := helpStyle.Render("/: Search • ↑↓: Choose food • Enter: Look up")
	return lipgloss.JoinVertical(lipgloss.Left, title, inputBox, "", presets, "", status, hint)
}

// renderPresets lays the preset foods out as a wrapped row of chips.
func (t *NutritionTab) renderPresets(width, selIdx int) string {
	chip := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(ColorGray)
	activeChip := chip.BorderForeground(ColorTeal).Foreground(ColorTeal).Bold(true)

	var rows []string
	var row []string
	rowWidth := 0
	for i, p := range t.presets {
		style := chip
		if i == selIdx && !t.input.Focused() {
			style = activeChip
		}
		c := style.Render(p.Icon + " " + p.Name)
		w := lipgloss.Width(c)
		if rowWidth+w > width && len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, c, " ")
		rowWidth += w + 1
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}
