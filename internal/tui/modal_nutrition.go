package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/healthtoday/healthtoday/internal/model"
)

// macro is one of the six headline nutrient cards.
type macro struct {
	Label       string
	Icon        string
	Value       string
	Description string
}

func macros(f model.NutritionFacts) []macro {
	return []macro{
		{"Calories", "🔥", formatAmount(f.Calories) + " kcal", "Total energy content"},
		{"Protein", "💪", formatAmount(f.ProteinG) + "g", "Essential for muscle building"},
		{"Carbs", "🌾", formatAmount(f.CarbohydratesTotalG) + "g", "Main energy source"},
		{"Fat", "🥑", formatAmount(f.FatTotalG) + "g", "Important for hormone production"},
		{"Fiber", "🌿", formatAmount(f.FiberG) + "g", "Aids digestion"},
		{"Sugar", "🍯", formatAmount(f.SugarG) + "g", "Natural and added sugars"},
	}
}

// NutritionModal shows one food's nutrient breakdown with a macro chart.
type NutritionModal struct {
	facts         model.NutritionFacts
	viewport      viewport.Model
	reverseScroll bool
}

func newNutritionModal(f model.NutritionFacts, reverseScroll bool) *NutritionModal {
	return &NutritionModal{
		facts:         f,
		viewport:      viewport.New(80, 20),
		reverseScroll: reverseScroll,
	}
}

func (n *NutritionModal) ID() string { return "nutrition" }

// Facts returns the food shown by the modal.
func (n *NutritionModal) Facts() model.NutritionFacts { return n.facts }

func (n *NutritionModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "escape", "esc", "q", "enter":
			return true, nil
		case "up", "k":
			n.viewport.ScrollUp(1)
		case "down", "j":
			n.viewport.ScrollDown(1)
		case "pgup":
			n.viewport.HalfPageUp()
		case "pgdown":
			n.viewport.HalfPageDown()
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false, nil
		}
		up := msg.Button == tea.MouseButtonWheelUp
		down := msg.Button == tea.MouseButtonWheelDown
		if n.reverseScroll {
			up, down = down, up
		}
		if up {
			n.viewport.ScrollUp(1)
		} else if down {
			n.viewport.ScrollDown(1)
		}
	}
	return false, nil
}

func (n *NutritionModal) View(width, height int) string {
	contentWidth := max(width-14, 30)
	return renderSingleModalView(&n.viewport, titleCase(n.facts.Name), n.render(contentWidth), nil, width, height)
}

func (n *NutritionModal) render(width int) string {
	f := n.facts
	var sections []string

	serving := "ℹ Serving size: " + formatAmount(f.ServingSizeG) + "g"
	sections = append(sections, lipgloss.NewStyle().Foreground(ColorTeal).Render(serving), "")

	sections = append(sections, renderMacroGrid(macros(f), width), "")

	sections = append(sections, labelStyle.Render("Additional Information"))
	info := [][2]string{
		{"Cholesterol", formatAmount(f.CholesterolMg) + "mg"},
		{"Sodium", formatAmount(f.SodiumMg) + "mg"},
		{"Potassium", formatAmount(f.PotassiumMg) + "mg"},
		{"Saturated Fat", formatAmount(f.FatSaturatedG) + "g"},
	}
	for _, kv := range info {
		sections = append(sections, fmt.Sprintf("  %-15s %s", kv[0]+":", kv[1]))
	}

	sections = append(sections, "", labelStyle.Render("Macros (g)"), renderMacroChart(f, min(width, 60), 8))
	return strings.Join(sections, "\n")
}

func renderMacroGrid(ms []macro, width int) string {
	cols := 3
	if width < 72 {
		cols = 2
	}
	cardWidth := max(width/cols-2, 18)
	card := lipgloss.NewStyle().
		Width(cardWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1)

	var rows []string
	for i := 0; i < len(ms); i += cols {
		var row []string
		for _, m := range ms[i:min(i+cols, len(ms))] {
			body := lipgloss.JoinVertical(lipgloss.Left,
				m.Icon+" "+labelStyle.Render(m.Label),
				lipgloss.NewStyle().Foreground(ColorTeal).Bold(true).Render(m.Value),
				helpStyle.Render(m.Description),
			)
			row = append(row, card.Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderMacroChart draws gram-valued macros as labelled bars.
func renderMacroChart(f model.NutritionFacts, width, height int) string {
	bars := []struct {
		label string
		value float64
		color string
	}{
		{"Prot", f.ProteinG, "39"},
		{"Carb", f.CarbohydratesTotalG, "214"},
		{"Fat", f.FatTotalG, "42"},
		{"Fibr", f.FiberG, "113"},
		{"Sugr", f.SugarG, "205"},
	}

	bc := barchart.New(width, height, barchart.WithBarGap(2))
	for _, b := range bars {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(b.color)).Background(lipgloss.Color(b.color))
		bc.Push(barchart.BarData{
			Label: b.label,
			Values: []barchart.BarValue{
				{Name: b.label, Value: b.value, Style: style},
			},
		})
	}
	bc.Draw()
	return bc.View()
}

// formatAmount prints a nutrient value without trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
