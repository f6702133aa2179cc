package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// renderSingleModalView renders a scrollable modal with a header, the given
// content, and a status bar.
func renderSingleModalView(vp *viewport.Model, title, content string, status []string, width, height int) string {
	// Calculate dimensions
	modalWidth := width - 8   // 4 chars margin on each side
	modalHeight := height - 4 // 2 lines margin top and bottom
	if modalWidth < 30 {
		modalWidth = max(width, 10)
	}
	if modalHeight < 10 {
		modalHeight = max(height, 6)
	}

	// Account for borders and headers
	contentWidth := modalWidth - 4   // Modal borders
	contentHeight := modalHeight - 5 // Header + status + borders

	vp.Width = contentWidth
	vp.Height = max(contentHeight, 1)
	vp.SetContent(lipgloss.NewStyle().Width(contentWidth - 2).Render(content))

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(vp.Height).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorTeal).
		Bold(true).
		Render(title)

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, renderModalStatusBar(status))

	// Add outer border and center
	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTeal).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

// renderModalStatusBar renders the status bar for modals.
func renderModalStatusBar(extra []string) string {
	statusItems := append([]string{"↑/↓/Wheel: Scroll", "PgUp/PgDn: Page"}, extra...)
	statusItems = append(statusItems, "ESC: Close")

	statusStyle := lipgloss.NewStyle().
		Foreground(ColorGray)

	return statusStyle.Render(strings.Join(statusItems, " | "))
}

// field renders a bold "Label: value" line.
func field(label, value string) string {
	return labelStyle.Render(label+": ") + value
}
