package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// spinnerFrame picks a frame from the wall clock so it animates on re-render.
func spinnerFrame() string {
	return spinnerFrames[time.Now().UnixMilli()/spinnerInterval.Milliseconds()%int64(len(spinnerFrames))]
}

// renderLoadingPlaceholder renders an animated loading indicator.
func renderLoadingPlaceholder(label string, width, height int) string {
	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	text := loadingStyle.Render(spinnerFrame() + " " + label)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// SpinnerTickMsg triggers a re-render for loading spinners.
type SpinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// handleSpinnerTick re-schedules spinner ticks while any tab is loading.
func (m *DashboardModel) handleSpinnerTick() tea.Cmd {
	if m.anyTabLoading() {
		return spinnerTick()
	}
	m.spinning = false
	return nil
}

// anyTabLoading returns true if any mounted tab has a fetch in flight.
func (m *DashboardModel) anyTabLoading() bool {
	for _, t := range m.tabs {
		if t.Loading() {
			return true
		}
	}
	return false
}

// startSpinnerIfNeeded schedules a spinner tick if a tab is loading and no
// tick chain is already running.
func (m *DashboardModel) startSpinnerIfNeeded() tea.Cmd {
	if m.spinning || !m.anyTabLoading() {
		return nil
	}
	m.spinning = true
	return spinnerTick()
}
