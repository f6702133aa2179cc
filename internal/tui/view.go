package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 3
	tabBarRow    = headerHeight
	minWidth     = 60
	minHeight    = 20
)

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	return m.renderDashboard()
}

// renderDashboard renders the main dashboard layout
func (m *DashboardModel) renderDashboard() string {
	if m.height < minHeight || m.width < minWidth {
		return fmt.Sprintf("Terminal too small. Resize to at least %dx%d.", minWidth, minHeight)
	}

	header := m.renderHeader()
	tabBar := m.renderTabBar()
	statusLine := m.renderStatusLine()

	// header + tab bar + status line + content borders
	contentHeight := m.height - headerHeight - 1 - 1 - 2
	content := m.renderActiveTab(m.width-2, contentHeight)

	box := activeSectionStyle.
		Width(m.width - 2).
		Height(contentHeight).
		MaxHeight(contentHeight + 2).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabBar, box, statusLine)
}

func (m *DashboardModel) renderActiveTab(width, height int) string {
	t := m.activeTabValue()
	if t == nil {
		return helpStyle.Render("No tabs")
	}
	sel := clampSel(m.tabSelIdx[m.activeTab], t.ItemCount())
	return t.Render(m.viewContext(), width, height, sel)
}

// renderHeader draws the greeting on the left and the click counter
// overlay on the right.
func (m *DashboardModel) renderHeader() string {
	name := "there"
	if m.session != nil {
		if u, ok := m.session.Current(); ok && u.Username != "" {
			name = u.Username
		}
	}

	greeting := lipgloss.NewStyle().Foreground(ColorWhite).Bold(true).Render(fmt.Sprintf("Hi %s,", name))
	subtitle := lipgloss.NewStyle().Foreground(ColorTeal).Render("Welcome to Health Today")
	logout := helpStyle.Render("ctrl+l: Log out")
	left := lipgloss.JoinVertical(lipgloss.Left, greeting, subtitle, logout)

	counter := m.renderClickCounter()
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(counter), 1)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), counter)
}

// renderClickCounter renders the floating counter badge.
func (m *DashboardModel) renderClickCounter() string {
	var n int64
	if m.clicks != nil {
		n = m.clicks.Value()
	}
	count := lipgloss.NewStyle().Bold(true).Foreground(ColorWhite).Render(fmt.Sprintf("%d", n))
	return lipgloss.NewStyle().
		Background(ColorTeal).
		Foreground(ColorWhite).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTeal).
		Render(count + " Clicks")
}

func (m *DashboardModel) renderTabLabel(i int) string {
	icons := map[string]string{tabExercise: "⚡", tabNutrition: "◔", tabNews: "🌐"}
	t := m.tabs[i]
	label := fmt.Sprintf("%d %s %s", i+1, icons[t.ID()], t.Title())
	if i == m.activeTab {
		return activeTabStyle.Render(label)
	}
	return tabStyle.Render(label)
}

func (m *DashboardModel) renderTabBar() string {
	labels := make([]string, 0, len(m.tabs))
	for i := range m.tabs {
		labels = append(labels, m.renderTabLabel(i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *DashboardModel) renderStatusLine() string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	w := m.width
	narrow := w < 80

	var leftText string
	if t := m.activeTabValue(); t != nil {
		leftText = fmt.Sprintf("[%s]", t.Title())
	}

	var statusText string
	switch {
	case inputFocused(m):
		statusText = "Type food • Enter: Search • ESC: Cancel"
	case narrow:
		statusText = "?: Help • Tab: Switch • Enter • q"
	default:
		statusText = "?: Help • 1-3/Tab: Switch tab • ↑↓: Select • Enter: Open • n/p: Page • q: Quit"
		if _, ok := m.activeTabValue().(InputTab); ok {
			statusText = "?: Help • 1-3/Tab: Switch tab • /: Search • ↑↓: Select • Enter: Look up • q: Quit"
		}
	}

	var rightText string
	if m.notice != "" && time.Since(m.noticeAt) < noticeTTL {
		rightText = m.notice
	}

	leftW := lipgloss.Width(leftText)
	rightW := lipgloss.Width(rightText)
	centerW := max(w-leftW-rightW-2, 0)
	if lipgloss.Width(statusText) > centerW {
		statusText = truncate(statusText, centerW)
	}
	pad := max(centerW-lipgloss.Width(statusText), 0)

	line := leftText + " " + statusText + strings.Repeat(" ", pad) + " " + rightText
	return baseStyle.Width(w).MaxWidth(w).Render(line)
}
