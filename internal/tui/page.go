package tui

import tea "github.com/charmbracelet/bubbletea"

// Page IDs.
const (
	PageWelcome   = "welcome"
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
)

// Page represents a top-level screen in the TUI (welcome, login, dashboard).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
// Flash, when set, is shown once on the destination page.
type PageNav struct {
	PageID string
	Flash  string
}

// flashReceiver is implemented by pages that can show a one-shot notice
// passed along with a navigation.
type flashReceiver interface {
	SetFlash(msg string)
}
