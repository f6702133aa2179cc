package tui

import tea "github.com/charmbracelet/bubbletea"

// ViewContext provides read-only context to tabs for rendering,
// replacing direct access to *DashboardModel.
type ViewContext struct {
	ContentWidth  int
	ContentHeight int
	Loading       bool // true when the tab's fetch is in flight
}

// Action identifies what a tab wants the dashboard to do.
type Action int

const (
	ActionPushModal Action = iota
	ActionNotify
)

// ActionMsg is returned by tab callbacks to communicate with the dashboard
// without mutating it directly.
type ActionMsg struct {
	Action  Action
	Payload any
}

// actionMsg wraps ActionMsg as a tea.Msg.
func actionMsg(a ActionMsg) tea.Cmd {
	return func() tea.Msg { return a }
}

// pushModal asks the dashboard to open modal.
func pushModal(modal Modal) tea.Cmd {
	return actionMsg(ActionMsg{Action: ActionPushModal, Payload: modal})
}

// notify asks the dashboard to show text on the status line.
func notify(text string) tea.Cmd {
	return actionMsg(ActionMsg{Action: ActionNotify, Payload: text})
}
