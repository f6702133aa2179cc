package tui

import tea "github.com/charmbracelet/bubbletea"

// Modal is a self-contained modal that owns its own Update/View lifecycle.
// Modals are managed via a stack on DashboardModel. The topmost modal
// receives all input and renders full-screen.
type Modal interface {
	// ID returns a unique identifier used to deduplicate pushes.
	ID() string
	// Update processes a message. Return pop=true to close the modal.
	Update(msg tea.Msg) (pop bool, cmd tea.Cmd)
	// View renders the modal content for the given terminal dimensions.
	View(width, height int) string
}

// ModalHandler handles key and mouse events for an inline input mode.
// Inline inputs are NOT modals: they are part of the dashboard layout.
type ModalHandler interface {
	// HandleKey processes a key press. Return handled=true if consumed.
	HandleKey(m *DashboardModel, msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
	// HandleMouse processes mouse events. Return handled=true if consumed.
	HandleMouse(m *DashboardModel, msg tea.MouseMsg) (handled bool, cmd tea.Cmd)
}

// inlineHandlerEntry pairs an activation predicate with an inline handler.
type inlineHandlerEntry struct {
	isActive func(m *DashboardModel) bool
	handler  ModalHandler
}

// tabInputHandler forwards keys to the active tab's focused text input.
type tabInputHandler struct{}

func (tabInputHandler) HandleKey(m *DashboardModel, msg tea.KeyMsg) (bool, tea.Cmd) {
	it, ok := m.activeTabValue().(InputTab)
	if !ok {
		return false, nil
	}
	return true, it.HandleInput(msg)
}

func (tabInputHandler) HandleMouse(_ *DashboardModel, _ tea.MouseMsg) (bool, tea.Cmd) {
	return true, nil // swallow mouse events while typing
}

func inputFocused(m *DashboardModel) bool {
	it, ok := m.activeTabValue().(InputTab)
	return ok && it.Focused()
}
