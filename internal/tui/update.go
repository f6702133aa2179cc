package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKeyPress(msg)
		return m, tea.Batch(cmd, m.startSpinnerIfNeeded())

	case tea.MouseMsg:
		cmd := m.handleMouseEvent(msg)
		return m, tea.Batch(cmd, m.startSpinnerIfNeeded())

	case ActionMsg:
		switch msg.Action {
		case ActionPushModal:
			if modal, ok := msg.Payload.(Modal); ok {
				m.PushModal(modal)
			}
		case ActionNotify:
			if text, ok := msg.Payload.(string); ok {
				m.setNotice(text)
			}
		}
		return m, nil

	case TabDataMsg:
		t, _ := m.tabByID(msg.TabID)
		if t == nil {
			return m, nil
		}
		return m, t.Apply(msg)

	case SpinnerTickMsg:
		return m, m.handleSpinnerTick()
	}

	return m, nil
}

// handleMouseEvent processes mouse interactions
func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) tea.Cmd {
	// Modal on stack gets the mouse event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return cmd
	}

	for _, entry := range m.inlineHandlers {
		if entry.isActive(m) {
			if handled, cmd := entry.handler.HandleMouse(m, msg); handled {
				return cmd
			}
			break
		}
	}

	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		return m.handleMouseClick(msg.X, msg.Y)

	case tea.MouseButtonWheelUp:
		if m.reverseScrollWheel {
			m.moveSelection(1)
		} else {
			m.moveSelection(-1)
		}

	case tea.MouseButtonWheelDown:
		if m.reverseScrollWheel {
			m.moveSelection(-1)
		} else {
			m.moveSelection(1)
		}
	}
	return nil
}

// handleMouseClick switches tabs when the tab bar is clicked.
func (m *DashboardModel) handleMouseClick(x, y int) tea.Cmd {
	if m.width <= 0 || m.height <= 0 || y != tabBarRow {
		return nil
	}
	pos := 0
	for i := range m.tabs {
		w := lipgloss.Width(m.renderTabLabel(i))
		if x >= pos && x < pos+w {
			return m.activateTab(i)
		}
		pos += w
	}
	return nil
}
