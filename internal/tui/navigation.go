package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress dispatches key events: modal stack first, then inline
// handlers (tab text inputs), then global dashboard shortcuts.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Modal on stack gets the event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return cmd
	}

	for _, entry := range m.inlineHandlers {
		if entry.isActive(m) {
			if handled, cmd := entry.handler.HandleKey(m, msg); handled {
				return cmd
			}
			break
		}
	}

	return m.handleGlobalKeys(msg)
}

// handleGlobalKeys handles dashboard-level shortcuts.
// Only reached when no modal is on the stack and no inline input is focused.
func (m *DashboardModel) handleGlobalKeys(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	t := m.activeTabValue()

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit

	case key.Matches(msg, k.Help):
		m.PushModal(newHelpModal(m.keys, m.reverseScrollWheel))
		return nil

	case key.Matches(msg, k.Logout):
		m.logout()
		return nil

	case key.Matches(msg, k.NextTab):
		return m.nextTab()

	case key.Matches(msg, k.PrevTab):
		return m.prevTab()

	case key.Matches(msg, k.ExerciseTab):
		return m.activateTabByID(tabExercise)

	case key.Matches(msg, k.NutritionTab):
		return m.activateTabByID(tabNutrition)

	case key.Matches(msg, k.NewsTab):
		return m.activateTabByID(tabNews)
	}

	if t == nil {
		return nil
	}

	switch {
	case key.Matches(msg, k.Up):
		m.moveSelection(-1)

	case key.Matches(msg, k.Down):
		m.moveSelection(1)

	case key.Matches(msg, k.Home):
		m.tabSelIdx[m.activeTab] = 0

	case key.Matches(msg, k.End):
		m.tabSelIdx[m.activeTab] = clampSel(t.ItemCount()-1, t.ItemCount())

	case key.Matches(msg, k.Enter):
		return t.OnSelect(m.viewContext(), m.tabSelIdx[m.activeTab])

	case key.Matches(msg, k.NextPage):
		if pt, ok := t.(PagedTab); ok {
			cmd := pt.NextPage()
			if cmd != nil {
				m.tabSelIdx[m.activeTab] = 0
			}
			return cmd
		}

	case key.Matches(msg, k.PrevPage):
		if pt, ok := t.(PagedTab); ok {
			cmd := pt.PrevPage()
			if cmd != nil {
				m.tabSelIdx[m.activeTab] = 0
			}
			return cmd
		}

	case key.Matches(msg, k.Search):
		if it, ok := t.(InputTab); ok {
			return it.Focus()
		}
	}
	return nil
}

func (m *DashboardModel) activateTabByID(id string) tea.Cmd {
	if _, idx := m.tabByID(id); idx >= 0 {
		return m.activateTab(idx)
	}
	return nil
}

// logout signs out, drops all tab state, and returns to the login page.
func (m *DashboardModel) logout() {
	if m.session != nil {
		if err := m.session.SignOut(m.ctx); err != nil {
			m.log.Warn().Err(err).Msg("sign out")
			m.setNotice("Error: " + err.Error())
			return
		}
	}
	m.resetTabs()
	m.modalStack = nil
	m.notice = ""
	m.nav = &PageNav{PageID: PageLogin, Flash: "You have been logged out."}
}
