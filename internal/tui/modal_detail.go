package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DetailModal displays scrollable text content. Tabs build exercise and
// news details on top of it.
type DetailModal struct {
	id            string
	title         string
	content       string
	status        []string
	viewport      viewport.Model
	reverseScroll bool

	// onKey, when set, sees key presses before scrolling does.
	onKey func(msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
}

// NewDetailModal creates a modal showing content under title.
func NewDetailModal(id, title, content string, reverseScroll bool) *DetailModal {
	return &DetailModal{
		id:            id,
		title:         title,
		content:       content,
		viewport:      viewport.New(80, 20),
		reverseScroll: reverseScroll,
	}
}

func (d *DetailModal) ID() string      { return d.id }
func (d *DetailModal) Title() string   { return d.title }
func (d *DetailModal) Content() string { return d.content }

func (d *DetailModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if d.onKey != nil {
			if handled, cmd := d.onKey(msg); handled {
				return false, cmd
			}
		}
		switch msg.String() {
		case "up", "k":
			d.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			d.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			d.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			d.viewport.HalfPageDown()
			return false, nil
		case "escape", "esc", "q", "enter":
			return true, nil
		}
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if d.reverseScroll {
				d.viewport.ScrollDown(1)
			} else {
				d.viewport.ScrollUp(1)
			}
		case tea.MouseButtonWheelDown:
			if d.reverseScroll {
				d.viewport.ScrollUp(1)
			} else {
				d.viewport.ScrollDown(1)
			}
		}
		return false, nil
	}
	return false, nil
}

func (d *DetailModal) View(width, height int) string {
	return renderSingleModalView(&d.viewport, d.title, d.content, d.status, width, height)
}
