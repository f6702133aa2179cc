package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WelcomePage is the landing screen offering Register or Login.
type WelcomePage struct {
	choices []welcomeChoice
	cursor  int
	flash   string
}

type welcomeChoice struct {
	label  string
	hotkey string
	pageID string
}

// NewWelcomePage creates the landing page.
func NewWelcomePage() *WelcomePage {
	return &WelcomePage{
		choices: []welcomeChoice{
			{label: "Register", hotkey: "r", pageID: PageRegister},
			{label: "Login", hotkey: "l", pageID: PageLogin},
		},
	}
}

func (p *WelcomePage) ID() string          { return PageWelcome }
func (p *WelcomePage) Init() tea.Cmd       { return nil }
func (p *WelcomePage) SetFlash(msg string) { p.flash = msg }

func (p *WelcomePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch km.String() {
	case "q", "esc":
		return tea.Quit, nil
	case "up", "k", "shift+tab", "left", "h":
		p.cursor = (p.cursor - 1 + len(p.choices)) % len(p.choices)
	case "down", "j", "tab", "right":
		p.cursor = (p.cursor + 1) % len(p.choices)
	case "enter", " ":
		p.flash = ""
		return nil, &PageNav{PageID: p.choices[p.cursor].pageID}
	default:
		for _, c := range p.choices {
			if km.String() == c.hotkey {
				p.flash = ""
				return nil, &PageNav{PageID: c.pageID}
			}
		}
	}
	return nil, nil
}

func (p *WelcomePage) View(width, height int) string {
	title := lipgloss.NewStyle().Foreground(ColorTeal).Bold(true).Render("♥ Health Today")
	sub := helpStyle.Render("Exercise, nutrition and health news in your terminal")

	var buttons []string
	for i, c := range p.choices {
		label := "  " + c.label + "  "
		if i == p.cursor {
			buttons = append(buttons, selectedRowStyle.Render(label))
		} else {
			buttons = append(buttons, sectionStyle.Padding(0).Render(label))
		}
	}

	rows := []string{title, sub, "", lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(buttons, "   ")), ""}
	if p.flash != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(ColorGreen).Render(p.flash))
	}
	rows = append(rows, helpStyle.Render("r: Register • l: Login • ←→: Choose • Enter: Open • q: Quit"))

	block := lipgloss.JoinVertical(lipgloss.Center, rows...)
	if width <= 0 || height <= 0 {
		return block
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
