package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formField is one labelled input. Name matches the validator field name so
// FieldErrors can be routed back to it.
type formField struct {
	Name  string
	Label string
	input textinput.Model
}

// form is the shared input stack behind the login and register pages.
type form struct {
	fields []formField
	focus  int
	errs   map[string]string
	alert  string
	notice string
	busy   bool
	keys   FormKeyMap
}

func newForm(fields ...formField) *form {
	for i := range fields {
		in := textinput.New()
		in.Prompt = "› "
		in.CharLimit = 128
		in.Width = 40
		in.Placeholder = fields[i].Label
		if strings.Contains(strings.ToLower(fields[i].Name), "password") {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		fields[i].input = in
	}
	f := &form{fields: fields, errs: map[string]string{}, keys: DefaultFormKeyMap()}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	i = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	f.focus = i
}

func (f *form) value(name string) string {
	for _, fld := range f.fields {
		if fld.Name == name {
			return fld.input.Value()
		}
	}
	return ""
}

func (f *form) setValue(name, v string) {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].input.SetValue(v)
		}
	}
}

// setErrors replaces the inline field errors and focuses the first failing
// field.
func (f *form) setErrors(errs map[string]string) {
	f.errs = map[string]string{}
	first := -1
	for i, fld := range f.fields {
		if msg, ok := errs[fld.Name]; ok {
			f.errs[fld.Name] = msg
			if first < 0 {
				first = i
			}
		}
	}
	if first >= 0 {
		f.setFocus(first)
	}
}

// reset clears values, errors and messages.
func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
	}
	f.errs = map[string]string{}
	f.alert = ""
	f.notice = ""
	f.busy = false
	f.setFocus(0)
}

// formAction is what a key press on the form asks the page to do.
type formAction int

const (
	formNone formAction = iota
	formSubmit
	formBack
)

// update handles a key press. Typing clears the alert line.
func (f *form) update(msg tea.KeyMsg) (formAction, tea.Cmd) {
	if f.busy {
		return formNone, nil
	}
	switch {
	case key.Matches(msg, f.keys.Submit):
		return formSubmit, nil
	case key.Matches(msg, f.keys.Back):
		return formBack, nil
	case key.Matches(msg, f.keys.Next):
		f.setFocus(f.focus + 1)
		return formNone, nil
	case key.Matches(msg, f.keys.Prev):
		f.setFocus(f.focus - 1)
		return formNone, nil
	}

	var cmd tea.Cmd
	fld := &f.fields[f.focus]
	before := fld.input.Value()
	fld.input, cmd = fld.input.Update(msg)
	if fld.input.Value() != before {
		f.alert = ""
		f.notice = ""
	}
	return formNone, cmd
}

func (f *form) view(title, subtitle, footer string, width, height int) string {
	var rows []string
	rows = append(rows, deckTitleStyle.Render(title))
	if subtitle != "" {
		rows = append(rows, helpStyle.Render(subtitle))
	}
	rows = append(rows, "")

	for i, fld := range f.fields {
		label := labelStyle.Render(fld.Label)
		if i == f.focus {
			label = lipgloss.NewStyle().Foreground(ColorTeal).Bold(true).Render(fld.Label)
		}
		rows = append(rows, label, fld.input.View())
		if msg, ok := f.errs[fld.Name]; ok {
			rows = append(rows, errorStyle.Render("  "+msg))
		} else {
			rows = append(rows, "")
		}
	}

	switch {
	case f.busy:
		frame := spinnerFrame()
		rows = append(rows, helpStyle.Render(frame+" Please wait..."))
	case f.alert != "":
		rows = append(rows, errorStyle.Bold(true).Render("✗ "+f.alert))
	case f.notice != "":
		rows = append(rows, lipgloss.NewStyle().Foreground(ColorGreen).Render("✓ "+f.notice))
	default:
		rows = append(rows, "")
	}
	rows = append(rows, "", helpStyle.Render(footer))

	box := activeSectionStyle.Padding(1, 3).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
