package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

func newHelpModal(k KeyMap, reverseScroll bool) *DetailModal {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"TABS", []key.Binding{k.ExerciseTab, k.NutritionTab, k.NewsTab, k.NextTab, k.PrevTab}},
		{"NAVIGATION", []key.Binding{k.Up, k.Down, k.Home, k.End, k.Enter, k.NextPage, k.PrevPage}},
		{"ACTIONS", []key.Binding{k.Search, k.CopyLink, k.OpenLink, k.Logout, k.Help, k.Quit}},
	}

	var b strings.Builder
	b.WriteString("Health Today\n\n")
	for _, s := range sections {
		b.WriteString(labelStyle.Render(s.title) + "\n")
		for _, bind := range s.bindings {
			h := bind.Help()
			b.WriteString("  " + padRight(h.Key, 14) + " - " + h.Desc + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Selecting an exercise, a news article, or a preset food adds to the click counter.\n")
	b.WriteString("The copy link key works inside an open news article.\n")

	return NewDetailModal("help", "Help", b.String(), reverseScroll)
}

func padRight(s string, n int) string {
	if len([]rune(s)) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len([]rune(s)))
}
