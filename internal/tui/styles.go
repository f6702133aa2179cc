package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Teal is the brand accent used for active tabs and headers.
var (
	ColorTeal   = lipgloss.Color("#1E98AE")
	ColorBlue   = lipgloss.Color("39")
	ColorNavy   = lipgloss.Color("#0B2E3A")
	ColorWhite  = lipgloss.Color("15")
	ColorGray   = lipgloss.Color("244")
	ColorRed    = lipgloss.Color("196")
	ColorOrange = lipgloss.Color("208")
	ColorGreen  = lipgloss.Color("42")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	activeSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorTeal).
				Padding(0, 1)

	deckTitleStyle = lipgloss.NewStyle().
			Foreground(ColorTeal).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	selectedRowStyle = lipgloss.NewStyle().
				Background(ColorTeal).
				Foreground(ColorWhite).
				Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(ColorTeal).
			Bold(true).
			Underline(true).
			Padding(0, 2)
)
