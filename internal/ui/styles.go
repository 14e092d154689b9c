package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed       = lipgloss.Color("#FF0000")
	ColorYellow    = lipgloss.Color("#FFFF00")
	ColorLightBlue = lipgloss.Color("#5FAFFF")
	ColorGray      = lipgloss.Color("#666666")
	ColorDimGray   = lipgloss.Color("#444444")
	ColorWhite     = lipgloss.Color("#FFFFFF")
	ColorBlack     = lipgloss.Color("#000000")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLightBlue)

	MenuKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Underline(true)

	MenuTextStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	MenuActiveStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorWhite).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	SelectedStyle = lipgloss.NewStyle().
			Background(ColorYellow).
			Foreground(ColorBlack).
			Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorLightBlue)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)
)
