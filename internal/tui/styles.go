// Package tui provides an interactive terminal converter for hanzinum.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - prompt, mode
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - rendered numerals
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - copied
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Mode badges
var (
	ModeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	ModeActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Background(ColorBgAlt).
			Padding(0, 1)
)

// Result styles
var (
	ResultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Background(ColorBgAlt).
			Padding(1, 4).
			Margin(1, 0)

	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Margin(0, 0, 1, 0)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)
)

// History styles
var (
	HistoryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2).
			Margin(1, 0)

	HistoryInputStyle = lipgloss.NewStyle().
				Foreground(ColorLabel)

	HistoryOutputStyle = lipgloss.NewStyle().
				Foreground(ColorText)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)
