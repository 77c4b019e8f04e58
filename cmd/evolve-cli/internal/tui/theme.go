package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette
const (
	EvolveBlue  = "#4A90E2"
	EvolveGreen = "#7ED321"
	EvolveRed   = "#D0021B"
	DarkBlue    = "#2C3E50"
	MediumGray  = "#9B9B9B"
	White       = "#FFFFFF"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(DarkBlue))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(EvolveGreen)).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(EvolveRed)).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(MediumGray))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color(EvolveBlue)).
			Foreground(lipgloss.Color(White)).
			Padding(0, 2)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(EvolveBlue)).
			Padding(0, 1).
			MarginTop(1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(MediumGray)).
			MarginTop(1)

	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(EvolveGreen))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(MediumGray))
)
