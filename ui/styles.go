package ui

import "github.com/charmbracelet/lipgloss"

const cardWidth = 24

var (
	accentColor = lipgloss.Color("#E50914")
	textColor   = lipgloss.Color("#F5F5F1")
	mutedColor  = lipgloss.Color("#808080")
	panelColor  = lipgloss.Color("#1E1E1E")

	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelColor).
			Foreground(textColor).
			Width(cardWidth).
			Padding(0, 1).
			Margin(0, 1, 1, 0)

	selectedCardStyle = cardStyle.
				BorderForeground(accentColor)

	posterStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Align(lipgloss.Center).
			Width(cardWidth - 2)

	ratingStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true)

	moreStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(accentColor).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)
)
