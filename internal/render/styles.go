package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/mawj/internal/forecast"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorMuted   = lipgloss.Color("#6C757D")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	nextStyle = lipgloss.NewStyle().
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
)

// tierStyle colours text with the verdict's own colour token.
func tierStyle(v forecast.ConditionVerdict) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(v.Color))
}

func confidenceStyle(r forecast.CatchabilityResult) lipgloss.Style {
	switch {
	case r.Confidence > 75:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case r.Confidence > 50:
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return lipgloss.NewStyle().Foreground(colorDanger)
	}
}
