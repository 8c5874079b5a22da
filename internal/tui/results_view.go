package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/attest/internal/catalog"
)

func levelStyle(l catalog.Level) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch l {
	case catalog.LevelExcellent, catalog.LevelGood:
		return style.Foreground(lipgloss.Color("42"))
	case catalog.LevelModerate, catalog.LevelSignificant:
		return style.Foreground(lipgloss.Color("214"))
	default:
		return style.Foreground(lipgloss.Color("196"))
	}
}

// RenderResultsView shows the score headline above the scrollable report.
func RenderResultsView(m Model) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	if m.report == nil {
		return mutedStyle.Render("No results yet")
	}
	r := m.report

	headline := mutedStyle.Render("Score: not yet available")
	if r.Score != nil {
		headline = levelStyle(r.Score.Level).Render(fmt.Sprintf("%d/%d (%d%%)", r.Score.YesCount, r.Score.Total, r.Score.Percent())) +
			"  " + r.Score.Message()
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Assessment Results: %s", r.Profile.CompanyName)),
		headline,
		mutedStyle.Render(fmt.Sprintf("%d recommendations · ↑/↓ scroll", len(r.Recommendations))),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.results.View())
}
