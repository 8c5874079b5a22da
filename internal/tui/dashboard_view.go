package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/attest/internal/analysis"
)

func ratingStyle(r analysis.Rating) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch r {
	case analysis.RatingExcellent:
		return style.Foreground(lipgloss.Color("42"))
	case analysis.RatingGood:
		return style.Foreground(lipgloss.Color("39"))
	case analysis.RatingModerate:
		return style.Foreground(lipgloss.Color("214"))
	case analysis.RatingPoor:
		return style.Foreground(lipgloss.Color("208"))
	default:
		return style.Foreground(lipgloss.Color("196"))
	}
}

// RenderDashboardView lists each regulator's compliance rate, best first.
func RenderDashboardView(m Model) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	lines := []string{titleStyle.Render("Regulatory Compliance Dashboard"), ""}
	if m.report == nil || len(m.report.Regulators) == 0 {
		lines = append(lines, mutedStyle.Render("No regulator data available"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	bar := progress.New(progress.WithSolidFill("69"), progress.WithoutPercentage())
	bar.Width = clamp(m.windowWidth-60, 10, 40)

	for _, s := range m.report.Regulators {
		rating := s.Rating()
		lines = append(lines,
			fmt.Sprintf("%-10s %s %3d%%  %s",
				s.Regulator,
				bar.ViewAs(float64(s.ComplianceRate)/100),
				s.ComplianceRate,
				ratingStyle(rating).Render(string(rating)),
			),
			labelStyle.Render(fmt.Sprintf("           %d of %d compliant · %d gaps · %s", s.Compliant, s.Total, s.NonCompliant(), rating.Description())),
		)
	}

	if p := m.report.Posture; p != nil {
		lines = append(lines, "", fmt.Sprintf("Average compliance %d%%: %s", p.AverageRate, ratingStyle(analysis.RateRating(p.AverageRate)).Render(p.Label)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
