package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jbonatakis/attest/internal/catalog"
)

func priorityStyle(p catalog.Priority) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch p {
	case catalog.PriorityCritical:
		return style.Foreground(lipgloss.Color("196"))
	case catalog.PriorityHigh:
		return style.Foreground(lipgloss.Color("214"))
	default:
		return style.Foreground(lipgloss.Color("39"))
	}
}

func RenderQuestionView(m Model) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	questionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	shortcutStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	actionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	if m.session == nil {
		return mutedStyle.Render("No assessment in progress")
	}
	cur, err := m.session.CurrentQuestion()
	if err != nil {
		return mutedStyle.Render("All questions answered")
	}

	width := clamp(m.windowWidth-8, 40, 90)
	q := cur.Question
	fraction := float64(cur.Number-1) / float64(cur.Total)

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s Assessment", m.session.Variant().Label())),
		labelStyle.Render(fmt.Sprintf("Question %d of %d  ·  %s", cur.Number, cur.Total, cur.Category)),
		m.progress.ViewAs(fraction),
		"",
		questionStyle.Width(width).Render(q.Text()),
		"",
		labelStyle.Render("Regulators: ") + strings.Join(q.RegulatorLabels(), ", ") +
			labelStyle.Render("   Priority: ") + priorityStyle(q.Priority()).Render(strings.ToUpper(string(q.Priority()))),
		"",
	}

	if q.RequiresTextInput() {
		lines = append(lines,
			m.answerInput.View(),
			"",
			mutedStyle.Render("Enter: submit • Esc: previous question"),
		)
	} else {
		lines = append(lines,
			renderActionLine("[y]", "Yes", true, shortcutStyle, actionStyle, mutedStyle)+"    "+
				renderActionLine("[n]", "No", true, shortcutStyle, actionStyle, mutedStyle),
			"",
			mutedStyle.Render("b/←: previous question"),
		)
	}
	if m.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(m.errMsg))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("69")).
		Padding(1, 2)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderActionLine(shortcut string, label string, enabled bool, shortcutStyle lipgloss.Style, actionStyle lipgloss.Style, mutedStyle lipgloss.Style) string {
	if !enabled {
		return mutedStyle.Render(shortcut + " " + label)
	}
	return shortcutStyle.Render(shortcut) + " " + actionStyle.Render(label)
}
