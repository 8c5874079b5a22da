package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bottomBarStyle = lipgloss.NewStyle().Reverse(true).Padding(0, 1)

// RenderBottomBar shows key hints and any status on the left, session
// progress on the right.
func RenderBottomBar(model Model) string {
	hints := strings.Join(actionHints(model), " ")
	if model.statusMsg != "" {
		hints += " | " + model.statusMsg
	}

	progress := ""
	if model.session != nil {
		progress = fmt.Sprintf("%s %d/%d", model.session.Variant(), model.session.Position(), model.session.Total())
	}

	inner := 0
	if model.windowWidth > 0 {
		inner = max(model.windowWidth-bottomBarStyle.GetHorizontalPadding(), 0)
	}
	return bottomBarStyle.Render(spread(hints, progress, inner))
}

func actionHints(model Model) []string {
	switch model.viewMode {
	case ViewModeProfile:
		return []string{"[tab]next", "[←/→]choose", "[space]toggle", "[ctrl+s]start", "[ctrl+c]quit"}
	case ViewModeQuestion:
		if model.currentIsText() {
			return []string{"[enter]submit", "[esc]back", "[ctrl+c]quit"}
		}
		return []string{"[y]es", "[n]o", "[b]ack", "[ctrl+c]quit"}
	case ViewModeResults:
		return []string{"[d]ashboard", "[r]etake", "[e]dit profile", "[x]export", "[q]uit"}
	case ViewModeDashboard:
		return []string{"[b]ack", "[x]export", "[q]uit"}
	}
	return []string{"[ctrl+c]quit"}
}

// spread pins left and right to the edges of width. The right side always
// wins space; the left side is clipped with an ellipsis. Width 0 means the
// terminal size is not known yet.
func spread(left, right string, width int) string {
	if width <= 0 {
		return left + " " + right
	}
	rw := lipgloss.Width(right)
	if rw >= width {
		return clip(right, width)
	}
	left = clip(left, width-rw-1)
	return left + strings.Repeat(" ", width-rw-lipgloss.Width(left)) + right
}

func clip(s string, width int) string {
	r := []rune(s)
	switch {
	case width <= 0:
		return ""
	case len(r) <= width:
		return s
	case width == 1:
		return "…"
	}
	return string(r[:width-1]) + "…"
}
