package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jbonatakis/attest/internal/analysis"
	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/mattn/go-isatty"
)

// ColorMode is the ui.color setting.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UseColor resolves a color mode against the destination file. Auto
// colors only terminals and honors NO_COLOR.
func UseColor(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct {
	title, heading, label, muted *color.Color
	good, warn, bad              *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		title:   color.New(color.Bold, color.FgCyan),
		heading: color.New(color.Bold),
		label:   color.New(color.FgHiBlack),
		muted:   color.New(color.Faint),
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.title, p.heading, p.label, p.muted, p.good, p.warn, p.bad} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) forLevel(l catalog.Level) *color.Color {
	switch l {
	case catalog.LevelExcellent, catalog.LevelGood:
		return p.good
	case catalog.LevelModerate, catalog.LevelSignificant:
		return p.warn
	default:
		return p.bad
	}
}

func (p palette) forPriority(pr catalog.Priority) *color.Color {
	switch pr {
	case catalog.PriorityCritical:
		return p.bad
	case catalog.PriorityHigh:
		return p.warn
	default:
		return p.muted
	}
}

func (p palette) forRating(r analysis.Rating) *color.Color {
	switch r {
	case analysis.RatingExcellent, analysis.RatingGood:
		return p.good
	case analysis.RatingModerate:
		return p.warn
	default:
		return p.bad
	}
}

// RenderText writes the plain-text report.
func RenderText(w io.Writer, r Report, colored bool) error {
	p := newPalette(colored)
	var b strings.Builder

	fmt.Fprintln(&b, p.title.Sprint("Compliance Assessment Report"))
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Generated on"), r.Date())
	fmt.Fprintf(&b, "%s %s assessment, %d of %d questions answered\n\n", p.label.Sprint("Scope"), r.Variant.Label(), r.Answered, r.Total)

	fmt.Fprintln(&b, p.heading.Sprint("Organization"))
	for _, row := range profileRows(r) {
		fmt.Fprintf(&b, "  %-22s %s\n", p.label.Sprint(row[0]+":"), row[1])
	}
	b.WriteString("\n")

	fmt.Fprintln(&b, p.heading.Sprint("Compliance Score"))
	if r.Score == nil {
		fmt.Fprintln(&b, "  Score: not yet available")
	} else {
		lc := p.forLevel(r.Score.Level)
		fmt.Fprintf(&b, "  %s  %d/%d (%d%%)\n", lc.Sprint(levelTitle(r.Score.Level)), r.Score.YesCount, r.Score.Total, r.Score.Percent())
		fmt.Fprintf(&b, "  %s\n", r.Score.Message())
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s (%s)\n", p.heading.Sprint("Recommendations"), recommendationCount(len(r.Recommendations)))
	if r.FullyCompliant() {
		fmt.Fprintf(&b, "  %s\n", p.good.Sprint(congratulations))
	}
	for _, g := range r.Groups {
		fmt.Fprintf(&b, "\n  %s (%s)\n", p.heading.Sprint(g.Category), plural(len(g.Recommendations), "item"))
		for _, rec := range g.Recommendations {
			pc := p.forPriority(rec.Priority)
			fmt.Fprintf(&b, "  - [%s] %s\n", pc.Sprint(strings.ToUpper(string(rec.Priority))), rec.Question)
			fmt.Fprintf(&b, "      %s %s\n", p.label.Sprint("Recommended action:"), rec.Remediation)
			fmt.Fprintf(&b, "      %s %s\n", p.label.Sprint("Regulatory specification:"), strings.Join(rec.Regulators, ", "))
		}
	}
	b.WriteString("\n")

	fmt.Fprintln(&b, p.heading.Sprint("Regulator Compliance"))
	if len(r.Regulators) == 0 {
		fmt.Fprintln(&b, "  No regulators referenced.")
	}
	for _, s := range r.Regulators {
		rc := p.forRating(s.Rating())
		fmt.Fprintf(&b, "  %-12s %3d%%  %-10s %d/%d compliant, %d gaps  %s\n",
			s.Regulator, s.ComplianceRate, rc.Sprint(string(s.Rating())), s.Compliant, s.Total, s.NonCompliant(), p.muted.Sprint(s.Rating().Description()))
	}
	if r.Posture != nil {
		fmt.Fprintf(&b, "\n  Average compliance %d%%: %s\n", r.Posture.AverageRate, r.Posture.Label)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

const congratulations = "Congratulations! You appear to be fully compliant."

func levelTitle(l catalog.Level) string {
	s := string(l)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func profileRows(r Report) [][2]string {
	p := r.Profile
	orDash := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "-"
		}
		return s
	}
	types := "-"
	if len(p.PrimaryDataTypes) > 0 {
		types = strings.Join(p.PrimaryDataTypes, ", ")
	}
	return [][2]string{
		{"Company", orDash(p.CompanyName)},
		{"Industry", orDash(p.Industry)},
		{"Size", orDash(p.CompanySize)},
		{"Location", orDash(p.Location)},
		{"Contact", orDash(p.ContactEmail)},
		{"Compliance officer", orDash(p.ComplianceOfficer)},
		{"Data protection officer", yesNo(p.HasDataProtectionOfficer)},
		{"Data types", types},
	}
}
