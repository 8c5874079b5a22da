package report

import (
	"fmt"
	"io"
	"strings"
)

// Line breaks collapse to spaces so free-text answers stay inside their
// list item.
var mdEscaper = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"|", `\|`,
	"<", "&lt;",
	">", "&gt;",
	"#", `\#`,
)

func md(s string) string {
	return mdEscaper.Replace(s)
}

// RenderMarkdown writes the report as CommonMark with GFM tables.
func RenderMarkdown(w io.Writer, r Report) error {
	_, err := io.WriteString(w, markdown(r))
	return err
}

func markdown(r Report) string {
	var b strings.Builder

	b.WriteString("# Compliance Assessment Report\n\n")
	fmt.Fprintf(&b, "Generated on %s. %s assessment, %d of %d questions answered.\n\n", r.Date(), r.Variant.Label(), r.Answered, r.Total)

	b.WriteString("## Organization\n\n")
	b.WriteString("| Field | Value |\n| --- | --- |\n")
	for _, row := range profileRows(r) {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], md(row[1]))
	}
	b.WriteString("\n")

	b.WriteString("## Compliance Score\n\n")
	if r.Score == nil {
		b.WriteString("Score: not yet available.\n\n")
	} else {
		fmt.Fprintf(&b, "**%s**: %d/%d (%d%%)\n\n", levelTitle(r.Score.Level), r.Score.YesCount, r.Score.Total, r.Score.Percent())
		fmt.Fprintf(&b, "%s\n\n", r.Score.Message())
	}

	fmt.Fprintf(&b, "## Recommendations\n\n%s.\n\n", recommendationCount(len(r.Recommendations)))
	if r.FullyCompliant() {
		fmt.Fprintf(&b, "%s\n\n", congratulations)
	}
	for _, g := range r.Groups {
		fmt.Fprintf(&b, "### %s\n\n", md(g.Category))
		for _, rec := range g.Recommendations {
			fmt.Fprintf(&b, "- **%s** %s\n", strings.ToUpper(string(rec.Priority)), md(rec.Question))
			fmt.Fprintf(&b, "  - Recommended action: %s\n", md(rec.Remediation))
			fmt.Fprintf(&b, "  - Regulatory specification: %s\n", md(strings.Join(rec.Regulators, ", ")))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Regulator Compliance\n\n")
	if len(r.Regulators) == 0 {
		b.WriteString("No regulators referenced.\n")
		return b.String()
	}
	b.WriteString("| Regulator | Rate | Rating | Compliant | Total |\n| --- | ---: | --- | ---: | ---: |\n")
	for _, s := range r.Regulators {
		fmt.Fprintf(&b, "| %s | %d%% | %s | %d | %d |\n", md(s.Regulator), s.ComplianceRate, s.Rating(), s.Compliant, s.Total)
	}
	if r.Posture != nil {
		fmt.Fprintf(&b, "\nAverage compliance %d%%: %s.\n", r.Posture.AverageRate, r.Posture.Label)
	}
	return b.String()
}
