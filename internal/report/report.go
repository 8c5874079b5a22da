// Package report turns a finished (or partial) assessment into a printable
// report and writes it out as text, markdown or HTML.
package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jbonatakis/attest/internal/analysis"
	"github.com/jbonatakis/attest/internal/assessment"
	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/jbonatakis/attest/internal/profile"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var Formats = []Format{FormatText, FormatMarkdown, FormatHTML}

func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, true
	case "markdown", "md":
		return FormatMarkdown, true
	case "html":
		return FormatHTML, true
	default:
		return "", false
	}
}

func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

type Report struct {
	ID              string
	SessionID       string
	GeneratedAt     time.Time
	Profile         profile.Profile
	Variant         catalog.Variant
	Answered        int
	Total           int
	Complete        bool
	Score           *analysis.ComplianceScore
	Recommendations []analysis.Recommendation
	Groups          []analysis.CategoryGroup
	Regulators      []analysis.RegulatorStat
	Posture         *analysis.PostureSummary
}

// Build analyses a snapshot and assembles the report. Regulators are
// ordered by compliance rate for display.
func Build(snap assessment.Snapshot, now time.Time) Report {
	res := analysis.Analyze(snap)
	r := Report{
		ID:              uuid.NewString(),
		SessionID:       snap.SessionID,
		GeneratedAt:     now,
		Profile:         snap.Profile,
		Variant:         snap.Variant,
		Answered:        len(snap.Answers),
		Total:           snap.Set.Len(),
		Complete:        snap.Complete,
		Score:           res.Score,
		Recommendations: res.Recommendations,
		Groups:          analysis.GroupByCategory(res.Recommendations),
		Regulators:      analysis.SortByRate(res.Regulators),
	}
	if p, ok := analysis.Posture(res.Regulators); ok {
		r.Posture = &p
	}
	return r
}

// FullyCompliant reports a finished assessment with nothing to remediate.
func (r Report) FullyCompliant() bool {
	return r.Complete && len(r.Recommendations) == 0
}

func (r Report) Date() string {
	return r.GeneratedAt.Format("January 2, 2006")
}

func recommendationCount(n int) string {
	if n == 0 {
		return "No recommendations needed"
	}
	if n == 1 {
		return "1 recommendation found"
	}
	return fmt.Sprintf("%d recommendations found", n)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// DefaultFilename names an export after the company and report date.
func DefaultFilename(r Report, f Format) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(r.Profile.CompanyName), "-"), "-")
	if slug == "" {
		slug = "assessment"
	}
	return fmt.Sprintf("attest-%s-%s%s", slug, r.GeneratedAt.Format("2006-01-02"), f.Extension())
}
