// Package analysis derives recommendations, the compliance score and
// per-regulator statistics from a frozen answer sequence. Every function
// is pure: the same inputs always produce the same outputs.
package analysis

import (
	"fmt"

	"github.com/jbonatakis/attest/internal/assessment"
	"github.com/jbonatakis/attest/internal/catalog"
)

type Recommendation struct {
	QuestionID  string           `json:"questionId"`
	Category    string           `json:"category"`
	Question    string           `json:"question"`
	Regulators  []string         `json:"regulators"`
	Remediation string           `json:"remediation"`
	Priority    catalog.Priority `json:"priority"`
}

// DeriveRecommendations emits one recommendation per actionable answer, in
// answer order. Answers whose question is not in the set are skipped.
func DeriveRecommendations(set *catalog.QuestionSet, answers []assessment.Answer) []Recommendation {
	recs := []Recommendation{}
	for _, a := range answers {
		if !a.IsActionable() {
			continue
		}
		q, ok := set.Lookup(a.QuestionID)
		if !ok {
			continue
		}
		recs = append(recs, Recommendation{
			QuestionID:  q.ID(),
			Category:    q.Category(),
			Question:    q.Text(),
			Regulators:  q.RegulatorLabels(),
			Remediation: remediationFor(q, a),
			Priority:    q.Priority(),
		})
	}
	return recs
}

func remediationFor(q catalog.Question, a assessment.Answer) string {
	if a.IsTextAnswer {
		return fmt.Sprintf("Your response: \"%s\". %s", a.Value, q.BaseRemediation())
	}
	return q.BaseRemediation()
}

// CategoryGroup is the recommendations for one category.
type CategoryGroup struct {
	Category        string
	Recommendations []Recommendation
}

// GroupByCategory groups recommendations, keeping categories in the order
// they first appear.
func GroupByCategory(recs []Recommendation) []CategoryGroup {
	var groups []CategoryGroup
	pos := map[string]int{}
	for _, r := range recs {
		i, ok := pos[r.Category]
		if !ok {
			i = len(groups)
			pos[r.Category] = i
			groups = append(groups, CategoryGroup{Category: r.Category})
		}
		groups[i].Recommendations = append(groups[i].Recommendations, r)
	}
	return groups
}

// CountByPriority tallies recommendations per priority.
func CountByPriority(recs []Recommendation) map[catalog.Priority]int {
	counts := map[catalog.Priority]int{}
	for _, r := range recs {
		counts[r.Priority]++
	}
	return counts
}
