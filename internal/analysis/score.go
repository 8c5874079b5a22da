package analysis

import (
	"errors"
	"math"

	"github.com/jbonatakis/attest/internal/assessment"
	"github.com/jbonatakis/attest/internal/catalog"
)

// ErrNoScore means nothing has been answered yet. Callers should show a
// neutral "not yet available" state rather than a zero score.
var ErrNoScore = errors.New("score not available: no answers recorded")

type ComplianceScore struct {
	Variant  catalog.Variant `json:"variant"`
	YesCount int             `json:"yesCount"`
	Total    int             `json:"total"`
	Answered int             `json:"answered"`
	Level    catalog.Level   `json:"level"`
}

func (s ComplianceScore) Message() string {
	return s.Level.Message()
}

// Percent is the yes count as a rounded share of all questions.
func (s ComplianceScore) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.YesCount) / float64(s.Total)))
}

// ScoreCompliance counts "yes" answers and classifies the count against the
// set's band ladder. The total is always the full question count, so a
// partial assessment scores against every question.
func ScoreCompliance(set *catalog.QuestionSet, answers []assessment.Answer) (ComplianceScore, error) {
	total := set.Len()
	if total == 0 || len(answers) == 0 {
		return ComplianceScore{}, ErrNoScore
	}

	yes := 0
	for _, a := range answers {
		if a.IsYes() {
			yes++
		}
	}
	return ComplianceScore{
		Variant:  set.Variant(),
		YesCount: yes,
		Total:    total,
		Answered: len(answers),
		Level:    catalog.LevelFor(set.Bands(), yes),
	}, nil
}
