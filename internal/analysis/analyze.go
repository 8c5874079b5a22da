package analysis

import "github.com/jbonatakis/attest/internal/assessment"

// Result bundles everything the report needs. Score is nil when no answer
// has been recorded.
type Result struct {
	Recommendations []Recommendation
	Score           *ComplianceScore
	Regulators      []RegulatorStat
}

// Analyze runs all derivations over one snapshot.
func Analyze(snap assessment.Snapshot) Result {
	res := Result{
		Recommendations: DeriveRecommendations(snap.Set, snap.Answers),
		Regulators:      AggregateByRegulator(snap.Set, snap.Answers),
	}
	if score, err := ScoreCompliance(snap.Set, snap.Answers); err == nil {
		res.Score = &score
	}
	return res
}
