package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/jbonatakis/attest/internal/assessment"
	"github.com/jbonatakis/attest/internal/catalog"
)

type RegulatorStat struct {
	Regulator      string `json:"regulator"`
	Total          int    `json:"total"`
	Compliant      int    `json:"compliant"`
	ComplianceRate int    `json:"complianceRate"`
}

func (s RegulatorStat) NonCompliant() int {
	return s.Total - s.Compliant
}

func (s RegulatorStat) Rating() Rating {
	return RateRating(s.ComplianceRate)
}

// SplitLabel expands a composite label such as "NITDA & CBN" into its
// member regulators.
func SplitLabel(label string) []string {
	parts := strings.Split(label, "&")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AggregateByRegulator counts, for every regulator referenced by the set,
// how many questions cite it and how many of those were answered "yes".
// Unanswered questions count toward the total only. Regulators appear in
// the order the catalog first cites them.
func AggregateByRegulator(set *catalog.QuestionSet, answers []assessment.Answer) []RegulatorStat {
	byID := make(map[string]assessment.Answer, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a
	}

	var stats []RegulatorStat
	pos := map[string]int{}
	for _, q := range set.Questions() {
		a, answered := byID[q.ID()]
		compliant := answered && a.IsYes()

		for _, label := range q.RegulatorLabels() {
			for _, reg := range SplitLabel(label) {
				i, ok := pos[reg]
				if !ok {
					i = len(stats)
					pos[reg] = i
					stats = append(stats, RegulatorStat{Regulator: reg})
				}
				stats[i].Total++
				if compliant {
					stats[i].Compliant++
				}
			}
		}
	}

	for i := range stats {
		stats[i].ComplianceRate = int(math.Round(100 * float64(stats[i].Compliant) / float64(stats[i].Total)))
	}
	return stats
}

// SortByRate returns a copy ordered by compliance rate, best first, with
// ties broken by regulator name.
func SortByRate(stats []RegulatorStat) []RegulatorStat {
	out := make([]RegulatorStat, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ComplianceRate != out[j].ComplianceRate {
			return out[i].ComplianceRate > out[j].ComplianceRate
		}
		return out[i].Regulator < out[j].Regulator
	})
	return out
}

// Rating grades a single regulator's compliance rate on the dashboard.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingModerate  Rating = "Moderate"
	RatingPoor      Rating = "Poor"
	RatingCritical  Rating = "Critical"
)

var ratingDescriptions = map[Rating]string{
	RatingExcellent: "Full compliance achieved",
	RatingGood:      "Minor gaps to address",
	RatingModerate:  "Significant improvement needed",
	RatingPoor:      "Major compliance issues",
	RatingCritical:  "Immediate action required",
}

// RatingBands lists each rating with the lowest rate that earns it.
var RatingBands = []struct {
	Rating Rating
	Min    int
}{
	{RatingExcellent, 90},
	{RatingGood, 75},
	{RatingModerate, 60},
	{RatingPoor, 40},
	{RatingCritical, 0},
}

func RateRating(rate int) Rating {
	for _, b := range RatingBands {
		if rate >= b.Min {
			return b.Rating
		}
	}
	return RatingCritical
}

func (r Rating) Description() string {
	return ratingDescriptions[r]
}

type PostureSummary struct {
	AverageRate int
	Label       string
}

// Posture averages the regulator rates into a one-line summary. It reports
// false when there are no regulators.
func Posture(stats []RegulatorStat) (PostureSummary, bool) {
	if len(stats) == 0 {
		return PostureSummary{}, false
	}
	sum := 0
	for _, s := range stats {
		sum += s.ComplianceRate
	}
	avg := int(math.Round(float64(sum) / float64(len(stats))))

	label := "Needs improvement"
	switch {
	case avg >= 75:
		label = "Strong compliance posture"
	case avg >= 50:
		label = "Moderate compliance status"
	}
	return PostureSummary{AverageRate: avg, Label: label}, true
}
