// Package catalogtest builds small synthetic catalogs for tests.
package catalogtest

import (
	"fmt"
	"testing"

	"github.com/jbonatakis/attest/internal/catalog"
)

// PreBands is a ladder for a five-question pre-cloud set.
func PreBands() []catalog.RawBand {
	return []catalog.RawBand{
		{Level: "excellent", Min: 5},
		{Level: "good", Min: 4},
		{Level: "moderate", Min: 3},
		{Level: "significant", Min: 2},
		{Level: "major", Min: 1},
		{Level: "critical", Min: 0},
	}
}

// PostBands is a ladder for a six-question post-cloud set.
func PostBands() []catalog.RawBand {
	return []catalog.RawBand{
		{Level: "excellent", Min: 6},
		{Level: "good", Min: 5},
		{Level: "moderate", Min: 4},
		{Level: "significant", Min: 3},
		{Level: "major", Min: 2},
		{Level: "critical", Min: 0},
	}
}

// SmallFile returns a valid catalog description: five pre-cloud questions
// (p3 takes free text) and six post-cloud questions in two categories
// (c1 carries the composite "NITDA & CBN" label).
func SmallFile() catalog.File {
	pre := make([]catalog.RawQuestion, 0, 5)
	for i := 1; i <= 5; i++ {
		pre = append(pre, catalog.RawQuestion{
			ID:          fmt.Sprintf("p%d", i),
			Question:    fmt.Sprintf("Pre question %d?", i),
			Regulations: []string{"NDPR"},
			Actions:     fmt.Sprintf("Do pre action %d.", i),
		})
	}
	pre[0].Priority = "critical"
	pre[1].Regulations = []string{"NDPR", "CBN"}
	pre[2].ShouldHaveInput = true
	pre[3].Priority = "high"

	return catalog.File{
		Version: "test",
		Variants: map[string]catalog.RawVariant{
			"pre-cloud": {
				Bands:     PreBands(),
				Questions: pre,
			},
			"post-cloud": {
				Bands: PostBands(),
				Categories: []catalog.RawCategory{
					{
						Name: "Residency",
						Questions: []catalog.RawQuestion{
							{ID: "c1", Question: "Is data in-country?", RegulatoryBody: []string{"NITDA & CBN"}, Remediation: "Move data home.", Priority: "critical"},
							{ID: "c2", Question: "Is replication blocked?", RegulatoryBody: []string{"CBN"}, Remediation: "Block replication."},
							{ID: "c3", Question: "Which regions?", RegulatoryBody: []string{"NITDA"}, Remediation: "Review regions.", ShouldHaveInput: true},
						},
					},
					{
						Name: "Access",
						Questions: []catalog.RawQuestion{
							{ID: "c4", Question: "Is MFA on?", RegulatoryBody: []string{"NITDA", "NDPR"}, Remediation: "Enable MFA.", Priority: "high"},
							{ID: "c5", Question: "Is RBAC enforced?", RegulatoryBody: []string{"NDPR"}, Remediation: "Enforce RBAC."},
							{ID: "c6", Question: "Are admin actions logged?", RegulatoryBody: []string{"NITDA"}, Remediation: "Log admin actions."},
						},
					},
				},
			},
		},
	}
}

// Small builds SmallFile or fails the test.
func Small(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(SmallFile())
	if err != nil {
		t.Fatalf("build small catalog: %v", err)
	}
	return c
}

// Reference loads the embedded catalog or fails the test.
func Reference(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load reference catalog: %v", err)
	}
	return c
}
