package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/jbonatakis/attest/internal/catalog/catalogtest"
)

func TestDefaultCatalogQuestionCounts(t *testing.T) {
	c := catalogtest.Reference(t)

	if got := c.QuestionCount(catalog.VariantPreCloud); got != 30 {
		t.Fatalf("expected 30 pre-cloud questions, got %d", got)
	}
	if got := c.QuestionCount(catalog.VariantPostCloud); got != 40 {
		t.Fatalf("expected 40 post-cloud questions, got %d", got)
	}
	if c.Version() == "" {
		t.Fatalf("expected catalog version to be set")
	}
}

func TestDefaultCatalogQuestionsAreWellFormed(t *testing.T) {
	c := catalogtest.Reference(t)

	for _, v := range catalog.Variants {
		set, ok := c.Set(v)
		if !ok {
			t.Fatalf("missing variant %s", v)
		}
		seen := map[string]bool{}
		for i, q := range set.Questions() {
			if seen[q.ID()] {
				t.Fatalf("%s: duplicate id %q", v, q.ID())
			}
			seen[q.ID()] = true
			if len(q.RegulatorLabels()) == 0 {
				t.Fatalf("%s[%d]: empty regulator labels", v, i)
			}
			if q.BaseRemediation() == "" {
				t.Fatalf("%s[%d]: empty remediation", v, i)
			}
			if q.Category() == "" {
				t.Fatalf("%s[%d]: empty category", v, i)
			}
			got, ok := set.Lookup(q.ID())
			if !ok || got.ID() != q.ID() {
				t.Fatalf("%s: lookup %q failed", v, q.ID())
			}
			at, ok := set.At(i)
			if !ok || at.ID() != q.ID() {
				t.Fatalf("%s: At(%d) = %v, want %q", v, i, at, q.ID())
			}
		}
	}
}

func TestDefaultCatalogVariantShapes(t *testing.T) {
	c := catalogtest.Reference(t)

	pre, _ := c.Set(catalog.VariantPreCloud)
	cats := pre.Categories()
	if len(cats) != 1 || cats[0].Name != catalog.DefaultPreCloudCategory {
		t.Fatalf("expected single implicit pre-cloud category, got %#v", cats)
	}
	for _, q := range pre.Questions() {
		if _, ok := q.(catalog.PreCloudQuestion); !ok {
			t.Fatalf("expected PreCloudQuestion, got %T", q)
		}
	}

	post, _ := c.Set(catalog.VariantPostCloud)
	names := map[string]bool{}
	for _, cat := range post.Categories() {
		names[cat.Name] = true
		for _, q := range cat.Questions {
			pq, ok := q.(catalog.PostCloudQuestion)
			if !ok {
				t.Fatalf("expected PostCloudQuestion, got %T", q)
			}
			if pq.Category() != cat.Name {
				t.Fatalf("question %s: category %q, want %q", pq.ID(), pq.Category(), cat.Name)
			}
		}
	}
	if !names["Data Residency Compliance"] {
		t.Fatalf("expected Data Residency Compliance category, got %v", names)
	}
}

func TestDefaultCatalogBands(t *testing.T) {
	c := catalogtest.Reference(t)

	tests := []struct {
		variant catalog.Variant
		want    []int
	}{
		{catalog.VariantPreCloud, []int{27, 24, 21, 18, 15, 0}},
		{catalog.VariantPostCloud, []int{34, 30, 26, 22, 18, 0}},
	}
	for _, tt := range tests {
		set, _ := c.Set(tt.variant)
		bands := set.Bands()
		if len(bands) != len(tt.want) {
			t.Fatalf("%s: expected %d bands, got %d", tt.variant, len(tt.want), len(bands))
		}
		for i, b := range bands {
			if b.Min != tt.want[i] || b.Level != catalog.Levels[i] {
				t.Fatalf("%s band %d: got %+v, want %s>=%d", tt.variant, i, b, catalog.Levels[i], tt.want[i])
			}
		}
	}
}

func TestPriorityDefaultsToMedium(t *testing.T) {
	c := catalogtest.Small(t)
	set, _ := c.Set(catalog.VariantPreCloud)

	q, _ := set.Lookup("p2")
	if q.Priority() != catalog.PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", q.Priority())
	}
	q, _ = set.Lookup("p1")
	if q.Priority() != catalog.PriorityCritical {
		t.Fatalf("expected critical, got %q", q.Priority())
	}
	if (catalog.PreCloudQuestion{}).Priority() != catalog.PriorityMedium {
		t.Fatalf("expected zero-value question to default to medium")
	}
}

func TestRegulatorLabelsReturnsCopy(t *testing.T) {
	c := catalogtest.Small(t)
	set, _ := c.Set(catalog.VariantPreCloud)
	q, _ := set.Lookup("p2")

	labels := q.RegulatorLabels()
	labels[0] = "MUTATED"
	if again := q.RegulatorLabels(); again[0] != "NDPR" {
		t.Fatalf("catalog was mutated through returned labels: %v", again)
	}
}

func TestSetMissingVariant(t *testing.T) {
	f := catalogtest.SmallFile()
	delete(f.Variants, "post-cloud")
	c, err := catalog.New(f)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := c.Set(catalog.VariantPostCloud); ok {
		t.Fatalf("expected post-cloud to be missing")
	}
	if c.QuestionCount(catalog.VariantPostCloud) != 0 {
		t.Fatalf("expected zero post-cloud questions")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, catalog.ErrCatalogNotFound) {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}
}

func TestLoadReferenceCopyFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, catalog.ReferenceYAML(), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.QuestionCount(catalog.VariantPreCloud) != 30 {
		t.Fatalf("expected 30 pre-cloud questions from disk copy")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	data := []byte("version: x\nvariants: {}\nextra: true\n")
	if _, err := catalog.Parse("inline", data); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseReportsValidationErrors(t *testing.T) {
	data := []byte(`
version: x
variants:
  pre-cloud:
    bands: []
    questions:
      - {id: a, question: "Q?", regulations: [NDPR], actions: "Do it."}
      - {id: a, question: "", regulations: [], actions: ""}
`)
	_, err := catalog.Parse("inline", data)
	var invalid *catalog.InvalidCatalogError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidCatalogError, got %v", err)
	}
	msg := invalid.Error()
	for _, want := range []string{"duplicate id", "question: required", "regulations: required", "actions: required", "expected 6 bands"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in error, got:\n%s", want, msg)
		}
	}
}
