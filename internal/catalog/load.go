package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultPreCloudCategory is the implicit category of the flat pre-cloud set.
const DefaultPreCloudCategory = "Pre-Cloud Assessment"

var ErrCatalogNotFound = errors.New("catalog file not found")

//go:embed reference.yaml
var referenceYAML []byte

// File is the on-disk catalog shape.
type File struct {
	Version  string                `yaml:"version"`
	Variants map[string]RawVariant `yaml:"variants"`
}

// RawVariant holds either a flat question list (pre-cloud) or named
// categories (post-cloud).
type RawVariant struct {
	Category   string        `yaml:"category,omitempty"`
	Bands      []RawBand     `yaml:"bands"`
	Questions  []RawQuestion `yaml:"questions,omitempty"`
	Categories []RawCategory `yaml:"categories,omitempty"`
}

type RawCategory struct {
	Name      string        `yaml:"name"`
	Questions []RawQuestion `yaml:"questions"`
}

// RawQuestion carries both variants' field names; validation enforces
// which pair applies.
type RawQuestion struct {
	ID              string   `yaml:"id"`
	Question        string   `yaml:"question"`
	Regulations     []string `yaml:"regulations,omitempty"`
	Actions         string   `yaml:"actions,omitempty"`
	RegulatoryBody  []string `yaml:"regulatoryBody,omitempty"`
	Remediation     string   `yaml:"remediation,omitempty"`
	Priority        string   `yaml:"priority,omitempty"`
	ShouldHaveInput bool     `yaml:"shouldHaveInput,omitempty"`
}

type RawBand struct {
	Level string `yaml:"level"`
	Min   int    `yaml:"min"`
}

// InvalidCatalogError reports every validation problem found while loading.
type InvalidCatalogError struct {
	Source string
	Errs   []ValidationError
}

func (e *InvalidCatalogError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid catalog %s:", e.Source)
	for _, v := range e.Errs {
		fmt.Fprintf(&b, "\n- %s", v.Error())
	}
	return b.String()
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse("reference catalog", referenceYAML)
})

// Default returns the embedded reference catalog.
func Default() (*Catalog, error) {
	return loadDefault()
}

// ReferenceYAML returns a copy of the embedded catalog source.
func ReferenceYAML() []byte {
	return bytes.Clone(referenceYAML)
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(path, b)
}

// Decode parses catalog YAML without validating it. Unknown keys are rejected.
func Decode(source string, data []byte) (File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("parse catalog %s: empty document", source)
		}
		return File{}, fmt.Errorf("parse catalog %s: %w", source, err)
	}
	return f, nil
}

// Parse decodes, validates and builds a catalog.
func Parse(source string, data []byte) (*Catalog, error) {
	f, err := Decode(source, data)
	if err != nil {
		return nil, err
	}
	return build(source, f)
}

// New builds a catalog from an in-memory file description.
func New(f File) (*Catalog, error) {
	return build("in-memory catalog", f)
}

func build(source string, f File) (*Catalog, error) {
	if errs := Validate(f); len(errs) != 0 {
		return nil, &InvalidCatalogError{Source: source, Errs: errs}
	}

	c := &Catalog{
		version: f.Version,
		sets:    map[Variant]*QuestionSet{},
	}
	for key, raw := range f.Variants {
		v, _ := ParseVariant(key)
		c.sets[v] = buildSet(v, raw)
	}
	return c, nil
}

func buildSet(v Variant, raw RawVariant) *QuestionSet {
	s := &QuestionSet{
		variant: v,
		index:   map[string]int{},
	}
	for _, b := range raw.Bands {
		level, _ := ParseLevel(b.Level)
		s.bands = append(s.bands, Band{Level: level, Min: b.Min})
	}

	add := func(cat *Category, q Question) {
		s.index[q.ID()] = len(s.questions)
		s.questions = append(s.questions, q)
		cat.Questions = append(cat.Questions, q)
	}

	switch v {
	case VariantPreCloud:
		name := strings.TrimSpace(raw.Category)
		if name == "" {
			name = DefaultPreCloudCategory
		}
		cat := Category{Name: name}
		for _, rq := range raw.Questions {
			prio, _ := ParsePriority(rq.Priority)
			add(&cat, PreCloudQuestion{
				Key:             rq.ID,
				Prompt:          rq.Question,
				Regulations:     trimLabels(rq.Regulations),
				Actions:         rq.Actions,
				Level:           prio,
				ShouldHaveInput: rq.ShouldHaveInput,
				category:        name,
			})
		}
		s.categories = append(s.categories, cat)
	case VariantPostCloud:
		for _, rc := range raw.Categories {
			name := strings.TrimSpace(rc.Name)
			cat := Category{Name: name}
			for _, rq := range rc.Questions {
				prio, _ := ParsePriority(rq.Priority)
				add(&cat, PostCloudQuestion{
					Key:             rq.ID,
					Prompt:          rq.Question,
					RegulatoryBody:  trimLabels(rq.RegulatoryBody),
					Remediation:     rq.Remediation,
					Level:           prio,
					ShouldHaveInput: rq.ShouldHaveInput,
					category:        name,
				})
			}
			s.categories = append(s.categories, cat)
		}
	}
	return s
}

func trimLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		out = append(out, strings.TrimSpace(l))
	}
	return out
}
