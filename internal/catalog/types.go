package catalog

import "strings"

type Variant string

const (
	VariantPreCloud  Variant = "pre-cloud"
	VariantPostCloud Variant = "post-cloud"
)

// Variants lists the supported variants in display order.
var Variants = []Variant{VariantPreCloud, VariantPostCloud}

// ParseVariant validates and parses a variant string.
func ParseVariant(s string) (Variant, bool) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantPreCloud:
		return VariantPreCloud, true
	case VariantPostCloud:
		return VariantPostCloud, true
	default:
		return "", false
	}
}

func (v Variant) Label() string {
	switch v {
	case VariantPreCloud:
		return "Pre-Cloud"
	case VariantPostCloud:
		return "Post-Cloud"
	default:
		return string(v)
	}
}

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
)

// ParsePriority parses a priority tag. An empty tag means medium.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case "", PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityCritical:
		return PriorityCritical, true
	default:
		return "", false
	}
}

// Rank orders priorities for display: critical first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	default:
		return 2
	}
}

// Question is the capability shared by both catalog variants. The
// recommendation and aggregation code only ever sees this interface.
type Question interface {
	ID() string
	Text() string
	Category() string
	RegulatorLabels() []string
	BaseRemediation() string
	Priority() Priority
	RequiresTextInput() bool
}

// PreCloudQuestion belongs to the flat pre-cloud set.
type PreCloudQuestion struct {
	Key             string
	Prompt          string
	Regulations     []string
	Actions         string
	Level           Priority
	ShouldHaveInput bool
	category        string
}

func (q PreCloudQuestion) ID() string                { return q.Key }
func (q PreCloudQuestion) Text() string              { return q.Prompt }
func (q PreCloudQuestion) Category() string          { return q.category }
func (q PreCloudQuestion) RegulatorLabels() []string { return cloneStrings(q.Regulations) }
func (q PreCloudQuestion) BaseRemediation() string   { return q.Actions }
func (q PreCloudQuestion) RequiresTextInput() bool   { return q.ShouldHaveInput }

func (q PreCloudQuestion) Priority() Priority {
	if q.Level == "" {
		return PriorityMedium
	}
	return q.Level
}

// PostCloudQuestion belongs to a named post-cloud category.
type PostCloudQuestion struct {
	Key             string
	Prompt          string
	RegulatoryBody  []string
	Remediation     string
	Level           Priority
	ShouldHaveInput bool
	category        string
}

func (q PostCloudQuestion) ID() string                { return q.Key }
func (q PostCloudQuestion) Text() string              { return q.Prompt }
func (q PostCloudQuestion) Category() string          { return q.category }
func (q PostCloudQuestion) RegulatorLabels() []string { return cloneStrings(q.RegulatoryBody) }
func (q PostCloudQuestion) BaseRemediation() string   { return q.Remediation }
func (q PostCloudQuestion) RequiresTextInput() bool   { return q.ShouldHaveInput }

func (q PostCloudQuestion) Priority() Priority {
	if q.Level == "" {
		return PriorityMedium
	}
	return q.Level
}

type Category struct {
	Name      string
	Questions []Question
}

// QuestionSet is the ordered question list for one variant. Order defines
// question numbering and navigation.
type QuestionSet struct {
	variant    Variant
	categories []Category
	questions  []Question
	index      map[string]int
	bands      []Band
}

func (s *QuestionSet) Variant() Variant { return s.variant }

func (s *QuestionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.questions)
}

// At returns the question at position i.
func (s *QuestionSet) At(i int) (Question, bool) {
	if s == nil || i < 0 || i >= len(s.questions) {
		return nil, false
	}
	return s.questions[i], true
}

// Lookup finds a question by identifier.
func (s *QuestionSet) Lookup(id string) (Question, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.questions[i], true
}

// Questions returns the questions in catalog order.
func (s *QuestionSet) Questions() []Question {
	if s == nil {
		return nil
	}
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

func (s *QuestionSet) Categories() []Category {
	if s == nil {
		return nil
	}
	out := make([]Category, len(s.categories))
	for i, c := range s.categories {
		qs := make([]Question, len(c.Questions))
		copy(qs, c.Questions)
		out[i] = Category{Name: c.Name, Questions: qs}
	}
	return out
}

// Bands returns the score ladder, highest level first.
func (s *QuestionSet) Bands() []Band {
	if s == nil {
		return nil
	}
	out := make([]Band, len(s.bands))
	copy(out, s.bands)
	return out
}

// Catalog is read-only after construction and safe to share.
type Catalog struct {
	version string
	sets    map[Variant]*QuestionSet
}

func (c *Catalog) Version() string {
	if c == nil {
		return ""
	}
	return c.version
}

// Set returns the question set for a variant. The second result is false
// when the catalog has no questions for it.
func (c *Catalog) Set(v Variant) (*QuestionSet, bool) {
	if c == nil {
		return nil, false
	}
	s, ok := c.sets[v]
	if !ok || s.Len() == 0 {
		return nil, false
	}
	return s, true
}

func (c *Catalog) QuestionCount(v Variant) int {
	s, ok := c.Set(v)
	if !ok {
		return 0
	}
	return s.Len()
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
