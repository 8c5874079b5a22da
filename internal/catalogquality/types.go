package catalogquality

import "github.com/jbonatakis/attest/internal/catalog"

// Severity represents the impact of a catalog quality finding.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityWarning  Severity = "warning"
)

// Finding captures one deterministic quality issue for a question field.
type Finding struct {
	Severity   Severity        `json:"severity"`
	Code       string          `json:"code"`
	Variant    catalog.Variant `json:"variant"`
	QuestionID string          `json:"questionId"`
	Field      string          `json:"field"`
	Message    string          `json:"message"`
	Suggestion string          `json:"suggestion"`
}

// Summary holds counts and findings grouped per question.
type Summary struct {
	Total     int               `json:"total"`
	Blocking  int               `json:"blocking"`
	Warning   int               `json:"warning"`
	Questions []QuestionSummary `json:"questions,omitempty"`
}

type QuestionSummary struct {
	Variant    catalog.Variant `json:"variant"`
	QuestionID string          `json:"questionId"`
	Blocking   int             `json:"blocking"`
	Warning    int             `json:"warning"`
	Findings   []Finding       `json:"findings,omitempty"`
}
