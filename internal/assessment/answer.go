package assessment

const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// Answer is one recorded response. Question and Category echo the catalog
// at the time the answer was given.
type Answer struct {
	QuestionID   string `json:"questionId" yaml:"questionId"`
	Question     string `json:"question" yaml:"question"`
	Category     string `json:"category" yaml:"category"`
	Value        string `json:"answer" yaml:"answer"`
	IsTextAnswer bool   `json:"isTextAnswer" yaml:"isTextAnswer"`
}

// IsYes reports a satisfied control.
func (a Answer) IsYes() bool {
	return !a.IsTextAnswer && a.Value == AnswerYes
}

// IsActionable reports whether the answer produces a recommendation:
// every "no" and every free-text response.
func (a Answer) IsActionable() bool {
	return a.IsTextAnswer || a.Value == AnswerNo
}

// isFreeText treats only the exact tokens "yes" and "no" as yes/no answers.
func isFreeText(value string) bool {
	return value != AnswerYes && value != AnswerNo
}
