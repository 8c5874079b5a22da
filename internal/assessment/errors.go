package assessment

import "errors"

var (
	// ErrEmptyCatalog means no questions resolve for the profile's cloud
	// status. The assessment cannot start until the profile is completed.
	ErrEmptyCatalog = errors.New("no questions for the selected cloud status; please complete company info")

	// ErrNoCurrentQuestion is returned when the current question is
	// requested after the assessment completed.
	ErrNoCurrentQuestion = errors.New("assessment complete: no current question")

	// ErrNoPreviousQuestion is returned by GoBack at the first question.
	// The session is left unchanged.
	ErrNoPreviousQuestion = errors.New("already at the first question")

	ErrAssessmentComplete = errors.New("assessment already complete")
	ErrBlankAnswer        = errors.New("answer must not be blank")
)
