// Package assessment implements the questionnaire state machine. A Session
// walks one catalog variant in order; its position is always the number of
// recorded answers, so going back is a pop.
package assessment

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jbonatakis/attest/internal/catalog"
	"github.com/jbonatakis/attest/internal/profile"
)

// Session owns the answer sequence of one in-progress assessment. It is not
// safe for concurrent use; the catalog it reads from is.
type Session struct {
	id      string
	catalog *catalog.Catalog
	profile profile.Profile
	set     *catalog.QuestionSet
	answers []Answer
}

// Current is the question at the session's position.
type Current struct {
	Number   int
	Total    int
	Question catalog.Question
	Category string
}

// Snapshot is a frozen copy of a session's answers and the question set
// they index into.
type Snapshot struct {
	SessionID string
	Variant   catalog.Variant
	Profile   profile.Profile
	Set       *catalog.QuestionSet
	Answers   []Answer
	Complete  bool
}

// Start resolves the variant from the profile and opens a session at the
// first question.
func Start(cat *catalog.Catalog, p profile.Profile) (*Session, error) {
	set, err := resolve(cat, p)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:      uuid.NewString(),
		catalog: cat,
		profile: p,
		set:     set,
		answers: make([]Answer, 0, set.Len()),
	}, nil
}

func resolve(cat *catalog.Catalog, p profile.Profile) (*catalog.QuestionSet, error) {
	v, ok := p.Variant()
	if !ok {
		return nil, ErrEmptyCatalog
	}
	set, ok := cat.Set(v)
	if !ok {
		return nil, ErrEmptyCatalog
	}
	return set, nil
}

func (s *Session) ID() string                        { return s.id }
func (s *Session) Variant() catalog.Variant          { return s.set.Variant() }
func (s *Session) Profile() profile.Profile          { return s.profile }
func (s *Session) QuestionSet() *catalog.QuestionSet { return s.set }
func (s *Session) Position() int                     { return len(s.answers) }
func (s *Session) Total() int                        { return s.set.Len() }

func (s *Session) IsComplete() bool {
	return len(s.answers) >= s.set.Len()
}

// CurrentQuestion returns the next question to answer.
func (s *Session) CurrentQuestion() (Current, error) {
	if s.IsComplete() {
		return Current{}, ErrNoCurrentQuestion
	}
	pos := len(s.answers)
	q, _ := s.set.At(pos)
	return Current{
		Number:   pos + 1,
		Total:    s.set.Len(),
		Question: q,
		Category: q.Category(),
	}, nil
}

// SubmitAnswer records a response to the current question and advances.
// Only the exact values "yes" and "no" count as yes/no answers; anything
// else is stored verbatim as free text.
func (s *Session) SubmitAnswer(value string) error {
	if s.IsComplete() {
		return ErrAssessmentComplete
	}
	if strings.TrimSpace(value) == "" {
		return ErrBlankAnswer
	}
	q, _ := s.set.At(len(s.answers))
	s.answers = append(s.answers, Answer{
		QuestionID:   q.ID(),
		Question:     q.Text(),
		Category:     q.Category(),
		Value:        value,
		IsTextAnswer: isFreeText(value),
	})
	return nil
}

// GoBack discards the most recent answer. It is unavailable once the
// assessment is complete; use Restart instead.
func (s *Session) GoBack() error {
	if s.IsComplete() {
		return ErrAssessmentComplete
	}
	if len(s.answers) == 0 {
		return ErrNoPreviousQuestion
	}
	s.answers[len(s.answers)-1] = Answer{}
	s.answers = s.answers[:len(s.answers)-1]
	return nil
}

// Restart clears every answer and re-resolves the variant from p. When p
// resolves to no questions the session is left as it was.
func (s *Session) Restart(p profile.Profile) error {
	set, err := resolve(s.catalog, p)
	if err != nil {
		return err
	}
	s.id = uuid.NewString()
	s.profile = p
	s.set = set
	s.answers = make([]Answer, 0, set.Len())
	return nil
}

// Answers returns a copy of the recorded answers in question order.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SessionID: s.id,
		Variant:   s.set.Variant(),
		Profile:   s.profile,
		Set:       s.set,
		Answers:   s.Answers(),
		Complete:  s.IsComplete(),
	}
}
