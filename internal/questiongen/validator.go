package questiongen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validator checks a generated question before it is shown.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	Name() string
	Validate(q *Question, in Input) *ValidationError
}

// ValidationError describes why a question was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxQuestionRunes = 400
	maxTipRunes      = 400
)

// StructuralValidator checks lengths and trims whitespace.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ Input) *ValidationError {
	q.Text = strings.TrimSpace(q.Text)
	q.EducationalTip = strings.TrimSpace(q.EducationalTip)

	if q.Text == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	if utf8.RuneCountInString(q.Text) > maxQuestionRunes {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question exceeds %d characters", maxQuestionRunes)}
	}
	if utf8.RuneCountInString(q.EducationalTip) > maxTipRunes {
		q.EducationalTip = ""
	}
	return nil
}

// RepeatValidator rejects a question that was already asked in the
// conversation, ignoring case and surrounding punctuation.
type RepeatValidator struct{}

func (v *RepeatValidator) Name() string { return "repeat" }

func (v *RepeatValidator) Validate(q *Question, in Input) *ValidationError {
	got := normalize(q.Text)
	for _, prior := range in.PriorQuestions {
		if normalize(prior) == got {
			return &ValidationError{Validator: v.Name(), Message: "question was already asked"}
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), "?¿!¡. "))
}
