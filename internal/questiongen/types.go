package questiongen

import (
	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/pipeline"
)

// Question is what the assistant asks for a module.
type Question struct {
	Text           string   `json:"question"`
	EducationalTip string   `json:"educational_tip,omitempty"`
	FollowUps      []string `json:"follow_up_questions,omitempty"`

	// Degraded is set when Text is the canned locale question rather
	// than a generated one. Reason holds the generator error.
	Degraded bool  `json:"-"`
	Reason   error `json:"-"`
}

// Input is the context a question is generated from.
type Input struct {
	// SessionID scopes the in-flight guard to one conversation.
	SessionID string

	Module       pipeline.ModuleID
	OriginalIdea string
	// Context is the running Q/A transcript of prior modules.
	Context string
	Locale  locale.Locale

	// PriorQuestions are questions already asked in the conversation; a
	// generated question must not repeat one.
	PriorQuestions []string
}

// FollowUpInput asks for a narrower question on the same module after
// an answer was judged incomplete.
type FollowUpInput struct {
	Input

	Answer   string
	Insights string
}
