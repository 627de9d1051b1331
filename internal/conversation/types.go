// Package conversation drives one idea through the module pipeline: it asks
// a question per module, scores each answer, asks follow-ups while an answer
// is incomplete and hands the collected answers to the aggregator once every
// module is done.
package conversation

import (
	"time"

	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/pipeline"
)

// Status is the externally visible state of a Session.
type Status int

const (
	// Active means the current module is waiting for a question, or the
	// session is between steps.
	Active Status = iota
	// AwaitingAnswer means a question was asked and Submit is accepted.
	AwaitingAnswer
	Completed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case AwaitingAnswer:
		return "awaiting_answer"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == Completed || s == Cancelled
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Role is the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the transcript. Messages are never edited or
// removed once appended.
type Message struct {
	ID        string            `json:"id"`
	Role      Role              `json:"role"`
	Content   string            `json:"content"`
	Module    pipeline.ModuleID `json:"module_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID           string                                  `json:"id"`
	OriginalIdea string                                  `json:"original_idea"`
	Locale       locale.Locale                           `json:"locale"`
	Status       Status                                  `json:"status"`
	ModuleIndex  int                                     `json:"module_index"`
	Module       pipeline.ModuleID                       `json:"module,omitempty"`
	Answers      map[pipeline.ModuleID]string            `json:"answers"`
	Progress     map[pipeline.ModuleID]pipeline.Progress `json:"progress"`
	Transcript   []Message                               `json:"transcript"`
	Context      string                                  `json:"-"`
}
