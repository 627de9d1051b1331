package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when non-empty
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and reads back LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// IdeaRecord is a completed idea with its refined modules and the
// conversation that produced it.
type IdeaRecord struct {
	ID                  string
	OriginalIdea        string
	OverallCompleteness int
	Grade               string
	Narrative           string
	Locale              string
	CreatedAt           time.Time
	Modules             []ModuleRecord
	Messages            []MessageRecord
}

// ModuleRecord is the outcome of one pipeline module.
type ModuleRecord struct {
	ModuleID     string
	Position     int
	Answer       string
	Completeness int
	Insights     string
}

// MessageRecord is one transcript line. ModuleID is empty for messages
// not tied to a module (welcome, completion).
type MessageRecord struct {
	ID        string
	Position  int
	Role      string
	ModuleID  string
	Content   string
	CreatedAt time.Time
}

// IdeaSummary is the list view of an IdeaRecord.
type IdeaSummary struct {
	ID                  string
	OriginalIdea        string
	OverallCompleteness int
	Grade               string
	CreatedAt           time.Time
}

// IdeaRepo stores completed ideas.
type IdeaRepo interface {
	// SaveIdea writes the idea, modules and transcript in one transaction.
	SaveIdea(ctx context.Context, rec *IdeaRecord) error

	// ListIdeas returns summaries newest first. limit <= 0 means all.
	ListIdeas(ctx context.Context, limit int) ([]IdeaSummary, error)

	// GetIdea returns a full record, or nil if it does not exist.
	GetIdea(ctx context.Context, id string) (*IdeaRecord, error)

	// DeleteIdea removes an idea and, by cascade, its modules and messages.
	// Deleting a missing idea is not an error.
	DeleteIdea(ctx context.Context, id string) error
}
