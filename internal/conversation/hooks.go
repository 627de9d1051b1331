package conversation

import (
	"context"

	"github.com/abhisek/ideaforge/internal/aggregate"
	"github.com/abhisek/ideaforge/internal/analysis"
	"github.com/abhisek/ideaforge/internal/pipeline"
	"github.com/abhisek/ideaforge/internal/questiongen"
)

// Hooks are the host notifications of a Session. Every field is optional.
// Hooks are delivered in the order the events happened, one at a time, and
// never while the session's state lock is held, so a hook may call
// Snapshot. A hook must not call Submit, Cancel or ForceComplete
// synchronously.
type Hooks struct {
	OnMessageAppended func(Message)
	OnProgressChanged func(pipeline.ModuleID, pipeline.Progress)
	OnCompleted       func(*aggregate.CompletedIdea)
	OnCancelled       func()
	// OnDegraded fires once per session, the first time a fallback
	// replaces a generated question or an analysis.
	OnDegraded func(reason string)
}

// QuestionSource produces questions. It must always return one, falling
// back to canned copy on failure.
type QuestionSource interface {
	Next(ctx context.Context, in questiongen.Input) *questiongen.Question
	FollowUp(ctx context.Context, in questiongen.FollowUpInput) *questiongen.Question
}

// AnswerAnalyzer scores answers. It must always return a result.
type AnswerAnalyzer interface {
	Analyze(ctx context.Context, in analysis.Input) analysis.Result
}

// Aggregator builds the terminal artifact.
type Aggregator interface {
	Aggregate(ctx context.Context, in aggregate.Input) *aggregate.CompletedIdea
}

var (
	_ QuestionSource = (*questiongen.Service)(nil)
	_ AnswerAnalyzer = (*analysis.Service)(nil)
	_ Aggregator     = (*aggregate.Aggregator)(nil)
)
