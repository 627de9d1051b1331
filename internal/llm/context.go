package llm

import "context"

// Purpose labels what a call is for. It is recorded with every LLM event.
type Purpose string

const (
	PurposeQuestion  Purpose = "question"
	PurposeFollowUp  Purpose = "follow-up"
	PurposeAnalysis  Purpose = "analysis"
	PurposeNarrative Purpose = "narrative"
)

type purposeKey struct{}

// WithPurpose attaches a purpose label to ctx.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the purpose attached to ctx, or "unknown".
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok {
		return p
	}
	return "unknown"
}
