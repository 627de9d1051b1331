package questiongen

import "context"

// Generator produces module questions, typically by calling an LLM.
type Generator interface {
	// Generate produces the opening question for in.Module.
	Generate(ctx context.Context, in Input) (*Question, error)

	// FollowUp produces a narrower question for the same module.
	FollowUp(ctx context.Context, in FollowUpInput) (*Question, error)
}
