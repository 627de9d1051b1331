package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/ideaforge/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, in Input) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestion)

	data := newPromptData(in, g.config)
	system, err := render(systemTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("build system prompt: %w", err)
	}
	user, err := render(userTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("build user prompt: %w", err)
	}

	return g.ask(ctx, in, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
}

func (g *LLMGenerator) FollowUp(ctx context.Context, in FollowUpInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFollowUp)

	data := newPromptData(in.Input, g.config)
	data.Answer = in.Answer
	data.Insights = in.Insights

	system, err := render(followUpTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("build system prompt: %w", err)
	}
	user, err := render(followUpUserTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("build user prompt: %w", err)
	}

	q, err := g.ask(ctx, in.Input, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      FollowUpSchema,
		MaxTokens:   g.config.MaxTokens / 2,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, err
	}
	q.EducationalTip = ""
	q.FollowUps = nil
	return q, nil
}

func (g *LLMGenerator) ask(ctx context.Context, in Input, req llm.Request) (*Question, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var q Question
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&q, in); verr != nil {
			return nil, verr
		}
	}
	return &q, nil
}
