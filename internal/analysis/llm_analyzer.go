package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/ideaforge/internal/llm"
	"github.com/abhisek/ideaforge/internal/pipeline"
)

// LLMAnalyzerConfig holds configuration for the LLM analyzer.
type LLMAnalyzerConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMAnalyzerConfig returns sensible defaults.
func DefaultLLMAnalyzerConfig() LLMAnalyzerConfig {
	return LLMAnalyzerConfig{
		MaxTokens:   300,
		Temperature: 0.2,
	}
}

// LLMAnalyzer scores answers with an LLM.
type LLMAnalyzer struct {
	provider llm.Provider
	cfg      LLMAnalyzerConfig
}

// NewLLMAnalyzer creates an LLM-based analyzer.
func NewLLMAnalyzer(provider llm.Provider, cfg LLMAnalyzerConfig) *LLMAnalyzer {
	return &LLMAnalyzer{provider: provider, cfg: cfg}
}

type progressOutput struct {
	Completeness int    `json:"completeness"`
	Insights     string `json:"insights"`
	NeedsMore    bool   `json:"needs_more"`
}

// Analyze asks the model to score in.Answer. The model's needs_more is
// kept as returned; the AdvanceThreshold applies only to heuristic scores.
func (a *LLMAnalyzer) Analyze(ctx context.Context, in Input) (pipeline.Progress, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)

	var buf bytes.Buffer
	if err := analysisUserTemplate.Execute(&buf, templateData{
		Input:    in,
		Topic:    strings.ReplaceAll(string(in.Module), "_", " "),
		Language: in.Locale.LanguageName(),
	}); err != nil {
		return pipeline.Progress{}, fmt.Errorf("build analysis prompt: %w", err)
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      analysisSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buf.String()}},
		Schema:      ProgressSchema,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return pipeline.Progress{}, fmt.Errorf("LLM analysis failed: %w", err)
	}

	var raw progressOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return pipeline.Progress{}, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return pipeline.Progress{
		Completeness: pipeline.ClampCompleteness(raw.Completeness),
		Insights:     strings.TrimSpace(raw.Insights),
		NeedsMore:    raw.NeedsMore,
	}, nil
}

var analysisSystemPrompt = fmt.Sprintf(`You are an experienced startup mentor reviewing a founder's answer about one aspect of their business idea.

Instructions:
- Score how completely the answer covers the topic, from 0 to 100.
- An answer that names a concrete group, number, mechanism or example scores higher than a vague one.
- Set needs_more to true when an important part of the topic is missing; a score of %d or more usually means the founder can move on.
- Keep insights to one or two sentences, written in the language requested.`, AdvanceThreshold)

type templateData struct {
	Input
	Topic    string
	Language string
}

var analysisUserTemplate = template.Must(template.New("analysis").Parse(`Idea: {{.OriginalIdea}}
Topic: {{.Topic}}
Language for insights: {{.Language}}

Conversation so far:
{{if .Context}}{{.Context}}{{else}}None{{end}}

Answer to score:
{{.Answer}}`))
