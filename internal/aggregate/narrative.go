package aggregate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/ideaforge/internal/llm"
	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/pipeline"
)

// Narrator synthesizes the module answers into one narrative.
type Narrator interface {
	Narrate(ctx context.Context, in Input) (string, error)
}

// NarrativeSchema is the structured output of the narrative call.
var NarrativeSchema = &llm.Schema{
	Name:        "unified-narrative",
	Description: "A single coherent description of a refined business idea",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"unified_narrative": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Two or three short paragraphs telling the idea as one story",
			},
		},
		"required":             []any{"unified_narrative"},
		"additionalProperties": false,
	},
}

// LLMNarrator writes the narrative with an LLM.
type LLMNarrator struct {
	provider  llm.Provider
	maxTokens int
}

// NewLLMNarrator creates an LLM-backed Narrator.
func NewLLMNarrator(provider llm.Provider) *LLMNarrator {
	return &LLMNarrator{provider: provider, maxTokens: 900}
}

func (n *LLMNarrator) Narrate(ctx context.Context, in Input) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeNarrative)

	type section struct{ Topic, Answer string }
	var sections []section
	for _, m := range pipeline.Modules() {
		if a := strings.TrimSpace(in.Answers[m]); a != "" {
			sections = append(sections, section{Topic: strings.ReplaceAll(string(m), "_", " "), Answer: a})
		}
	}

	var buf bytes.Buffer
	err := narrativeTemplate.Execute(&buf, map[string]any{
		"Idea":     in.OriginalIdea,
		"Language": in.Locale.LanguageName(),
		"Sections": sections,
	})
	if err != nil {
		return "", fmt.Errorf("build narrative prompt: %w", err)
	}

	resp, err := n.provider.Generate(ctx, llm.Request{
		System:      narrativeSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buf.String()}},
		Schema:      NarrativeSchema,
		MaxTokens:   n.maxTokens,
		Temperature: 0.6,
	})
	if err != nil {
		return "", fmt.Errorf("LLM narrative failed: %w", err)
	}

	var raw struct {
		UnifiedNarrative string `json:"unified_narrative"`
	}
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return "", fmt.Errorf("failed to parse narrative response: %w", err)
	}
	return strings.TrimSpace(raw.UnifiedNarrative), nil
}

const narrativeSystemPrompt = `You are a startup mentor writing up a founder's refined idea.
Combine their answers into one coherent narrative in the founder's own terms. Do not invent facts, numbers or names they did not give. Plain prose, no headings or bullet points.`

var narrativeTemplate = template.Must(template.New("narrative").Parse(`Original idea: {{.Idea}}
Write in: {{.Language}}
{{range .Sections}}
{{.Topic}}: {{.Answer}}
{{end}}`))

// FallbackNarrative joins the answers in pipeline order with the locale's
// connective phrasing.
func FallbackNarrative(in Input) string {
	cat := locale.For(in.Locale)

	parts := []string{fmt.Sprintf(cat.NarrativeOpening, trimSentence(in.OriginalIdea))}
	for _, m := range pipeline.Modules() {
		a := trimSentence(in.Answers[m])
		if a == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf(cat.Connectives[m], a))
	}
	return strings.Join(parts, " ")
}

// trimSentence drops surrounding space and a trailing full stop so the
// connective's own punctuation reads cleanly.
func trimSentence(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, ".")
}
