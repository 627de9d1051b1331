package questiongen

import "github.com/abhisek/ideaforge/internal/llm"

// QuestionSchema is the structured output for an opening module question.
var QuestionSchema = &llm.Schema{
	Name:        "module-question",
	Description: "The next question to ask about one aspect of a business idea",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "A single open question, tailored to the idea and the conversation so far",
			},
			"educational_tip": map[string]any{
				"type":        "string",
				"description": "One short sentence teaching a concept relevant to the question. May be empty.",
			},
			"follow_up_questions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    3,
				"description": "Up to three narrower questions to use if the answer is thin",
			},
		},
		"required":             []any{"question"},
		"additionalProperties": false,
	},
}

// FollowUpSchema is the structured output for a follow-up question.
var FollowUpSchema = &llm.Schema{
	Name:        "module-follow-up",
	Description: "A narrower question on the same topic after an incomplete answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "A single question that targets what the previous answer left out",
			},
		},
		"required":             []any{"question"},
		"additionalProperties": false,
	},
}
