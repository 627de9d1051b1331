package analysis

import "github.com/abhisek/ideaforge/internal/llm"

// ProgressSchema is the structured output of the analysis call.
var ProgressSchema = &llm.Schema{
	Name:        "answer-analysis",
	Description: "How completely an answer covers one aspect of a business idea",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"completeness": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "0 means the answer says nothing useful about the topic, 100 means nothing important is missing",
			},
			"insights": map[string]any{
				"type":        "string",
				"description": "One or two sentences on what is strong and what is missing",
			},
			"needs_more": map[string]any{
				"type":        "boolean",
				"description": "True if the founder should elaborate before moving on",
			},
		},
		"required":             []any{"completeness", "insights", "needs_more"},
		"additionalProperties": false,
	},
}
