// Package aggregate turns a finished conversation into a CompletedIdea: a
// unified narrative, an overall completeness score and a letter grade.
package aggregate

import (
	"time"

	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/pipeline"
)

// Input is everything the aggregator needs from a finished conversation.
type Input struct {
	OriginalIdea string
	Answers      map[pipeline.ModuleID]string
	Progress     map[pipeline.ModuleID]pipeline.Progress
	Locale       locale.Locale
}

// CompletedIdea is the terminal artifact of a conversation. It is not
// modified after Aggregate returns it.
type CompletedIdea struct {
	ID                  string                       `json:"id"`
	OriginalIdea        string                       `json:"original_idea"`
	ModulesByID         map[pipeline.ModuleID]string `json:"modules"`
	OverallCompleteness int                          `json:"overall_completeness"`
	Grade               string                       `json:"grade"`
	Narrative           string                       `json:"narrative"`
	Locale              locale.Locale                `json:"locale"`
	CreatedAt           time.Time                    `json:"created_at"`

	// NarrativeDegraded is set when Narrative is the concatenation
	// fallback.
	NarrativeDegraded bool `json:"narrative_degraded,omitempty"`
}
