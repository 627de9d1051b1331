package analysis

import (
	"context"

	"github.com/abhisek/ideaforge/internal/pipeline"
	"github.com/abhisek/ideaforge/internal/quality"
)

// Analyzer scores an answer for completeness.
type Analyzer interface {
	Analyze(ctx context.Context, in Input) (pipeline.Progress, error)
}

// HeuristicAnalyzer scores answers with the text quality heuristic alone.
// It is the analyzer used when no LLM is configured.
type HeuristicAnalyzer struct{}

func (HeuristicAnalyzer) Analyze(_ context.Context, in Input) (pipeline.Progress, error) {
	return Heuristic(in), nil
}

// Heuristic maps the quality score of the answer text directly to
// completeness.
func Heuristic(in Input) pipeline.Progress {
	r := quality.Score(in.Answer, in.Locale)
	return pipeline.Progress{
		Completeness: r.Score,
		Insights:     heuristicInsights(r),
		NeedsMore:    r.Score < AdvanceThreshold,
	}
}

func heuristicInsights(r quality.Report) string {
	if len(r.Issues) == 0 {
		return ""
	}
	out := r.Issues[0]
	if len(r.Suggestions) > 0 {
		out += " " + r.Suggestions[0]
	}
	return out
}
