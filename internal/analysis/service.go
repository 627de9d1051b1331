// Package analysis scores answers for completeness, using an LLM when
// available and the text quality heuristic otherwise.
package analysis

import (
	"context"
	"log/slog"
	"time"
)

// Service wraps an Analyzer with a timeout and the heuristic fallback.
type Service struct {
	analyzer Analyzer
	timeout  time.Duration
}

// NewService wraps a. A nil a uses HeuristicAnalyzer. timeout bounds each
// call; zero leaves only the caller's deadline.
func NewService(a Analyzer, timeout time.Duration) *Service {
	if a == nil {
		a = HeuristicAnalyzer{}
	}
	return &Service{analyzer: a, timeout: timeout}
}

// Analyze always returns a Result. When the analyzer fails, the Result is
// the heuristic score of the answer with Degraded set.
func (s *Service) Analyze(ctx context.Context, in Input) Result {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	p, err := s.analyzer.Analyze(ctx, in)
	if err != nil {
		slog.WarnContext(ctx, "answer analysis failed, using heuristic",
			"module", in.Module, "error", err)
		return Result{Progress: Heuristic(in), Degraded: true, Reason: err}
	}
	return Result{Progress: p}
}
