package analysis

import (
	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/pipeline"
)

// AdvanceThreshold is the completeness an answer needs for its module to
// be considered done. It is the only place this bar is defined.
const AdvanceThreshold = 75

// Input is one answer to be scored.
type Input struct {
	Answer       string
	Module       pipeline.ModuleID
	OriginalIdea string
	// Context is the running Q/A transcript, including the question the
	// answer responds to.
	Context string
	Locale  locale.Locale
}

// Result is the outcome of Service.Analyze.
type Result struct {
	pipeline.Progress

	// Degraded is set when Progress came from the text heuristic because
	// the analyzer failed. Reason holds the analyzer error.
	Degraded bool
	Reason   error
}
