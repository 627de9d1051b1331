package aggregate

import (
	"math"

	"github.com/abhisek/ideaforge/internal/pipeline"
)

// OverallCompleteness is the mean completeness over every pipeline
// module; modules without progress count as 0.
func OverallCompleteness(progress map[pipeline.ModuleID]pipeline.Progress) int {
	modules := pipeline.Modules()
	if len(modules) == 0 {
		return 0
	}
	sum := 0
	for _, m := range modules {
		sum += pipeline.ClampCompleteness(progress[m].Completeness)
	}
	return pipeline.ClampCompleteness(int(math.Round(float64(sum) / float64(len(modules)))))
}
