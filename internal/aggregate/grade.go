package aggregate

import (
	"math/rand/v2"
	"unicode/utf8"

	"github.com/abhisek/ideaforge/internal/pipeline"
)

// bucket maps a minimum average answer length (in runes) to the grades
// that may be drawn for it.
type bucket struct {
	minAvgLength int
	grades       []string
}

// gradeBuckets are ordered from the highest bar down; the last bucket
// catches everything.
var gradeBuckets = []bucket{
	{minAvgLength: 200, grades: []string{"A+", "A", "A-"}},
	{minAvgLength: 120, grades: []string{"A-", "B+", "B"}},
	{minAvgLength: 60, grades: []string{"B", "B-", "C+"}},
	{minAvgLength: 25, grades: []string{"C+", "C", "C-"}},
	{minAvgLength: 0, grades: []string{"C-", "D"}},
}

// AverageAnswerLength is the mean answer length in runes across all
// pipeline modules; unanswered modules count as empty.
func AverageAnswerLength(answers map[pipeline.ModuleID]string) int {
	modules := pipeline.Modules()
	total := 0
	for _, m := range modules {
		total += utf8.RuneCountInString(answers[m])
	}
	return total / len(modules)
}

// Grades returns the bucket of grades for an average answer length.
func Grades(avgLength int) []string {
	for _, b := range gradeBuckets {
		if avgLength >= b.minAvgLength {
			return b.grades
		}
	}
	return gradeBuckets[len(gradeBuckets)-1].grades
}

// Grade picks one grade at random from the bucket matching the answers'
// average length.
func Grade(answers map[pipeline.ModuleID]string, rng *rand.Rand) string {
	grades := Grades(AverageAnswerLength(answers))
	return grades[rng.IntN(len(grades))]
}
