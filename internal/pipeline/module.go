// Package pipeline defines the fixed, ordered sequence of topic modules an
// idea is refined through, and the per-module progress recorded along the way.
package pipeline

import "fmt"

// ModuleID identifies one topic slot in the refinement pipeline.
type ModuleID string

const (
	ProblemDefinition    ModuleID = "problem_definition"
	TargetCustomer       ModuleID = "target_customer"
	ValueProposition     ModuleID = "value_proposition"
	RevenueModel         ModuleID = "revenue_model"
	CompetitiveAdvantage ModuleID = "competitive_advantage"
)

// order is the canonical module order. Adding or removing a module is a
// change to this declaration only.
var order = []ModuleID{
	ProblemDefinition,
	TargetCustomer,
	ValueProposition,
	RevenueModel,
	CompetitiveAdvantage,
}

// Modules returns the ordered module list. The returned slice is a copy.
func Modules() []ModuleID {
	out := make([]ModuleID, len(order))
	copy(out, order)
	return out
}

// Len returns the number of modules in the pipeline.
func Len() int {
	return len(order)
}

// At returns the module at index i, or false if i is out of range.
func At(i int) (ModuleID, bool) {
	if i < 0 || i >= len(order) {
		return "", false
	}
	return order[i], true
}

// IndexOf returns the pipeline position of id, or -1 if id is unknown.
func IndexOf(id ModuleID) int {
	for i, m := range order {
		if m == id {
			return i
		}
	}
	return -1
}

// Parse converts a raw string into a known ModuleID.
func Parse(s string) (ModuleID, error) {
	id := ModuleID(s)
	if IndexOf(id) < 0 {
		return "", fmt.Errorf("unknown module %q", s)
	}
	return id, nil
}

// Valid reports whether id is part of the pipeline.
func (id ModuleID) Valid() bool {
	return IndexOf(id) >= 0
}

func (id ModuleID) String() string {
	return string(id)
}

// Progress is the analysis outcome recorded for a module.
type Progress struct {
	Completeness int    `json:"completeness"` // 0-100
	Insights     string `json:"insights"`     // Short analyst feedback on the answer
	NeedsMore    bool   `json:"needs_more"`   // True when the answer should be elaborated
}

// ClampCompleteness bounds a completeness value to [0, 100].
func ClampCompleteness(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
