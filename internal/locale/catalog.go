package locale

import "github.com/abhisek/ideaforge/internal/pipeline"

// Catalog is the full set of canned copy for one locale.
type Catalog struct {
	// Welcome is formatted with the original idea and the module count.
	Welcome string
	// ExpandIdea prefixes upfront quality suggestions in the welcome.
	ExpandIdea string
	// Apology precedes a hard-coded fallback question.
	Apology string
	// ModuleDone is formatted with the module's display name.
	ModuleDone string
	// NeutralAck is used when an answer could not be analyzed.
	NeutralAck string
	// Celebration closes a completed conversation.
	Celebration string
	// TipPrefix labels an educational tip appended to a question.
	TipPrefix string

	ModuleNames map[pipeline.ModuleID]string
	Questions   map[pipeline.ModuleID]string
	FollowUps   map[pipeline.ModuleID]string

	// NarrativeOpening is formatted with the original idea.
	NarrativeOpening string
	// Connectives are formatted with the module answer, in pipeline order.
	Connectives map[pipeline.ModuleID]string

	Quality QualityCopy
}

// QualityCopy holds the vocabulary and feedback strings for the text
// quality heuristic.
type QualityCopy struct {
	SpecificTerms []string
	GenericTerms  []string

	IssueTooShort      string
	IssueBrief         string
	IssueFewWords      string
	IssueGeneric       string
	IssueNoSpecifics   string
	SuggestElaborate   string
	SuggestMoreDetail  string
	SuggestWhoAndWhy   string
	SuggestBeSpecific  string
	SuggestBusinessTie string
}

// For returns the catalog for l, falling back to Default.
func For(l Locale) *Catalog {
	if c, ok := catalogs[l]; ok {
		return c
	}
	return catalogs[Default]
}

// Question returns the canned question for a module.
func (c *Catalog) Question(id pipeline.ModuleID) string {
	return c.Questions[id]
}

// FollowUp returns the canned follow-up prompt for a module.
func (c *Catalog) FollowUp(id pipeline.ModuleID) string {
	return c.FollowUps[id]
}

// ModuleName returns the human-readable module name.
func (c *Catalog) ModuleName(id pipeline.ModuleID) string {
	if n, ok := c.ModuleNames[id]; ok {
		return n
	}
	return string(id)
}

var catalogs = map[Locale]*Catalog{
	English: english,
	Spanish: spanish,
}
