// Package quality estimates how well-developed a piece of idea text is from
// its shape alone. It performs no I/O and is safe to call from anywhere,
// which lets it serve both as an upfront idea check and as the offline
// fallback for answer analysis.
package quality

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/ideaforge/internal/locale"
)

// Level buckets a score into a coarse maturity label.
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Length tiers, in runes.
const (
	PartialLength = 20
	FullLength    = 50
	MinWords      = 5
)

// Points awarded per signal. The maximum total is 100.
const (
	pointsMinimalLength = 10
	pointsPartialLength = 25
	pointsFullLength    = 40
	pointsWordCount     = 20
	pointsSpecific      = 25
	pointsSecondTerm    = 15
)

// Level thresholds.
const (
	advancedThreshold     = 70
	intermediateThreshold = 40
	expansionThreshold    = 60
)

// Report is the result of scoring a text.
type Report struct {
	Score          int      `json:"score"`
	Issues         []string `json:"issues"`
	Suggestions    []string `json:"suggestions"`
	Level          Level    `json:"level"`
	NeedsExpansion bool     `json:"needs_expansion"`
}

// Score rates text on a 0-100 scale using length, word count, and the
// presence of concrete business vocabulary for the given locale.
func Score(text string, l locale.Locale) Report {
	qc := locale.For(l).Quality
	text = strings.TrimSpace(text)

	r := Report{Issues: []string{}, Suggestions: []string{}}
	if text == "" {
		r.Issues = append(r.Issues, qc.IssueTooShort)
		r.Suggestions = append(r.Suggestions, qc.SuggestElaborate)
		r.Level = LevelBasic
		r.NeedsExpansion = true
		return r
	}

	score := 0
	switch n := utf8.RuneCountInString(text); {
	case n < PartialLength:
		score += pointsMinimalLength
		r.Issues = append(r.Issues, qc.IssueTooShort)
		r.Suggestions = append(r.Suggestions, qc.SuggestElaborate)
	case n < FullLength:
		score += pointsPartialLength
		r.Issues = append(r.Issues, qc.IssueBrief)
		r.Suggestions = append(r.Suggestions, qc.SuggestMoreDetail)
	default:
		score += pointsFullLength
	}

	words := tokenize(text)
	if len(words) >= MinWords {
		score += pointsWordCount
	} else {
		r.Issues = append(r.Issues, qc.IssueFewWords)
		r.Suggestions = append(r.Suggestions, qc.SuggestWhoAndWhy)
	}

	specific := countSpecific(words, qc.SpecificTerms)
	switch {
	case specific >= 2:
		score += pointsSpecific + pointsSecondTerm
	case specific == 1:
		score += pointsSpecific
	case hasGeneric(words, qc.GenericTerms):
		// Generic filler is flagged but never costs points.
		r.Issues = append(r.Issues, qc.IssueGeneric)
		r.Suggestions = append(r.Suggestions, qc.SuggestBeSpecific)
	default:
		r.Issues = append(r.Issues, qc.IssueNoSpecifics)
		r.Suggestions = append(r.Suggestions, qc.SuggestBusinessTie)
	}

	if score > 100 {
		score = 100
	}
	r.Score = score
	r.Level = levelFor(score)
	r.NeedsExpansion = needsExpansion(r.Level, score)
	return r
}

func levelFor(score int) Level {
	switch {
	case score >= advancedThreshold:
		return LevelAdvanced
	case score >= intermediateThreshold:
		return LevelIntermediate
	}
	return LevelBasic
}

func needsExpansion(level Level, score int) bool {
	switch level {
	case LevelAdvanced:
		return false
	case LevelIntermediate:
		return score < expansionThreshold
	}
	return true
}

// tokenize lowercases text and splits it on anything that is not a letter
// or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// countSpecific returns how many distinct vocabulary terms appear in words.
// Terms of four or more characters also match as a prefix, so "customer"
// matches "customers".
func countSpecific(words, terms []string) int {
	seen := make(map[string]bool)
	for _, w := range words {
		for _, t := range terms {
			if seen[t] {
				continue
			}
			if matchesTerm(w, t) {
				seen[t] = true
			}
		}
	}
	return len(seen)
}

func hasGeneric(words, terms []string) bool {
	for _, w := range words {
		for _, t := range terms {
			if w == t || w == t+"s" {
				return true
			}
		}
	}
	return false
}

func matchesTerm(word, term string) bool {
	if utf8.RuneCountInString(term) >= 4 {
		return strings.HasPrefix(word, term)
	}
	return word == term
}
