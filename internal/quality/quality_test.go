package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/ideaforge/internal/locale"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantScore     int
		wantLevel     Level
		wantExpansion bool
	}{
		{"empty", "   ", 0, LevelBasic, true},
		{"very short", "parking bad", 10, LevelBasic, true},
		{"short generic", "an app for dogs", 10, LevelBasic, true},
		{"partial length few words", "Urban drivers, mostly", 25, LevelBasic, true},
		{"partial length with words", "Users lose time finding parking", 70, LevelAdvanced, false},
		{"partial length with one term", "A subscription to park near work", 70, LevelAdvanced, false},
		{"full length no specifics", "Drivers waste twenty minutes circling the block every single morning", 60, LevelIntermediate, false},
		{"full length one term", "Drivers waste twenty minutes circling downtown blocks, a daily problem", 85, LevelAdvanced, false},
		{"full length two terms", "A per-minute fee charged to each customer who reserves a garage slot", 100, LevelAdvanced, false},
		{"intermediate needing expansion", "A platform, an app, a website for everyone", 45, LevelIntermediate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Score(tt.text, locale.English)
			assert.Equal(t, tt.wantScore, r.Score)
			assert.Equal(t, tt.wantLevel, r.Level)
			assert.Equal(t, tt.wantExpansion, r.NeedsExpansion)
			assert.Len(t, r.Suggestions, len(r.Issues))
		})
	}
}

func TestScore_GenericFlaggedNotPenalized(t *testing.T) {
	withGeneric := Score("an app for dogs", locale.English)
	without := Score("a bowl for dogs", locale.English)

	assert.Equal(t, without.Score, withGeneric.Score)
	assert.Contains(t, withGeneric.Issues, locale.For(locale.English).Quality.IssueGeneric)
	assert.NotContains(t, without.Issues, locale.For(locale.English).Quality.IssueGeneric)
}

func TestScore_GenericIgnoredWhenSpecificPresent(t *testing.T) {
	r := Score("an app that helps each customer", locale.English)
	assert.NotContains(t, r.Issues, locale.For(locale.English).Quality.IssueGeneric)
}

func TestScore_Spanish(t *testing.T) {
	r := Score("Los clientes pierden tiempo buscando estacionamiento, un problema diario en la ciudad", locale.Spanish)
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, LevelAdvanced, r.Level)
	assert.Empty(t, r.Issues)
}

func TestScore_Deterministic(t *testing.T) {
	text := "Urban commuters who pay for parking by the minute"
	first := Score(text, locale.English)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Score(text, locale.English))
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	texts := []string{
		"",
		"x",
		"problem customer revenue market price pricing subscription fee pay cost profit margin competitor advantage segment niche value solution pain",
	}
	for _, s := range texts {
		r := Score(s, locale.English)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, 100)
	}
}
