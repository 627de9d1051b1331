package conversation

import (
	"time"

	"github.com/abhisek/ideaforge/internal/locale"
)

// Config tunes a Session.
type Config struct {
	Locale locale.Locale

	// CallTimeout bounds every generator, analyzer and aggregator call.
	CallTimeout time.Duration
	// AdvanceDelay is the pause between a module's acknowledgement and the
	// next module's question.
	AdvanceDelay time.Duration

	// MinAnswerLength is the shortest accepted answer, in runes.
	MinAnswerLength int
	// MaxFollowUps caps follow-up questions per module. Zero means no cap.
	MaxFollowUps int
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{
		Locale:          locale.Default,
		CallTimeout:     20 * time.Second,
		AdvanceDelay:    1500 * time.Millisecond,
		MinAnswerLength: 2,
	}
}
