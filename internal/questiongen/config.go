package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure rejects it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxContextChars trims the oldest part of the conversation context
	// sent to the model. Zero means no limit.
	MaxContextChars int

	// MaxPriorQuestions bounds the "already asked" list in the prompt.
	MaxPriorQuestions int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&RepeatValidator{},
		},
		MaxTokens:         400,
		Temperature:       0.7,
		MaxContextChars:   4000,
		MaxPriorQuestions: 10,
	}
}
