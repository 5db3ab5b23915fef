package practice

// Config controls the LLMGenerator.
type Config struct {
	// Validators run in order; the first failure rejects the question.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions bounds the dedup list sent in the prompt.
	MaxPriorQuestions int

	// MaxAttempts bounds generation per question when validation fails
	// with a retryable error.
	MaxAttempts int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:         768,
		Temperature:       0.7,
		MaxPriorQuestions: 12,
		MaxAttempts:       3,
	}
}
