package practice

import (
	"fmt"

	"github.com/abhisek/examportal/internal/catalog"
)

// Validator checks a generated question.
type Validator interface {
	// Name identifies the validator in errors and logs.
	Name() string

	Validate(q *catalog.Question, in Input) *ValidationError
}

// ValidationError describes why a generated question was rejected.
type ValidationError struct {
	Validator string
	Message   string

	// Retryable reports whether generating again may fix it.
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
