package practice

import (
	"strings"

	"github.com/abhisek/examportal/internal/catalog"
)

// Text limits for generated questions.
const (
	maxQuestionLen = 300
	maxOptionLen   = 120
)

// StructuralValidator checks option count, distinctness, text lengths, the
// answer index and the difficulty.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *catalog.Question, _ Input) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	text := strings.TrimSpace(q.Text)
	switch {
	case text == "":
		return fail("question is empty")
	case len(text) > maxQuestionLen:
		return fail("question exceeds 300 characters")
	case len(q.Options) != 4:
		return fail("exactly 4 options are required")
	case !q.ValidOption(q.CorrectAnswer):
		return fail("correctAnswer is out of range")
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return fail("an option is empty")
		}
		if len(o) > maxOptionLen {
			return fail("an option exceeds 120 characters")
		}
		key := strings.ToLower(o)
		if seen[key] {
			return fail("options are not distinct")
		}
		seen[key] = true
	}

	switch q.Difficulty {
	case catalog.DifficultyBeginner, catalog.DifficultyIntermediate, catalog.DifficultyAdvanced:
	default:
		return fail("unknown difficulty")
	}
	return nil
}

// DuplicateValidator rejects a question whose text matches one already in
// the session.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *catalog.Question, in Input) *ValidationError {
	key := normalizeText(q.Text)
	for _, p := range in.Prior {
		if normalizeText(p) == key {
			return &ValidationError{Validator: v.Name(), Message: "question repeats an earlier one", Retryable: true}
		}
	}
	return nil
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
