package catalog

import "slices"

// Difficulty is the level an exam or question is pitched at.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advance"
)

// DisplayName returns a human-readable label.
func (d Difficulty) DisplayName() string {
	switch d {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	default:
		return string(d)
	}
}

// DefaultPassingScore applies when an exam does not set one.
const DefaultPassingScore = 70

// Question is a single multiple-choice question.
type Question struct {
	// ID is unique within its exam.
	ID string `json:"id" validate:"required"`

	// Text is the question prompt.
	Text string `json:"question" validate:"required"`

	// Options are the answer choices, always four.
	Options []string `json:"options" validate:"len=4,dive,required"`

	// CorrectAnswer is the zero-based index into Options.
	CorrectAnswer int `json:"correctAnswer" validate:"gte=0,ltfield=OptionCount"`

	// Topic groups questions for the per-topic breakdown.
	Topic string `json:"topic" validate:"required"`

	Difficulty Difficulty `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advance"`

	// OptionCount mirrors len(Options) so the validator can bound CorrectAnswer.
	OptionCount int `json:"-"`
}

// IsCorrect reports whether idx is the correct option.
func (q Question) IsCorrect(idx int) bool {
	return idx == q.CorrectAnswer
}

// ValidOption reports whether idx addresses one of the options.
func (q Question) ValidOption(idx int) bool {
	return idx >= 0 && idx < len(q.Options)
}

// Clone returns a deep copy.
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

// ExamConfig describes one exam in the catalog.
type ExamConfig struct {
	ID          string `json:"id" validate:"required,examid"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`

	// DurationMinutes is the time limit.
	DurationMinutes int `json:"duration" validate:"gt=0"`

	Difficulty Difficulty `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advance"`
	Topics     []string   `json:"topics"`

	// PassingScore is the minimum score that counts as a pass.
	PassingScore int `json:"passingScore" validate:"gte=0,lte=100"`

	// Version orders competing definitions of the same exam.
	Version string `json:"version" validate:"required,semver_v"`

	Questions []Question `json:"questions" validate:"required,min=1,dive"`
}

// DurationSeconds is the countdown length.
func (c ExamConfig) DurationSeconds() int {
	return c.DurationMinutes * 60
}

// Clone returns a deep copy.
func (c ExamConfig) Clone() ExamConfig {
	c.Topics = slices.Clone(c.Topics)
	qs := make([]Question, len(c.Questions))
	for i, q := range c.Questions {
		qs[i] = q.Clone()
	}
	c.Questions = qs
	return c
}

// normalize fills defaults after decoding.
func (c *ExamConfig) normalize() {
	if c.PassingScore == 0 {
		c.PassingScore = DefaultPassingScore
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyBeginner
	}
	for i := range c.Questions {
		c.Questions[i].OptionCount = len(c.Questions[i].Options)
		if c.Questions[i].Difficulty == "" {
			c.Questions[i].Difficulty = c.Difficulty
		}
	}
	if len(c.Topics) == 0 {
		seen := make(map[string]bool)
		for _, q := range c.Questions {
			if !seen[q.Topic] {
				seen[q.Topic] = true
				c.Topics = append(c.Topics, q.Topic)
			}
		}
	}
}
