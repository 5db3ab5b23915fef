package practice

import (
	"errors"
	"fmt"

	"github.com/abhisek/examportal/internal/catalog"
)

// Mode selects a practice preset.
type Mode string

const (
	ModeQuick  Mode = "quick"
	ModeTimed  Mode = "timed"
	ModeCustom Mode = "custom"
)

// AllModes returns the modes in display order.
func AllModes() []Mode {
	return []Mode{ModeQuick, ModeTimed, ModeCustom}
}

// Title returns the display title of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeQuick:
		return "Quick Practice"
	case ModeTimed:
		return "Timed Challenge"
	case ModeCustom:
		return "Custom Practice"
	default:
		return string(m)
	}
}

// Description returns a one-line summary of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeQuick:
		return "5 random questions"
	case ModeTimed:
		return "10 questions in 15 minutes"
	case ModeCustom:
		return "Choose your settings"
	default:
		return ""
	}
}

// Limits for custom settings.
const (
	MaxQuestions = 50
	MaxMinutes   = 120
)

// ErrInvalidSettings is wrapped by every Settings validation failure.
var ErrInvalidSettings = errors.New("invalid practice settings")

// Settings describes a practice session to build.
type Settings struct {
	Mode Mode

	// Topic filters the pooled questions. Empty means all topics.
	Topic string

	Count   int
	Minutes int

	// Difficulty filters the pool. Empty means mixed.
	Difficulty catalog.Difficulty
}

// Preset returns the settings of a mode. Custom starts from the quick
// preset.
func Preset(m Mode, topic string) Settings {
	s := Settings{Mode: m, Topic: topic, Count: 5, Minutes: 5}
	if m == ModeTimed {
		s.Count, s.Minutes = 10, 15
	}
	return s
}

// Validate checks the settings.
func (s Settings) Validate() error {
	switch s.Mode {
	case ModeQuick, ModeTimed, ModeCustom:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s.Mode)
	}
	if s.Count < 1 || s.Count > MaxQuestions {
		return fmt.Errorf("%w: question count %d not in 1..%d", ErrInvalidSettings, s.Count, MaxQuestions)
	}
	if s.Minutes < 1 || s.Minutes > MaxMinutes {
		return fmt.Errorf("%w: duration %d not in 1..%d minutes", ErrInvalidSettings, s.Minutes, MaxMinutes)
	}
	switch s.Difficulty {
	case "", catalog.DifficultyBeginner, catalog.DifficultyIntermediate, catalog.DifficultyAdvanced:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidSettings, s.Difficulty)
	}
	return nil
}
