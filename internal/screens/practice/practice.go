// Package practice configures and builds a practice exam.
package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/examportal/internal/catalog"
	engine "github.com/abhisek/examportal/internal/exam"
	builder "github.com/abhisek/examportal/internal/practice"
	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	examscreen "github.com/abhisek/examportal/internal/screens/exam"
	"github.com/abhisek/examportal/internal/ui/components"
	"github.com/abhisek/examportal/internal/ui/layout"
	"github.com/abhisek/examportal/internal/ui/theme"
)

// Form rows.
const (
	fieldMode = iota
	fieldTopic
	fieldDifficulty
	fieldCount
	fieldMinutes
)

var difficulties = []catalog.Difficulty{
	"",
	catalog.DifficultyBeginner,
	catalog.DifficultyIntermediate,
	catalog.DifficultyAdvanced,
}

// buildTimeout bounds a build, including any question generation.
const buildTimeout = 2 * time.Minute

type builtMsg struct {
	Config catalog.ExamConfig
	Err    error
}

// PracticeScreen is the practice settings form.
type PracticeScreen struct {
	sess     *screen.Session
	topics   []string // "" first, meaning all topics
	modes    []builder.Mode
	field    int
	mode     int
	topic    int
	diff     int
	settings builder.Settings
	spinner  spinner.Model
	building bool
	errMsg   string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen with the quick preset selected.
func New(sess *screen.Session) *PracticeScreen {
	s := &PracticeScreen{
		sess:   sess,
		topics: []string{""},
		modes:  builder.AllModes(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Highlight)),
		),
	}
	if sess.Catalog != nil {
		s.topics = append(s.topics, sess.Catalog.Topics()...)
	}
	s.applyPreset()
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.building {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Settings returns the settings the form currently describes.
func (s *PracticeScreen) Settings() builder.Settings {
	return s.settings
}

func (s *PracticeScreen) custom() bool {
	return s.modes[s.mode] == builder.ModeCustom
}

// applyPreset resets count and minutes to the mode's preset, keeping the
// topic and difficulty.
func (s *PracticeScreen) applyPreset() {
	set := builder.Preset(s.modes[s.mode], s.topics[s.topic])
	set.Difficulty = difficulties[s.diff]
	if s.custom() && s.settings.Count > 0 {
		set.Count, set.Minutes = s.settings.Count, s.settings.Minutes
	}
	s.settings = set
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case builtMsg:
		s.building = false
		if msg.Err != nil {
			s.errMsg = friendlyError(msg.Err)
			return s, nil
		}
		return s, router.PushCmd(examscreen.New(s.sess, msg.Config, engine.Options{Now: s.sess.Now}))

	case spinner.TickMsg:
		if !s.building {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.building {
			if msg.String() == "esc" {
				return s, router.PopCmd()
			}
			return s, nil
		}
		switch msg.String() {
		case "esc", "q":
			return s, router.PopCmd()
		case "up", "k":
			s.move(-1)
		case "down", "j", "tab":
			s.move(1)
		case "left", "h":
			s.change(-1)
		case "right", "l":
			s.change(1)
		case "enter":
			return s, s.build()
		}
	}
	return s, nil
}

// move steps to the next editable field. Count and minutes are editable
// only in custom mode.
func (s *PracticeScreen) move(delta int) {
	last := fieldDifficulty
	if s.custom() {
		last = fieldMinutes
	}
	s.field += delta
	if s.field < 0 {
		s.field = 0
	}
	if s.field > last {
		s.field = last
	}
}

func (s *PracticeScreen) change(delta int) {
	s.errMsg = ""
	switch s.field {
	case fieldMode:
		s.mode = wrap(s.mode+delta, len(s.modes))
		s.applyPreset()
		if !s.custom() && s.field > fieldDifficulty {
			s.field = fieldDifficulty
		}
	case fieldTopic:
		s.topic = wrap(s.topic+delta, len(s.topics))
		s.settings.Topic = s.topics[s.topic]
	case fieldDifficulty:
		s.diff = wrap(s.diff+delta, len(difficulties))
		s.settings.Difficulty = difficulties[s.diff]
	case fieldCount:
		s.settings.Count = clamp(s.settings.Count+delta, 1, builder.MaxQuestions)
	case fieldMinutes:
		s.settings.Minutes = clamp(s.settings.Minutes+delta, 1, builder.MaxMinutes)
	}
}

func (s *PracticeScreen) build() tea.Cmd {
	b := s.sess.Practice
	if b == nil {
		s.errMsg = "Practice is not available."
		return nil
	}
	if err := s.settings.Validate(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.building = true
	s.errMsg = ""
	settings := s.settings
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
		defer cancel()
		cfg, err := b.Build(ctx, settings)
		if err != nil {
			log.Warn().Err(err).Str("topic", settings.Topic).Str("mode", string(settings.Mode)).Msg("practice build failed")
		}
		return builtMsg{Config: cfg, Err: err}
	}
	return tea.Batch(run, s.spinner.Tick)
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, builder.ErrNoQuestions):
		return "No questions match these settings. Try another topic or difficulty."
	case errors.Is(err, builder.ErrInvalidSettings):
		return err.Error()
	default:
		return "Could not build the practice exam: " + err.Error()
	}
}

func (s *PracticeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.building {
		return components.Centered(fmt.Sprintf("\n\n%s Building your practice exam...", s.spinner.View()), width)
	}

	var b strings.Builder
	mode := s.modes[s.mode]
	b.WriteString(theme.Heading.Render(mode.Title()))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(mode.Description()))
	b.WriteString("\n\n")

	topic := s.settings.Topic
	if topic == "" {
		topic = "All topics"
	}
	diff := "Mixed"
	if s.settings.Difficulty != "" {
		diff = s.settings.Difficulty.DisplayName()
	}
	rows := []struct {
		label string
		value string
	}{
		{"Mode", mode.Title()},
		{"Topic", topic},
		{"Difficulty", diff},
		{"Questions", fmt.Sprint(s.settings.Count)},
		{"Minutes", fmt.Sprint(s.settings.Minutes)},
	}
	for i, r := range rows {
		locked := i >= fieldCount && !s.custom()
		label := fmt.Sprintf("%-12s", r.label)
		value := "‹ " + r.value + " ›"
		switch {
		case locked:
			b.WriteString(theme.Hint.Render("  " + label + r.value))
		case i == s.field:
			b.WriteString(theme.Selected.Render("▸ "+label) + lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(value))
		default:
			b.WriteString(theme.Unselected.Render("  "+label) + theme.Body.Render(r.value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderAvailability())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return components.Centered(components.Card(b.String(), cw), width)
}

func (s *PracticeScreen) renderAvailability() string {
	p := s.sess.Practice
	if p == nil {
		return lipgloss.NewStyle().Foreground(theme.Warning).Render("No question bank loaded.")
	}
	n := p.Available(s.settings.Topic, s.settings.Difficulty)
	line := fmt.Sprintf("%d matching questions in the bank", n)
	switch {
	case n >= s.settings.Count:
		return theme.Hint.Render(line)
	case p.CanGenerate():
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(
			fmt.Sprintf("%s; %d will be generated", line, s.settings.Count-n))
	default:
		return lipgloss.NewStyle().Foreground(theme.Warning).Render(
			fmt.Sprintf("%s; the exam will be shorter", line))
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
