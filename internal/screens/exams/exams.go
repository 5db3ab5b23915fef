// Package exams lists the catalog and starts an exam.
package exams

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/catalog"
	engine "github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	examscreen "github.com/abhisek/examportal/internal/screens/exam"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/timefmt"
	"github.com/abhisek/examportal/internal/ui/components"
	"github.com/abhisek/examportal/internal/ui/layout"
	"github.com/abhisek/examportal/internal/ui/theme"
)

type attemptsLoadedMsg struct {
	Best map[string]int
	Err  error
}

// ExamsScreen lists the exams and shows the details of the selected one.
type ExamsScreen struct {
	sess     *screen.Session
	exams    []catalog.ExamConfig
	selected int
	detail   bool
	best     map[string]int
}

var _ screen.Screen = (*ExamsScreen)(nil)
var _ screen.KeyHintProvider = (*ExamsScreen)(nil)

// New creates an ExamsScreen over the session's catalog.
func New(sess *screen.Session) *ExamsScreen {
	var exams []catalog.ExamConfig
	if sess.Catalog != nil {
		exams = sess.Catalog.All()
	}
	return &ExamsScreen{sess: sess, exams: exams, best: map[string]int{}}
}

// Init loads the user's best score per exam.
func (s *ExamsScreen) Init() tea.Cmd {
	if s.sess.History == nil {
		return nil
	}
	repo, userID := s.sess.History, s.sess.User.ID
	return func() tea.Msg {
		entries, err := repo.List(context.Background(), userID, store.QueryOpts{})
		if err != nil {
			return attemptsLoadedMsg{Err: err}
		}
		best := make(map[string]int)
		for _, e := range entries {
			if prev, ok := best[e.ExamID]; !ok || e.Score > prev {
				best[e.ExamID] = e.Score
			}
		}
		return attemptsLoadedMsg{Best: best}
	}
}

func (s *ExamsScreen) Title() string {
	return "Exams"
}

func (s *ExamsScreen) KeyHints() []layout.KeyHint {
	if s.detail {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start exam"},
			{Key: "Esc", Description: "Back to list"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ExamsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		if msg.Err == nil {
			s.best = msg.Best
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if s.detail {
				s.detail = false
				return s, nil
			}
			return s, router.PopCmd()
		case "up", "k":
			if !s.detail && s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if !s.detail && s.selected < len(s.exams)-1 {
				s.selected++
			}
		case "enter":
			if len(s.exams) == 0 {
				return s, nil
			}
			if !s.detail {
				s.detail = true
				return s, nil
			}
			return s, s.start()
		}
	}
	return s, nil
}

func (s *ExamsScreen) start() tea.Cmd {
	cfg, ok := s.sess.Catalog.Get(s.exams[s.selected].ID)
	if !ok {
		return nil
	}
	s.detail = false
	return router.PushCmd(examscreen.New(s.sess, cfg, engine.Options{Now: s.sess.Now}))
}

func (s *ExamsScreen) View(width, height int) string {
	if len(s.exams) == 0 {
		return components.Message("The catalog is empty.", theme.Hint, width)
	}
	if s.detail {
		return s.renderDetail(width)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	for i, e := range s.exams {
		name := e.Name
		meta := fmt.Sprintf("%d questions · %s · %s",
			len(e.Questions), timefmt.Duration(e.DurationMinutes), e.Difficulty.DisplayName())

		nameStyle := theme.Unselected
		prefix := "  "
		if i == s.selected {
			nameStyle = theme.Selected
			prefix = "▸ "
		}
		line := nameStyle.Render(prefix+name) + "\n    " + theme.Hint.Render(meta)
		if score, ok := s.best[e.ID]; ok {
			line += "  " + lipgloss.NewStyle().Foreground(theme.ScoreColor(score)).Render(fmt.Sprintf("best %d%%", score))
		}
		b.WriteString(components.Centered(lipgloss.NewStyle().Width(cw).Render(line), width))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (s *ExamsScreen) renderDetail(width int) string {
	e := s.exams[s.selected]
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(e.Name))
	b.WriteString("\n")
	if e.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw - 4).Foreground(theme.TextDim).Render(e.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := [][2]string{
		{"Questions", fmt.Sprint(len(e.Questions))},
		{"Duration", timefmt.Duration(e.DurationMinutes)},
		{"Difficulty", e.Difficulty.DisplayName()},
		{"Passing score", fmt.Sprintf("%d%%", e.PassingScore)},
		{"Topics", strings.Join(e.Topics, ", ")},
	}
	if score, ok := s.best[e.ID]; ok {
		rows = append(rows, [2]string{"Your best", fmt.Sprintf("%d%%", score)})
	}
	for _, r := range rows {
		b.WriteString(theme.Heading.Render(fmt.Sprintf("%-14s", r[0])))
		b.WriteString(theme.Body.Render(r[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Before you start"))
	b.WriteString("\n")
	for _, rule := range []string{
		"Questions appear in random order.",
		"The timer starts as soon as the exam opens.",
		"When time runs out, your answers are submitted automatically.",
		"Leaving the exam discards your answers.",
	} {
		b.WriteString(theme.Body.Render("• " + rule))
		b.WriteString("\n")
	}

	return "\n" + components.Centered(components.Card(b.String(), cw), width)
}
