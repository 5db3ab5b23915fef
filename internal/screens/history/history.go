// Package history lists the signed-in user's past attempts.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/grading"
	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/timefmt"
	"github.com/abhisek/examportal/internal/ui/components"
	"github.com/abhisek/examportal/internal/ui/layout"
	"github.com/abhisek/examportal/internal/ui/theme"
)

type historyLoadedMsg struct {
	Entries []store.HistoryEntry
	Err     error
}

type historyClearedMsg struct {
	Err error
}

// HistoryScreen displays past attempts, newest first.
type HistoryScreen struct {
	sess     *screen.Session
	entries  []store.HistoryEntry
	selected int
	expanded map[int]bool
	confirm  *components.Confirm
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(sess *screen.Session) *HistoryScreen {
	return &HistoryScreen{
		sess:     sess,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, userID := s.sess.History, s.sess.User.ID
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		entries, err := repo.List(context.Background(), userID, store.QueryOpts{})
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirm != nil {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "C", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

// Entries returns the loaded entries.
func (s *HistoryScreen) Entries() []store.HistoryEntry {
	return s.entries
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case historyClearedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.entries = nil
		s.selected = 0
		s.expanded = make(map[int]bool)
		return s, nil

	case tea.KeyMsg:
		if s.confirm != nil {
			return s.updateConfirm(msg)
		}
		switch msg.String() {
		case "esc", "q":
			return s, router.PopCmd()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			if len(s.entries) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		case "c":
			if len(s.entries) > 0 {
				s.confirm = &components.Confirm{
					Title: "Clear exam history?",
					Lines: []string{fmt.Sprintf("%d attempts will be removed.", len(s.entries))},
					Yes:   "Clear",
					No:    "Cancel",
				}
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) updateConfirm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y":
		s.confirm = nil
		return s, s.clear()
	case "enter":
		yes := s.confirm.Focus
		s.confirm = nil
		if yes {
			return s, s.clear()
		}
	case "n", "esc":
		s.confirm = nil
	case "left", "right", "tab", "h", "l":
		s.confirm.Toggle()
	}
	return s, nil
}

func (s *HistoryScreen) clear() tea.Cmd {
	repo, userID := s.sess.History, s.sess.User.ID
	return func() tea.Msg {
		if repo == nil {
			return historyClearedMsg{}
		}
		return historyClearedMsg{Err: repo.Clear(context.Background(), userID)}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	t := s.sess.Translator()
	if s.errMsg != "" {
		return components.Message("Error: "+s.errMsg, lipgloss.NewStyle().Foreground(theme.Error), width)
	}
	if !s.loaded {
		return components.Message("Loading history...", theme.Hint, width)
	}
	if s.confirm != nil {
		return "\n\n" + s.confirm.View(width)
	}
	if len(s.entries) == 0 {
		return components.Message(t.T("NoHistory"), theme.Hint.Italic(true), width)
	}

	cw := components.ContentWidth(width)
	now := s.sess.Clock()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.Centered(s.renderStats(), width))
	b.WriteString("\n\n")

	for i, e := range s.entries {
		g := grading.LetterGrade(e.Score)
		prefix := "  "
		nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			nameStyle = nameStyle.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s %s  %s  %s",
			prefix,
			theme.GradeStyle(g).Render(fmt.Sprintf("%-2s", g.Letter)),
			lipgloss.NewStyle().Foreground(theme.ScoreColor(e.Score)).Render(fmt.Sprintf("%3d%%", e.Score)),
			nameStyle.Render(truncate(e.Name, cw-30)),
			theme.Hint.Render(t.Ago(timefmt.Since(e.TakenAt, now))))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(cw).Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Width(cw).Render(s.renderDetail(e))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderStats() string {
	scores := make([]int, len(s.entries))
	passed := 0
	for i, e := range s.entries {
		scores[i] = e.Score
		if e.Passed {
			passed++
		}
	}
	st := grading.Summarize(scores)
	num := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	return strings.Join([]string{
		num.Render(fmt.Sprint(st.Count)) + dim.Render(" attempts"),
		num.Render(fmt.Sprint(passed)) + dim.Render(" passed"),
		num.Render(fmt.Sprintf("%.1f%%", st.Mean)) + dim.Render(" average"),
		num.Render(fmt.Sprintf("%d%%", st.Max)) + dim.Render(" best"),
	}, "   ")
}

func (s *HistoryScreen) renderDetail(e store.HistoryEntry) string {
	t := s.sess.Translator()
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	passStyle := lipgloss.NewStyle().Foreground(theme.Success)
	if !e.Passed {
		passStyle = passStyle.Foreground(theme.Error)
	}
	lines := []string{
		dim.Render("    Taken:    ") + e.TakenAt.Format("Jan 02, 2006 15:04"),
		dim.Render("    Correct:  ") + fmt.Sprintf("%d / %d", e.QuestionsCorrect, e.TotalQuestions),
		dim.Render("    Time:     ") + timefmt.Duration(e.TimeSpentMinutes),
		dim.Render("    Result:   ") + passStyle.Render(t.PassLabel(e.Passed)),
	}
	if e.AutoSubmitted {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Warning).Render("    Submitted when time ran out"))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if n < 8 {
		n = 8
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
