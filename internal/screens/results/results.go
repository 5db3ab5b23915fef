// Package results shows a graded exam: score, grade, topic breakdown and a
// filterable question review.
package results

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/grading"
	"github.com/abhisek/examportal/internal/recorder"
	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	"github.com/abhisek/examportal/internal/ui/layout"
)

type tab int

const (
	tabSummary tab = iota
	tabReview
)

// ResultsScreen displays one exam result.
type ResultsScreen struct {
	sess    *screen.Session
	result  *exam.Result
	outcome *recorder.Outcome
	retake  func() screen.Screen

	tab    tab
	filter grading.Filter
	cursor int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. outcome may be nil when nothing was
// recorded, and retake may be nil to hide the retake action.
func New(sess *screen.Session, res *exam.Result, outcome *recorder.Outcome, retake func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{
		sess:    sess,
		result:  res,
		outcome: outcome,
		retake:  retake,
		filter:  grading.FilterAll,
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	if s.outcome == nil || s.outcome.Progress == nil {
		return nil
	}
	u, xp := s.sess.User, s.outcome.Progress.XP
	return func() tea.Msg { return screen.UserChangedMsg{User: u, XP: xp} }
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Summary/Review"}}
	if s.tab == tabReview {
		hints = append(hints,
			layout.KeyHint{Key: "F", Description: "Filter"},
			layout.KeyHint{Key: "↑↓", Description: "Question"},
		)
	}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retake"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Done"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc", "q":
		return s, router.PopCmd()
	case "tab":
		if s.tab == tabSummary {
			s.tab = tabReview
		} else {
			s.tab = tabSummary
		}
	case "r":
		if s.retake != nil {
			return s, router.ReplaceCmd(s.retake())
		}
	case "f":
		if s.tab == tabReview {
			s.cycleFilter()
		}
	case "up", "k":
		if s.tab == tabReview && s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.tab == tabReview && s.cursor < len(s.visible())-1 {
			s.cursor++
		}
	}
	return s, nil
}

func (s *ResultsScreen) cycleFilter() {
	i := slices.Index(grading.Filters, s.filter)
	s.filter = grading.Filters[(i+1)%len(grading.Filters)]
	s.cursor = 0
}

// visible returns the details passing the current filter.
func (s *ResultsScreen) visible() []grading.Detail {
	if s.result == nil {
		return nil
	}
	return s.filter.Apply(s.result.Details)
}

// Filter returns the active review filter.
func (s *ResultsScreen) Filter() grading.Filter {
	return s.filter
}
