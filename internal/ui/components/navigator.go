package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/ui/theme"
)

// Navigator is the question grid shown beside an exam. Each cell is one
// question, colored by its status.
type Navigator struct {
	Statuses []exam.QuestionStatus
	Columns  int
}

// NewNavigator builds a grid from the session's current statuses.
func NewNavigator(s *exam.Session, columns int) Navigator {
	statuses := make([]exam.QuestionStatus, s.Len())
	for i := range statuses {
		statuses[i] = s.QuestionStatus(i)
	}
	return Navigator{Statuses: statuses, Columns: columns}
}

// View renders the grid followed by a legend.
func (n Navigator) View() string {
	cols := n.Columns
	if cols <= 0 {
		cols = 5
	}

	var rows []string
	var row []string
	for i, st := range n.Statuses {
		cell := lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center).
			Foreground(theme.BgDark).
			Background(theme.StatusColor(st))
		if st == exam.StatusCurrent {
			cell = cell.Bold(true)
		}
		row = append(row, cell.Render(fmt.Sprint(i+1)))
		if len(row) == cols {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}

	return strings.Join(rows, "\n\n") + "\n\n" + legend()
}

func legend() string {
	item := func(st exam.QuestionStatus, label string) string {
		return lipgloss.NewStyle().Foreground(theme.StatusColor(st)).Render("■") + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	}
	return strings.Join([]string{
		item(exam.StatusCurrent, "current"),
		item(exam.StatusAnswered, "answered"),
		item(exam.StatusMarked, "marked"),
		item(exam.StatusUnanswered, "open"),
	}, "  ")
}
