package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/timefmt"
	"github.com/abhisek/examportal/internal/ui/components"
	"github.com/abhisek/examportal/internal/ui/layout"
	"github.com/abhisek/examportal/internal/ui/theme"
)

// navigatorMinWidth is the width from which the grid sits beside the question.
const navigatorMinWidth = 100

func (s *ExamScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.submitted {
		return components.Message("Grading your exam...",
			lipgloss.NewStyle().Foreground(theme.TextDim), width)
	}

	var b strings.Builder
	b.WriteString(s.renderStatusLine(width))
	b.WriteString("\n")
	b.WriteString(s.renderProgress(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.dialog != dialogNone {
		b.WriteString("\n")
		b.WriteString(s.confirm.View(width))
		return b.String()
	}

	if layout.IsCompactWidth(width) || width < navigatorMinWidth {
		b.WriteString(s.renderQuestion(width - 4))
		b.WriteString("\n\n")
		b.WriteString(components.Centered(components.NewNavigator(s.session, 10).View(), width))
		return b.String()
	}

	navWidth := 30
	question := s.renderQuestion(width - navWidth - 8)
	nav := lipgloss.NewStyle().
		Width(navWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(components.NewNavigator(s.session, 5).View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "  ", question, "  ", nav))
	return b.String()
}

// renderStatusLine shows the position on the left and the countdown on the
// right.
func (s *ExamScreen) renderStatusLine(width int) string {
	t := s.sess.Translator()
	_, idx := s.session.Current()

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + t.Td("QuestionOf", map[string]any{"N": idx + 1, "Total": s.session.Len()}))

	remaining := s.session.Remaining()
	clock := lipgloss.NewStyle().
		Foreground(theme.TimerColor(s.session.TimeLevel())).
		Bold(true).
		Render("⏱ " + timefmt.Clock(remaining))
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.T("TimeRemaining")+" ") + clock
	if s.session.FinalMinute() {
		right = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(t.T("FinalMinute")) + "  " + right
	}

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *ExamScreen) renderProgress(width int) string {
	answered := s.session.AnsweredCount()
	label := s.sess.Translator().Tp("Answered", answered)
	bar := components.NewProgressBar(label, float64(s.session.ProgressPercent())/100, true, width-6)
	return "  " + bar.View()
}

func (s *ExamScreen) renderQuestion(width int) string {
	q, _ := s.session.Current()

	var b strings.Builder

	tags := []string{q.Topic}
	if q.Difficulty != "" {
		tags = append(tags, q.Difficulty.DisplayName())
	}
	meta := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(tags, " · "))
	if s.session.IsMarked(q.ID) {
		meta += "  " + lipgloss.NewStyle().Foreground(theme.Marked).Bold(true).Render("⚑ marked for review")
	}
	b.WriteString(meta)
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	chosen := -1
	if idx, ok := s.session.Answer(q.ID); ok {
		chosen = idx
	}
	opts := components.OptionList{
		Options: q.Options,
		Cursor:  s.cursor,
		Chosen:  chosen,
		Width:   width,
	}
	b.WriteString(opts.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press 1-4 to answer, ←/→ to move, u for the next unanswered"))

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", msg))
}
