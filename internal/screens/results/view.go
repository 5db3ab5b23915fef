package results

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/certificates"
	"github.com/abhisek/examportal/internal/grading"
	"github.com/abhisek/examportal/internal/timefmt"
	"github.com/abhisek/examportal/internal/ui/components"
	"github.com/abhisek/examportal/internal/ui/theme"
)

func (s *ResultsScreen) View(width, height int) string {
	if s.result == nil {
		return components.Message("No result to show.", lipgloss.NewStyle().Foreground(theme.TextDim), width)
	}
	if s.tab == tabReview {
		return s.renderReview(width, height)
	}
	return s.renderSummary(width)
}

func (s *ResultsScreen) renderSummary(width int) string {
	res := s.result
	t := s.sess.Translator()
	cw := components.ContentWidth(width)
	center := func(str string) string { return components.Centered(str, width) }

	var b strings.Builder
	b.WriteString("\n")

	if res.IsAutoSubmit {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("⏰ " + t.T("AutoSubmitted"))))
		b.WriteString("\n\n")
	}

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(res.Exam.Name)))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().
		Foreground(theme.ScoreColor(res.Score)).
		Bold(true).
		Render(fmt.Sprintf("%d%%", res.Score))
	passStyle := theme.Incorrect
	if res.Passed {
		passStyle = theme.Correct
	}
	headline := score + "   " + theme.GradeBadge(res.Grade) + "   " + passStyle.Render(t.PassLabel(res.Passed))
	b.WriteString(center(headline))
	b.WriteString("\n")
	b.WriteString(center(theme.Hint.Render(fmt.Sprintf("passing score %d%%", res.Exam.PassingScore))))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Render(t.Performance(res.Performance()))))
	b.WriteString("\n")
	if msg := t.Improvement(s.outcome.Improvement(res.Score)); msg != "" {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary).Render(msg)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	stats := fmt.Sprintf("%s %d correct   %s %d incorrect   %s %d unanswered   ⏱ %s",
		theme.Correct.Render("✓"), res.CorrectAnswers,
		theme.Incorrect.Render("✗"), res.IncorrectCount(),
		theme.Skipped.Render("–"), res.UnansweredCount(),
		timefmt.Clock(res.TimeSpentSeconds),
	)
	b.WriteString(center(stats))
	b.WriteString("\n\n")

	b.WriteString(center(components.Card(s.renderTopics(cw-4), cw)))
	b.WriteString("\n")

	if s.outcome != nil && s.outcome.Certificate != nil {
		c := s.outcome.Certificate
		tier := certificates.Tier(c.Tier)
		line := tier.Icon() + " " + t.Td("CertificateEarned", map[string]any{"Tier": tier.DisplayName()}) +
			"  " + theme.Hint.Render(c.CredentialID)
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(line)))
		b.WriteString("\n")
	}
	if s.outcome != nil && s.outcome.Progress != nil {
		p := s.outcome.Progress
		b.WriteString(center(theme.Hint.Render(fmt.Sprintf("+%d XP · %d XP total · %d of %d exams passed",
			grading.XP(res.Score), p.XP, p.PassedExams, p.TotalExams))))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *ResultsScreen) renderTopics(width int) string {
	t := s.sess.Translator()
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Topic breakdown"))
	b.WriteString("\n")
	for _, tr := range s.result.Topics() {
		label := fmt.Sprintf("%-18s %d/%d", truncate(tr.Topic, 18), tr.Correct, tr.Total)
		bar := components.ProgressBar{
			Label:       label,
			Percent:     float64(tr.Percentage) / 100,
			ShowPercent: true,
			Width:       width - 12,
			Color:       theme.BandColor(tr.Band),
		}
		band := lipgloss.NewStyle().Foreground(theme.BandColor(tr.Band)).Render(t.Band(tr.Band))
		b.WriteString("\n")
		b.WriteString(bar.View() + "  " + band)
	}
	return b.String()
}

func (s *ResultsScreen) renderReview(width, height int) string {
	details := s.visible()

	var b strings.Builder
	b.WriteString("\n")

	var tabs []string
	for _, f := range grading.Filters {
		n := len(f.Apply(s.result.Details))
		label := fmt.Sprintf(" %s (%d) ", f, n)
		if f == s.filter {
			tabs = append(tabs, theme.ButtonActive.Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(components.Centered(strings.Join(tabs, " "), width))
	b.WriteString("\n\n")

	if len(details) == 0 {
		b.WriteString(components.Centered(theme.Hint.Render("No questions match this filter."), width))
		return b.String()
	}

	cur := min(s.cursor, len(details)-1)
	d := details[cur]
	cw := components.ContentWidth(width)

	var q strings.Builder
	status := theme.Skipped.Render("Not answered")
	switch {
	case d.IsCorrect:
		status = theme.Correct.Render("Correct")
	case d.Answered():
		status = theme.Incorrect.Render("Incorrect")
	}
	q.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		theme.Heading.Render(fmt.Sprintf("%d/%d", cur+1, len(details))),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(d.Topic),
		status))
	q.WriteString(lipgloss.NewStyle().Width(cw - 4).Bold(true).Foreground(theme.Text).Render(d.QuestionText))
	q.WriteString("\n\n")

	chosen := -1
	if d.UserAnswerIndex != nil {
		chosen = *d.UserAnswerIndex
	}
	q.WriteString(components.OptionList{
		Options: d.Options,
		Chosen:  chosen,
		Correct: d.CorrectAnswerIndex,
		Review:  true,
		Width:   cw - 4,
	}.View())

	b.WriteString(components.Centered(components.Card(q.String(), cw), width))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
