package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/grading"
	"github.com/abhisek/examportal/internal/i18n"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/timefmt"
	"github.com/abhisek/examportal/internal/ui/theme"
)

// dashboard is the data shown above the menu.
type dashboard struct {
	progress     store.Progress
	recent       []store.HistoryEntry
	stats        grading.Stats
	certificates int
}

// recentShown is how many history entries the dashboard lists.
const recentShown = 3

// renderStatsBar renders the totals in a bordered box at the content width.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	num := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	avg := "–"
	if d.stats.Count > 0 {
		avg = fmt.Sprintf("%.0f%%", d.stats.Mean)
	}

	var parts []string
	if compact {
		parts = []string{
			num.Render(fmt.Sprint(d.progress.TotalExams)) + dim.Render(" taken"),
			num.Render(avg) + dim.Render(" avg"),
			num.Render(fmt.Sprint(d.progress.XP)) + dim.Render(" XP"),
		}
	} else {
		parts = []string{
			num.Render(fmt.Sprint(d.progress.TotalExams)) + dim.Render(" EXAMS"),
			num.Render(fmt.Sprint(d.progress.PassedExams)) + dim.Render(" PASSED"),
			num.Render(avg) + dim.Render(" AVERAGE"),
			num.Render(fmt.Sprint(d.certificates)) + dim.Render(" CERTIFICATES"),
			num.Render(fmt.Sprint(d.progress.XP)) + dim.Render(" XP"),
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, "   "))
}

// renderRecent lists the latest attempts with relative dates.
func renderRecent(entries []store.HistoryEntry, t *i18n.Translator, now timeSource, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Recent exams"))
	if len(entries) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(t.T("NoHistory")))
		return lipgloss.NewStyle().Width(cw).Render(b.String())
	}
	for _, e := range entries[:min(len(entries), recentShown)] {
		g := grading.LetterGrade(e.Score)
		ago := t.Ago(timefmt.Since(e.TakenAt, now()))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s  %s  %s",
			theme.GradeStyle(g).Render(fmt.Sprintf("%-2s", g.Letter)),
			lipgloss.NewStyle().Foreground(theme.ScoreColor(e.Score)).Render(fmt.Sprintf("%3d%%", e.Score)),
			theme.Body.Render(e.Name),
			theme.Hint.Render(ago)))
	}
	return lipgloss.NewStyle().Width(cw).Render(b.String())
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(labels []string, selected int, cw int) string {
	const buttonWidth = 24

	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Highlight).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range labels {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(labels []string, selected int, cw int) string {
	var lines []string
	for i, label := range labels {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, theme.Unselected.Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
