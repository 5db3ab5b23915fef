package cmd

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/examportal/internal/grading"
	"github.com/abhisek/examportal/internal/i18n"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/timefmt"
	"github.com/abhisek/examportal/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show a user's recent exam attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser(settings)
		if err != nil {
			return err
		}
		exam, _ := cmd.Flags().GetString("exam")

		rt, err := openRuntime(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer rt.Close()

		entries, err := rt.deps.History.List(cmd.Context(), u.ID, store.QueryOpts{Filter: exam})
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println(rt.deps.T.T("NoHistory"))
			return nil
		}
		fmt.Println(historyTable(entries, rt.deps.T, time.Now()))
		return nil
	},
}

func init() {
	historyCmd.Flags().String("exam", "", "Only show attempts at this exam")
}

func historyTable(entries []store.HistoryEntry, t *i18n.Translator, now time.Time) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		auto := ""
		if e.AutoSubmitted {
			auto = "⏱"
		}
		rows = append(rows, []string{
			t.Ago(timefmt.Since(e.TakenAt, now)),
			e.Name,
			fmt.Sprintf("%d%%", e.Score),
			grading.LetterGrade(e.Score).Letter,
			fmt.Sprintf("%d/%d", e.QuestionsCorrect, e.TotalQuestions),
			timefmt.Duration(e.TimeSpentMinutes),
			t.PassLabel(e.Passed) + " " + auto,
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("WHEN", "EXAM", "SCORE", "GRADE", "CORRECT", "TIME", "RESULT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(theme.Primary)
			}
			if col == 2 || col == 3 {
				return s.Foreground(theme.ScoreColor(entries[row].Score))
			}
			return s
		}).
		Render()
}
