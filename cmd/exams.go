package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/examportal/internal/catalog"
	"github.com/abhisek/examportal/internal/ui/theme"
)

var examsCmd = &cobra.Command{
	Use:   "exams",
	Short: "List the available exams",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(settings.CatalogDir)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		rows := make([][]string, 0, cat.Len())
		for _, e := range cat.All() {
			rows = append(rows, []string{
				e.ID,
				e.Name,
				fmt.Sprint(len(e.Questions)),
				fmt.Sprintf("%d min", e.DurationMinutes),
				e.Difficulty.DisplayName(),
				fmt.Sprintf("%d%%", e.PassingScore),
			})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
			Headers("ID", "EXAM", "QUESTIONS", "DURATION", "LEVEL", "PASS").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				s := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return s.Bold(true).Foreground(theme.Primary)
				}
				if col == 0 {
					return s.Foreground(theme.Highlight)
				}
				return s
			})
		fmt.Println(t.Render())
		return nil
	},
}
