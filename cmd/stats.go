package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examportal/internal/grading"
	"github.com/abhisek/examportal/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show score statistics for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser(settings)
		if err != nil {
			return err
		}
		rt, err := openRuntime(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		entries, err := rt.deps.History.List(ctx, u.ID, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		progress, err := rt.deps.Progress.Get(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		scores := make([]int, len(entries))
		for i, e := range entries {
			scores[i] = e.Score
		}
		st := grading.Summarize(scores)

		fmt.Printf("User:          %s\n", u.Name)
		fmt.Printf("Exams taken:   %d\n", progress.TotalExams)
		fmt.Printf("Exams passed:  %d\n", progress.PassedExams)
		fmt.Printf("XP:            %d\n", progress.XP)
		if st.Count == 0 {
			fmt.Println("No recent scores.")
			return nil
		}
		fmt.Printf("Recent scores: %d (min %d, max %d, mean %.1f, median %d)\n",
			st.Count, st.Min, st.Max, st.Mean, st.Median)
		return nil
	},
}
