package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examportal/internal/app"
)

var takeCmd = &cobra.Command{
	Use:   "take <exam-id>",
	Short: "Start an exam right away",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.User == "" {
			return fmt.Errorf("--user is required to take an exam")
		}
		return runApp(cmd, args[0])
	},
}

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty examID opens that exam after sign-in.
func runApp(cmd *cobra.Command, examID string) error {
	rt, err := openRuntime(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer rt.Close()

	if examID != "" {
		if _, ok := rt.deps.Catalog.Get(examID); !ok {
			return fmt.Errorf("unknown exam %q; see `examportal exams`", examID)
		}
	}

	return app.Run(app.Options{
		Deps:     rt.deps,
		UserName: settings.User,
		ExamID:   examID,
	})
}
