package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear a user's history, progress and certificates",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser(settings)
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("Clear all exam data for %s? [y/N] ", u.Name)
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		rt, err := openRuntime(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.deps.Recorder.Reset(cmd.Context(), u); err != nil {
			return fmt.Errorf("reset %s: %w", u.Name, err)
		}
		fmt.Printf("Cleared exam data for %s.\n", u.Name)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
