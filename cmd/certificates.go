package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examportal/internal/certificates"
)

var certificatesCmd = &cobra.Command{
	Use:   "certificates",
	Short: "List a user's certificates",
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

		certs, err := rt.deps.Certificates.List(cmd.Context(), u.ID)
		if err != nil {
			return fmt.Errorf("list certificates: %w", err)
		}
		if len(certs) == 0 {
			fmt.Println(rt.deps.T.T("NoCertificates"))
			return nil
		}

		for _, c := range certs {
			tier := certificates.Tier(c.Tier)
			fmt.Printf("%s %-34s %3d%%  %-2s  %-9s  %s  %s\n",
				tier.Icon(), c.Title, c.Score, c.Grade, tier.DisplayName(),
				c.CredentialID, c.IssuedAt.Local().Format("2006-01-02"))
		}
		sum := certificates.Summarize(certs)
		fmt.Printf("\n%d certificates, average score %d%%, %d verified\n", sum.Total, sum.AverageScore, sum.Verified)
		return nil
	},
}
