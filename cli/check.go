package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmb-ti/accountrenewal/config"
	"github.com/pmb-ti/accountrenewal/directory"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify every configured domain is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, cleanup, err := buildServices(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer cleanup()

			domains := config.Domains()
			if err := directory.VerifyConnectivity(cmd.Context(), services.Directory, domains); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range domains {
				fmt.Fprintf(out, "  %-12s OK\n", d.Label)
			}
			fmt.Fprintf(out, "%d domain(s) reachable\n", len(domains))
			return nil
		},
	}
}
