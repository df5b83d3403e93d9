package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pmb-ti/accountrenewal/model"
	"github.com/pmb-ti/accountrenewal/util"
)

func statusCmd() *cobra.Command {
	var login, domain string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show an account and its expiration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := util.WithRequestID(cmd.Context(), "")

			services, cleanup, err := buildServices(ctx, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := services.Renewal.Lookup(ctx, login, model.NormalizeDomainID(domain))
			if err != nil {
				return err
			}
			printAccountView(cmd, view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&login, "login", "l", "", "Account login (sAMAccountName)")
	cmd.Flags().StringVarP(&domain, "domain", "d", "", "Directory domain identifier, e.g. saude")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func printAccountView(cmd *cobra.Command, view *model.AccountView) {
	out := cmd.OutOrStdout()
	a := view.Account

	fmt.Fprintf(out, "Account %s@%s\n", a.Login, view.Domain.Label)
	fmt.Fprintln(out, strings.Repeat("=", 40))
	fmt.Fprintf(out, "  Name:       %s\n", a.DisplayName)
	if a.UserPrincipalName != "" {
		fmt.Fprintf(out, "  UPN:        %s\n", a.UserPrincipalName)
	}
	fmt.Fprintf(out, "  Enabled:    %t\n", a.Enabled)
	fmt.Fprintf(out, "  Expiration: %s\n", a.Expiration)

	status := view.Status
	switch status.State {
	case model.StateNoExpiration:
		fmt.Fprintln(out, "  Status:     no expiration")
	case model.StateExpired:
		fmt.Fprintf(out, "  Status:     expired %d day(s) ago\n", -*status.DaysRemaining)
	default:
		fmt.Fprintf(out, "  Status:     %d day(s) remaining\n", *status.DaysRemaining)
	}
	switch status.Warning {
	case model.WarningMoreThan30Days:
		fmt.Fprintln(out, "  Warning:    more than 30 days of validity left; renewal will be refused")
	case model.WarningCloseToExpiring:
		fmt.Fprintln(out, "  Warning:    account is close to expiring")
	}
}
