package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pmb-ti/accountrenewal/config"
	echo_errors "github.com/pmb-ti/accountrenewal/errors"
	"github.com/pmb-ti/accountrenewal/model"
	"github.com/pmb-ti/accountrenewal/util"
)

func renewCmd() *cobra.Command {
	var login, domain, contract string

	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Renew one account",
		Long: `Renew one account according to its contract type:
- intern:    expiration moves to six months from now
- appointed: expiration moves to one year from now
- permanent: expiration is removed

Accounts expiring in more than 30 days are not renewed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			classification, err := model.ParseClassification(contract)
			if err != nil {
				return err
			}

			ctx := util.WithRequestID(cmd.Context(), "")
			eventBus := util.NewEventBus()
			util.NewNotificationService().Register(eventBus)

			services, cleanup, err := buildServices(ctx, eventBus)
			if err != nil {
				return err
			}
			defer cleanup()

			domainID := model.NormalizeDomainID(domain)
			report, err := services.Renewal.Execute(ctx, login, domainID, classification)
			eventBus.Wait()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Account:    %s@%s\n", strings.TrimSpace(login), config.DomainLabel(domainID))
			fmt.Fprintf(out, "Contract:   %s\n", classification)
			fmt.Fprintf(out, "Result:     %s\n", report.Kind)
			fmt.Fprintf(out, "Message:    %s\n", report.Message)
			if report.Success {
				fmt.Fprintf(out, "Expiration: %s\n", report.AppliedExpiration)
				return nil
			}
			if report.Kind == model.OutcomeRenewalRefused {
				return fmt.Errorf("%w: %s", echo_errors.ErrRenewalRefused, report.Message)
			}
			return fmt.Errorf("renewal not applied: %s", report.Kind)
		},
	}

	cmd.Flags().StringVarP(&login, "login", "l", "", "Account login (sAMAccountName)")
	cmd.Flags().StringVarP(&domain, "domain", "d", "", "Directory domain identifier, e.g. saude")
	cmd.Flags().StringVarP(&contract, "contract", "c", "", "Contract type: intern, appointed or permanent")
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("contract")

	return cmd
}
