// Package cli holds the accountrenewal commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pmb-ti/accountrenewal/config"
	"github.com/pmb-ti/accountrenewal/db"
	"github.com/pmb-ti/accountrenewal/directory"
	logger "github.com/pmb-ti/accountrenewal/logging"
	"github.com/pmb-ti/accountrenewal/service"
	"github.com/pmb-ti/accountrenewal/util"
)

// openDirectory connects the configured directory binding. The returned
// function releases whatever it opened.
var openDirectory = func(ctx context.Context, backend string) (directory.Service, func(), error) {
	cleanup := func() {}
	if backend == "neo4j" {
		if err := db.InitNeo4j(ctx); err != nil {
			return nil, nil, err
		}
		cleanup = db.CloseNeo4j
	}
	dir, err := service.NewDirectory(ctx, backend)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return dir, cleanup, nil
}

func NewRootCommand(version string) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "accountrenewal",
		Short:         "Renew Active Directory accounts according to contract type",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.InitConfig(); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			if verbose || cmd.Name() == "serve" {
				return logger.InitLogger(config.GetString("log.dir"))
			}
			logger.InitNop()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write structured logs to stdout")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(renewCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(checkCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildServices opens the directory and wires the renewal service on top of it.
func buildServices(ctx context.Context, eventBus *util.EventBus) (*service.Services, func(), error) {
	dir, cleanup, err := openDirectory(ctx, config.GetString("directory.backend"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open directory: %w", err)
	}
	return service.InitializeServices(dir, util.NewValidationUtil(), eventBus), cleanup, nil
}
