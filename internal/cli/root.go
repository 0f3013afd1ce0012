// Package cli is the command line front end: the interactive menu plus a
// few one-shot commands for scripting.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"stockledger/config"
	"stockledger/internal/app"
	"stockledger/internal/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "stockledger",
		Short:         "Inventory, purchases and sales for a small shop",
		Long:          "stockledger tracks products, suppliers, purchases and sales. Run it without a command for the interactive menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, verbose)
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write logs to stderr")

	cmd.AddCommand(newMenuCmd(&verbose))
	cmd.AddCommand(newExportCmd(&verbose))
	cmd.AddCommand(newBackupCmd(&verbose))
	cmd.AddCommand(newHashPasswordCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// openApp loads the configuration from the environment and assembles the
// application. Logs are discarded unless verbose is set.
func openApp(cmd *cobra.Command, verbose bool) (*app.App, error) {
	cfg := config.LoadConfig()

	var out io.Writer = io.Discard
	if verbose {
		out = cmd.ErrOrStderr()
	}
	log := logger.NewLogger(logger.Config{Env: cfg.Environment, Level: cfg.LogLevel, Out: out})

	return app.New(cmd.Context(), cfg, log)
}
