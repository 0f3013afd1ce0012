package cli

import (
	"github.com/spf13/cobra"

	"stockledger/internal/console"
)

func newMenuCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, *verbose)
		},
	}
}

func runMenu(cmd *cobra.Command, verbose bool) error {
	a, err := openApp(cmd, verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	c := console.New(a.Inventory, console.Options{
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
		Currency:  a.Settings.Currency(),
		Settings:  a.Settings,
		Backups:   a.Backups,
		Stats:     a.Store,
		ExportDir: a.Config.ExportDir,
		Logger:    a.Logger,
	})
	return c.Run(cmd.Context())
}
