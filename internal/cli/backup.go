package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackupCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy the sqlite store into BACKUP_DIR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, *verbose)
			if err != nil {
				return err
			}
			defer a.Close()

			path, err := a.Backups.Run()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup created: %s\n", path)
			return nil
		},
	}
}
