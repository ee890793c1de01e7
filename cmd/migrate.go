package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/app"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create indexes (mongo) or tables (sqlite) and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			store, err := app.OpenStore(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(cmd.Context()) }()

			fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", cfg.Database.Driver)
			return nil
		},
	}
	cmd.Flags().String("driver", "", "database driver (mongo or sqlite)")
	return cmd
}
