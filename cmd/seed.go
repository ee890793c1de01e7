package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/logging"
	"github.com/thenoetrevino/tablero/internal/seed"
)

func seedCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add a demo user and board",
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
			application := app.New(store, app.WithLogger(logging.Logger))
			defer func() { _ = application.Close(cmd.Context()) }()

			res, err := seed.Demo(cmd.Context(), application, username)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user   %s (%s, password %q)\n", res.User.ID.Hex(), res.User.Email, seed.DemoPassword)
			fmt.Fprintf(out, "board  %s with %d cards\n", res.Board.ID.Hex(), res.Cards)
			return nil
		},
	}
	cmd.Flags().String("driver", "", "database driver (mongo or sqlite)")
	cmd.Flags().StringVar(&username, "username", "", "username for the demo user (default: OS user)")
	return cmd
}
