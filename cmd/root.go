// Package cmd holds the tablero command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tablero",
	Short: "Tablero - a kanban board API",
	Long: `Tablero serves boards, columns, cards and users over HTTP,
backed by MongoDB or an embedded SQLite database.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tablero/config.yaml)")
	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedCmd(), versionCmd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration, applies the --driver override and
// installs the configured logger. Callers must run the returned close func.
func loadConfig(cmd *cobra.Command) (*config.Config, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("driver") {
		cfg.Database.Driver, _ = cmd.Flags().GetString("driver")
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	closeLog, err := logging.Init(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, func() { _ = closeLog() }, nil
}
