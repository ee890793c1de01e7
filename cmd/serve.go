package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().String("driver", "", "database driver (mongo or sqlite)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, closeLog, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Database.Driver, "error", err)
		return err
	}
	application := app.New(store, app.WithLogger(logging.Logger))
	defer func() {
		if err := application.Close(context.Background()); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	e := api.NewServer(application, cfg.Server)
	errCh := make(chan error, 1)
	go func() {
		slog.Info("tablero starting", "addr", cfg.Server.Addr(), "driver", cfg.Database.Driver, "pid", os.Getpid())
		errCh <- e.Start(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("tablero shutting down gracefully")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return e.Shutdown(shutdownCtx)
}
