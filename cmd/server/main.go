package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/compago/infra/initializer"
	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/config"
	"github.com/amirasaad/compago/webapi"
	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:           "compago-server",
		Short:         "COMPAGO wallet HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, envFile)
		},
	}
	cmd.Flags().StringVar(&envFile, "env", ".env", "Environment file, searched upward from the working directory")
	return cmd
}

func run(ctx context.Context, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	a, err := initializer.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer a.Close() //nolint: errcheck

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	slog.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return serve(ctx, a, ln)
}

// serve blocks until ctx is cancelled or the listener fails.
func serve(ctx context.Context, a *app.App, ln net.Listener) error {
	fiberApp := webapi.SetupApp(a)
	errCh := make(chan error, 1)
	go func() { errCh <- fiberApp.Listener(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	slog.Info("Server stopped")
	return nil
}
