package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crazypanel/lookupbot/internal/adapters/lookup"
	"github.com/crazypanel/lookupbot/internal/adapters/telegram"
	"github.com/crazypanel/lookupbot/internal/config"
	"github.com/crazypanel/lookupbot/internal/server"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram webhook server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			httpClient := &http.Client{Timeout: 30 * time.Second}
			lookupClient := lookup.NewClient(cfg.LookupBaseURL, cfg.APIKey, httpClient, app.logger)
			sender := telegram.NewClient(cfg.BotToken, httpClient, app.logger)

			srv := server.New(cfg, app.service, app.reporter, lookupClient, sender, app.logger)

			return runServer(cmd.Context(), app, cfg.ListenAddr, srv.Handler())
		},
	}
}

func runServer(ctx context.Context, app *app, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info().Str("addr", addr).Msg("webhook server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
