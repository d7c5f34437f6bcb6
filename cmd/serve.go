package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	"village-profile/database"
	"village-profile/fallback"
	"village-profile/feedback"
	"village-profile/handlers"
	"village-profile/news"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ds, err := fallback.Load()
	if err != nil {
		return err
	}

	// A store that cannot be opened is not fatal: the site runs on the
	// fallback dataset.
	store, err := database.Open(ctx, cfg.Store)
	if err != nil {
		logger.Warn("Store unavailable, serving fallback data",
			zap.String("driver", cfg.Store.Driver),
			zap.Error(err))
		store = database.NoopStore{}
	}
	defer store.Close()

	srv := handlers.NewServer(
		store,
		news.NewDirectory(),
		feedback.NewService(store, logger, cfg.Feedback.TimeoutDuration()),
		ds,
		logger,
	)

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Store.TimeoutDuration())
	n := srv.Reload(loadCtx)
	cancel()
	logger.Info("Articles loaded", zap.Int("count", n))

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting village profile server", zap.String("addr", cfg.Server.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
