package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pobackend/internal/config"
	"pobackend/internal/database"
	"pobackend/internal/sheets"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "po-api",
		Short:         "Purchase order backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := connect(cfg, log)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	}
}

func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := config.NewLogger(cfg)
	slog.SetDefault(log)
	return cfg, log, nil
}

func connect(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if !cfg.IsProduction() {
		level = logger.Info
	}
	db, err := database.NewConnection(cfg.DSN(), database.Options{
		Logger:       log,
		LogLevel:     level,
		MaxOpenConns: 20,
		MaxIdleConns: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	log.Info("connected to PostgreSQL")
	return db, nil
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	db, err := connect(cfg, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		log.Warn("failed to migrate database", slog.Any("error", err))
	}

	var appender sheets.Appender
	if cfg.SheetsConfigured() {
		appender, err = sheets.NewGoogleAppender(ctx, cfg.GoogleCredentials, cfg.GoogleSheetID)
		if err != nil {
			log.Warn("google sheets disabled", slog.Any("error", err))
			appender = nil
		}
	}

	app := newApp(cfg, db, log, appender)
	go app.hub.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// requests are done; wait for sheet mirrors they started
	if err := app.orders.Drain(shutdownCtx); err != nil {
		log.Warn("sheet mirrors still running at shutdown", slog.Any("error", err))
	}
	return nil
}
