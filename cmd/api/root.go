package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"credit-app/config"
	pgStorage "credit-app/internal/adapter/storage/postgres"
	"credit-app/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// execute runs the CLI and returns the process exit code.
func execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		inMemory   bool
	)

	serve := func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return runServe(cmd.Context(), cfg, inMemory)
	}

	rootCmd := &cobra.Command{
		Use:           "credit-app",
		Short:         "Credit request service",
		Long:          "HTTP API for submitting, reviewing and auditing credit requests.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&inMemory, "in-memory", false, "use the in-memory store and an embedded redis")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE:  serve,
		},
		newMigrateCmd(&configPath),
		newSeedCmd(&configPath, &inMemory),
	)
	return rootCmd
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

			pool, err := pgStorage.NewPool(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := pgStorage.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
			return nil
		},
	}
}

func newSeedCmd(configPath *string, inMemory *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users and credit requests into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

			st, err := openStorage(cmd.Context(), cfg, *inMemory, log)
			if err != nil {
				return err
			}
			defer st.Close()

			seeded, err := newSeeder(st, log).Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded: %t\n", seeded)
			return nil
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, inMemory bool) error {
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Bool("in_memory", inMemory).
		Msg("Starting credit-app")

	st, err := openStorage(ctx, cfg, inMemory, log)
	if err != nil {
		return err
	}
	defer st.Close()

	if inMemory {
		if _, err := newSeeder(st, log).Seed(ctx); err != nil {
			return fmt.Errorf("seed in-memory store: %w", err)
		}
	}

	router, err := newRouter(cfg, st, log)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exited")
	return nil
}
