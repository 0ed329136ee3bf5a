/*
main.go - HTTP server entry point

PURPOSE:
  Serves one budget ledger over HTTP. Handles configuration, loading the
  ledger from its store, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags, load config (file, .env, BUDGET_* env)
  2. Open the configured store (json file, sqlite, memory)
  3. Load the ledger; a missing store starts an empty ledger
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to a YAML config file (default: search ./budget.yaml)
  -port    Overrides server.port

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the save scheduler
  4. Save the ledger when auto_save or save_interval is set
  5. Close the store

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Settings
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/warp/budget-ledger/api"
	"github.com/warp/budget-ledger/budget"
	"github.com/warp/budget-ledger/config"
	"github.com/warp/budget-ledger/logging"
	"github.com/warp/budget-ledger/store"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(config.New(), *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := logging.WithComponent(logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}), "server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	st, closeStore, err := store.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeStore()

	ledger := budget.NewLedger()
	if err := ledger.Load(context.Background(), st); err != nil {
		if !errors.Is(err, budget.ErrNotFound) {
			return fmt.Errorf("failed to load ledger: %w", err)
		}
		logger.Info().Str("store", store.Describe(cfg.Storage)).Msg("no saved ledger, starting empty")
	} else {
		logger.Info().Str("store", store.Describe(cfg.Storage)).Int("categories", ledger.Len()).Msg("ledger loaded")
	}

	handler := api.NewHandler(ledger, st, logger)
	handler.AutoSave = cfg.Server.AutoSave
	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	scheduler := api.NewSaveScheduler(handler, cfg.Server.SaveInterval)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Int("port", cfg.Server.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		scheduler.Stop()
		if cfg.Server.AutoSave || cfg.Server.SaveInterval > 0 {
			if err := handler.Save(shutdownCtx); err != nil {
				return fmt.Errorf("final save failed: %w", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
