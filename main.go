package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/stevemurr/simple-items-server/config"
	"github.com/stevemurr/simple-items-server/handler"
	"github.com/stevemurr/simple-items-server/middleware"
	"github.com/stevemurr/simple-items-server/model"
	"github.com/stevemurr/simple-items-server/store"
)

func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
}

func main() {
	configPath := flag.String("config", os.Getenv("ITEMS_CONFIG"), "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

// run serves the item API until the process is signalled or the listener
// fails. Deferred cleanup, including closing the store, happens before it
// returns.
func run(cfg *config.Config, logger *slog.Logger) error {
	ids, err := model.ParseIDStrategy(cfg.API.IDStrategy)
	if err != nil {
		return fmt.Errorf("invalid id strategy: %w", err)
	}

	s, err := store.New(cfg.API.StoreBackend, cfg.API.DataDir)
	if err != nil {
		return fmt.Errorf("failed to create store (backend=%s): %w", cfg.API.StoreBackend, err)
	}
	if c, ok := s.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				logger.Error("failed to close store", "err", err)
			}
		}()
	}

	h := handler.New(s, handler.WithIDStrategy(ids), handler.WithLogger(logger))

	srv := &http.Server{
		Addr:         cfg.APIAddr(),
		Handler:      newCORS(cfg.API.AllowedOrigins).Handler(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("item server starting",
			"addr", srv.Addr,
			"store", cfg.API.StoreBackend,
			"data", cfg.API.DataDir,
			"id_strategy", ids,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
		return nil
	}
}
