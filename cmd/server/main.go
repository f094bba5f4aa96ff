package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paybridge/paybridge/internal/backend"
	"github.com/paybridge/paybridge/internal/backend/mock"
	httpdelivery "github.com/paybridge/paybridge/internal/delivery/http"
	"github.com/paybridge/paybridge/internal/domain/pay"
	"github.com/paybridge/paybridge/internal/infrastructure/config"
	"github.com/paybridge/paybridge/internal/infrastructure/postgres"
)

const (
	dbMaxConns            = 10
	dbMinConns            = 2
	dbMaxConnLifetime     = 30 * time.Minute
	dbMaxConnIdleTime     = 5 * time.Minute
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	fixtures, err := config.LoadFixtures(cfg.FixturesPath)
	if err != nil {
		logger.Error("fixtures load failed", "path", cfg.FixturesPath, "error", err)
		os.Exit(1)
	}

	registry := backend.NewRegistry()
	if err := registry.Register("mock", func() (pay.System, error) {
		pools, poolErr := mock.PoolsFromConfig(fixtures.Pools)
		if poolErr != nil {
			return nil, poolErr
		}
		return mock.NewSystem("mock", pools), nil
	}); err != nil {
		logger.Error("backend registration failed", "error", err)
		os.Exit(1)
	}

	system, err := registry.New(cfg.Backend)
	if err != nil {
		logger.Error("backend init failed", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}

	var journal pay.Journal = pay.NopJournal{}
	if cfg.DatabaseURL != "" {
		pool, dbErr := initDB(ctx, cfg.DatabaseURL)
		if dbErr != nil {
			logger.Error("database init failed", "error", dbErr)
			os.Exit(1)
		}
		defer pool.Close()
		journal = postgres.NewJournal(pool)
	}

	resolver := mock.NewStaticResolver(fixtures.Records()...)
	handler := httpdelivery.NewHandler(system, resolver, pay.ConnectionParams{}, journal)
	router := httpdelivery.NewRouter(handler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "backend", system.Name())
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", serveErr)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func initDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = dbMaxConns
	cfg.MinConns = dbMinConns
	cfg.MaxConnLifetime = dbMaxConnLifetime
	cfg.MaxConnIdleTime = dbMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
