package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/pulse/internal/config"
	"github.com/garrettladley/pulse/internal/db"
	postgresmigrations "github.com/garrettladley/pulse/internal/migrations/postgres"
	"github.com/garrettladley/pulse/internal/paths"
	xredis "github.com/garrettladley/pulse/internal/redis"
	"github.com/garrettladley/pulse/internal/repository"
	"github.com/garrettladley/pulse/internal/storage"
	"github.com/garrettladley/pulse/internal/xslog"
)

// app bundles what every subcommand needs: config, a logger and the record
// store selected by STORE_BACKEND.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  storage.Store
	repo   *repository.Repository
}

func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	logger := xslog.NewLogger(logOut, cfg.Level()).With(xslog.Version())
	slog.SetDefault(logger)

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		repo:   repository.New(store),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.Store, error) {
	logger = logger.With(xslog.Backend(string(cfg.StoreBackend)))

	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.WarnContext(ctx, "using in-memory store, sessions are lost on exit")
		return storage.NewMemoryStore(), nil

	case config.BackendSQLite:
		if _, err := paths.EnsureDir(); err != nil {
			return nil, err
		}
		sqlDB, err := db.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.DebugContext(ctx, "opened sqlite store", slog.String("path", cfg.SQLitePath))
		return storage.NewSQLiteStore(sqlDB), nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping postgres: %w", err)
		}
		applied, err := postgresmigrations.Apply(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		for _, name := range applied {
			logger.InfoContext(ctx, "applied migration", xslog.Migration(name))
		}
		return storage.NewPostgresStore(pool), nil

	case config.BackendRedis:
		client, err := xredis.New(ctx, xredis.Config{URL: cfg.RedisURL, Role: xredis.RoleStore})
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(storage.RedisConfig{Client: client}), nil
	}

	return nil, errors.New("unknown store backend: " + string(cfg.StoreBackend))
}
