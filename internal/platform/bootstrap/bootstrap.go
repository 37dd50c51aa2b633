// Package bootstrap opens the stores and clients both binaries are wired from.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	"github.com/SscSPs/payroll_engine/internal/platform/config"
	"github.com/SscSPs/payroll_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/payroll_engine/internal/repositories/memory"
	"github.com/SscSPs/payroll_engine/pkg/database"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store is an opened store and the function releasing it.
type Store struct {
	portsrepo.Store
	Persistent bool
	Close      func()
}

// OpenStore connects to PostgreSQL and applies pending migrations, or falls back to
// the in-memory store when no database URL is configured. cfg.PayrollWorkers is capped
// at the pool size.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("No database configured, using the in-memory store")
		return &Store{Store: memory.NewStore(), Close: func() {}}, nil
	}

	if err := RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return nil, err
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	// Each payroll worker holds at most one connection
	if maxConns := int(pool.Config().MaxConns); cfg.PayrollWorkers > maxConns {
		logger.Info("Capping payroll workers to the pool size", slog.Int("requested", cfg.PayrollWorkers), slog.Int("max_conns", maxConns))
		cfg.PayrollWorkers = maxConns
	}
	return &Store{
		Store:      pgsql.NewStore(pool),
		Persistent: true,
		Close:      func() { database.ClosePgxPool(pool) },
	}, nil
}

// RunMigrations applies every pending "up" migration found at migrationsPath.
func RunMigrations(databaseURL, migrationsPath string, logger *slog.Logger) error {
	logger.Info("Running database migrations...", slog.String("path", migrationsPath))

	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}
	if version, dirty, verr := m.Version(); verr == nil {
		logger.Info("Migration state", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return fmt.Errorf("failed to close migrations: %w", errors.Join(sourceErr, dbErr))
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// OpenRedis returns a client for cfg.RedisAddr, or nil when Redis is not configured.
// An unreachable server is logged and the client is still returned.
func OpenRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Warn("No Redis configured, FX cache and async transitions are disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	return client
}
