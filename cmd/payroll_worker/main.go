package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/payroll_engine/internal/core/services"
	"github.com/SscSPs/payroll_engine/internal/jobs"
	"github.com/SscSPs/payroll_engine/internal/platform/bootstrap"
	"github.com/SscSPs/payroll_engine/internal/platform/config"
	"github.com/SscSPs/payroll_engine/internal/repositories/cache"
	"github.com/hibiken/asynq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" || cfg.RedisAddr == "" {
		logger.Error("worker needs PGSQL_URL and REDIS_ADDR")
		os.Exit(1)
	}

	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	redisClient := bootstrap.OpenRedis(ctx, cfg, logger)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	rates := cache.NewExchangeRateCache(store, redisClient, cfg.FXCacheTTL)
	serviceContainer := services.NewServiceContainer(cfg, store, rates, nil)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.PayrollWorkers,
		Payrolls:    serviceContainer.Payroll,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
