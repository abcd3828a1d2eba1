package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	gormlogger "gorm.io/gorm/logger"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/logging"
	"portfolio/internal/metrics"
	"portfolio/internal/store"
	"portfolio/internal/tasks"
	"portfolio/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg := config.MustLoad()

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	if !cfg.NotificationsEnabled() {
		return errors.New("worker requires REDIS_ADDR")
	}

	db, err := database.Open(cfg.Database, gormlogger.Warn)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("close database failed", slog.Any("error", err))
		}
	}()
	logger.Info("database connection ready for worker", slog.String("driver", cfg.Database.Driver))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	if cfg.Worker.MetricsPort > 0 {
		go serveMetrics(logger, cfg.Worker.MetricsPort)
	}

	server := asynq.NewServer(tasks.RedisConnOpt(cfg.Redis), asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
	})

	contactHandler := worker.NewContactNotifyHandler(
		store.NewContactStore(db),
		redisClient,
		cfg.Redis.NotifyChannel,
		logger,
	)

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMiddleware())
	mux.Handle(tasks.TypeContactNotify, contactHandler)

	logger.Info("worker service started",
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.String("channel", cfg.Redis.NotifyChannel),
		slog.Int("concurrency", cfg.Worker.Concurrency),
	)
	if err := server.Run(mux); err != nil {
		return fmt.Errorf("run asynq server: %w", err)
	}
	return nil
}

func serveMetrics(logger *slog.Logger, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("worker metrics listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("worker metrics server stopped", slog.Any("error", err))
	}
}
