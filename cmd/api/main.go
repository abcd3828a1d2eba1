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

	"github.com/hibiken/asynq"
	gormlogger "gorm.io/gorm/logger"

	"portfolio/internal/api"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/logging"
	"portfolio/internal/tasks"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg := config.MustLoad()

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	logger.Info("api bootstrapping",
		slog.String("profile", cfg.Profile),
		slog.String("driver", cfg.Database.Driver),
	)

	logMode := gormlogger.Info
	if cfg.IsProduction() {
		logMode = gormlogger.Warn
	}
	db, err := database.Open(cfg.Database, logMode)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("close database failed", slog.Any("error", err))
		}
	}()
	logger.Info("database connection ready")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("database migrated")
	}

	// 未配置 Redis 时 notifier 保持 nil 接口，联系表单只落库。
	var notifier api.ContactNotifier
	if cfg.NotificationsEnabled() {
		client := asynq.NewClient(tasks.RedisConnOpt(cfg.Redis))
		defer func() {
			if err := client.Close(); err != nil {
				logger.Error("close asynq client failed", slog.Any("error", err))
			}
		}()
		notifier = tasks.NewContactNotifier(client)
		logger.Info("contact notifications enabled", slog.String("redis_addr", cfg.Redis.Addr))
	}

	router := api.NewRouter(cfg, db, logger)
	api.RegisterRoutes(router, api.NewGormStores(db), notifier)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("api listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down api", slog.Duration("timeout", cfg.API.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}
