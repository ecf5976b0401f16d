package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dukkanhq/dukkan-backend/internal/jobs"
	"github.com/dukkanhq/dukkan-backend/internal/monitor"
	"github.com/dukkanhq/dukkan-backend/internal/notifications"
	"github.com/dukkanhq/dukkan-backend/internal/rentals"
	"github.com/dukkanhq/dukkan-backend/pkg/config"
	"github.com/dukkanhq/dukkan-backend/pkg/db"
	"github.com/dukkanhq/dukkan-backend/pkg/enums"
	"github.com/dukkanhq/dukkan-backend/pkg/logger"
	"github.com/dukkanhq/dukkan-backend/pkg/metrics"
	"github.com/dukkanhq/dukkan-backend/pkg/migrate"
	"github.com/dukkanhq/dukkan-backend/pkg/pubsub"
	"github.com/dukkanhq/dukkan-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate && !cfg.FeatureFlags.UseSQLite {
		sqlDB, err := dbClient.DB().DB()
		if err != nil {
			logg.Error(ctx, "failed to get sql handle for migrations", err)
			os.Exit(1)
		}
		if err := migrate.Run(ctx, sqlDB, migrate.DefaultDir, "up"); err != nil {
			logg.Error(ctx, "failed to run migrations", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)

	rentalsRepo := rentals.NewRepository(dbClient.DB())
	rentalsService, err := rentals.NewService(rentalsRepo, logg)
	if err != nil {
		logg.Error(ctx, "failed to create rentals service", err)
		os.Exit(1)
	}

	lock, err := jobs.NewRedisLock(redisClient, redisClient.LockKey(cfg.Jobs.LockKey), cfg.Jobs.LockTTL)
	if err != nil {
		logg.Error(ctx, "failed to create job lock", err)
		os.Exit(1)
	}

	registry := jobs.NewRegistry(
		rentals.NewReconcileJob(rentalsService, rentalsRepo, logg, 0),
	)
	runner, err := jobs.NewService(jobs.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Jobs.Interval,
	})
	if err != nil {
		logg.Error(ctx, "failed to create job runner", err)
		os.Exit(1)
	}

	if controller := buildMonitor(ctx, cfg, dbClient, logg, jobMetrics); controller != nil {
		if err := controller.Start(ctx); err != nil {
			logg.Error(ctx, "failed to start product monitor", err)
			os.Exit(1)
		}
		defer controller.Stop()
	}

	logg.Info(ctx, "worker starting")
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "worker shutting down gracefully")
}

// buildMonitor wires the optional pending-product poller. It returns nil
// when no business scope is configured.
func buildMonitor(ctx context.Context, cfg *config.Config, dbClient *db.Client, logg *logger.Logger, jobMetrics *metrics.JobMetrics) *monitor.Controller {
	if cfg.Monitor.BusinessCode == "" {
		return nil
	}

	notifier, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create notifications service", err)
		os.Exit(1)
	}

	var events monitor.EventPublisher
	if cfg.GCP.ProjectID != "" && cfg.PubSub.ProductEventsTopic != "" {
		psClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		if publisher := monitor.NewPubSubPublisher(psClient.ProductEventsPublisher()); publisher != nil {
			events = publisher
		}
	}

	role, err := enums.ParseUserRole(cfg.Monitor.Role)
	if err != nil {
		logg.Error(ctx, "invalid monitor role", err)
		os.Exit(1)
	}

	controller, err := monitor.NewController(monitor.Params{
		Repo:         monitor.NewRepository(dbClient.DB()),
		Notifier:     notifier,
		Events:       events,
		Logger:       logg,
		Metrics:      jobMetrics,
		Interval:     cfg.Monitor.PollInterval,
		BusinessCode: cfg.Monitor.BusinessCode,
		BranchName:   cfg.Monitor.BranchName,
		Role:         role,
	})
	if err != nil {
		logg.Error(ctx, "failed to create product monitor", err)
		os.Exit(1)
	}
	return controller
}
