package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minerva/internal/adapters/clickhouse"
	"minerva/internal/adapters/config"
	"minerva/internal/adapters/errors/noop"
	"minerva/internal/adapters/errors/sentry"
	"minerva/internal/adapters/kafka"
	"minerva/internal/adapters/postgres"
	"minerva/internal/adapters/redis"
	"minerva/internal/api"
	"minerva/internal/api/health"
	"minerva/internal/events"
	"minerva/internal/metrics"
	chrepo "minerva/internal/repository/clickhouse"
	pgrepo "minerva/internal/repository/postgres"
	redisrepo "minerva/internal/repository/redis"
	"minerva/internal/screener/scoring"
	ratingsvc "minerva/internal/services/rating"
	"minerva/internal/workers"
	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Init()

	// Backing stores
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	chClient, err := clickhouse.NewClient(cfg.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to connect to ClickHouse: %v", err)
	}
	defer chClient.Close()

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	producer := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()

	log.Info("Backing stores connected")

	// Repositories
	snapshotRepo := pgrepo.NewSnapshotRepository(pgClient.DB())
	derivedRepo := pgrepo.NewDerivedRepository(pgClient.DB())
	ratingRepo := pgrepo.NewRatingRepository(pgClient.DB())
	historyRepo := chrepo.NewRatingHistoryRepository(chClient.Conn())
	leaderboard := redisrepo.NewLeaderboardCache(redisClient)

	// Services
	publisher := events.NewPublisher(producer, cfg.Kafka.PublishRate)
	benchmarks := ratingsvc.NewBenchmarkService(snapshotRepo)
	pipeline := ratingsvc.NewService(
		snapshotRepo,
		derivedRepo,
		ratingRepo,
		historyRepo,
		leaderboard,
		redisClient,
		publisher,
		benchmarks,
		scoring.NewEngine(scoring.DefaultConfig()),
		errorTracker,
		cfg.Workers,
	)

	// Workers
	scheduler := workers.NewScheduler()
	scheduler.RegisterWorker(workers.NewSectorBenchmarkWorker(benchmarks, cfg.Workers.SectorBenchmarkInterval))
	scheduler.RegisterWorker(workers.NewRatingsPipelineWorker(pipeline, cfg.Workers.RatingsPipelineInterval))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Benchmarks must exist before the first pipeline run picks them up
	if err := benchmarks.Refresh(ctx); err != nil {
		log.Warnf("Initial benchmark refresh failed: %v", err)
	}

	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// HTTP surface
	healthHandler := health.New(log, map[string]health.Checker{
		"postgres":   pgClient,
		"clickhouse": chClient,
		"redis":      redisClient,
	}, cfg.App.Name, version)

	server := api.NewServer(api.ServerConfig{
		Addr:        cfg.API.Addr(),
		ServiceName: cfg.App.Name,
		Version:     version,
	}, healthHandler, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Errorf("HTTP server error: %v", err)
		}
	}()

	log.Info("System initialized successfully")

	waitForShutdown(cancel, scheduler, server, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// waitForShutdown waits for a shutdown signal and stops everything in order
func waitForShutdown(
	cancel context.CancelFunc,
	scheduler *workers.Scheduler,
	server *api.Server,
	errorTracker errors.Tracker,
	log *logger.Logger,
) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	cancel()

	if err := scheduler.Stop(); err != nil {
		log.Warnf("Scheduler shutdown: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("HTTP server shutdown: %v", err)
	}

	if err := errorTracker.Flush(shutdownCtx); err != nil {
		log.Warnf("Failed to flush error tracker: %v", err)
	}

	log.Info("Shutdown complete")
}
