package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"panguard/internal/audit"
	"panguard/internal/auth"
	"panguard/internal/platform/config"
	"panguard/internal/platform/httpserver"
	"panguard/internal/platform/kafka"
	"panguard/internal/platform/logger"
	"panguard/internal/platform/metrics"
	"panguard/internal/platform/postgres"
	"panguard/internal/platform/redis"
	"panguard/internal/ratelimit"
	"panguard/internal/token"
	httptransport "panguard/internal/transport/http"
	"panguard/internal/validation"
	validationhandler "panguard/internal/validation/handler"
	validationmetrics "panguard/internal/validation/metrics"
)

const (
	tokenIssuer   = "panguard"
	tokenAudience = "panguard-api"

	topicSetupTimeout = 10 * time.Second
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// Optional backends. Each constructor returns nil when unconfigured, so a
	// bare start serves validations with in-memory state only.
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if db != nil {
		defer db.Close()
	}

	kafkaClient, err := kafka.NewClient(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}
	if kafkaClient != nil {
		defer kafkaClient.Close()
		topicCtx, cancel := context.WithTimeout(ctx, topicSetupTimeout)
		err := kafka.EnsureTopic(topicCtx, kafkaClient, cfg.Kafka)
		cancel()
		if err != nil {
			return err
		}
	}

	// Audit pipeline: handlers drop events on a buffered channel and a single
	// worker batches them into the configured sink.
	store, err := auditStore(cfg, db, kafkaClient)
	if err != nil {
		return err
	}
	auditMetrics := audit.NewMetrics()
	inbox := make(chan audit.Event, cfg.Audit.BufferSize)
	publisher := audit.NewPublisher(inbox, log, auditMetrics)
	worker := audit.NewWorker(store, inbox, cfg.Audit.BatchSize, cfg.Audit.FlushInterval, log, auditMetrics)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	// Redis-backed rate limiting when configured, so every instance counts
	// against the same window; an in-process limiter covers Redis outages.
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter()
	if redisClient != nil {
		limiter = ratelimit.NewFallbackLimiter(
			ratelimit.NewRedisLimiter(redisClient.Client),
			ratelimit.NewMemoryLimiter(),
			log,
		)
	}
	limitMiddleware := ratelimit.New(limiter, cfg.RateLimit, log,
		ratelimit.WithMetrics(ratelimit.NewMetrics()),
		ratelimit.WithAudit(publisher),
	)

	tokens := token.NewService(cfg.Auth.JWTSigningKey, tokenIssuer, tokenAudience)
	authenticator := auth.New(tokens, cfg.Auth.APIKeyHashes, log)

	validationMetrics := validationmetrics.New()
	validationService := validation.NewService(log, validationMetrics, publisher)

	router := httptransport.New(httptransport.Deps{
		Config:     &cfg,
		Logger:     log,
		Metrics:    metrics.New(),
		Validation: validationhandler.New(validationService, log, validationMetrics),
		RateLimit:  limitMiddleware,
		Auth:       authenticator,
		Audit:      publisher,
		Redis:      redisClient,
		DB:         db,
	})

	srv := httpserver.New(cfg.Server, router)

	log.Info("starting panguard",
		"addr", cfg.Server.Addr,
		"audit_sink", cfg.Audit.Sink,
		"redis_configured", redisClient != nil,
		"auth_disabled", cfg.Auth.Disabled,
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	// Stop the audit worker only after the server has drained so events from
	// in-flight requests still reach the sink.
	stopWorker()
	<-workerDone

	return nil
}

// auditStore selects the audit sink named by configuration. Sinks that need a
// backend fail fast when that backend is not configured.
func auditStore(cfg config.Config, db *sql.DB, kafkaClient *kgo.Client) (audit.Store, error) {
	switch cfg.Audit.Sink {
	case "postgres":
		if db == nil {
			return nil, errors.New("audit sink postgres requires PANGUARD_POSTGRES_DSN")
		}
		return audit.NewPostgresStore(db), nil
	case "kafka":
		if kafkaClient == nil {
			return nil, errors.New("audit sink kafka requires PANGUARD_KAFKA_BROKERS")
		}
		return audit.NewKafkaStore(kafkaClient, cfg.Kafka.Topic), nil
	case "memory":
		return audit.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown audit sink %q", cfg.Audit.Sink)
	}
}
