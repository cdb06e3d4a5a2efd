package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/config"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/database"
	kafkainfra "github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/kafka"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/logger"
	redisinfra "github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/redis"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/security"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/telemetry"
	postgresrepo "github.com/legalmonkey/MIC-GitHub-Submission/internal/repository/postgres"
	redisrepo "github.com/legalmonkey/MIC-GitHub-Submission/internal/repository/redis"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/transport/http/middleware"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/transport/http/routes"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/usecase"
)

type Application struct {
	cfg     *config.AppConfig
	engine  *gin.Engine
	logger  *zap.Logger
	closers []func(context.Context) error
}

// accountStore is the selected backend plus its readiness probe.
type accountStore struct {
	accounts port.AccountRepository
	health   port.HealthChecker
}

type poolChecker struct {
	pool *pgxpool.Pool
}

func (p poolChecker) HealthCheck(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres health check failed: %w", err)
	}
	return nil
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &Application{cfg: cfg, logger: log}

	cipher, err := security.NewFernetCipher(cfg.Security.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("init credential cipher: %w", err)
	}

	if cfg.Telemetry.TracingEnabled {
		tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		a.closers = append(a.closers, tp.Shutdown)
	}

	store, err := a.openStore(ctx)
	if err != nil {
		a.close(context.Background())
		return nil, err
	}

	events := a.newEventPublisher()

	authMetrics, err := telemetry.NewAuthMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		a.close(context.Background())
		return nil, fmt.Errorf("init auth metrics: %w", err)
	}
	httpMetrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		a.close(context.Background())
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	registrationService := usecase.NewRegistrationService(store.accounts, cipher, events).
		WithLogger(log).
		WithMetrics(authMetrics)
	sessionService := usecase.NewSessionService(store.accounts, cipher, security.RandomTokenSource{}, events, log).
		WithMetrics(authMetrics)

	a.engine = routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		Store:       store.health,
		HTTPMetrics: httpMetrics,
		Services: routes.ServiceSet{
			Registration: registrationService,
			Sessions:     sessionService,
		},
	})

	return a, nil
}

func (a *Application) openStore(ctx context.Context) (accountStore, error) {
	switch a.cfg.Store.Backend {
	case config.StoreBackendRedis:
		client, err := redisinfra.NewClient(ctx, a.cfg.Redis, a.logger)
		if err != nil {
			return accountStore{}, fmt.Errorf("init redis: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })

		return accountStore{
			accounts: redisrepo.NewAccountRepository(client.Client(), a.cfg.Redis.KeyPrefix),
			health:   client,
		}, nil

	default:
		if a.cfg.Postgres.AutoMigrate {
			if err := a.migrate(); err != nil {
				return accountStore{}, err
			}
		}

		pool, err := database.NewPostgresPool(ctx, a.cfg.Postgres, a.logger)
		if err != nil {
			return accountStore{}, fmt.Errorf("init postgres: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { pool.Close(); return nil })

		return accountStore{
			accounts: postgresrepo.NewRepositories(pool).Accounts,
			health:   poolChecker{pool: pool},
		}, nil
	}
}

func (a *Application) migrate() error {
	migrator, err := database.NewMigrator(database.DSN(a.cfg.Postgres), a.logger)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			a.logger.Warn("failed to close migrator", zap.Error(err))
		}
	}()

	if err := migrator.Up(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (a *Application) newEventPublisher() port.EventPublisher {
	if len(a.cfg.Kafka.Brokers) == 0 {
		a.logger.Info("kafka brokers not configured, using stub publisher")
		return kafkainfra.NewStubPublisher(a.logger)
	}

	producer, err := kafkainfra.NewProducer(a.cfg.Kafka, a.logger)
	if err != nil {
		a.logger.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
		return kafkainfra.NewStubPublisher(a.logger)
	}
	a.closers = append(a.closers, func(context.Context) error { return producer.Close() })

	return kafkainfra.NewEventPublisher(producer, a.cfg.App, a.logger)
}

// close releases resources in reverse order of acquisition.
func (a *Application) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn("failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer a.close(context.Background())

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting auth API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
		zap.String("store", a.cfg.Store.Backend),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
