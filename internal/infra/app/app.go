package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/infra/config"
	"github.com/arklim/hall-of-fame-creators/internal/infra/database"
	kafkainfra "github.com/arklim/hall-of-fame-creators/internal/infra/kafka"
	"github.com/arklim/hall-of-fame-creators/internal/infra/logger"
	"github.com/arklim/hall-of-fame-creators/internal/infra/mojang"
	redisinfra "github.com/arklim/hall-of-fame-creators/internal/infra/redis"
	"github.com/arklim/hall-of-fame-creators/internal/infra/report"
	"github.com/arklim/hall-of-fame-creators/internal/infra/telemetry"
	"github.com/arklim/hall-of-fame-creators/internal/infra/translation"
	postgresrepo "github.com/arklim/hall-of-fame-creators/internal/repository/postgres"
	redisrepo "github.com/arklim/hall-of-fame-creators/internal/repository/redis"
	"github.com/arklim/hall-of-fame-creators/internal/transport/http/middleware"
	"github.com/arklim/hall-of-fame-creators/internal/transport/http/routes"
	"github.com/arklim/hall-of-fame-creators/internal/usecase"
)

type Application struct {
	cfg          *config.AppConfig
	engine       *gin.Engine
	logger       *zap.Logger
	pool         *pgxpool.Pool
	redis        *redisinfra.Client
	producer     *kafkainfra.Producer
	translations *usecase.TranslationService
	tracer       *telemetry.TracerProvider
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if err := telemetry.Attach(cfg); err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	var tracer *telemetry.TracerProvider
	if cfg.Telemetry.OTLPEndpoint != "" {
		tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	profileCache := redisrepo.NewProfileCache(redisClient.Client(), cfg.Redis.ProfileCachePrefix, cfg.Redis.ProfileCacheTTL)
	verifier := mojang.NewClient(cfg.Mojang, profileCache, log)
	translator := translation.NewClient(cfg.Translation, log)
	reporter := report.New(log)

	creators := postgresrepo.NewCreatorRepository(pool)

	var eventPublisher port.EventPublisher
	var producer *kafkainfra.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			producer = nil
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	translationService := usecase.NewTranslationService(creators, translator, eventPublisher, reporter, log)
	identityService := usecase.NewIdentityService(creators, verifier, translationService, eventPublisher, reporter, log)
	simpleAuthService := usecase.NewSimpleAuthService(creators, log)
	adminService := usecase.NewCreatorAdminService(creators, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Metrics:  metrics,
		Database: pool,
		Cache:    redisClient,
		Services: routes.ServiceSet{
			Identity: identityService,
			Simple:   simpleAuthService,
			Admin:    adminService,
		},
	})

	return &Application{
		cfg:          cfg,
		engine:       engine,
		logger:       log,
		pool:         pool,
		redis:        redisClient,
		producer:     producer,
		translations: translationService,
		tracer:       tracer,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.producer != nil {
			_ = a.producer.Close()
		}
	}()
	defer func() {
		if a.tracer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = a.tracer.Shutdown(shutdownCtx)
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting creators API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		// Let in-flight translation refreshes finish before the producer
		// and pool close underneath them.
		a.translations.Wait()
		return nil
	case err := <-serverErrCh:
		return err
	}
}
