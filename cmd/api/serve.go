package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbadapter "skillink/internal/adapter/db"
	httpadapter "skillink/internal/adapter/http"
	"skillink/internal/adapter/http/handlers"
	httpmiddleware "skillink/internal/adapter/http/middleware"
	"skillink/internal/adapter/memory"
	"skillink/internal/adapter/mq"
	redisadapter "skillink/internal/adapter/redis"
	"skillink/internal/adapter/seed"
	appservice "skillink/internal/app/service"
	"skillink/internal/config"
	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API on APP_PORT. STORAGE selects the memory or mysql
repositories; REDIS_ADDR and MQ_URL enable the shared edit slot and the
RabbitMQ event publisher.`,
	RunE: runServe,
}

// stack holds the adapters chosen from the configuration and the cleanups
// to run on shutdown, in reverse order. cache and broker stay nil
// interfaces when their backend is not configured.
type stack struct {
	deps    appservice.Dependencies
	db      *sqlx.DB
	cache   goredis.Cmdable
	broker  handlers.BrokerStatus
	closers []func()
}

func (s *stack) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := buildStack(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	services := appservice.New(st.deps)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger), httpmiddleware.MetricsMiddleware())
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:     handlers.NewHealthHandler(cfg.Storage, st.db, st.cache, st.broker),
		Posts:      handlers.NewPostHandler(services.Posts),
		Edit:       handlers.NewEditHandler(services.Posts, services.Lifecycle),
		Applicants: handlers.NewApplicantHandler(services.Applicants),
		Projects:   handlers.NewProjectHandler(services.Lifecycle, services.Phases),
		Phases:     handlers.NewPhaseHandler(services.Phases),
	}, cfg.JWTSecret)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("could not start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildStack(ctx context.Context, conf *config.Config) (*stack, error) {
	floor, err := decimal.NewFromString(conf.PriceFloor)
	if err != nil {
		return nil, fmt.Errorf("invalid POST_PRICE_FLOOR %q: %w", conf.PriceFloor, err)
	}
	policy, err := domain.ParseDiscardPolicy(conf.DiscardPolicy)
	if err != nil {
		return nil, err
	}

	st := &stack{}
	freelancers := memory.NewFreelancerDirectory()
	st.deps = appservice.Dependencies{
		Freelancers:   freelancers,
		PriceFloor:    floor,
		DiscardPolicy: policy,
	}

	switch conf.Storage {
	case config.StorageMySQL:
		if err := st.useMySQL(ctx, conf); err != nil {
			st.close()
			return nil, err
		}
	case config.StorageMemory:
		st.deps.Posts = memory.NewPostRepository()
		st.deps.Projects = memory.NewProjectRepository()
		st.deps.Phases = memory.NewPhaseRepository()
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", conf.Storage)
	}

	if err := st.useEditSlot(ctx, conf); err != nil {
		st.close()
		return nil, err
	}
	st.useEvents(conf)

	if conf.SeedFile != "" {
		file, err := seed.Load(conf.SeedFile)
		if err != nil {
			st.close()
			return nil, err
		}
		if err := file.Apply(ctx, st.deps.Posts, freelancers, floor, time.Now().UTC()); err != nil {
			st.close()
			return nil, fmt.Errorf("failed to apply seed: %w", err)
		}
	}
	return st, nil
}

func (s *stack) useMySQL(ctx context.Context, conf *config.Config) error {
	db, err := dbadapter.ConnectDB(conf)
	if err != nil {
		return fmt.Errorf("failed to connect to mysql: %w", err)
	}
	s.db = db
	s.closers = append(s.closers, func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	})

	applied, err := dbadapter.Migrate(ctx, db, conf.MigrationsDir)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		logger.Info("migrations applied", zap.Strings("versions", applied))
	}

	s.deps.Posts = dbadapter.NewPostRepository(db)
	s.deps.Projects = dbadapter.NewProjectRepository(db)
	s.deps.Phases = dbadapter.NewPhaseRepository(db)
	return nil
}

func (s *stack) useEditSlot(ctx context.Context, conf *config.Config) error {
	if conf.RedisAddr == "" {
		s.deps.EditSlot = memory.NewEditSlot()
		return nil
	}
	client, err := redisadapter.NewClient(ctx, conf)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.cache = client
	s.closers = append(s.closers, func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis connection", zap.Error(err))
		}
	})
	s.deps.EditSlot = redisadapter.NewEditSlot(client)
	return nil
}

// useEvents falls back to logging events when the broker is unset or
// unreachable; publishing never blocks a lifecycle operation.
func (s *stack) useEvents(conf *config.Config) {
	var events ports.EventPublisher = mq.NewLogPublisher(logger)
	if conf.MqURL != "" {
		publisher, err := mq.NewPublisher(conf.MqURL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, logging events instead", zap.Error(err))
		} else {
			events = publisher
			s.broker = publisher
			s.closers = append(s.closers, publisher.Close)
		}
	}
	s.deps.Events = events
}
