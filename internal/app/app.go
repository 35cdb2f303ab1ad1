package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/heist-trivia/internal/auth"
	"github.com/gokatarajesh/heist-trivia/internal/auth/jwt"
	"github.com/gokatarajesh/heist-trivia/internal/config"
	"github.com/gokatarajesh/heist-trivia/internal/db/postgres"
	"github.com/gokatarajesh/heist-trivia/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/heist-trivia/internal/db/sqlc"
	"github.com/gokatarajesh/heist-trivia/internal/leaderboard"
	"github.com/gokatarajesh/heist-trivia/internal/logging"
	"github.com/gokatarajesh/heist-trivia/internal/metrics"
	"github.com/gokatarajesh/heist-trivia/internal/question"
	"github.com/gokatarajesh/heist-trivia/internal/server"
	"github.com/gokatarajesh/heist-trivia/internal/session"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps logger, Postgres, Redis, services and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN(), postgres.PoolConfig{
		MaxConns:        cfg.Postgres.MaxConns,
		MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	queries := sqlcgen.New(pool)
	transactor := postgres.NewTransactor(pool)
	questionRepo := repository.NewQuestionRepository(queries, transactor)
	sessionRepo := repository.NewSessionRepository(queries, transactor)

	tokens := jwt.NewManager(jwt.TokenConfig{
		Secret: []byte(cfg.Security.JWTSecret),
		TTL:    cfg.Security.TokenTTL,
		Issuer: cfg.Name,
	})

	questionSvc := question.NewService(questionRepo, logger, question.ServiceOptions{Metrics: m})
	leaderboardSvc := leaderboard.NewService(redisClient, logger, leaderboard.ServiceOptions{
		TopN:           cfg.Leaderboard.TopN,
		RedisKeyPrefix: cfg.Leaderboard.KeyPrefix,
		RoomTTL:        cfg.Leaderboard.RoomTTL,
	})
	sessionSvc := session.NewService(sessionRepo, questionSvc, tokens, logger, session.ServiceOptions{
		Metrics: m,
		Scores:  leaderboardSvc,
	})

	apiServer := server.NewHTTPServer(cfg, logger, server.Handlers{
		Questions:     question.NewHTTPHandlers(questionSvc, logger),
		Sessions:      session.NewHTTPHandlers(sessionSvc, logger),
		Leaderboard:   leaderboard.NewHTTPHandler(leaderboardSvc, logger),
		RequirePlayer: auth.RequirePlayer(tokens, logger),
		Checks: map[string]server.DependencyCheck{
			"postgres": pool.Ping,
			"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
		Gatherer: reg,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
		defer cancel()
		if err := a.http.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("http shutdown error")
		}
		return nil
	})

	err := g.Wait()

	a.pool.Close()
	if cerr := a.redis.Close(); cerr != nil {
		a.logger.Error().Err(cerr).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return err
}
