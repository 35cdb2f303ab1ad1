package server

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/heist-trivia/internal/config"
	"github.com/gokatarajesh/heist-trivia/internal/leaderboard"
	"github.com/gokatarajesh/heist-trivia/internal/question"
	"github.com/gokatarajesh/heist-trivia/internal/session"
	httperrors "github.com/gokatarajesh/heist-trivia/pkg/http/errors"
)

// DependencyCheck reports whether an upstream (Postgres, Redis) is reachable.
type DependencyCheck func(ctx context.Context) error

// Handlers groups everything the router mounts. Nil handlers leave their routes unmounted.
type Handlers struct {
	Questions     *question.HTTPHandlers
	Sessions      *session.HTTPHandlers
	Leaderboard   *leaderboard.HTTPHandler
	RequirePlayer func(http.Handler) http.Handler
	Checks        map[string]DependencyCheck
	Gatherer      prometheus.Gatherer
}

// NewHTTPServer wires the API router into an http.Server.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, logger, h),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// NewRouter builds the chi router: health, metrics, ping and the /api routes.
func NewRouter(cfg *config.App, logger zerolog.Logger, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	gatherer := h.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		if cfg.Runtime.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.Runtime.RequestTimeout))
		}

		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			if err := pingDependencies(r.Context(), h.Checks); err != nil {
				logger.Error().Err(err).Msg("dependency ping failed")
				httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
				return
			}
			httperrors.RespondJSON(w, http.StatusOK, map[string]bool{"pong": true})
		})

		if h.Questions != nil {
			r.Route("/questions", func(r chi.Router) {
				r.Get("/", h.Questions.List)
				r.Get("/next", h.Questions.NextQuestion)
				r.Post("/{questionId}/check", h.Questions.CheckAnswer)
			})
		}

		if h.Sessions != nil && h.RequirePlayer != nil {
			r.Route("/game", func(r chi.Router) {
				h.Sessions.Routes(r, h.RequirePlayer)
			})
		}

		if h.Leaderboard != nil {
			r.Route("/scores", func(r chi.Router) {
				r.Get("/high", h.Leaderboard.HandleHigh)
				r.Get("/rooms/{roomCode}", h.Leaderboard.HandleRoom)
			})
		}
	})

	return r
}

func pingDependencies(ctx context.Context, checks map[string]DependencyCheck) error {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := checks[name](ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
