// Package api wires the HTTP surface of the engine service.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/api/handlers"
	"github.com/applyforge/applyforge/internal/api/middleware"
	"github.com/applyforge/applyforge/internal/browser"
	"github.com/applyforge/applyforge/internal/observability"
	"github.com/applyforge/applyforge/internal/protocol"
	"github.com/applyforge/applyforge/pkg/httputil"
)

// Router holds the HTTP router and its dependencies
type Router struct {
	chi.Router
	logger *zap.Logger
}

// RouterConfig contains configuration for the router
type RouterConfig struct {
	Manager    *browser.Manager
	Protocol   *protocol.Handler
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	EnableCORS bool
	RateLimit  int
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Handler)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Handler)
	r.Use(chimw.Timeout(60 * time.Second))

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Handler)
	}

	// CORS so the extension's pages can reach the local engine
	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimitMiddleware(cfg.RateLimit).Handler)
	}

	r.Get("/health", healthHandler)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		sessionHandler := handlers.NewSessionHandler(cfg.Manager, cfg.Protocol, cfg.Logger)
		inspectHandler := handlers.NewInspectHandler(cfg.Protocol, cfg.Logger)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Get("/{id}", sessionHandler.Get)
			r.Delete("/{id}", sessionHandler.Delete)
			r.Post("/{id}/messages", sessionHandler.Message)
		})

		r.Post("/inspect", inspectHandler.Inspect)
	})

	return &Router{Router: r, logger: cfg.Logger}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
