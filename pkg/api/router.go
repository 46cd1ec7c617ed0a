// Package api provides HTTP API server components.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/lexroute/lexroute/config"
	"github.com/lexroute/lexroute/pkg/api/handlers"
	"github.com/lexroute/lexroute/pkg/api/middleware"
	"github.com/lexroute/lexroute/pkg/logger"
)

// Handlers holds all HTTP handlers.
type Handlers struct {
	// Query handles query submission endpoints
	Query *handlers.QueryHandler

	// Feedback handles feedback submission endpoints
	Feedback *handlers.FeedbackHandler

	// Session handles session inspection endpoints
	Session *handlers.SessionHandler

	// Routes handles route catalog endpoints
	Routes *handlers.RoutesHandler

	// Admin handles operational endpoints
	Admin *handlers.AdminHandler

	// Health handles health check endpoints
	Health *handlers.HealthHandler

	// WebSocket streams engine events to clients
	WebSocket *handlers.WebSocketHandler

	// Metrics is the optional metrics recorder
	Metrics middleware.MetricsRecorder
}

// NewRouter creates a new chi router with middleware and routes.
func NewRouter(cfg *config.Config, log logger.Logger, handlers *Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))

	if handlers.Metrics != nil {
		r.Use(middleware.Metrics(handlers.Metrics))
	}
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(middleware.DefaultTracingOptions()))
	}

	r.Use(middleware.CORS(&cfg.Server.CORS))
	if cfg.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(&cfg.Server.RateLimit))
	}
	r.Use(middleware.Timeout(cfg.Server.HTTP.ReadTimeout))

	RegisterRoutes(r, handlers)

	return r
}

// RegisterRoutes registers all API routes.
func RegisterRoutes(r chi.Router, handlers *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		if handlers.Query != nil {
			r.Route("/queries", func(r chi.Router) {
				r.Post("/", handlers.Query.HandleQuery)
				r.Post("/classify", handlers.Query.Classify)
			})
		}

		if handlers.Feedback != nil {
			r.Post("/interactions/{interactionID}/feedback", handlers.Feedback.RecordFeedback)
		}

		if handlers.Session != nil {
			r.Route("/sessions/{sessionID}", func(r chi.Router) {
				r.Get("/summary", handlers.Session.GetSummary)
				r.Get("/interactions", handlers.Session.ListInteractions)
			})
		}

		if handlers.Routes != nil {
			r.Route("/routes", func(r chi.Router) {
				r.Get("/search", handlers.Routes.Search)
				r.Get("/{domain}", handlers.Routes.GetByDomain)
			})
		}

		if handlers.Admin != nil {
			r.Post("/admin/retrain", handlers.Admin.Retrain)
		}
	})

	// Health check routes (not versioned)
	if handlers.Health != nil {
		r.Get("/health", handlers.Health.Health)
		r.Get("/ready", handlers.Health.Ready)
		r.Get("/status", handlers.Health.Status)
	}

	// Event stream
	if handlers.WebSocket != nil {
		r.Get("/ws/events", handlers.WebSocket.ServeHTTP)
	}
}
