package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/mkalens/support-insights/internal/httpapi/middleware"
	"go.uber.org/zap"
)

// NewRouter mounts the insights API with the standard middleware stack.
func NewRouter(h *Handlers, logger *zap.Logger, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	if limiter != nil {
		r.Use(limiter.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/employees/stats", h.GetEmployeeStats)
		r.Get("/employees/{name}/stats", h.GetEmployeeStat)
		r.Get("/sla/events", h.GetSLAEvents)
		r.Get("/weeks", h.ListWeeks)
		r.Get("/weeks/{weekStart}", h.GetWeeklyBucket)
		r.Get("/weeks/{weekStart}/export", h.ExportWeeklyBucket)
		r.Get("/search", h.Search)
	})

	return r
}
