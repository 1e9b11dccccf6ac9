// Package server exposes the filter state service over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/ocp-advisor/filterstate/internal/app"
	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/ocp-advisor/filterstate/internal/logging"
)

// FiltersService is the subset of app.FiltersService served over HTTP.
type FiltersService interface {
	Summaries() ([]app.ViewSummary, error)
	Show(view string) (filters.State, error)
	Default(view string) (filters.State, error)
	Replace(ctx context.Context, view string, next filters.State) (filters.State, error)
	Reset(ctx context.Context, view string, current *filters.State) (filters.State, error)
}

// NewRouter builds the HTTP handler. requestsPerMinute of 0 disables rate limiting.
func NewRouter(svc FiltersService, logger logging.Logger, requestsPerMinute int) http.Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	h := &handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)
	if requestsPerMinute > 0 {
		r.Use(httprate.Limit(requestsPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1/views", func(r chi.Router) {
		r.Get("/", h.listViews)
		r.Route("/{view}", func(r chi.Router) {
			r.Get("/", h.showView)
			r.Put("/", h.replaceView)
			r.Get("/default", h.defaultView)
			r.Post("/reset", h.resetView)
		})
	})

	return r
}
