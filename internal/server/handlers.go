package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ocp-advisor/filterstate/internal/app"
	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/ocp-advisor/filterstate/internal/logging"
)

type handler struct {
	svc    FiltersService
	logger logging.Logger
}

type viewsResponse struct {
	Views []app.ViewSummary `json:"views"`
}

func (h *handler) listViews(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.Summaries()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewsResponse{Views: summaries})
}

func (h *handler) showView(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.Show(chi.URLParam(r, "view"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handler) defaultView(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.Default(chi.URLParam(r, "view"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handler) replaceView(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	if _, err := h.svc.Show(view); err != nil {
		h.fail(w, r, err)
		return
	}

	next, ok, err := decodeState(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		writeProblem(w, r, http.StatusBadRequest, "Bad Request", "request body is required")
		return
	}

	state, err := h.svc.Replace(r.Context(), view, next)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handler) resetView(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	if _, err := h.svc.Show(view); err != nil {
		h.fail(w, r, err)
		return
	}

	current, ok, err := decodeState(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var base *filters.State
	if ok {
		base = &current
	}

	state, err := h.svc.Reset(r.Context(), view, base)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("request failed", "path", r.URL.Path, "error", err.Error(), "request_id", RequestIDFromContext(r.Context()))
	respondError(w, r, err)
}
