package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ocp-advisor/filterstate/internal/filters"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// ProblemDetail represents RFC7807 problem details.
type ProblemDetail struct {
	Type      string `json:"type,omitempty"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ProblemDetail{
		Title:     title,
		Status:    status,
		Detail:    detail,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// respondError maps service errors to problem responses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, filters.ErrInvalidView):
		writeProblem(w, r, http.StatusNotFound, "Unknown View", err.Error())
	case errors.Is(err, errBadRequest):
		writeProblem(w, r, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		writeProblem(w, r, http.StatusInternalServerError, "Internal Error", "")
	}
}

// decodeState reads a filter state body. ok is false for an empty body.
func decodeState(w http.ResponseWriter, r *http.Request) (state filters.State, ok bool, err error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return filters.State{}, false, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return filters.State{}, false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&state); err != nil {
		return filters.State{}, false, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := state.NormalizeSortDirection(); err != nil {
		return filters.State{}, false, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return state, true, nil
}
