package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sadaqa/backend/internal/repository"
	"github.com/sadaqa/backend/internal/service"
)

// Handler carries shared dependencies for the top-level endpoints.
type Handler struct {
	db          repository.DB
	frontendURL string
}

// New creates a Handler.
func New(db repository.DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

// envelope is the uniform response shape: success with data, or an error.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// respond writes a success envelope.
func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// respondErr writes an error envelope.
func respondErr(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

// respondServiceErr maps the service/repository error taxonomy onto HTTP
// statuses. Unknown errors are logged and reported as internal.
func respondServiceErr(w http.ResponseWriter, err error, logMsg string, args ...any) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondErr(w, http.StatusNotFound, "not_found")
	case errors.Is(err, repository.ErrConflict):
		respondErr(w, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrForbidden):
		respondErr(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrInvalidTransition):
		respondErr(w, http.StatusConflict, "invalid_status")
	default:
		slog.Error(logMsg, append(args, "error", err)...)
		respondErr(w, http.StatusInternalServerError, "internal_error")
	}
}

// pageParams reads limit/offset query parameters, 0 meaning "use the
// repository default".
func pageParams(r *http.Request) (limit, offset int) {
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

// CORS restricts browsers to the front end origin and allows credentials.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
