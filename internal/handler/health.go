package handler

import (
	"net/http"
)

type healthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health handles GET /api/health, probing the active store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondErr(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	respond(w, http.StatusOK, healthStatus{Status: "ok", Message: "sadaqa API"})
}
