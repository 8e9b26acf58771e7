package handler

import (
	"net/http"

	"github.com/sadaqa/backend/internal/service"
)

// FundHandler exposes the external fund program catalog.
type FundHandler struct {
	svc service.FundService
}

// NewFundHandler creates a FundHandler.
func NewFundHandler(svc service.FundService) *FundHandler {
	return &FundHandler{svc: svc}
}

// Programs handles GET /api/fund/programs. Upstream failures degrade to an
// empty list rather than an error.
func (h *FundHandler) Programs(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.svc.Programs(r.Context()))
}

// Program handles GET /api/fund/programs/{id}.
func (h *FundHandler) Program(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	program := h.svc.Program(r.Context(), id)
	if program == nil {
		respondErr(w, http.StatusNotFound, "not_found")
		return
	}
	respond(w, http.StatusOK, program)
}
