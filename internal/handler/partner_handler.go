package handler

import (
	"net/http"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/service"
	"github.com/sadaqa/backend/pkg/auth"
)

// PartnerHandler handles partner fund endpoints.
type PartnerHandler struct {
	svc service.PartnerService
}

// NewPartnerHandler creates a PartnerHandler.
func NewPartnerHandler(svc service.PartnerService) *PartnerHandler {
	return &PartnerHandler{svc: svc}
}

// List handles GET /api/partners.
func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.PartnerFilter{
		Type:     q.Get("type"),
		Country:  q.Get("country"),
		Category: q.Get("category"),
		Verified: parseBoolParam(r, "verified"),
	}
	limit, offset := pageParams(r)

	partners, err := h.svc.List(r.Context(), filter, limit, offset)
	if err != nil {
		respondServiceErr(w, err, "partner list failed")
		return
	}
	if partners == nil {
		partners = []*model.Partner{}
	}
	respond(w, http.StatusOK, partners)
}

// Get handles GET /api/partners/{id}. Accepts an id or a slug.
func (h *PartnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	partner, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		partner, err = h.svc.GetBySlug(r.Context(), id)
	}
	if err != nil {
		respondServiceErr(w, err, "partner get failed", "partner_id", id)
		return
	}
	respond(w, http.StatusOK, partner)
}

type createPartnerRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Slug        string   `json:"slug" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Type        string   `json:"type" validate:"required,max=64"`
	Country     string   `json:"country" validate:"omitempty,max=64"`
	City        string   `json:"city" validate:"omitempty,max=64"`
	Categories  []string `json:"categories" validate:"omitempty,dive,max=64"`
}

// Create handles POST /api/admin/partners (admin only, enforced by the service).
func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	role, _ := auth.RoleFromContext(r.Context())

	var req createPartnerRequest
	if !decodeValid(w, r, &req) {
		return
	}

	partner := &model.Partner{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Type:        req.Type,
		Country:     req.Country,
		City:        req.City,
		Categories:  req.Categories,
	}
	created, err := h.svc.Create(r.Context(), role, partner)
	if err != nil {
		respondServiceErr(w, err, "partner create failed", "slug", req.Slug)
		return
	}
	respond(w, http.StatusCreated, created)
}

type updatePartnerRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Type        *string   `json:"type" validate:"omitempty,max=64"`
	Country     *string   `json:"country" validate:"omitempty,max=64"`
	City        *string   `json:"city" validate:"omitempty,max=64"`
	Categories  *[]string `json:"categories"`
	Verified    *bool     `json:"verified"`
}

// Update handles PATCH /api/admin/partners/{id} (admin only, enforced by the
// service).
func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	role, _ := auth.RoleFromContext(r.Context())
	id := r.PathValue("id")

	var req updatePartnerRequest
	if !decodeValid(w, r, &req) {
		return
	}

	patch := model.PartnerPatch{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Country:     req.Country,
		City:        req.City,
		Categories:  req.Categories,
		Verified:    req.Verified,
	}
	partner, err := h.svc.Update(r.Context(), id, role, patch)
	if err != nil {
		respondServiceErr(w, err, "partner update failed", "partner_id", id)
		return
	}
	respond(w, http.StatusOK, partner)
}
