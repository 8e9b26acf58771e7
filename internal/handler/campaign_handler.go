package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
	"github.com/sadaqa/backend/internal/service"
	"github.com/sadaqa/backend/pkg/auth"
)

// CampaignHandler handles campaign CRUD and moderation.
type CampaignHandler struct {
	svc service.CampaignService
}

// NewCampaignHandler creates a CampaignHandler.
func NewCampaignHandler(svc service.CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

func parseBoolParam(r *http.Request, name string) *bool {
	switch r.URL.Query().Get(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

// List handles GET /api/campaigns.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.CampaignFilter{
		Category:  q.Get("category"),
		Status:    q.Get("status"),
		Type:      q.Get("type"),
		PartnerID: q.Get("partnerId"),
		Urgent:    parseBoolParam(r, "urgent"),
		Verified:  parseBoolParam(r, "verified"),
	}
	limit, offset := pageParams(r)

	campaigns, err := h.svc.List(r.Context(), filter, limit, offset)
	if err != nil {
		respondServiceErr(w, err, "campaign list failed")
		return
	}
	if campaigns == nil {
		campaigns = []*model.Campaign{}
	}
	respond(w, http.StatusOK, campaigns)
}

// Get handles GET /api/campaigns/{id}. A slug works as well as an id so the
// front end can link by either.
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	campaign, err := h.svc.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		campaign, err = h.svc.GetBySlug(r.Context(), id)
	}
	if err != nil {
		respondServiceErr(w, err, "campaign get failed", "campaign_id", id)
		return
	}
	respond(w, http.StatusOK, campaign)
}

type createCampaignRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=200"`
	Slug            string `json:"slug" validate:"required,min=3,max=200"`
	Description     string `json:"description" validate:"required,max=500"`
	FullDescription string `json:"fullDescription" validate:"omitempty,max=10000"`
	Category        string `json:"category" validate:"required,max=64"`
	CustomCategory  string `json:"customCategory" validate:"omitempty,max=64"`
	Image           string `json:"image" validate:"omitempty,url"`
	Goal            int64  `json:"goal" validate:"required,gt=0"`
	Currency        string `json:"currency" validate:"required,len=3"`
	Type            string `json:"type" validate:"required,oneof=fund private"`
	Urgent          bool   `json:"urgent"`
	Deadline        string `json:"deadline" validate:"omitempty"`
	PartnerID       string `json:"partnerId" validate:"omitempty,uuid"`
}

// parseDeadline accepts RFC3339 or a bare date.
func parseDeadline(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}

// Create handles POST /api/campaigns (auth required).
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createCampaignRequest
	if !decodeValid(w, r, &req) {
		return
	}
	// Cross-field rule: "other" needs the custom category spelled out.
	// Runs after the per-field checks so its message is not drowned out.
	category := req.Category
	if category == "other" {
		if strings.TrimSpace(req.CustomCategory) == "" {
			respondErr(w, http.StatusBadRequest, "custom_category_required")
			return
		}
		category = req.CustomCategory
	}

	campaign := &model.Campaign{
		Title:           req.Title,
		Slug:            req.Slug,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Category:        category,
		Image:           req.Image,
		Goal:            req.Goal,
		Currency:        req.Currency,
		Type:            req.Type,
		Urgent:          req.Urgent,
		Deadline:        parseDeadline(req.Deadline),
		PartnerID:       req.PartnerID,
	}
	created, err := h.svc.Create(r.Context(), userID, campaign)
	if err != nil {
		respondServiceErr(w, err, "campaign create failed", "slug", req.Slug)
		return
	}
	respond(w, http.StatusCreated, created)
}

type updateCampaignRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description     *string `json:"description" validate:"omitempty,max=500"`
	FullDescription *string `json:"fullDescription" validate:"omitempty,max=10000"`
	Category        *string `json:"category" validate:"omitempty,max=64"`
	Image           *string `json:"image" validate:"omitempty,url"`
	Goal            *int64  `json:"goal" validate:"omitempty,gt=0"`
	Status          *string `json:"status" validate:"omitempty,oneof=active completed cancelled"`
	Urgent          *bool   `json:"urgent"`
	Deadline        *string `json:"deadline"`
}

// Update handles PATCH /api/campaigns/{id} (auth required).
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	role, _ := auth.RoleFromContext(r.Context())
	id := r.PathValue("id")

	var req updateCampaignRequest
	if !decodeValid(w, r, &req) {
		return
	}

	patch := model.CampaignPatch{
		Title:           req.Title,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Category:        req.Category,
		Image:           req.Image,
		Goal:            req.Goal,
		Status:          req.Status,
		Urgent:          req.Urgent,
	}
	if req.Deadline != nil {
		patch.Deadline = parseDeadline(*req.Deadline)
	}

	campaign, err := h.svc.Update(r.Context(), id, userID, role, patch)
	if err != nil {
		respondServiceErr(w, err, "campaign update failed", "campaign_id", id)
		return
	}
	respond(w, http.StatusOK, campaign)
}

// Delete handles DELETE /api/campaigns/{id} (auth required).
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	role, _ := auth.RoleFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.svc.Delete(r.Context(), id, userID, role); err != nil {
		respondServiceErr(w, err, "campaign delete failed", "campaign_id", id)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

type moderationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// SetModeration handles PATCH /api/admin/campaigns/{id}/moderation
// (admin/moderator only, enforced by the service).
func (h *CampaignHandler) SetModeration(w http.ResponseWriter, r *http.Request) {
	role, _ := auth.RoleFromContext(r.Context())
	id := r.PathValue("id")

	var req moderationRequest
	if !decodeValid(w, r, &req) {
		return
	}

	campaign, err := h.svc.SetModeration(r.Context(), id, role, req.Status)
	if err != nil {
		respondServiceErr(w, err, "campaign moderation failed", "campaign_id", id)
		return
	}
	respond(w, http.StatusOK, campaign)
}
