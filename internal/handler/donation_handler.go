package handler

import (
	"errors"
	"net/http"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/service"
	"github.com/sadaqa/backend/pkg/auth"
)

// DonationHandler handles donation endpoints.
type DonationHandler struct {
	svc service.DonationService
}

// NewDonationHandler creates a DonationHandler.
func NewDonationHandler(svc service.DonationService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

type createDonationRequest struct {
	CampaignID string `json:"campaignId" validate:"omitempty,uuid"`
	PartnerID  string `json:"partnerId" validate:"omitempty,uuid"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Currency   string `json:"currency" validate:"required,len=3"`
	Anonymous  bool   `json:"anonymous"`
	Message    string `json:"message" validate:"omitempty,max=500"`
}

// Create handles POST /api/donations (auth required).
func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createDonationRequest
	if !decodeValid(w, r, &req) {
		return
	}

	donation, err := h.svc.Create(r.Context(), userID, service.CreateDonationInput{
		CampaignID: req.CampaignID,
		PartnerID:  req.PartnerID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Anonymous:  req.Anonymous,
		Message:    req.Message,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidTarget) {
			respondErr(w, http.StatusBadRequest, "invalid_target")
			return
		}
		respondServiceErr(w, err, "donation create failed", "user_id", userID)
		return
	}
	respond(w, http.StatusCreated, donation)
}

// Get handles GET /api/donations/{id} (auth required). Only the donor or an
// admin may read a donation.
func (h *DonationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	role, _ := auth.RoleFromContext(r.Context())
	id := r.PathValue("id")

	donation, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respondServiceErr(w, err, "donation get failed", "donation_id", id)
		return
	}
	if donation.UserID != userID && role != model.RoleAdmin {
		respondErr(w, http.StatusForbidden, "forbidden")
		return
	}
	respond(w, http.StatusOK, donation)
}

// ListMine handles GET /api/donations (auth required).
func (h *DonationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	limit, offset := pageParams(r)

	donations, err := h.svc.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondServiceErr(w, err, "donation list failed", "user_id", userID)
		return
	}
	if donations == nil {
		donations = []*model.Donation{}
	}
	respond(w, http.StatusOK, donations)
}

// ListByCampaign handles GET /api/campaigns/{id}/donations.
func (h *DonationHandler) ListByCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("id")
	limit, offset := pageParams(r)

	donations, err := h.svc.ListByCampaign(r.Context(), campaignID, limit, offset)
	if err != nil {
		respondServiceErr(w, err, "donation list failed", "campaign_id", campaignID)
		return
	}
	// Donor identity is hidden for anonymous donations on the public listing.
	for _, d := range donations {
		if d.Anonymous {
			d.UserID = ""
		}
	}
	if donations == nil {
		donations = []*model.Donation{}
	}
	respond(w, http.StatusOK, donations)
}

// TotalForCampaign handles GET /api/campaigns/{id}/donations/total. The sum
// covers completed donations only.
func (h *DonationHandler) TotalForCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("id")

	total, err := h.svc.TotalForCampaign(r.Context(), campaignID)
	if err != nil {
		respondServiceErr(w, err, "donation total failed", "campaign_id", campaignID)
		return
	}
	respond(w, http.StatusOK, map[string]int64{"total": total})
}

// Cancel handles POST /api/donations/{id}/cancel (auth required). Only the
// donor may cancel, and only while the donation is still pending.
func (h *DonationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	donation, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respondServiceErr(w, err, "donation cancel failed", "donation_id", id)
		return
	}
	if donation.UserID != userID {
		respondErr(w, http.StatusForbidden, "forbidden")
		return
	}
	if err := h.svc.Cancel(r.Context(), id); err != nil {
		respondServiceErr(w, err, "donation cancel failed", "donation_id", id)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

// TotalForUser handles GET /api/donations/total (auth required).
func (h *DonationHandler) TotalForUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	total, err := h.svc.TotalForUser(r.Context(), userID)
	if err != nil {
		respondServiceErr(w, err, "donation total failed", "user_id", userID)
		return
	}
	respond(w, http.StatusOK, map[string]int64{"total": total})
}
