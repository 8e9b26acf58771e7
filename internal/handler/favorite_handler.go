package handler

import (
	"errors"
	"net/http"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
	"github.com/sadaqa/backend/internal/service"
	"github.com/sadaqa/backend/pkg/auth"
)

// FavoriteHandler handles saved-campaign endpoints.
type FavoriteHandler struct {
	svc service.FavoriteService
}

// NewFavoriteHandler creates a FavoriteHandler.
func NewFavoriteHandler(svc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

// Toggle handles POST /api/campaigns/{id}/favorite (auth required). It adds
// the favorite if absent and removes it if present.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	campaignID := r.PathValue("id")

	favorited, err := h.svc.Toggle(r.Context(), userID, campaignID)
	if err != nil {
		respondServiceErr(w, err, "favorite toggle failed", "campaign_id", campaignID)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

// Status handles GET /api/campaigns/{id}/favorite (auth required).
func (h *FavoriteHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	campaignID := r.PathValue("id")

	_, err := h.svc.Get(r.Context(), userID, campaignID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respond(w, http.StatusOK, map[string]bool{"favorited": false})
			return
		}
		respondServiceErr(w, err, "favorite status failed", "campaign_id", campaignID)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"favorited": true})
}

// ListMine handles GET /api/favorites (auth required).
func (h *FavoriteHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	limit, offset := pageParams(r)

	favorites, err := h.svc.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondServiceErr(w, err, "favorite list failed", "user_id", userID)
		return
	}
	if favorites == nil {
		favorites = []*model.Favorite{}
	}
	respond(w, http.StatusOK, favorites)
}
