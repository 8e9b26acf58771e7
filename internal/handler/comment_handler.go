package handler

import (
	"net/http"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/service"
	"github.com/sadaqa/backend/pkg/auth"
)

// CommentHandler handles campaign comments.
type CommentHandler struct {
	svc service.CommentService
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// Create handles POST /api/campaigns/{id}/comments (auth required).
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	campaignID := r.PathValue("id")

	var req createCommentRequest
	if !decodeValid(w, r, &req) {
		return
	}

	comment, err := h.svc.Create(r.Context(), userID, campaignID, req.Content)
	if err != nil {
		respondServiceErr(w, err, "comment create failed", "campaign_id", campaignID)
		return
	}
	respond(w, http.StatusCreated, comment)
}

// ListByCampaign handles GET /api/campaigns/{id}/comments.
func (h *CommentHandler) ListByCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("id")
	limit, offset := pageParams(r)

	comments, err := h.svc.ListByCampaign(r.Context(), campaignID, limit, offset)
	if err != nil {
		respondServiceErr(w, err, "comment list failed", "campaign_id", campaignID)
		return
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	respond(w, http.StatusOK, comments)
}

// Delete handles DELETE /api/comments/{id} (auth required). The author,
// a moderator, or an admin may delete.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	role, _ := auth.RoleFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.svc.Delete(r.Context(), id, userID, role); err != nil {
		respondServiceErr(w, err, "comment delete failed", "comment_id", id)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}
