package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
	"github.com/sadaqa/backend/internal/service"
	"github.com/sadaqa/backend/pkg/auth"
)

// SubscriptionHandler handles recurring donation subscriptions.
type SubscriptionHandler struct {
	svc service.SubscriptionService
}

// NewSubscriptionHandler creates a SubscriptionHandler.
func NewSubscriptionHandler(svc service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

type checkoutRequest struct {
	Plan          string `json:"plan" validate:"required,max=64"`
	Period        string `json:"period" validate:"required,oneof=month year"`
	ProviderToken string `json:"providerToken" validate:"required"`
}

// Checkout handles POST /api/subscriptions (auth required).
func (h *SubscriptionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req checkoutRequest
	if !decodeValid(w, r, &req) {
		return
	}

	sub, err := h.svc.Checkout(r.Context(), userID, req.Plan, req.Period, req.ProviderToken)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPeriod) {
			respondErr(w, http.StatusBadRequest, "unknown_period")
			return
		}
		respondServiceErr(w, err, "subscription checkout failed", "user_id", userID)
		return
	}
	respond(w, http.StatusCreated, sub)
}

// ListMine handles GET /api/subscriptions (auth required).
func (h *SubscriptionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	limit, offset := pageParams(r)

	subs, err := h.svc.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondServiceErr(w, err, "subscription list failed", "user_id", userID)
		return
	}
	if subs == nil {
		subs = []*model.Subscription{}
	}
	respond(w, http.StatusOK, subs)
}

// Pause handles POST /api/subscriptions/{id}/pause (auth required).
func (h *SubscriptionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.svc.Pause(r.Context(), id, userID); err != nil {
		respondServiceErr(w, err, "subscription pause failed", "subscription_id", id)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

// Resume handles POST /api/subscriptions/{id}/resume (auth required).
func (h *SubscriptionHandler) Resume(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.svc.Resume(r.Context(), id, userID); err != nil {
		respondServiceErr(w, err, "subscription resume failed", "subscription_id", id)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

// recurrentCallback is CloudPayments' recurring-charge notification. The
// provider manages the charge schedule for token subscriptions; we only track
// failures. AccountId carries our subscription id.
type recurrentCallback struct {
	AccountID string `json:"AccountId"`
	Status    string `json:"Status"`
}

// RecurrentCallback handles POST /api/payments/cloudpayments/recurrent.
// Failed or rejected charges count against the subscription's attempt limit.
// The response is always {"code":0}; the provider retries on anything else.
func (h *SubscriptionHandler) RecurrentCallback(w http.ResponseWriter, r *http.Request) {
	var cb recurrentCallback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		slog.Warn("recurrent callback decode failed", "error", err)
	} else if cb.Status == "PastDue" || cb.Status == "Rejected" {
		sub, err := h.svc.RecordFailedCharge(r.Context(), cb.AccountID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			slog.Warn("recurrent callback for unknown subscription", "subscription_id", cb.AccountID)
		case err != nil:
			slog.Error("recording failed charge", "subscription_id", cb.AccountID, "error", err)
		case sub.Status == model.SubscriptionStatusExpired:
			slog.Info("subscription expired after failed charges", "subscription_id", sub.ID)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]int{"code": 0})
}

// Cancel handles POST /api/subscriptions/{id}/cancel (auth required).
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.svc.Cancel(r.Context(), id, userID); err != nil {
		respondServiceErr(w, err, "subscription cancel failed", "subscription_id", id)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}
