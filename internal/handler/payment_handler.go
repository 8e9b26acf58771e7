package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sadaqa/backend/internal/repository"
	"github.com/sadaqa/backend/internal/service"
	"github.com/sadaqa/backend/pkg/auth"
)

// PaymentHandler handles payment initiation and provider callbacks.
type PaymentHandler struct {
	svc service.PaymentService
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type initiatePaymentRequest struct {
	DonationID string `json:"donationId" validate:"required,uuid"`
	Provider   string `json:"provider" validate:"required,oneof=yookassa cloudpayments"`
}

// Initiate handles POST /api/payments (auth required).
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req initiatePaymentRequest
	if !decodeValid(w, r, &req) {
		return
	}

	payment, err := h.svc.Initiate(r.Context(), req.DonationID, userID, req.Provider)
	if err != nil {
		if errors.Is(err, service.ErrUnknownProvider) {
			respondErr(w, http.StatusBadRequest, "unknown_provider")
			return
		}
		respondServiceErr(w, err, "payment initiate failed", "donation_id", req.DonationID)
		return
	}
	respond(w, http.StatusCreated, payment)
}

// GetByDonation handles GET /api/donations/{id}/payment (auth required).
func (h *PaymentHandler) GetByDonation(w http.ResponseWriter, r *http.Request) {
	donationID := r.PathValue("id")

	payment, err := h.svc.GetByDonation(r.Context(), donationID)
	if err != nil {
		respondServiceErr(w, err, "payment get failed", "donation_id", donationID)
		return
	}
	respond(w, http.StatusOK, payment)
}

// yooKassaCallback matches the notification body YooKassa posts.
type yooKassaCallback struct {
	Event  string `json:"event"`
	Object struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"object"`
}

// YooKassaCallback handles POST /api/payments/yookassa/callback. The provider
// retries on non-2xx, so an unknown payment id still answers 200.
func (h *PaymentHandler) YooKassaCallback(w http.ResponseWriter, r *http.Request) {
	var cb yooKassaCallback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		respondErr(w, http.StatusBadRequest, "invalid_json")
		return
	}

	// Only terminal statuses change state; intermediate notifications such as
	// waiting_for_capture are acknowledged and left alone.
	switch cb.Object.Status {
	case "succeeded", "canceled":
		succeeded := cb.Object.Status == "succeeded"
		err := h.svc.Confirm(r.Context(), cb.Object.ID, succeeded)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			respondServiceErr(w, err, "yookassa callback failed", "provider_id", cb.Object.ID)
			return
		}
	}
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

// cloudPaymentsCallback matches the Pay/Fail notification CloudPayments posts.
type cloudPaymentsCallback struct {
	TransactionID int64  `json:"TransactionId"`
	InvoiceID     string `json:"InvoiceId"`
	Status        string `json:"Status"`
}

// CloudPaymentsCallback handles POST /api/payments/cloudpayments/callback.
// CloudPayments expects {"code":0} on success, anything else makes it retry.
func (h *PaymentHandler) CloudPaymentsCallback(w http.ResponseWriter, r *http.Request) {
	var cb cloudPaymentsCallback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		respondErr(w, http.StatusBadRequest, "invalid_json")
		return
	}

	// The InvoiceId we send on orders/create is the donation id, so the
	// callback correlates on the donation rather than the provider's order id.
	succeeded := cb.Status == "Completed" || cb.Status == "Authorized"
	err := h.svc.ConfirmByDonation(r.Context(), cb.InvoiceID, succeeded)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondServiceErr(w, err, "cloudpayments callback failed", "invoice_id", cb.InvoiceID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]int{"code": 0})
}
