package handler

import (
	"errors"
	"net/http"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/service"
	"github.com/sadaqa/backend/pkg/auth"
)

// ZakatHandler handles zakat calculation, history, and payment.
type ZakatHandler struct {
	svc service.ZakatService
}

// NewZakatHandler creates a ZakatHandler.
func NewZakatHandler(svc service.ZakatService) *ZakatHandler {
	return &ZakatHandler{svc: svc}
}

type zakatCalculateRequest struct {
	Cash             float64 `json:"cash" validate:"gte=0"`
	GoldValue        float64 `json:"goldValue" validate:"gte=0"`
	SilverValue      float64 `json:"silverValue" validate:"gte=0"`
	Investments      float64 `json:"investments" validate:"gte=0"`
	TradeGoods       float64 `json:"tradeGoods" validate:"gte=0"`
	Debts            float64 `json:"debts" validate:"gte=0"`
	GoldPricePerGram float64 `json:"goldPricePerGram" validate:"required,gt=0"`
}

// Calculate handles POST /api/zakat/calculate (auth required). The result is
// stored in the caller's history.
func (h *ZakatHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req zakatCalculateRequest
	if !decodeValid(w, r, &req) {
		return
	}

	calc, err := h.svc.Calculate(r.Context(), userID, model.ZakatInput{
		Cash:             req.Cash,
		GoldValue:        req.GoldValue,
		SilverValue:      req.SilverValue,
		Investments:      req.Investments,
		TradeGoods:       req.TradeGoods,
		Debts:            req.Debts,
		GoldPricePerGram: req.GoldPricePerGram,
	})
	if err != nil {
		respondServiceErr(w, err, "zakat calculate failed", "user_id", userID)
		return
	}
	respond(w, http.StatusOK, calc)
}

// History handles GET /api/zakat/history (auth required).
func (h *ZakatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	limit, offset := pageParams(r)

	calcs, err := h.svc.History(r.Context(), userID, limit, offset)
	if err != nil {
		respondServiceErr(w, err, "zakat history failed", "user_id", userID)
		return
	}
	if calcs == nil {
		calcs = []*model.ZakatCalculation{}
	}
	respond(w, http.StatusOK, calcs)
}

type zakatPayRequest struct {
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Currency   string `json:"currency" validate:"required,len=3"`
	CampaignID string `json:"campaignId" validate:"omitempty,uuid"`
	PartnerID  string `json:"partnerId" validate:"omitempty,uuid"`
}

// Pay handles POST /api/zakat/pay (auth required). It creates a donation
// toward the chosen campaign or partner.
func (h *ZakatHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req zakatPayRequest
	if !decodeValid(w, r, &req) {
		return
	}

	donation, err := h.svc.Pay(r.Context(), userID, req.Amount, req.Currency, req.CampaignID, req.PartnerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTarget) {
			respondErr(w, http.StatusBadRequest, "invalid_target")
			return
		}
		respondServiceErr(w, err, "zakat pay failed", "user_id", userID)
		return
	}
	respond(w, http.StatusCreated, donation)
}
