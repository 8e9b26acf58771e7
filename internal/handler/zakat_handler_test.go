package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/service"
)

type mockZakatService struct {
	calculateFunc func(ctx context.Context, userID string, in model.ZakatInput) (*model.ZakatCalculation, error)
	historyFunc   func(ctx context.Context, userID string, limit, offset int) ([]*model.ZakatCalculation, error)
	payFunc       func(ctx context.Context, userID string, amount int64, currency, campaignID, partnerID string) (*model.Donation, error)
}

func (m *mockZakatService) Calculate(ctx context.Context, userID string, in model.ZakatInput) (*model.ZakatCalculation, error) {
	if m.calculateFunc != nil {
		return m.calculateFunc(ctx, userID, in)
	}
	due, above := service.ComputeZakat(in)
	return &model.ZakatCalculation{ID: "z1", UserID: userID, Input: in, ZakatDue: due, AboveNisab: above}, nil
}
func (m *mockZakatService) History(ctx context.Context, userID string, limit, offset int) ([]*model.ZakatCalculation, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}
func (m *mockZakatService) Pay(ctx context.Context, userID string, amount int64, currency, campaignID, partnerID string) (*model.Donation, error) {
	if m.payFunc != nil {
		return m.payFunc(ctx, userID, amount, currency, campaignID, partnerID)
	}
	return &model.Donation{ID: "d1"}, nil
}

func TestZakatHandler_Calculate(t *testing.T) {
	h := NewZakatHandler(&mockZakatService{})

	body := `{"cash":10000,"goldPricePerGram":100}`
	req := jsonRequest(http.MethodPost, "/api/zakat/calculate", body, "user-1", model.RoleUser)
	rec := httptest.NewRecorder()
	h.Calculate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data model.ZakatCalculation `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ZakatDue != 250 || !resp.Data.AboveNisab {
		t.Errorf("unexpected calculation: %+v", resp.Data)
	}
}

func TestZakatHandler_Calculate_RequiresGoldPrice(t *testing.T) {
	h := NewZakatHandler(&mockZakatService{})

	req := jsonRequest(http.MethodPost, "/api/zakat/calculate", `{"cash":10000}`, "user-1", model.RoleUser)
	rec := httptest.NewRecorder()
	h.Calculate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestZakatHandler_Pay_InvalidTarget(t *testing.T) {
	h := NewZakatHandler(&mockZakatService{
		payFunc: func(ctx context.Context, userID string, amount int64, currency, campaignID, partnerID string) (*model.Donation, error) {
			return nil, service.ErrInvalidTarget
		},
	})

	body := `{"amount":25000,"currency":"USD"}`
	req := jsonRequest(http.MethodPost, "/api/zakat/pay", body, "user-1", model.RoleUser)
	rec := httptest.NewRecorder()
	h.Pay(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestZakatHandler_Pay_Success(t *testing.T) {
	var gotAmount int64
	h := NewZakatHandler(&mockZakatService{
		payFunc: func(ctx context.Context, userID string, amount int64, currency, campaignID, partnerID string) (*model.Donation, error) {
			gotAmount = amount
			return &model.Donation{ID: "d1", Amount: amount, Status: model.DonationStatusPending}, nil
		},
	})

	body := `{"amount":25000,"currency":"USD","campaignId":"5e6fa717-5c4f-4a3a-9a2d-111111111111"}`
	req := jsonRequest(http.MethodPost, "/api/zakat/pay", body, "user-1", model.RoleUser)
	rec := httptest.NewRecorder()
	h.Pay(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotAmount != 25000 {
		t.Errorf("amount = %d", gotAmount)
	}
}
