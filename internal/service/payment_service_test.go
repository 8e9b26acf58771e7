package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
	"github.com/sadaqa/backend/pkg/payment"
)

type mockPaymentClient struct {
	createFunc func(ctx context.Context, params payment.CreateParams) (payment.Created, error)
}

func (m *mockPaymentClient) CreatePayment(ctx context.Context, params payment.CreateParams) (payment.Created, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return payment.Created{ProviderID: "prov-1", PaymentURL: "https://pay.example/prov-1"}, nil
}

func pendingDonationService(d *model.Donation) DonationService {
	return NewDonationService(&mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Donation, error) {
			if d != nil && d.ID == id {
				return d, nil
			}
			return nil, repository.ErrNotFound
		},
	}, &mockCampaignRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Campaign, error) {
			return &model.Campaign{ID: id}, nil
		},
	}, &mockPartnerRepo{})
}

func TestPaymentService_Initiate_Success(t *testing.T) {
	donation := &model.Donation{ID: "d1", UserID: "user-1", CampaignID: "c1", Amount: 1000, Currency: "USD", Status: model.DonationStatusPending}
	var refID, refURL string
	payments := &mockPaymentRepo{
		setProviderRefFunc: func(ctx context.Context, id, providerID, paymentURL string) error {
			refID, refURL = providerID, paymentURL
			return nil
		},
	}
	svc := NewPaymentService(payments, pendingDonationService(donation),
		map[string]payment.Client{"yookassa": &mockPaymentClient{}}, "https://app.example/result")

	p, err := svc.Initiate(context.Background(), "d1", "user-1", "yookassa")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if p.ProviderID != "prov-1" || p.PaymentURL != "https://pay.example/prov-1" {
		t.Errorf("provider ref not applied: %+v", p)
	}
	if refID != "prov-1" || refURL != "https://pay.example/prov-1" {
		t.Errorf("provider ref not stored: id=%q url=%q", refID, refURL)
	}
}

func TestPaymentService_Initiate_UnknownProvider(t *testing.T) {
	svc := NewPaymentService(&mockPaymentRepo{}, pendingDonationService(nil), map[string]payment.Client{}, "")
	_, err := svc.Initiate(context.Background(), "d1", "user-1", "paypal")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestPaymentService_Initiate_WrongOwner(t *testing.T) {
	donation := &model.Donation{ID: "d1", UserID: "user-1", Status: model.DonationStatusPending}
	svc := NewPaymentService(&mockPaymentRepo{}, pendingDonationService(donation),
		map[string]payment.Client{"yookassa": &mockPaymentClient{}}, "")

	_, err := svc.Initiate(context.Background(), "d1", "intruder", "yookassa")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestPaymentService_Initiate_NonPendingDonation(t *testing.T) {
	donation := &model.Donation{ID: "d1", UserID: "user-1", Status: model.DonationStatusCompleted}
	svc := NewPaymentService(&mockPaymentRepo{}, pendingDonationService(donation),
		map[string]payment.Client{"yookassa": &mockPaymentClient{}}, "")

	_, err := svc.Initiate(context.Background(), "d1", "user-1", "yookassa")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestPaymentService_Confirm_Succeeded(t *testing.T) {
	var paymentStatus, donationStatus string
	payments := &mockPaymentRepo{
		findByProviderIDFunc: func(ctx context.Context, providerID string) (*model.Payment, error) {
			return &model.Payment{ID: "p1", DonationID: "d1", Status: model.PaymentStatusPending}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			paymentStatus = status
			return nil
		},
	}
	donations := NewDonationService(&mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Donation, error) {
			return &model.Donation{ID: id, CampaignID: "c1", Amount: 100, Status: model.DonationStatusPending}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			donationStatus = status
			return nil
		},
	}, &mockCampaignRepo{}, &mockPartnerRepo{})
	svc := NewPaymentService(payments, donations, map[string]payment.Client{}, "")

	if err := svc.Confirm(context.Background(), "prov-1", true); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if paymentStatus != model.PaymentStatusSucceeded {
		t.Errorf("payment status = %q", paymentStatus)
	}
	if donationStatus != model.DonationStatusCompleted {
		t.Errorf("donation status = %q", donationStatus)
	}
}

func TestPaymentService_Confirm_RepeatCallbackIsNoop(t *testing.T) {
	payments := &mockPaymentRepo{
		findByProviderIDFunc: func(ctx context.Context, providerID string) (*model.Payment, error) {
			return &model.Payment{ID: "p1", DonationID: "d1", Status: model.PaymentStatusSucceeded}, nil
		},
		// The pending guard already consumed this payment.
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			return repository.ErrNotFound
		},
	}
	donations := NewDonationService(&mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Donation, error) {
			return &model.Donation{ID: id, CampaignID: "c1", Amount: 100, Status: model.DonationStatusCompleted}, nil
		},
	}, &mockCampaignRepo{}, &mockPartnerRepo{})
	svc := NewPaymentService(payments, donations, map[string]payment.Client{}, "")

	if err := svc.Confirm(context.Background(), "prov-1", true); err != nil {
		t.Errorf("repeat callback should be a no-op, got %v", err)
	}
}

func TestPaymentService_Confirm_RetryCompletesStrandedDonation(t *testing.T) {
	// An earlier run resolved the payment but crashed before the donation
	// write. The provider's retry must still complete the donation.
	var donationStatus string
	payments := &mockPaymentRepo{
		findByProviderIDFunc: func(ctx context.Context, providerID string) (*model.Payment, error) {
			return &model.Payment{ID: "p1", DonationID: "d1", Status: model.PaymentStatusSucceeded}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			return repository.ErrNotFound
		},
	}
	donations := NewDonationService(&mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Donation, error) {
			return &model.Donation{ID: id, CampaignID: "c1", Amount: 100, Status: model.DonationStatusPending}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			donationStatus = status
			return nil
		},
	}, &mockCampaignRepo{}, &mockPartnerRepo{})
	svc := NewPaymentService(payments, donations, map[string]payment.Client{}, "")

	if err := svc.Confirm(context.Background(), "prov-1", true); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if donationStatus != model.DonationStatusCompleted {
		t.Errorf("donation status = %q, want completed", donationStatus)
	}
}

func TestPaymentService_ConfirmByDonation(t *testing.T) {
	var lookedUp, paymentStatus, donationStatus string
	payments := &mockPaymentRepo{
		findByDonationIDFunc: func(ctx context.Context, donationID string) (*model.Payment, error) {
			lookedUp = donationID
			return &model.Payment{ID: "p1", DonationID: donationID, Status: model.PaymentStatusPending}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			paymentStatus = status
			return nil
		},
	}
	donations := NewDonationService(&mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Donation, error) {
			return &model.Donation{ID: id, CampaignID: "c1", Amount: 100, Status: model.DonationStatusPending}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			donationStatus = status
			return nil
		},
	}, &mockCampaignRepo{}, &mockPartnerRepo{})
	svc := NewPaymentService(payments, donations, map[string]payment.Client{}, "")

	if err := svc.ConfirmByDonation(context.Background(), "d1", true); err != nil {
		t.Fatalf("confirm by donation: %v", err)
	}
	if lookedUp != "d1" {
		t.Errorf("looked up by %q, want the donation id", lookedUp)
	}
	if paymentStatus != model.PaymentStatusSucceeded || donationStatus != model.DonationStatusCompleted {
		t.Errorf("payment=%q donation=%q", paymentStatus, donationStatus)
	}
}

func TestPaymentService_Initiate_ReusesPendingPayment(t *testing.T) {
	// A pending payment left by a provider failure must not block the retry
	// on the unique donationId.
	donation := &model.Donation{ID: "d1", UserID: "user-1", CampaignID: "c1", Amount: 1000, Currency: "USD", Status: model.DonationStatusPending}
	var refID string
	payments := &mockPaymentRepo{
		findByDonationIDFunc: func(ctx context.Context, donationID string) (*model.Payment, error) {
			return &model.Payment{ID: "p1", DonationID: donationID, Provider: "yookassa", Status: model.PaymentStatusPending}, nil
		},
		createFunc: func(ctx context.Context, p *model.Payment) error {
			t.Error("existing pending payment must be reused, not recreated")
			return repository.ErrConflict
		},
		setProviderRefFunc: func(ctx context.Context, id, providerID, paymentURL string) error {
			refID = providerID
			return nil
		},
	}
	svc := NewPaymentService(payments, pendingDonationService(donation),
		map[string]payment.Client{"yookassa": &mockPaymentClient{}}, "")

	p, err := svc.Initiate(context.Background(), "d1", "user-1", "yookassa")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if p.ID != "p1" || refID != "prov-1" {
		t.Errorf("payment %q ref %q, want reused p1 with fresh provider ref", p.ID, refID)
	}
}

func TestPaymentService_Confirm_FailureFailsDonation(t *testing.T) {
	var donationStatus string
	payments := &mockPaymentRepo{
		findByProviderIDFunc: func(ctx context.Context, providerID string) (*model.Payment, error) {
			return &model.Payment{ID: "p1", DonationID: "d1", Status: model.PaymentStatusPending}, nil
		},
	}
	donations := NewDonationService(&mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Donation, error) {
			return &model.Donation{ID: id, CampaignID: "c1", Amount: 100, Status: model.DonationStatusPending}, nil
		},
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			donationStatus = status
			return nil
		},
	}, &mockCampaignRepo{}, &mockPartnerRepo{})
	svc := NewPaymentService(payments, donations, map[string]payment.Client{}, "")

	if err := svc.Confirm(context.Background(), "prov-1", false); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if donationStatus != model.DonationStatusFailed {
		t.Errorf("donation status = %q, want failed", donationStatus)
	}
}
