package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
	"github.com/sadaqa/backend/pkg/payment"
)

// ErrUnknownProvider is returned when the requested provider is not wired.
var ErrUnknownProvider = errors.New("unknown payment provider")

// PaymentService initiates provider payments for donations and applies the
// provider's verdict back to the donation.
type PaymentService interface {
	// Initiate creates the 1:1 payment record for a pending donation and
	// requests a checkout URL from the provider. The donation owner check is
	// enforced here.
	Initiate(ctx context.Context, donationID, userID, provider string) (*model.Payment, error)
	// Confirm resolves the payment found by providerID: succeeded completes
	// the donation, anything else fails it. Called from the provider
	// callback endpoint.
	Confirm(ctx context.Context, providerID string, succeeded bool) error
	// ConfirmByDonation resolves the payment by its donation id. CloudPayments
	// echoes back the InvoiceId we set to the donation id, not its own
	// transaction id, so its callbacks correlate on the donation.
	ConfirmByDonation(ctx context.Context, donationID string, succeeded bool) error
	GetByDonation(ctx context.Context, donationID string) (*model.Payment, error)
}

type paymentService struct {
	payments  repository.PaymentRepository
	donations DonationService
	providers map[string]payment.Client
	returnURL string
}

// NewPaymentService creates a PaymentService. providers maps provider name to
// its client; unknown names are rejected at Initiate.
func NewPaymentService(payments repository.PaymentRepository, donations DonationService, providers map[string]payment.Client, returnURL string) PaymentService {
	return &paymentService{
		payments:  payments,
		donations: donations,
		providers: providers,
		returnURL: returnURL,
	}
}

func (s *paymentService) Initiate(ctx context.Context, donationID, userID, provider string) (*model.Payment, error) {
	client, ok := s.providers[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}

	d, err := s.donations.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, ErrForbidden
	}
	if d.Status != model.DonationStatusPending {
		return nil, ErrInvalidTransition
	}

	// A pending payment left behind by an earlier provider failure is reused,
	// otherwise the unique donationId would block every retry.
	p, err := s.payments.FindByDonationID(ctx, donationID)
	switch {
	case err == nil:
		if p.Status != model.PaymentStatusPending {
			return nil, ErrInvalidTransition
		}
	case errors.Is(err, repository.ErrNotFound):
		p = &model.Payment{
			DonationID: donationID,
			Provider:   provider,
			Amount:     d.Amount,
			Currency:   d.Currency,
			Status:     model.PaymentStatusPending,
		}
		if err := s.payments.Create(ctx, p); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	created, err := client.CreatePayment(ctx, payment.CreateParams{
		Amount:      d.Amount,
		Currency:    d.Currency,
		Description: "Donation " + donationID,
		ReturnURL:   s.returnURL,
		DonationID:  donationID,
	})
	if err != nil {
		return nil, fmt.Errorf("create provider payment: %w", err)
	}
	if err := s.payments.SetProviderRef(ctx, p.ID, created.ProviderID, created.PaymentURL); err != nil {
		return nil, err
	}
	p.ProviderID = created.ProviderID
	p.PaymentURL = created.PaymentURL
	return p, nil
}

func (s *paymentService) Confirm(ctx context.Context, providerID string, succeeded bool) error {
	p, err := s.payments.FindByProviderID(ctx, providerID)
	if err != nil {
		return err
	}
	return s.resolve(ctx, p, succeeded)
}

func (s *paymentService) ConfirmByDonation(ctx context.Context, donationID string, succeeded bool) error {
	p, err := s.payments.FindByDonationID(ctx, donationID)
	if err != nil {
		return err
	}
	return s.resolve(ctx, p, succeeded)
}

// resolve applies the provider verdict to the payment, then to its donation.
// The two writes are separate operations; a crash between them is repaired on
// the provider's retry, which takes the already-resolved branch below.
func (s *paymentService) resolve(ctx context.Context, p *model.Payment, succeeded bool) error {
	status := model.PaymentStatusFailed
	if succeeded {
		status = model.PaymentStatusSucceeded
	}
	if err := s.payments.UpdateStatus(ctx, p.ID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The pending guard no longer matches: the payment was resolved
			// earlier. If that earlier run crashed before completing the
			// donation, finish it now; ErrInvalidTransition means the
			// donation already left pending and this is a true repeat.
			switch p.Status {
			case model.PaymentStatusSucceeded:
				if err := s.donations.Complete(ctx, p.DonationID); err != nil && !errors.Is(err, ErrInvalidTransition) {
					return err
				}
			case model.PaymentStatusFailed:
				if err := s.donations.Fail(ctx, p.DonationID); err != nil && !errors.Is(err, ErrInvalidTransition) {
					return err
				}
			}
			return nil
		}
		return err
	}

	if succeeded {
		if err := s.donations.Complete(ctx, p.DonationID); err != nil {
			slog.Error("donation not completed after payment", "donation_id", p.DonationID, "error", err)
			return err
		}
		return nil
	}
	return s.donations.Fail(ctx, p.DonationID)
}

func (s *paymentService) GetByDonation(ctx context.Context, donationID string) (*model.Payment, error) {
	return s.payments.FindByDonationID(ctx, donationID)
}
