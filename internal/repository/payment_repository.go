package repository

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
)

// PaymentRepository handles payment persistence. Payments are 1:1 with
// donations via the unique donationId.
type PaymentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Payment, error)
	FindByDonationID(ctx context.Context, donationID string) (*model.Payment, error)
	FindByProviderID(ctx context.Context, providerID string) (*model.Payment, error)
	// Create assigns ID and timestamps. Returns ErrConflict when a payment
	// already exists for the donation.
	Create(ctx context.Context, payment *model.Payment) error
	// SetProviderRef records the provider-side id and checkout URL.
	SetProviderRef(ctx context.Context, id, providerID, paymentURL string) error
	// UpdateStatus moves a pending payment to status, same guard semantics
	// as DonationRepository.UpdateStatus.
	UpdateStatus(ctx context.Context, id, status string) error
}
