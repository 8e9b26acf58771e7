package repository

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
)

// DonationRepository handles donation persistence.
type DonationRepository interface {
	FindByID(ctx context.Context, id string) (*model.Donation, error)
	// List returns donations matching filter, ordered by createdAt desc.
	List(ctx context.Context, filter model.DonationFilter, limit, offset int) ([]*model.Donation, error)
	Count(ctx context.Context, filter model.DonationFilter) (int64, error)
	Create(ctx context.Context, donation *model.Donation) error
	// UpdateStatus moves a pending donation to status. The pending guard is
	// part of the query, so a terminal donation is never resurrected even
	// under concurrent confirmations. Returns ErrNotFound when no pending
	// donation with this id exists.
	UpdateStatus(ctx context.Context, id, status string) error
	// SumCompleted totals completed donation amounts matching filter.
	SumCompleted(ctx context.Context, filter model.DonationFilter) (int64, error)
}
