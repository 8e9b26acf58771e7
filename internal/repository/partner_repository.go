package repository

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
)

// PartnerRepository handles partner-fund persistence.
type PartnerRepository interface {
	FindByID(ctx context.Context, id string) (*model.Partner, error)
	FindBySlug(ctx context.Context, slug string) (*model.Partner, error)
	// List returns partners matching filter, ordered by totalCollected desc.
	List(ctx context.Context, filter model.PartnerFilter, limit, offset int) ([]*model.Partner, error)
	Create(ctx context.Context, partner *model.Partner) error
	Update(ctx context.Context, id string, patch model.PartnerPatch) (*model.Partner, error)
	// ApplyDonation atomically adds amount to totalCollected and increments
	// totalDonors.
	ApplyDonation(ctx context.Context, id string, amount int64) error
	// IncrementProjectCount bumps projectCount when a campaign is attached.
	IncrementProjectCount(ctx context.Context, id string) error
}
