package repository

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
)

// CampaignRepository handles campaign persistence.
type CampaignRepository interface {
	FindByID(ctx context.Context, id string) (*model.Campaign, error)
	FindBySlug(ctx context.Context, slug string) (*model.Campaign, error)
	// List returns campaigns matching filter, ordered by createdAt desc.
	List(ctx context.Context, filter model.CampaignFilter, limit, offset int) ([]*model.Campaign, error)
	Count(ctx context.Context, filter model.CampaignFilter) (int64, error)
	// Create assigns ID and timestamps. Returns ErrConflict on a slug collision.
	Create(ctx context.Context, campaign *model.Campaign) error
	Update(ctx context.Context, id string, patch model.CampaignPatch) (*model.Campaign, error)
	Delete(ctx context.Context, id string) (bool, error)
	// ApplyDonation atomically adds amount to collected and increments
	// participantCount. The whole adjustment is a single statement so a
	// concurrent donation can never observe half of it.
	ApplyDonation(ctx context.Context, id string, amount int64) error
}
