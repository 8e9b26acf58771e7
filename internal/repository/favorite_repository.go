package repository

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
)

// FavoriteRepository handles saved-campaign persistence.
type FavoriteRepository interface {
	// FindByUserAndCampaign returns the favorite for the pair, or ErrNotFound.
	FindByUserAndCampaign(ctx context.Context, userID, campaignID string) (*model.Favorite, error)
	// ListByUser returns a user's favorites ordered by createdAt desc.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Favorite, error)
	// Create returns ErrConflict when the (userId, campaignId) pair exists.
	Create(ctx context.Context, fav *model.Favorite) error
	// Delete removes the pair and reports whether anything was removed.
	// The pair match runs inside the delete itself, so there is no
	// check-then-delete race.
	Delete(ctx context.Context, userID, campaignID string) (bool, error)
}
