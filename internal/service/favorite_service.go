package service

import (
	"context"
	"errors"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
)

// FavoriteService manages a user's saved campaigns.
type FavoriteService interface {
	// Toggle creates the favorite when absent and removes it when present.
	// Returns whether the campaign is favorited after the call.
	Toggle(ctx context.Context, userID, campaignID string) (bool, error)
	Get(ctx context.Context, userID, campaignID string) (*model.Favorite, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Favorite, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
	campaigns repository.CampaignRepository
}

// NewFavoriteService creates a FavoriteService.
func NewFavoriteService(favorites repository.FavoriteRepository, campaigns repository.CampaignRepository) FavoriteService {
	return &favoriteService{favorites: favorites, campaigns: campaigns}
}

func (s *favoriteService) Toggle(ctx context.Context, userID, campaignID string) (bool, error) {
	_, err := s.favorites.FindByUserAndCampaign(ctx, userID, campaignID)
	switch {
	case err == nil:
		_, err := s.favorites.Delete(ctx, userID, campaignID)
		return false, err
	case errors.Is(err, repository.ErrNotFound):
		if _, err := s.campaigns.FindByID(ctx, campaignID); err != nil {
			return false, err
		}
		createErr := s.favorites.Create(ctx, &model.Favorite{UserID: userID, CampaignID: campaignID})
		if errors.Is(createErr, repository.ErrConflict) {
			// Concurrent toggle won the insert; flip to removal.
			_, err := s.favorites.Delete(ctx, userID, campaignID)
			return false, err
		}
		return createErr == nil, createErr
	default:
		return false, err
	}
}

func (s *favoriteService) Get(ctx context.Context, userID, campaignID string) (*model.Favorite, error) {
	return s.favorites.FindByUserAndCampaign(ctx, userID, campaignID)
}

func (s *favoriteService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID, limit, offset)
}
