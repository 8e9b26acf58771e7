package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
)

// CampaignService provides campaign management.
type CampaignService interface {
	List(ctx context.Context, filter model.CampaignFilter, limit, offset int) ([]*model.Campaign, error)
	Count(ctx context.Context, filter model.CampaignFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*model.Campaign, error)
	// Create stores the campaign with authorID as owner. New campaigns start
	// active and pending moderation.
	Create(ctx context.Context, authorID string, campaign *model.Campaign) (*model.Campaign, error)
	// Update allows the author, or an admin/moderator, to change a campaign.
	Update(ctx context.Context, id, userID, role string, patch model.CampaignPatch) (*model.Campaign, error)
	Delete(ctx context.Context, id, userID, role string) error
	// SetModeration is restricted to admins and moderators.
	SetModeration(ctx context.Context, id, role, status string) (*model.Campaign, error)
}

type campaignService struct {
	campaigns repository.CampaignRepository
	partners  repository.PartnerRepository
}

// NewCampaignService creates a CampaignService.
func NewCampaignService(campaigns repository.CampaignRepository, partners repository.PartnerRepository) CampaignService {
	return &campaignService{campaigns: campaigns, partners: partners}
}

func (s *campaignService) List(ctx context.Context, filter model.CampaignFilter, limit, offset int) ([]*model.Campaign, error) {
	return s.campaigns.List(ctx, filter, limit, offset)
}

func (s *campaignService) Count(ctx context.Context, filter model.CampaignFilter) (int64, error) {
	return s.campaigns.Count(ctx, filter)
}

func (s *campaignService) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	return s.campaigns.FindByID(ctx, id)
}

func (s *campaignService) GetBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	return s.campaigns.FindBySlug(ctx, slug)
}

func (s *campaignService) Create(ctx context.Context, authorID string, campaign *model.Campaign) (*model.Campaign, error) {
	campaign.AuthorID = authorID
	campaign.Collected = 0
	campaign.ParticipantCount = 0
	campaign.Status = model.CampaignStatusActive
	campaign.ModerationStatus = model.ModerationPending

	if campaign.PartnerID != "" {
		if _, err := s.partners.FindByID(ctx, campaign.PartnerID); err != nil {
			return nil, err
		}
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	if campaign.PartnerID != "" {
		// Counter drift on failure here is accepted; there is no cross-entity
		// transaction in this layer.
		if err := s.partners.IncrementProjectCount(ctx, campaign.PartnerID); err != nil {
			slog.Warn("partner project count not incremented", "partner_id", campaign.PartnerID, "error", err)
		}
	}
	return campaign, nil
}

func (s *campaignService) canEdit(c *model.Campaign, userID, role string) bool {
	return c.AuthorID == userID || role == model.RoleAdmin || role == model.RoleModerator
}

func (s *campaignService) Update(ctx context.Context, id, userID, role string, patch model.CampaignPatch) (*model.Campaign, error) {
	existing, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(existing, userID, role) {
		return nil, ErrForbidden
	}
	// Moderation changes ride a dedicated operation.
	patch.ModerationStatus = nil
	return s.campaigns.Update(ctx, id, patch)
}

func (s *campaignService) Delete(ctx context.Context, id, userID, role string) error {
	existing, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canEdit(existing, userID, role) {
		return ErrForbidden
	}
	removed, err := s.campaigns.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return repository.ErrNotFound
	}
	return nil
}

func (s *campaignService) SetModeration(ctx context.Context, id, role, status string) (*model.Campaign, error) {
	if role != model.RoleAdmin && role != model.RoleModerator {
		return nil, ErrForbidden
	}
	switch status {
	case model.ModerationPending, model.ModerationApproved, model.ModerationRejected:
	default:
		return nil, errors.New("unknown moderation status")
	}
	return s.campaigns.Update(ctx, id, model.CampaignPatch{ModerationStatus: &status})
}
