package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
)

// ErrInvalidTarget is returned when a donation names neither or both of
// campaign and partner.
var ErrInvalidTarget = errors.New("donation must target exactly one of campaign or partner")

// CreateDonationInput holds the fields accepted when creating a donation.
type CreateDonationInput struct {
	CampaignID string
	PartnerID  string
	Amount     int64
	Currency   string
	Anonymous  bool
	Message    string
}

// DonationService provides donation lifecycle management.
type DonationService interface {
	// Create records a pending donation after verifying the target exists.
	Create(ctx context.Context, userID string, in CreateDonationInput) (*model.Donation, error)
	GetByID(ctx context.Context, id string) (*model.Donation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Donation, error)
	ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Donation, error)
	// Complete marks a pending donation completed and applies its amount to
	// the campaign or partner aggregate. The two writes are not transactional;
	// a crash in between leaves the aggregate stale.
	Complete(ctx context.Context, id string) error
	// Fail and Cancel move a pending donation to the respective terminal state.
	Fail(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	// TotalForCampaign sums completed donation amounts for one campaign.
	TotalForCampaign(ctx context.Context, campaignID string) (int64, error)
	TotalForUser(ctx context.Context, userID string) (int64, error)
}

type donationService struct {
	donations repository.DonationRepository
	campaigns repository.CampaignRepository
	partners  repository.PartnerRepository
}

// NewDonationService creates a DonationService.
func NewDonationService(donations repository.DonationRepository, campaigns repository.CampaignRepository, partners repository.PartnerRepository) DonationService {
	return &donationService{donations: donations, campaigns: campaigns, partners: partners}
}

func (s *donationService) Create(ctx context.Context, userID string, in CreateDonationInput) (*model.Donation, error) {
	if (in.CampaignID == "") == (in.PartnerID == "") {
		return nil, ErrInvalidTarget
	}
	if in.CampaignID != "" {
		if _, err := s.campaigns.FindByID(ctx, in.CampaignID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.partners.FindByID(ctx, in.PartnerID); err != nil {
			return nil, err
		}
	}

	d := &model.Donation{
		UserID:     userID,
		CampaignID: in.CampaignID,
		PartnerID:  in.PartnerID,
		Amount:     in.Amount,
		Currency:   in.Currency,
		Status:     model.DonationStatusPending,
		Anonymous:  in.Anonymous,
		Message:    in.Message,
	}
	if err := s.donations.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *donationService) GetByID(ctx context.Context, id string) (*model.Donation, error) {
	return s.donations.FindByID(ctx, id)
}

func (s *donationService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Donation, error) {
	return s.donations.List(ctx, model.DonationFilter{UserID: userID}, limit, offset)
}

func (s *donationService) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Donation, error) {
	return s.donations.List(ctx, model.DonationFilter{CampaignID: campaignID}, limit, offset)
}

// transition moves a pending donation to status, surfacing ErrInvalidTransition
// when the donation exists but is already terminal.
func (s *donationService) transition(ctx context.Context, id, status string) (*model.Donation, error) {
	d, err := s.donations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if model.DonationTerminal(d.Status) {
		return nil, ErrInvalidTransition
	}
	if err := s.donations.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Lost the race against a concurrent transition.
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	return d, nil
}

func (s *donationService) Complete(ctx context.Context, id string) error {
	d, err := s.transition(ctx, id, model.DonationStatusCompleted)
	if err != nil {
		return err
	}
	if d.CampaignID != "" {
		if err := s.campaigns.ApplyDonation(ctx, d.CampaignID, d.Amount); err != nil {
			return fmt.Errorf("apply donation to campaign: %w", err)
		}
	} else if d.PartnerID != "" {
		if err := s.partners.ApplyDonation(ctx, d.PartnerID, d.Amount); err != nil {
			return fmt.Errorf("apply donation to partner: %w", err)
		}
	}
	return nil
}

func (s *donationService) Fail(ctx context.Context, id string) error {
	_, err := s.transition(ctx, id, model.DonationStatusFailed)
	return err
}

func (s *donationService) Cancel(ctx context.Context, id string) error {
	_, err := s.transition(ctx, id, model.DonationStatusCancelled)
	return err
}

func (s *donationService) TotalForCampaign(ctx context.Context, campaignID string) (int64, error) {
	return s.donations.SumCompleted(ctx, model.DonationFilter{CampaignID: campaignID})
}

func (s *donationService) TotalForUser(ctx context.Context, userID string) (int64, error) {
	return s.donations.SumCompleted(ctx, model.DonationFilter{UserID: userID})
}
