package service

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
)

// PartnerService provides partner-fund management. Writes are admin-only.
type PartnerService interface {
	List(ctx context.Context, filter model.PartnerFilter, limit, offset int) ([]*model.Partner, error)
	GetByID(ctx context.Context, id string) (*model.Partner, error)
	GetBySlug(ctx context.Context, slug string) (*model.Partner, error)
	Create(ctx context.Context, role string, partner *model.Partner) (*model.Partner, error)
	Update(ctx context.Context, id, role string, patch model.PartnerPatch) (*model.Partner, error)
}

type partnerService struct {
	partners repository.PartnerRepository
}

// NewPartnerService creates a PartnerService.
func NewPartnerService(partners repository.PartnerRepository) PartnerService {
	return &partnerService{partners: partners}
}

func (s *partnerService) List(ctx context.Context, filter model.PartnerFilter, limit, offset int) ([]*model.Partner, error) {
	return s.partners.List(ctx, filter, limit, offset)
}

func (s *partnerService) GetByID(ctx context.Context, id string) (*model.Partner, error) {
	return s.partners.FindByID(ctx, id)
}

func (s *partnerService) GetBySlug(ctx context.Context, slug string) (*model.Partner, error) {
	return s.partners.FindBySlug(ctx, slug)
}

func (s *partnerService) Create(ctx context.Context, role string, partner *model.Partner) (*model.Partner, error) {
	if role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := s.partners.Create(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) Update(ctx context.Context, id, role string, patch model.PartnerPatch) (*model.Partner, error) {
	if role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.partners.Update(ctx, id, patch)
}
