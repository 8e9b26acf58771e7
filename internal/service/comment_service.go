package service

import (
	"context"
	"errors"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
)

// CommentService manages campaign comments.
type CommentService interface {
	Create(ctx context.Context, userID, campaignID, content string) (*model.Comment, error)
	ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Comment, error)
	// Delete removes the user's own comment. Admins and moderators may remove
	// any comment.
	Delete(ctx context.Context, id, userID, role string) error
}

type commentService struct {
	comments  repository.CommentRepository
	campaigns repository.CampaignRepository
}

// NewCommentService creates a CommentService.
func NewCommentService(comments repository.CommentRepository, campaigns repository.CampaignRepository) CommentService {
	return &commentService{comments: comments, campaigns: campaigns}
}

func (s *commentService) Create(ctx context.Context, userID, campaignID, content string) (*model.Comment, error) {
	if _, err := s.campaigns.FindByID(ctx, campaignID); err != nil {
		return nil, err
	}
	c := &model.Comment{UserID: userID, CampaignID: campaignID, Content: content}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Comment, error) {
	return s.comments.ListByCampaign(ctx, campaignID, limit, offset)
}

func (s *commentService) Delete(ctx context.Context, id, userID, role string) error {
	owner := userID
	if role == model.RoleAdmin || role == model.RoleModerator {
		c, err := s.comments.FindByID(ctx, id)
		if err != nil {
			return err
		}
		owner = c.UserID
	}
	removed, err := s.comments.Delete(ctx, id, owner)
	if err != nil {
		return err
	}
	if removed {
		return nil
	}
	// Distinguish missing from not-owned for the caller.
	if _, err := s.comments.FindByID(ctx, id); errors.Is(err, repository.ErrNotFound) {
		return repository.ErrNotFound
	}
	return ErrForbidden
}
