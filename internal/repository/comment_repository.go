package repository

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
)

// CommentRepository handles campaign comment persistence.
type CommentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	// ListByCampaign returns comments ordered by createdAt desc.
	ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	// Delete removes the comment only when it belongs to userID; the owner
	// check is part of the delete query. Reports whether a row was removed.
	Delete(ctx context.Context, id, userID string) (bool, error)
}
