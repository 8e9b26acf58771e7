package repository

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
)

// ZakatRepository handles zakat calculation history. Records are append-only.
type ZakatRepository interface {
	Create(ctx context.Context, calc *model.ZakatCalculation) error
	// ListByUser returns a user's calculations ordered by createdAt desc.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.ZakatCalculation, error)
}
