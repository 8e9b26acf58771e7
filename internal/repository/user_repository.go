package repository

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
)

// UserRepository handles user persistence.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// Create assigns ID and timestamps. Returns ErrConflict when email or
	// username is already taken.
	Create(ctx context.Context, user *model.User) error
	// Update merges patch fields and refreshes updatedAt.
	Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// List returns users ordered by createdAt desc.
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
}
