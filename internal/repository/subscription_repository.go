package repository

import (
	"context"
	"time"

	"github.com/sadaqa/backend/internal/model"
)

// SubscriptionRepository handles recurring-subscription persistence.
type SubscriptionRepository interface {
	FindByID(ctx context.Context, id string) (*model.Subscription, error)
	// ListByUser returns a user's subscriptions ordered by createdAt desc.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Subscription, error)
	Create(ctx context.Context, sub *model.Subscription) error
	SetStatus(ctx context.Context, id, status string) error
	// ScheduleNextPayment sets nextPayment and resets chargeAttempts.
	ScheduleNextPayment(ctx context.Context, id string, next time.Time) error
	// RecordChargeAttempt increments chargeAttempts and returns the new count.
	RecordChargeAttempt(ctx context.Context, id string) (int, error)
}
