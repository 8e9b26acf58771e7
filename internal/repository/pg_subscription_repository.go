package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sadaqa/backend/internal/model"
)

// PgSubscriptionRepository is the PostgreSQL implementation of
// SubscriptionRepository.
type PgSubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubscriptionRepository creates a PgSubscriptionRepository.
func NewPgSubscriptionRepository(pool *pgxpool.Pool) *PgSubscriptionRepository {
	return &PgSubscriptionRepository{pool: pool}
}

const subscriptionSelectCols = `id, "userId", plan, period, status, "providerToken", "nextPayment", "chargeAttempts", "maxChargeAttempts", "createdAt", "updatedAt"`

func scanSubscription(scan func(...any) error) (*model.Subscription, error) {
	var s model.Subscription
	var providerToken *string
	if err := scan(&s.ID, &s.UserID, &s.Plan, &s.Period, &s.Status, &providerToken, &s.NextPayment, &s.ChargeAttempts, &s.MaxChargeAttempts, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if providerToken != nil {
		s.ProviderToken = *providerToken
	}
	return &s, nil
}

func (r *PgSubscriptionRepository) FindByID(ctx context.Context, id string) (*model.Subscription, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+subscriptionSelectCols+` FROM subscriptions WHERE id = $1`, id)
	return scanSubscription(row.Scan)
}

func (r *PgSubscriptionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Subscription, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	rows, err := r.pool.Query(ctx,
		`SELECT `+subscriptionSelectCols+` FROM subscriptions
		 WHERE "userId" = $1 ORDER BY "createdAt" DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows.Scan)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *PgSubscriptionRepository) Create(ctx context.Context, s *model.Subscription) error {
	s.ID = uuid.NewString()
	if s.Status == "" {
		s.Status = model.SubscriptionStatusActive
	}
	if s.MaxChargeAttempts == 0 {
		s.MaxChargeAttempts = 3
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subscriptions (id, "userId", plan, period, status, "providerToken", "nextPayment", "chargeAttempts", "maxChargeAttempts")
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		 RETURNING "createdAt", "updatedAt"`,
		s.ID, s.UserID, s.Plan, s.Period, s.Status, s.ProviderToken, s.NextPayment, s.ChargeAttempts, s.MaxChargeAttempts,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return mapPgError(err)
}

func (r *PgSubscriptionRepository) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET status = $1, "updatedAt" = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgSubscriptionRepository) ScheduleNextPayment(ctx context.Context, id string, next time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET "nextPayment" = $1, "chargeAttempts" = 0, "updatedAt" = NOW() WHERE id = $2`,
		next, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgSubscriptionRepository) RecordChargeAttempt(ctx context.Context, id string) (int, error) {
	var attempts int
	err := r.pool.QueryRow(ctx,
		`UPDATE subscriptions SET "chargeAttempts" = "chargeAttempts" + 1, "updatedAt" = NOW()
		 WHERE id = $1
		 RETURNING "chargeAttempts"`,
		id).Scan(&attempts)
	if err != nil {
		return 0, mapPgError(err)
	}
	return attempts, nil
}
