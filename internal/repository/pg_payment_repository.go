package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sadaqa/backend/internal/model"
)

// PgPaymentRepository is the PostgreSQL implementation of PaymentRepository.
type PgPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPgPaymentRepository creates a PgPaymentRepository.
func NewPgPaymentRepository(pool *pgxpool.Pool) *PgPaymentRepository {
	return &PgPaymentRepository{pool: pool}
}

const paymentSelectCols = `id, "donationId", provider, amount, currency, status, "providerId", "paymentUrl", "createdAt", "updatedAt"`

func scanPayment(scan func(...any) error) (*model.Payment, error) {
	var p model.Payment
	var providerID, paymentURL *string
	if err := scan(&p.ID, &p.DonationID, &p.Provider, &p.Amount, &p.Currency, &p.Status, &providerID, &paymentURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if providerID != nil {
		p.ProviderID = *providerID
	}
	if paymentURL != nil {
		p.PaymentURL = *paymentURL
	}
	return &p, nil
}

func (r *PgPaymentRepository) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+paymentSelectCols+` FROM payments WHERE id = $1`, id)
	return scanPayment(row.Scan)
}

func (r *PgPaymentRepository) FindByDonationID(ctx context.Context, donationID string) (*model.Payment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+paymentSelectCols+` FROM payments WHERE "donationId" = $1`, donationID)
	return scanPayment(row.Scan)
}

func (r *PgPaymentRepository) FindByProviderID(ctx context.Context, providerID string) (*model.Payment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+paymentSelectCols+` FROM payments WHERE "providerId" = $1`, providerID)
	return scanPayment(row.Scan)
}

func (r *PgPaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	p.ID = uuid.NewString()
	if p.Status == "" {
		p.Status = model.PaymentStatusPending
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payments (id, "donationId", provider, amount, currency, status, "providerId", "paymentUrl")
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
		 RETURNING "createdAt", "updatedAt"`,
		p.ID, p.DonationID, p.Provider, p.Amount, p.Currency, p.Status, p.ProviderID, p.PaymentURL,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapPgError(err)
}

func (r *PgPaymentRepository) SetProviderRef(ctx context.Context, id, providerID, paymentURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payments SET "providerId" = $1, "paymentUrl" = $2, "updatedAt" = NOW() WHERE id = $3`,
		providerID, paymentURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus only moves payments out of pending; terminal rows never match.
func (r *PgPaymentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payments SET status = $1, "updatedAt" = NOW()
		 WHERE id = $2 AND status = 'pending'`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
