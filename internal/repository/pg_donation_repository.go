package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sadaqa/backend/internal/model"
)

// PgDonationRepository is the PostgreSQL implementation of DonationRepository.
type PgDonationRepository struct {
	pool *pgxpool.Pool
}

// NewPgDonationRepository creates a PgDonationRepository.
func NewPgDonationRepository(pool *pgxpool.Pool) *PgDonationRepository {
	return &PgDonationRepository{pool: pool}
}

const donationSelectCols = `id, "userId", "campaignId", "partnerId", amount, currency, status, anonymous, message, "createdAt", "updatedAt"`

func scanDonation(scan func(...any) error) (*model.Donation, error) {
	var d model.Donation
	var campaignID, partnerID, message *string
	if err := scan(&d.ID, &d.UserID, &campaignID, &partnerID, &d.Amount, &d.Currency, &d.Status, &d.Anonymous, &message, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if campaignID != nil {
		d.CampaignID = *campaignID
	}
	if partnerID != nil {
		d.PartnerID = *partnerID
	}
	if message != nil {
		d.Message = *message
	}
	return &d, nil
}

func (r *PgDonationRepository) FindByID(ctx context.Context, id string) (*model.Donation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+donationSelectCols+` FROM donations WHERE id = $1`, id)
	return scanDonation(row.Scan)
}

func donationWhere(filter model.DonationFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.UserID != "" {
		add(`"userId" = $%d`, filter.UserID)
	}
	if filter.CampaignID != "" {
		add(`"campaignId" = $%d`, filter.CampaignID)
	}
	if filter.PartnerID != "" {
		add(`"partnerId" = $%d`, filter.PartnerID)
	}
	if filter.Status != "" {
		add(`status = $%d`, filter.Status)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PgDonationRepository) List(ctx context.Context, filter model.DonationFilter, limit, offset int) ([]*model.Donation, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	where, args := donationWhere(filter)
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationSelectCols+` FROM donations`+where+
			fmt.Sprintf(` ORDER BY "createdAt" DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []*model.Donation
	for rows.Next() {
		d, err := scanDonation(rows.Scan)
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

func (r *PgDonationRepository) Count(ctx context.Context, filter model.DonationFilter) (int64, error) {
	where, args := donationWhere(filter)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM donations`+where, args...).Scan(&n)
	return n, err
}

func (r *PgDonationRepository) Create(ctx context.Context, d *model.Donation) error {
	d.ID = uuid.NewString()
	if d.Status == "" {
		d.Status = model.DonationStatusPending
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO donations (id, "userId", "campaignId", "partnerId", amount, currency, status, anonymous, message)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, NULLIF($9, ''))
		 RETURNING "createdAt", "updatedAt"`,
		d.ID, d.UserID, d.CampaignID, d.PartnerID, d.Amount, d.Currency, d.Status, d.Anonymous, d.Message,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	return mapPgError(err)
}

// UpdateStatus only moves donations out of pending; terminal rows never match.
func (r *PgDonationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE donations SET status = $1, "updatedAt" = NOW()
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

func (r *PgDonationRepository) SumCompleted(ctx context.Context, filter model.DonationFilter) (int64, error) {
	filter.Status = model.DonationStatusCompleted
	where, args := donationWhere(filter)
	var sum int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM donations`+where, args...).Scan(&sum)
	return sum, err
}
