package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sadaqa/backend/internal/model"
)

// PgCampaignRepository is the PostgreSQL implementation of CampaignRepository.
type PgCampaignRepository struct {
	pool *pgxpool.Pool
}

// NewPgCampaignRepository creates a PgCampaignRepository.
func NewPgCampaignRepository(pool *pgxpool.Pool) *PgCampaignRepository {
	return &PgCampaignRepository{pool: pool}
}

const campaignSelectCols = `id, title, slug, description, "fullDescription", category, image, goal, collected, currency, type, status, urgent, verified, "moderationStatus", "participantCount", deadline, "partnerId", "authorId", "createdAt", "updatedAt"`

func scanCampaign(scan func(...any) error) (*model.Campaign, error) {
	var c model.Campaign
	var fullDesc, image, partnerID, authorID *string
	if err := scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, &fullDesc, &c.Category, &image,
		&c.Goal, &c.Collected, &c.Currency, &c.Type, &c.Status, &c.Urgent, &c.Verified,
		&c.ModerationStatus, &c.ParticipantCount, &c.Deadline, &partnerID, &authorID,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	if fullDesc != nil {
		c.FullDescription = *fullDesc
	}
	if image != nil {
		c.Image = *image
	}
	if partnerID != nil {
		c.PartnerID = *partnerID
	}
	if authorID != nil {
		c.AuthorID = *authorID
	}
	return &c, nil
}

func (r *PgCampaignRepository) FindByID(ctx context.Context, id string) (*model.Campaign, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+campaignSelectCols+` FROM campaigns WHERE id = $1`, id)
	return scanCampaign(row.Scan)
}

func (r *PgCampaignRepository) FindBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+campaignSelectCols+` FROM campaigns WHERE slug = $1`, slug)
	return scanCampaign(row.Scan)
}

// campaignWhere builds the WHERE clause for a filter. Returned args line up
// with $1..$n placeholders.
func campaignWhere(filter model.CampaignFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Category != "" {
		add(`category = $%d`, filter.Category)
	}
	if filter.Status != "" {
		add(`status = $%d`, filter.Status)
	}
	if filter.Type != "" {
		add(`type = $%d`, filter.Type)
	}
	if filter.PartnerID != "" {
		add(`"partnerId" = $%d`, filter.PartnerID)
	}
	if filter.AuthorID != "" {
		add(`"authorId" = $%d`, filter.AuthorID)
	}
	if filter.Urgent != nil {
		add(`urgent = $%d`, *filter.Urgent)
	}
	if filter.Verified != nil {
		add(`verified = $%d`, *filter.Verified)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PgCampaignRepository) List(ctx context.Context, filter model.CampaignFilter, limit, offset int) ([]*model.Campaign, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	where, args := campaignWhere(filter)
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignSelectCols+` FROM campaigns`+where+
			fmt.Sprintf(` ORDER BY "createdAt" DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *PgCampaignRepository) Count(ctx context.Context, filter model.CampaignFilter) (int64, error) {
	where, args := campaignWhere(filter)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&n)
	return n, err
}

func (r *PgCampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	c.ID = uuid.NewString()
	if c.Status == "" {
		c.Status = model.CampaignStatusActive
	}
	if c.ModerationStatus == "" {
		c.ModerationStatus = model.ModerationPending
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO campaigns (id, title, slug, description, "fullDescription", category, image, goal, collected, currency, type, status, urgent, verified, "moderationStatus", "participantCount", deadline, "partnerId", "authorId")
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NULLIF($18, ''), NULLIF($19, ''))
		 RETURNING "createdAt", "updatedAt"`,
		c.ID, c.Title, c.Slug, c.Description, c.FullDescription, c.Category, c.Image,
		c.Goal, c.Collected, c.Currency, c.Type, c.Status, c.Urgent, c.Verified,
		c.ModerationStatus, c.ParticipantCount, c.Deadline, c.PartnerID, c.AuthorID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapPgError(err)
}

func (r *PgCampaignRepository) Update(ctx context.Context, id string, patch model.CampaignPatch) (*model.Campaign, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE campaigns SET
		   title              = COALESCE($1, title),
		   description        = COALESCE($2, description),
		   "fullDescription"  = COALESCE($3, "fullDescription"),
		   category           = COALESCE($4, category),
		   image              = COALESCE($5, image),
		   goal               = COALESCE($6, goal),
		   status             = COALESCE($7, status),
		   urgent             = COALESCE($8, urgent),
		   verified           = COALESCE($9, verified),
		   "moderationStatus" = COALESCE($10, "moderationStatus"),
		   deadline           = COALESCE($11, deadline),
		   "updatedAt"        = NOW()
		 WHERE id = $12
		 RETURNING `+campaignSelectCols,
		patch.Title, patch.Description, patch.FullDescription, patch.Category,
		patch.Image, patch.Goal, patch.Status, patch.Urgent, patch.Verified,
		patch.ModerationStatus, patch.Deadline, id)
	return scanCampaign(row.Scan)
}

func (r *PgCampaignRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgCampaignRepository) ApplyDonation(ctx context.Context, id string, amount int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET
		   collected = collected + $1,
		   "participantCount" = "participantCount" + 1,
		   "updatedAt" = NOW()
		 WHERE id = $2`,
		amount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
