package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sadaqa/backend/internal/model"
)

// PgPartnerRepository is the PostgreSQL implementation of PartnerRepository.
type PgPartnerRepository struct {
	pool *pgxpool.Pool
}

// NewPgPartnerRepository creates a PgPartnerRepository.
func NewPgPartnerRepository(pool *pgxpool.Pool) *PgPartnerRepository {
	return &PgPartnerRepository{pool: pool}
}

const partnerSelectCols = `id, name, slug, type, description, verified, country, city, categories, "totalCollected", "totalDonors", "totalHelped", "projectCount", "createdAt", "updatedAt"`

func scanPartner(scan func(...any) error) (*model.Partner, error) {
	var p model.Partner
	var city *string
	if err := scan(
		&p.ID, &p.Name, &p.Slug, &p.Type, &p.Description, &p.Verified,
		&p.Country, &city, &p.Categories,
		&p.TotalCollected, &p.TotalDonors, &p.TotalHelped, &p.ProjectCount,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	if city != nil {
		p.City = *city
	}
	return &p, nil
}

func (r *PgPartnerRepository) FindByID(ctx context.Context, id string) (*model.Partner, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+partnerSelectCols+` FROM partners WHERE id = $1`, id)
	return scanPartner(row.Scan)
}

func (r *PgPartnerRepository) FindBySlug(ctx context.Context, slug string) (*model.Partner, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+partnerSelectCols+` FROM partners WHERE slug = $1`, slug)
	return scanPartner(row.Scan)
}

func partnerWhere(filter model.PartnerFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Type != "" {
		add(`type = $%d`, filter.Type)
	}
	if filter.Country != "" {
		add(`country = $%d`, filter.Country)
	}
	if filter.Category != "" {
		add(`$%d = ANY(categories)`, filter.Category)
	}
	if filter.Verified != nil {
		add(`verified = $%d`, *filter.Verified)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List orders by totalCollected desc, the one listing that does not sort by
// createdAt.
func (r *PgPartnerRepository) List(ctx context.Context, filter model.PartnerFilter, limit, offset int) ([]*model.Partner, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	where, args := partnerWhere(filter)
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+partnerSelectCols+` FROM partners`+where+
			fmt.Sprintf(` ORDER BY "totalCollected" DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []*model.Partner
	for rows.Next() {
		p, err := scanPartner(rows.Scan)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

func (r *PgPartnerRepository) Create(ctx context.Context, p *model.Partner) error {
	p.ID = uuid.NewString()
	if p.Categories == nil {
		p.Categories = []string{}
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO partners (id, name, slug, type, description, verified, country, city, categories, "totalCollected", "totalDonors", "totalHelped", "projectCount")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13)
		 RETURNING "createdAt", "updatedAt"`,
		p.ID, p.Name, p.Slug, p.Type, p.Description, p.Verified, p.Country, p.City,
		p.Categories, p.TotalCollected, p.TotalDonors, p.TotalHelped, p.ProjectCount,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapPgError(err)
}

func (r *PgPartnerRepository) Update(ctx context.Context, id string, patch model.PartnerPatch) (*model.Partner, error) {
	var categories any
	if patch.Categories != nil {
		categories = *patch.Categories
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE partners SET
		   name        = COALESCE($1, name),
		   type        = COALESCE($2, type),
		   description = COALESCE($3, description),
		   verified    = COALESCE($4, verified),
		   country     = COALESCE($5, country),
		   city        = COALESCE($6, city),
		   categories  = COALESCE($7, categories),
		   "updatedAt" = NOW()
		 WHERE id = $8
		 RETURNING `+partnerSelectCols,
		patch.Name, patch.Type, patch.Description, patch.Verified,
		patch.Country, patch.City, categories, id)
	return scanPartner(row.Scan)
}

func (r *PgPartnerRepository) ApplyDonation(ctx context.Context, id string, amount int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE partners SET
		   "totalCollected" = "totalCollected" + $1,
		   "totalDonors"   = "totalDonors" + 1,
		   "updatedAt"     = NOW()
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

func (r *PgPartnerRepository) IncrementProjectCount(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE partners SET "projectCount" = "projectCount" + 1, "updatedAt" = NOW() WHERE id = $1`,
		id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
