package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sadaqa/backend/internal/model"
)

// PgFavoriteRepository is the PostgreSQL implementation of FavoriteRepository.
type PgFavoriteRepository struct {
	pool *pgxpool.Pool
}

// NewPgFavoriteRepository creates a PgFavoriteRepository.
func NewPgFavoriteRepository(pool *pgxpool.Pool) *PgFavoriteRepository {
	return &PgFavoriteRepository{pool: pool}
}

func (r *PgFavoriteRepository) FindByUserAndCampaign(ctx context.Context, userID, campaignID string) (*model.Favorite, error) {
	var f model.Favorite
	err := r.pool.QueryRow(ctx,
		`SELECT id, "userId", "campaignId", "createdAt" FROM favorites
		 WHERE "userId" = $1 AND "campaignId" = $2`,
		userID, campaignID,
	).Scan(&f.ID, &f.UserID, &f.CampaignID, &f.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &f, nil
}

func (r *PgFavoriteRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Favorite, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	rows, err := r.pool.Query(ctx,
		`SELECT id, "userId", "campaignId", "createdAt" FROM favorites
		 WHERE "userId" = $1 ORDER BY "createdAt" DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favs []*model.Favorite
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.CampaignID, &f.CreatedAt); err != nil {
			return nil, err
		}
		favs = append(favs, &f)
	}
	return favs, rows.Err()
}

func (r *PgFavoriteRepository) Create(ctx context.Context, f *model.Favorite) error {
	f.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO favorites (id, "userId", "campaignId") VALUES ($1, $2, $3)
		 RETURNING "createdAt"`,
		f.ID, f.UserID, f.CampaignID,
	).Scan(&f.CreatedAt)
	return mapPgError(err)
}

func (r *PgFavoriteRepository) Delete(ctx context.Context, userID, campaignID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE "userId" = $1 AND "campaignId" = $2`,
		userID, campaignID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
