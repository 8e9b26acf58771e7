package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sadaqa/backend/internal/model"
)

// PgCommentRepository is the PostgreSQL implementation of CommentRepository.
type PgCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPgCommentRepository creates a PgCommentRepository.
func NewPgCommentRepository(pool *pgxpool.Pool) *PgCommentRepository {
	return &PgCommentRepository{pool: pool}
}

func (r *PgCommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	err := r.pool.QueryRow(ctx,
		`SELECT id, "userId", "campaignId", content, "createdAt" FROM comments WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.UserID, &c.CampaignID, &c.Content, &c.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}

func (r *PgCommentRepository) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Comment, error) {
	limit, offset = normalizePage(limit, offset, DefaultCommentLimit)
	rows, err := r.pool.Query(ctx,
		`SELECT id, "userId", "campaignId", content, "createdAt" FROM comments
		 WHERE "campaignId" = $1 ORDER BY "createdAt" DESC LIMIT $2 OFFSET $3`,
		campaignID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.CampaignID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *PgCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	c.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO comments (id, "userId", "campaignId", content) VALUES ($1, $2, $3, $4)
		 RETURNING "createdAt"`,
		c.ID, c.UserID, c.CampaignID, c.Content,
	).Scan(&c.CreatedAt)
	return mapPgError(err)
}

// Delete enforces ownership in the query itself.
func (r *PgCommentRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM comments WHERE id = $1 AND "userId" = $2`,
		id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
