package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sadaqa/backend/internal/model"
)

// PgZakatRepository is the PostgreSQL implementation of ZakatRepository.
// The declared assets are stored as a JSONB payload.
type PgZakatRepository struct {
	pool *pgxpool.Pool
}

// NewPgZakatRepository creates a PgZakatRepository.
func NewPgZakatRepository(pool *pgxpool.Pool) *PgZakatRepository {
	return &PgZakatRepository{pool: pool}
}

func (r *PgZakatRepository) Create(ctx context.Context, calc *model.ZakatCalculation) error {
	calc.ID = uuid.NewString()
	payload, err := json.Marshal(calc.Input)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO zakat_calculations (id, "userId", payload, "zakatDue", "aboveNisab")
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING "createdAt"`,
		calc.ID, calc.UserID, payload, calc.ZakatDue, calc.AboveNisab,
	).Scan(&calc.CreatedAt)
	return mapPgError(err)
}

func (r *PgZakatRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.ZakatCalculation, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	rows, err := r.pool.Query(ctx,
		`SELECT id, "userId", payload, "zakatDue", "aboveNisab", "createdAt"
		 FROM zakat_calculations
		 WHERE "userId" = $1 ORDER BY "createdAt" DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calcs []*model.ZakatCalculation
	for rows.Next() {
		var c model.ZakatCalculation
		var payload []byte
		if err := rows.Scan(&c.ID, &c.UserID, &payload, &c.ZakatDue, &c.AboveNisab, &c.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &c.Input); err != nil {
			return nil, err
		}
		calcs = append(calcs, &c)
	}
	return calcs, rows.Err()
}
