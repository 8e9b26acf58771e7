package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sadaqa/backend/internal/model"
)

// PgUserRepository is the PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository creates a PgUserRepository.
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userSelectCols = `id, email, username, password, "fullName", phone, country, city, avatar, role, "createdAt", "updatedAt"`

func scanUser(scan func(...any) error) (*model.User, error) {
	var u model.User
	var fullName, phone, city, avatar *string
	if err := scan(&u.ID, &u.Email, &u.Username, &u.Password, &fullName, &phone, &u.Country, &city, &avatar, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if fullName != nil {
		u.FullName = *fullName
	}
	if phone != nil {
		u.Phone = *phone
	}
	if city != nil {
		u.City = *city
	}
	if avatar != nil {
		u.Avatar = *avatar
	}
	return &u, nil
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE id = $1`, id)
	return scanUser(row.Scan)
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE email = $1`, email)
	return scanUser(row.Scan)
}

func (r *PgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE username = $1`, username)
	return scanUser(row.Scan)
}

// Create inserts a user. The id is generated here rather than in the schema so
// both backends assign identifiers the same way.
func (r *PgUserRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.NewString()
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, username, password, "fullName", phone, country, city, avatar, role)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), NULLIF($9, ''), $10)
		 RETURNING "createdAt", "updatedAt"`,
		user.ID, user.Email, user.Username, user.Password,
		user.FullName, user.Phone, user.Country, user.City, user.Avatar, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return mapPgError(err)
}

func (r *PgUserRepository) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET
		   "fullName" = COALESCE($1, "fullName"),
		   phone      = COALESCE($2, phone),
		   country    = COALESCE($3, country),
		   city       = COALESCE($4, city),
		   avatar     = COALESCE($5, avatar),
		   "updatedAt" = NOW()
		 WHERE id = $6
		 RETURNING `+userSelectCols,
		patch.FullName, patch.Phone, patch.Country, patch.City, patch.Avatar, id)
	return scanUser(row.Scan)
}

func (r *PgUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgUserRepository) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	rows, err := r.pool.Query(ctx,
		`SELECT `+userSelectCols+` FROM users ORDER BY "createdAt" DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
