package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a user by exact email match.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, department_id, created_at, updated_at
		FROM users
		WHERE email = $1`

	var (
		u     User
		role  string
		dept  pgtype.Int8
		cAt   pgtype.Timestamptz
		uAt   pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &dept, &cAt, &uAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	parsed, ok := authz.ParseRole(role)
	if !ok {
		return nil, errors.New("auth: unknown role in users table: " + role)
	}
	u.Role = parsed
	if dept.Valid {
		u.DepartmentID = dept.Int64
	}
	u.CreatedAt = cAt.Time
	u.UpdatedAt = uAt.Time
	return &u, nil
}

var _ Repository = (*PGRepository)(nil)
