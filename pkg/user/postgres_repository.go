package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresUserRepository implements Repository on the users table
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const createUserSQL = `
INSERT INTO users (id, email)
VALUES ($1, $2)
RETURNING id, email, email_verified, email_verified_at, created_at`

func (r *PostgresUserRepository) CreateUser(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, createUserSQL, uuid.New(), email)

	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUserAlreadyExists
		}
		slog.Error("Failed to create user", "err", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

const getUserSQL = `
SELECT id, email, email_verified, email_verified_at, created_at
FROM users
WHERE id = $1 AND deleted_at IS NULL`

func (r *PostgresUserRepository) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, getUserSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

const markEmailVerifiedSQL = `
UPDATE users
SET email_verified = TRUE, email_verified_at = now() AT TIME ZONE 'UTC'
WHERE id = $1 AND deleted_at IS NULL`

func (r *PostgresUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, markEmailVerifiedSQL, id)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

const updateEmailSQL = `
UPDATE users
SET email = $2, email_verified = FALSE, email_verified_at = NULL
WHERE id = $1 AND deleted_at IS NULL`

func (r *PostgresUserRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	tag, err := r.pool.Exec(ctx, updateEmailSQL, id, email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.EmailVerified, &u.EmailVerifiedAt, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
