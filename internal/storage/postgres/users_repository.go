package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mibcs/clubsite/internal/auth"
	"github.com/mibcs/clubsite/internal/domain/users"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

var _ users.Repository = (*UserRepository)(nil)

const userColumns = `id, username, email, password_hash, role, is_active, last_login_at, created_at`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns), email)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*users.User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns), id)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, params users.CreateParams) (*users.User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
INSERT INTO users (id, username, email, password_hash, role, is_active)
VALUES ($1, $2, $3, $4, $5, true)
RETURNING %s
`, userColumns),
		params.ID,
		params.Username,
		params.Email,
		params.PasswordHash,
		string(params.Role),
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return users.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*users.User, error) {
	var (
		user users.User
		role string
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Role = auth.NormalizeRole(role)
	return &user, nil
}
