package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (email, password_hash)
VALUES ($1, $2)
RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, email, password_hash, created_at
FROM users
WHERE email = $1
LIMIT 1`
	return r.scanOne(ctx, query, email)
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, password_hash, created_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(ctx, query, userID)
}

func (r *PGRepo) scanOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}
