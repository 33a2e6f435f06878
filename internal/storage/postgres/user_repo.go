package postgres

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

// UserRepository - репозиторий для управления пользователями в Postgres.
// Колонки secret и api_token - непрозрачные учётные данные, ядро сравнивает
// их только на равенство.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository создаёт экземпляр *UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create регистрирует нового пользователя вместе с учётными данными.
func (r *UserRepository) Create(ctx context.Context, user storage.User, secret, token string) *apperrors.AppError {
	const query = `
		INSERT INTO users (user_id, username, role, secret, api_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, user.ID, user.Username, user.Role, secret, token, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.New(apperrors.ErrUsernameTaken)
		}
		log.Printf("inserting user failed: %v", err)
		return apperrors.New(apperrors.ErrInternalIssue)
	}
	return nil
}

// Get возвращает пользователя по id.
func (r *UserRepository) Get(ctx context.Context, userID string) (storage.User, *apperrors.AppError) {
	const query = `SELECT user_id, username, role, created_at FROM users WHERE user_id = $1`

	var u storage.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(&u.ID, &u.Username, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return u, apperrors.New(apperrors.ErrNotFound)
		}
		log.Printf("query user failed: %v", err)
		return u, apperrors.New(apperrors.ErrInternalIssue)
	}
	return u, nil
}

// Exists проверяет существование пользователя.
func (r *UserRepository) Exists(ctx context.Context, userID string) (bool, *apperrors.AppError) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		log.Printf("query failed: %v", err)
		return false, apperrors.New(apperrors.ErrInternalIssue)
	}
	return exists, nil
}

// VerifyCredentials проверяет пару username/secret и возвращает
// пользователя вместе с его api-токеном. Причина отказа не уточняется,
// чтобы не раскрывать существование имени.
func (r *UserRepository) VerifyCredentials(ctx context.Context, username, secret string) (storage.User, string, *apperrors.AppError) {
	const query = `
		SELECT user_id, username, role, created_at, api_token
		FROM users WHERE username = $1 AND secret = $2
	`

	var u storage.User
	var token string
	err := r.pool.QueryRow(ctx, query, username, secret).Scan(&u.ID, &u.Username, &u.Role, &u.CreatedAt, &token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return u, "", apperrors.New(apperrors.ErrAuthFailure)
		}
		log.Printf("verify credentials failed: %v", err)
		return u, "", apperrors.New(apperrors.ErrInternalIssue)
	}
	return u, token, nil
}

// ResolveToken возвращает пользователя по api-токену.
func (r *UserRepository) ResolveToken(ctx context.Context, token string) (storage.User, *apperrors.AppError) {
	const query = `SELECT user_id, username, role, created_at FROM users WHERE api_token = $1`

	var u storage.User
	err := r.pool.QueryRow(ctx, query, token).Scan(&u.ID, &u.Username, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return u, apperrors.New(apperrors.ErrAuthFailure)
		}
		log.Printf("resolve token failed: %v", err)
		return u, apperrors.New(apperrors.ErrInternalIssue)
	}
	return u, nil
}
