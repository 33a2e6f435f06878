package postgres

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VechkanovVV/bugtrack/internal/apperrors"
)

// BlobStore - хранилище вложений в Postgres (bytea). Для ядра содержимое
// непрозрачно: только ключ и байты.
type BlobStore struct {
	pool *pgxpool.Pool
}

// NewBlobStore создаёт экземпляр *BlobStore.
func NewBlobStore(pool *pgxpool.Pool) *BlobStore {
	return &BlobStore{pool: pool}
}

// Put сохраняет байты под ключом. Повторная запись того же ключа
// перезаписывает содержимое.
func (s *BlobStore) Put(ctx context.Context, key string, data []byte) *apperrors.AppError {
	const query = `
		INSERT INTO blobs (blob_key, content) VALUES ($1, $2)
		ON CONFLICT (blob_key) DO UPDATE SET content = EXCLUDED.content
	`

	if _, err := s.pool.Exec(ctx, query, key, data); err != nil {
		log.Printf("put blob failed: %v", err)
		return apperrors.New(apperrors.ErrInternalIssue)
	}
	return nil
}

// Get возвращает байты по ключу.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, *apperrors.AppError) {
	const query = `SELECT content FROM blobs WHERE blob_key = $1`

	var data []byte
	if err := s.pool.QueryRow(ctx, query, key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.ErrNotFound)
		}
		log.Printf("get blob failed: %v", err)
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	return data, nil
}
