package storage

import (
	"context"

	"github.com/VechkanovVV/bugtrack/internal/apperrors"
)

// UserRepository - репозиторий для управления пользователями.
// Секрет и токен - непрозрачные учётные данные; ядро их не интерпретирует.
type UserRepository interface {
	Create(ctx context.Context, user User, secret, token string) *apperrors.AppError
	Get(ctx context.Context, userID string) (User, *apperrors.AppError)
	Exists(ctx context.Context, userID string) (bool, *apperrors.AppError)
	VerifyCredentials(ctx context.Context, username, secret string) (User, string, *apperrors.AppError)
	ResolveToken(ctx context.Context, token string) (User, *apperrors.AppError)
}

// ProjectRepository - репозиторий для управления проектами.
type ProjectRepository interface {
	Create(ctx context.Context, project Project) *apperrors.AppError
	Get(ctx context.Context, projectID string) (Project, *apperrors.AppError)
	Exists(ctx context.Context, projectID string) (bool, *apperrors.AppError)
	// Delete отклоняет удаление, пока на проект ссылается хотя бы один баг.
	Delete(ctx context.Context, projectID string) *apperrors.AppError
}

// BugRepository - репозиторий для управления багами.
//
// CompareAndSwap - единственный путь мутации: сравнивает версию записи с
// expectedVersion, при совпадении применяет mutate и сохраняет запись с
// version+1, иначе возвращает VERSION_CONFLICT. Запись либо применяется
// целиком, либо остаётся нетронутой.
type BugRepository interface {
	Create(ctx context.Context, bug Bug) *apperrors.AppError
	Get(ctx context.Context, bugID string) (Bug, *apperrors.AppError)
	List(ctx context.Context, filter BugFilter) ([]Bug, *apperrors.AppError)
	CompareAndSwap(ctx context.Context, bugID string, expectedVersion int64, mutate func(*Bug)) (Bug, *apperrors.AppError)
	CountByStatus(ctx context.Context) ([]BugStats, *apperrors.AppError)
}

// BlobStore - непрозрачное хранилище вложений. Ядро хранит только ключ
// и никогда не интерпретирует содержимое.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) *apperrors.AppError
	Get(ctx context.Context, key string) ([]byte, *apperrors.AppError)
}
