// Package service содержит бизнес-логику приложения.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/policy"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

// allowedTransitions - таблица переходов статусов. CLOSED терминален:
// из него нет рёбер.
var allowedTransitions = map[storage.BugStatus][]storage.BugStatus{
	storage.StatusOpen:       {storage.StatusInProgress, storage.StatusClosed},
	storage.StatusInProgress: {storage.StatusOpen, storage.StatusClosed},
	storage.StatusClosed:     {},
}

// ValidateTransition проверяет переход from -> to по таблице.
// Переход в текущий статус здесь не рассматривается: его обрабатывает
// вызывающая сторона как идемпотентный no-op.
func ValidateTransition(from, to storage.BugStatus) *apperrors.AppError {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return apperrors.Newf(apperrors.ErrInvalidTransition, "cannot move bug from %s to %s", from, to)
}

// BugService управляет жизненным циклом багов.
//
// Каждая мутация идёт через BugRepository.CompareAndSwap. При конфликте
// версий сервис перечитывает баг и повторяет попытку, заново проверяя
// авторизацию и допустимость перехода против свежего состояния: переход,
// допустимый против устаревшего снимка, может быть недопустим против
// нового. Число повторов ограничено.
type BugService struct {
	bugRepo     storage.BugRepository
	projectRepo storage.ProjectRepository
	userRepo    storage.UserRepository
	blobs       storage.BlobStore
	casRetries  int
}

// NewBugService создаёт новый BugService. casRetries - верхняя граница
// повторов CompareAndSwap при конфликте версий.
func NewBugService(bugRepo storage.BugRepository, projectRepo storage.ProjectRepository, userRepo storage.UserRepository, blobs storage.BlobStore, casRetries int) *BugService {
	if casRetries < 1 {
		casRetries = 1
	}
	return &BugService{
		bugRepo:     bugRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		blobs:       blobs,
		casRetries:  casRetries,
	}
}

// CreateBug создаёт баг со статусом OPEN и version=0.
func (s *BugService) CreateBug(ctx context.Context, actor storage.User, title, description, projectID string) (storage.Bug, *apperrors.AppError) {
	if title == "" {
		return storage.Bug{}, apperrors.Newf(apperrors.ErrValidation, "title must not be empty")
	}
	if description == "" {
		return storage.Bug{}, apperrors.Newf(apperrors.ErrValidation, "description must not be empty")
	}

	if appErr := policy.Authorize(actor, policy.ActionCreate, nil); appErr != nil {
		return storage.Bug{}, appErr
	}

	exists, appErr := s.projectRepo.Exists(ctx, projectID)
	if appErr != nil {
		return storage.Bug{}, appErr
	}
	if !exists {
		return storage.Bug{}, apperrors.New(apperrors.ErrInvalidReference)
	}

	bug := storage.Bug{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      storage.StatusOpen,
		ProjectID:   projectID,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now().UTC(),
		Version:     0,
	}

	if appErr := s.bugRepo.Create(ctx, bug); appErr != nil {
		return storage.Bug{}, appErr
	}
	return bug, nil
}

// UpdateStatus переводит баг в статус target.
//
// Запрос текущего статуса - идемпотентный успех без изменения версии.
// Если expectedVersion задан и не совпадает с текущей версией, операция
// сразу завершается CONCURRENT_MODIFICATION: вызывающий работал с
// устаревшим снимком и должен перечитать баг.
func (s *BugService) UpdateStatus(ctx context.Context, actor storage.User, bugID string, target storage.BugStatus, expectedVersion *int64) (storage.Bug, *apperrors.AppError) {
	if !target.IsValid() {
		return storage.Bug{}, apperrors.Newf(apperrors.ErrValidation, "unknown status %q", target)
	}

	action := policy.ActionUpdateStatus
	if target == storage.StatusClosed {
		action = policy.ActionClose
	}

	var result storage.Bug
	attempt := func() *apperrors.AppError {
		bug, appErr := s.bugRepo.Get(ctx, bugID)
		if appErr != nil {
			return appErr
		}

		if appErr := policy.Authorize(actor, action, &bug); appErr != nil {
			return appErr
		}

		if expectedVersion != nil && bug.Version != *expectedVersion {
			return apperrors.New(apperrors.ErrConcurrentModification)
		}

		if bug.Status == target {
			result = bug
			return nil
		}

		if appErr := ValidateTransition(bug.Status, target); appErr != nil {
			return appErr
		}

		updated, appErr := s.bugRepo.CompareAndSwap(ctx, bugID, bug.Version, func(b *storage.Bug) {
			b.Status = target
		})
		if appErr != nil {
			return appErr
		}
		result = updated
		return nil
	}

	if appErr := s.retryOnConflict(ctx, attempt); appErr != nil {
		return storage.Bug{}, appErr
	}
	return result, nil
}

// Assign назначает баг на пользователя assigneeID; пустой assigneeID
// снимает назначение. Назначать можно только разработчика и только на
// незакрытый баг.
func (s *BugService) Assign(ctx context.Context, actor storage.User, bugID, assigneeID string) (storage.Bug, *apperrors.AppError) {
	if assigneeID != "" {
		assignee, appErr := s.userRepo.Get(ctx, assigneeID)
		if appErr != nil {
			if appErr.Code == apperrors.ErrNotFound {
				return storage.Bug{}, apperrors.Newf(apperrors.ErrInvalidAssignee, "assignee does not exist")
			}
			return storage.Bug{}, appErr
		}
		if assignee.Role != storage.RoleDeveloper {
			return storage.Bug{}, apperrors.New(apperrors.ErrInvalidAssignee)
		}
	}

	var result storage.Bug
	attempt := func() *apperrors.AppError {
		bug, appErr := s.bugRepo.Get(ctx, bugID)
		if appErr != nil {
			return appErr
		}

		if appErr := policy.Authorize(actor, policy.ActionAssign, &bug); appErr != nil {
			return appErr
		}

		if bug.Status == storage.StatusClosed {
			return apperrors.New(apperrors.ErrBugClosed)
		}

		updated, appErr := s.bugRepo.CompareAndSwap(ctx, bugID, bug.Version, func(b *storage.Bug) {
			b.AssignedTo = assigneeID
		})
		if appErr != nil {
			return appErr
		}
		result = updated
		return nil
	}

	if appErr := s.retryOnConflict(ctx, attempt); appErr != nil {
		return storage.Bug{}, appErr
	}
	return result, nil
}

// Attach сохраняет вложение в blob-хранилище и записывает его ключ на баг.
// Ключ для ядра непрозрачен.
func (s *BugService) Attach(ctx context.Context, actor storage.User, bugID string, data []byte) (storage.Bug, *apperrors.AppError) {
	if len(data) == 0 {
		return storage.Bug{}, apperrors.Newf(apperrors.ErrValidation, "attachment must not be empty")
	}

	// Ключ генерируется до цикла повторов: повторный Put того же ключа
	// идемпотентен.
	key := uuid.NewString()
	stored := false

	var result storage.Bug
	attempt := func() *apperrors.AppError {
		bug, appErr := s.bugRepo.Get(ctx, bugID)
		if appErr != nil {
			return appErr
		}

		if appErr := policy.Authorize(actor, policy.ActionAttach, &bug); appErr != nil {
			return appErr
		}

		if bug.Status == storage.StatusClosed {
			return apperrors.New(apperrors.ErrBugClosed)
		}

		if !stored {
			if appErr := s.blobs.Put(ctx, key, data); appErr != nil {
				return appErr
			}
			stored = true
		}

		updated, appErr := s.bugRepo.CompareAndSwap(ctx, bugID, bug.Version, func(b *storage.Bug) {
			b.AttachmentKey = key
		})
		if appErr != nil {
			return appErr
		}
		result = updated
		return nil
	}

	if appErr := s.retryOnConflict(ctx, attempt); appErr != nil {
		return storage.Bug{}, appErr
	}
	return result, nil
}

// GetAttachment возвращает байты вложения бага.
func (s *BugService) GetAttachment(ctx context.Context, actor storage.User, bugID string) ([]byte, *apperrors.AppError) {
	if appErr := policy.Authorize(actor, policy.ActionRead, nil); appErr != nil {
		return nil, appErr
	}

	bug, appErr := s.bugRepo.Get(ctx, bugID)
	if appErr != nil {
		return nil, appErr
	}
	if bug.AttachmentKey == "" {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "bug has no attachment")
	}
	return s.blobs.Get(ctx, bug.AttachmentKey)
}

// GetBug возвращает баг по id.
func (s *BugService) GetBug(ctx context.Context, actor storage.User, bugID string) (storage.Bug, *apperrors.AppError) {
	if appErr := policy.Authorize(actor, policy.ActionRead, nil); appErr != nil {
		return storage.Bug{}, appErr
	}
	return s.bugRepo.Get(ctx, bugID)
}

// ListBugs возвращает баги, проходящие фильтр.
func (s *BugService) ListBugs(ctx context.Context, actor storage.User, filter storage.BugFilter) ([]storage.Bug, *apperrors.AppError) {
	if appErr := policy.Authorize(actor, policy.ActionRead, nil); appErr != nil {
		return nil, appErr
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.Newf(apperrors.ErrValidation, "unknown status %q", filter.Status)
	}
	return s.bugRepo.List(ctx, filter)
}

// GetStats возвращает количество багов по статусам в разрезе проектов.
func (s *BugService) GetStats(ctx context.Context, actor storage.User) ([]storage.BugStats, *apperrors.AppError) {
	if appErr := policy.Authorize(actor, policy.ActionRead, nil); appErr != nil {
		return nil, appErr
	}
	return s.bugRepo.CountByStatus(ctx)
}

// retryOnConflict выполняет attempt, повторяя его при VERSION_CONFLICT
// не более casRetries раз. Любая другая ошибка завершает цикл сразу.
// Отмена контекста проверяется между попытками, а не внутри запроса к
// хранилищу. Исчерпание повторов отдаётся как CONCURRENT_MODIFICATION.
func (s *BugService) retryOnConflict(ctx context.Context, attempt func() *apperrors.AppError) *apperrors.AppError {
	op := func() error {
		appErr := attempt()
		if appErr == nil {
			return nil
		}
		if appErr.Code == apperrors.ErrVersionConflict {
			return appErr
		}
		return backoff.Permanent(appErr)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(2*time.Millisecond),
			backoff.WithMaxInterval(20*time.Millisecond),
		),
		uint64(s.casRetries),
	), ctx)

	if err := backoff.Retry(op, bo); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Code == apperrors.ErrVersionConflict {
				return apperrors.New(apperrors.ErrConcurrentModification)
			}
			return appErr
		}
		// Отмена контекста между попытками.
		return apperrors.Newf(apperrors.ErrConcurrentModification, "operation aborted: %v", err)
	}
	return nil
}
