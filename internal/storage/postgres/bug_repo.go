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

// BugRepository - репозиторий для управления багами в Postgres.
type BugRepository struct {
	pool *pgxpool.Pool
}

// NewBugRepository создаёт экземпляр *BugRepository.
func NewBugRepository(pool *pgxpool.Pool) *BugRepository {
	return &BugRepository{pool: pool}
}

const bugColumns = `bug_id, title, description, status, project_id,
	COALESCE(assigned_to, ''), created_by, COALESCE(attachment_key, ''), created_at, version`

func scanBug(row pgx.Row) (storage.Bug, error) {
	var b storage.Bug
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Status, &b.ProjectID,
		&b.AssignedTo, &b.CreatedBy, &b.AttachmentKey, &b.CreatedAt, &b.Version)
	return b, err
}

// Create сохраняет новый баг с version=0.
func (r *BugRepository) Create(ctx context.Context, bug storage.Bug) *apperrors.AppError {
	const query = `
		INSERT INTO bugs (bug_id, title, description, status, project_id, assigned_to, created_by, attachment_key, created_at, version)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9, $10)
	`

	_, err := r.pool.Exec(ctx, query, bug.ID, bug.Title, bug.Description, bug.Status,
		bug.ProjectID, bug.AssignedTo, bug.CreatedBy, bug.AttachmentKey, bug.CreatedAt, bug.Version)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.New(apperrors.ErrInvalidReference)
		}
		log.Printf("inserting bug failed: %v", err)
		return apperrors.New(apperrors.ErrInternalIssue)
	}
	return nil
}

// Get возвращает баг по id.
func (r *BugRepository) Get(ctx context.Context, bugID string) (storage.Bug, *apperrors.AppError) {
	const query = `SELECT ` + bugColumns + ` FROM bugs WHERE bug_id = $1`

	bug, err := scanBug(r.pool.QueryRow(ctx, query, bugID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Bug{}, apperrors.New(apperrors.ErrNotFound)
		}
		log.Printf("query bug failed: %v", err)
		return storage.Bug{}, apperrors.New(apperrors.ErrInternalIssue)
	}
	return bug, nil
}

// List возвращает баги, проходящие фильтр. Пустые поля фильтра не
// ограничивают выборку; заполненные комбинируются по AND.
func (r *BugRepository) List(ctx context.Context, filter storage.BugFilter) ([]storage.Bug, *apperrors.AppError) {
	const query = `
		SELECT ` + bugColumns + `
		FROM bugs
		WHERE ($1 = '' OR project_id = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR assigned_to = $3)
		ORDER BY created_at, bug_id
	`

	rows, err := r.pool.Query(ctx, query, filter.ProjectID, string(filter.Status), filter.AssignedTo)
	if err != nil {
		log.Printf("query bugs failed: %v", err)
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	defer rows.Close()

	var bugs []storage.Bug
	for rows.Next() {
		bug, err := scanBug(rows)
		if err != nil {
			log.Printf("bug scan failed: %v", err)
			return nil, apperrors.New(apperrors.ErrInternalIssue)
		}
		bugs = append(bugs, bug)
	}

	if err := rows.Err(); err != nil {
		log.Printf("%v", err)
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	return bugs, nil
}

// CompareAndSwap атомарно применяет mutate к багу: читает текущую запись,
// сверяет версию с expectedVersion и сохраняет изменённые поля с version+1.
// Условие version = expectedVersion в UPDATE гарантирует, что из двух
// конкурентных писателей выигрывает ровно один; проигравший получает
// VERSION_CONFLICT и должен перечитать состояние.
func (r *BugRepository) CompareAndSwap(ctx context.Context, bugID string, expectedVersion int64, mutate func(*storage.Bug)) (storage.Bug, *apperrors.AppError) {
	const query = `
		UPDATE bugs
		SET title = $3, description = $4, status = $5, assigned_to = NULLIF($6, ''),
		    attachment_key = NULLIF($7, ''), version = version + 1
		WHERE bug_id = $1 AND version = $2
	`

	bug, appErr := r.Get(ctx, bugID)
	if appErr != nil {
		return storage.Bug{}, appErr
	}

	if bug.Version != expectedVersion {
		return storage.Bug{}, apperrors.New(apperrors.ErrVersionConflict)
	}

	mutate(&bug)

	ct, err := r.pool.Exec(ctx, query, bugID, expectedVersion,
		bug.Title, bug.Description, bug.Status, bug.AssignedTo, bug.AttachmentKey)
	if err != nil {
		log.Printf("update bug failed: %v", err)
		return storage.Bug{}, apperrors.New(apperrors.ErrInternalIssue)
	}

	if ct.RowsAffected() == 0 {
		// Запись исчезнуть не может (баги не удаляются), значит версию
		// успел поднять конкурентный писатель.
		return storage.Bug{}, apperrors.New(apperrors.ErrVersionConflict)
	}

	bug.Version = expectedVersion + 1
	return bug, nil
}

// CountByStatus возвращает количество багов по статусам в разрезе проектов.
func (r *BugRepository) CountByStatus(ctx context.Context) ([]storage.BugStats, *apperrors.AppError) {
	const query = `
		SELECT project_id,
		       COUNT(*) FILTER (WHERE status = 'OPEN'),
		       COUNT(*) FILTER (WHERE status = 'IN_PROGRESS'),
		       COUNT(*) FILTER (WHERE status = 'CLOSED')
		FROM bugs
		GROUP BY project_id
		ORDER BY project_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Printf("query stats failed: %v", err)
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	defer rows.Close()

	var stats []storage.BugStats
	for rows.Next() {
		var st storage.BugStats
		if err := rows.Scan(&st.ProjectID, &st.Open, &st.InProgress, &st.Closed); err != nil {
			log.Printf("stats scan failed: %v", err)
			return nil, apperrors.New(apperrors.ErrInternalIssue)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		log.Printf("%v", err)
		return nil, apperrors.New(apperrors.ErrInternalIssue)
	}
	return stats, nil
}
