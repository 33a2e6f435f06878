// Package postgres реализует репозитории хранилища поверх pgxpool.
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

// ProjectRepository - репозиторий для управления проектами в Postgres.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository создаёт экземпляр *ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// Create создаёт новый проект.
func (r *ProjectRepository) Create(ctx context.Context, project storage.Project) *apperrors.AppError {
	const query = `INSERT INTO projects (project_id, project_name, created_at) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, project.ID, project.Name, project.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.New(apperrors.ErrProjectExists)
		}
		log.Printf("inserting project failed: %v", err)
		return apperrors.New(apperrors.ErrInternalIssue)
	}
	return nil
}

// Get возвращает проект по id.
func (r *ProjectRepository) Get(ctx context.Context, projectID string) (storage.Project, *apperrors.AppError) {
	const query = `SELECT project_id, project_name, created_at FROM projects WHERE project_id = $1`

	var p storage.Project
	err := r.pool.QueryRow(ctx, query, projectID).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, apperrors.New(apperrors.ErrNotFound)
		}
		log.Printf("query project failed: %v", err)
		return p, apperrors.New(apperrors.ErrInternalIssue)
	}
	return p, nil
}

// Exists проверяет существование проекта.
func (r *ProjectRepository) Exists(ctx context.Context, projectID string) (bool, *apperrors.AppError) {
	const query = `SELECT EXISTS(SELECT 1 FROM projects WHERE project_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, projectID).Scan(&exists); err != nil {
		log.Printf("query failed: %v", err)
		return false, apperrors.New(apperrors.ErrInternalIssue)
	}
	return exists, nil
}

// Delete удаляет проект. Удаление отклоняется, пока на проект ссылается
// хотя бы один баг (ссылочный инвариант).
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) *apperrors.AppError {
	const query = `
		DELETE FROM projects
		WHERE project_id = $1
		  AND NOT EXISTS (SELECT 1 FROM bugs WHERE project_id = $1)
	`

	ct, err := r.pool.Exec(ctx, query, projectID)
	if err != nil {
		log.Printf("delete project failed: %v", err)
		return apperrors.New(apperrors.ErrInternalIssue)
	}

	if ct.RowsAffected() == 0 {
		exists, appErr := r.Exists(ctx, projectID)
		if appErr != nil {
			return appErr
		}
		if exists {
			return apperrors.New(apperrors.ErrProjectHasBugs)
		}
		return apperrors.New(apperrors.ErrNotFound)
	}
	return nil
}
