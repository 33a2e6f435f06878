package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

// ProjectService - сервис для управления проектами.
type ProjectService struct {
	projectRepo storage.ProjectRepository
}

// NewProjectService возвращает новый ProjectService.
func NewProjectService(projectRepo storage.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProject создаёт новый проект. Доступно только администратору.
func (p *ProjectService) CreateProject(ctx context.Context, actor storage.User, name string) (storage.Project, *apperrors.AppError) {
	if name == "" {
		return storage.Project{}, apperrors.Newf(apperrors.ErrValidation, "project name must not be empty")
	}
	if actor.Role != storage.RoleAdmin {
		return storage.Project{}, apperrors.New(apperrors.ErrDenied)
	}

	project := storage.Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if appErr := p.projectRepo.Create(ctx, project); appErr != nil {
		return storage.Project{}, appErr
	}
	return project, nil
}

// GetProject возвращает проект по id.
func (p *ProjectService) GetProject(ctx context.Context, projectID string) (storage.Project, *apperrors.AppError) {
	return p.projectRepo.Get(ctx, projectID)
}

// DeleteProject удаляет проект. Доступно только администратору;
// проект с багами удалить нельзя.
func (p *ProjectService) DeleteProject(ctx context.Context, actor storage.User, projectID string) *apperrors.AppError {
	if actor.Role != storage.RoleAdmin {
		return apperrors.New(apperrors.ErrDenied)
	}
	return p.projectRepo.Delete(ctx, projectID)
}
