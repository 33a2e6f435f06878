package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/VechkanovVV/bugtrack/internal/api/dto"
	"github.com/VechkanovVV/bugtrack/internal/service"
)

// ProjectHandler обрабатывает HTTP-запросы, связанные с проектами.
type ProjectHandler struct {
	ProjectService *service.ProjectService
}

// NewProjectHandler возвращает новый ProjectHandler.
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{ProjectService: projectService}
}

// CreateProject обрабатывает POST /projects/create
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	project, appErr := h.ProjectService.CreateProject(r.Context(), actor, req.ProjectName)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"project": dto.FromStorageProject(project),
	})
}

// GetProject обрабатывает GET /projects/get?project_id=
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorFrom(w, r); !ok {
		return
	}

	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "project_id is required")
		return
	}

	project, appErr := h.ProjectService.GetProject(r.Context(), projectID)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"project": dto.FromStorageProject(project),
	})
}

// DeleteProject обрабатывает DELETE /projects/delete?project_id=
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "project_id is required")
		return
	}

	if appErr := h.ProjectService.DeleteProject(r.Context(), actor, projectID); appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
