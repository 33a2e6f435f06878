// Package handlers содержит HTTP-обработчики
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/VechkanovVV/bugtrack/internal/api/dto"
	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/auth"
	"github.com/VechkanovVV/bugtrack/internal/service"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

// maxAttachmentSize - предел размера вложения в байтах.
const maxAttachmentSize = 10 << 20

// BugHandler обёртка над service.BugService для HTTP-эндпоинтов багов.
type BugHandler struct {
	BugService *service.BugService
}

// NewBugHandler возвращает новый BugHandler.
func NewBugHandler(bugService *service.BugService) *BugHandler {
	return &BugHandler{BugService: bugService}
}

// actorFrom достаёт личность вызывающего из context запроса.
// Middleware кладёт её всегда; отсутствие - ошибка конфигурации роутера.
func actorFrom(w http.ResponseWriter, r *http.Request) (storage.User, bool) {
	actor, ok := auth.ActorFrom(r.Context())
	if !ok {
		RespondAppError(w, apperrors.New(apperrors.ErrAuthFailure))
		return storage.User{}, false
	}
	return actor, true
}

// CreateBug обрабатывает POST /bugs/create
func (h *BugHandler) CreateBug(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateBugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	bug, appErr := h.BugService.CreateBug(r.Context(), actor, req.Title, req.Description, req.ProjectID)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"bug": dto.FromStorageBug(bug),
	})
}

// UpdateStatus обрабатывает POST /bugs/updateStatus
func (h *BugHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	if req.BugID == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "bug_id is required")
		return
	}

	bug, appErr := h.BugService.UpdateStatus(r.Context(), actor, req.BugID, storage.BugStatus(req.Status), req.ExpectedVersion)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"bug": dto.FromStorageBug(bug),
	})
}

// Assign обрабатывает POST /bugs/assign
func (h *BugHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	if req.BugID == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "bug_id is required")
		return
	}

	bug, appErr := h.BugService.Assign(r.Context(), actor, req.BugID, req.AssigneeID)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"bug": dto.FromStorageBug(bug),
	})
}

// GetBug обрабатывает GET /bugs/get?bug_id=
func (h *BugHandler) GetBug(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	bugID := r.URL.Query().Get("bug_id")
	if bugID == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "bug_id is required")
		return
	}

	bug, appErr := h.BugService.GetBug(r.Context(), actor, bugID)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"bug": dto.FromStorageBug(bug),
	})
}

// ListBugs обрабатывает GET /bugs/list?project_id=&status=&assigned_to=
func (h *BugHandler) ListBugs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := storage.BugFilter{
		ProjectID:  q.Get("project_id"),
		Status:     storage.BugStatus(q.Get("status")),
		AssignedTo: q.Get("assigned_to"),
	}

	bugs, appErr := h.BugService.ListBugs(r.Context(), actor, filter)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, dto.BugListResponse{Bugs: dto.FromStorageBugList(bugs)})
}

// Attach обрабатывает POST /bugs/attach?bug_id= с байтами вложения в теле.
func (h *BugHandler) Attach(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	bugID := r.URL.Query().Get("bug_id")
	if bugID == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "bug_id is required")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxAttachmentSize))
	if err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "failed to read body")
		return
	}

	bug, appErr := h.BugService.Attach(r.Context(), actor, bugID, data)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"bug": dto.FromStorageBug(bug),
	})
}

// GetAttachment обрабатывает GET /bugs/attachment?bug_id=
func (h *BugHandler) GetAttachment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	bugID := r.URL.Query().Get("bug_id")
	if bugID == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "bug_id is required")
		return
	}

	data, appErr := h.BugService.GetAttachment(r.Context(), actor, bugID)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := w.Write(data); err != nil {
		// Ответ уже частично записан, остаётся только залогировать.
		logWriteError(err)
	}
}
