package handlers

import (
	"net/http"

	"github.com/VechkanovVV/bugtrack/internal/api/dto"
	"github.com/VechkanovVV/bugtrack/internal/service"
)

// StatsHandler обрабатывает запросы статистики.
type StatsHandler struct {
	BugService *service.BugService
}

// NewStatsHandler создаёт новый StatsHandler.
func NewStatsHandler(bugService *service.BugService) *StatsHandler {
	return &StatsHandler{BugService: bugService}
}

// GetBugStats - GET /stats/bugs
func (h *StatsHandler) GetBugStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	stats, appErr := h.BugService.GetStats(r.Context(), actor)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, dto.StatsResponse{Projects: dto.FromStorageStats(stats)})
}
