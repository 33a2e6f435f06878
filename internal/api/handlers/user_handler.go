package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/VechkanovVV/bugtrack/internal/api/dto"
	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/auth"
	"github.com/VechkanovVV/bugtrack/internal/service"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

// UserHandler обрабатывает HTTP-запросы, связанные с пользователями.
type UserHandler struct {
	UserService  *service.UserService
	LoginLimiter *auth.LoginLimiter
}

// NewUserHandler возвращает новый UserHandler.
func NewUserHandler(userService *service.UserService, limiter *auth.LoginLimiter) *UserHandler {
	return &UserHandler{
		UserService:  userService,
		LoginLimiter: limiter,
	}
}

// Register обрабатывает POST /users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	user, token, appErr := h.UserService.Register(r.Context(), req.Username, storage.Role(req.Role), req.Secret)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusCreated, dto.RegisterResponse{
		User:  dto.FromStorageUser(user),
		Token: token,
	})
}

// Login обрабатывает POST /auth/login. Попытки входа ограничены
// лимитером частоты.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.LoginLimiter.Allow() {
		RespondAppError(w, apperrors.New(apperrors.ErrRateLimited))
		return
	}

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	user, token, appErr := h.UserService.Login(r.Context(), req.Username, req.Secret)
	if appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	respondJSON(w, http.StatusOK, dto.LoginResponse{
		User:  dto.FromStorageUser(user),
		Token: token,
	})
}
