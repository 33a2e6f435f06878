package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

// UserService - сервис для управления пользователями и проверки
// учётных данных. Секрет и токен для ядра непрозрачны.
type UserService struct {
	userRepo storage.UserRepository
}

// NewUserService возвращает новый UserService.
func NewUserService(userRepo storage.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register регистрирует пользователя и возвращает его вместе с выданным
// api-токеном. Токен показывается один раз, при регистрации.
func (u *UserService) Register(ctx context.Context, username string, role storage.Role, secret string) (storage.User, string, *apperrors.AppError) {
	if username == "" {
		return storage.User{}, "", apperrors.Newf(apperrors.ErrValidation, "username must not be empty")
	}
	if secret == "" {
		return storage.User{}, "", apperrors.Newf(apperrors.ErrValidation, "secret must not be empty")
	}
	if !role.IsValid() {
		return storage.User{}, "", apperrors.Newf(apperrors.ErrValidation, "unknown role %q", role)
	}

	user := storage.User{
		ID:        uuid.NewString(),
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	token := uuid.NewString()

	if appErr := u.userRepo.Create(ctx, user, secret, token); appErr != nil {
		return storage.User{}, "", appErr
	}
	return user, token, nil
}

// Login проверяет пару username/secret и возвращает пользователя
// с его api-токеном.
func (u *UserService) Login(ctx context.Context, username, secret string) (storage.User, string, *apperrors.AppError) {
	if username == "" || secret == "" {
		return storage.User{}, "", apperrors.New(apperrors.ErrAuthFailure)
	}
	return u.userRepo.VerifyCredentials(ctx, username, secret)
}

// GetUser возвращает пользователя по id.
func (u *UserService) GetUser(ctx context.Context, userID string) (storage.User, *apperrors.AppError) {
	return u.userRepo.Get(ctx, userID)
}
