// Package auth передаёт личность вызывающего в ядро через context.
//
// Ядро никогда не читает личность из глобального состояния: middleware
// разрешает токен один раз на запрос и кладёт пользователя в context.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

type ctxKey int

const actorKey ctxKey = 0

// WithActor возвращает context с личностью вызывающего.
func WithActor(ctx context.Context, actor storage.User) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom извлекает личность вызывающего из context.
func ActorFrom(ctx context.Context) (storage.User, bool) {
	actor, ok := ctx.Value(actorKey).(storage.User)
	return actor, ok
}

// TokenResolver разрешает непрозрачный токен в пользователя.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (storage.User, *apperrors.AppError)
}

// ErrorFunc пишет ошибку авторизации в ответ.
type ErrorFunc func(w http.ResponseWriter, err *apperrors.AppError)

// Middleware разрешает Bearer-токен и кладёт пользователя в context
// запроса. Запросы без валидного токена получают 401.
func Middleware(resolver TokenResolver, onError ErrorFunc, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			onError(w, apperrors.New(apperrors.ErrAuthFailure))
			return
		}

		actor, appErr := resolver.ResolveToken(r.Context(), token)
		if appErr != nil {
			onError(w, appErr)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
