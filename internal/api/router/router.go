// Package router регистрирует HTTP-маршруты и возвращает http.Handler.
package router

import (
	"net/http"

	"github.com/VechkanovVV/bugtrack/internal/api/handlers"
	"github.com/VechkanovVV/bugtrack/internal/auth"
)

// NewRouter создаёт HTTP router с зарегистрированными маршрутами.
// Все маршруты, кроме регистрации, входа и health, требуют Bearer-токен.
func NewRouter(
	userHandler *handlers.UserHandler,
	projectHandler *handlers.ProjectHandler,
	bugHandler *handlers.BugHandler,
	statsHandler *handlers.StatsHandler,
	resolver auth.TokenResolver,
) http.Handler {

	authed := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(resolver, handlers.RespondAppError, h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/register", userHandler.Register)
	mux.HandleFunc("POST /auth/login", userHandler.Login)

	mux.Handle("POST /projects/create", authed(projectHandler.CreateProject))
	mux.Handle("GET /projects/get", authed(projectHandler.GetProject))
	mux.Handle("DELETE /projects/delete", authed(projectHandler.DeleteProject))

	mux.Handle("POST /bugs/create", authed(bugHandler.CreateBug))
	mux.Handle("POST /bugs/updateStatus", authed(bugHandler.UpdateStatus))
	mux.Handle("POST /bugs/assign", authed(bugHandler.Assign))
	mux.Handle("GET /bugs/get", authed(bugHandler.GetBug))
	mux.Handle("GET /bugs/list", authed(bugHandler.ListBugs))
	mux.Handle("POST /bugs/attach", authed(bugHandler.Attach))
	mux.Handle("GET /bugs/attachment", authed(bugHandler.GetAttachment))

	mux.Handle("GET /stats/bugs", authed(statsHandler.GetBugStats))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			http.Error(w, "failed to write response", http.StatusInternalServerError)
		}
	})

	return mux
}
