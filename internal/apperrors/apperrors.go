// Package apperrors содержит определения кодов ошибок.
package apperrors

import (
	"fmt"
	"net/http"
)

// Code - машинный код ошибки.
type Code string

// AppError представляет ошибку.
type AppError struct {
	Code    Code
	Message string
}

// Error реализует error.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus возвращает подходящий HTTP статус для кода ошибки.
func (e *AppError) HTTPStatus() int {
	if s, ok := statusByCode[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Коды ошибок
const (
	ErrValidation             Code = "VALIDATION_ERROR"
	ErrInvalidReference       Code = "INVALID_REFERENCE"
	ErrNotFound               Code = "NOT_FOUND"
	ErrInvalidTransition      Code = "INVALID_TRANSITION"
	ErrInvalidAssignee        Code = "INVALID_ASSIGNEE"
	ErrBugClosed              Code = "BUG_CLOSED"
	ErrDenied                 Code = "DENIED"
	ErrAuthFailure            Code = "AUTH_FAILURE"
	ErrRateLimited            Code = "RATE_LIMITED"
	ErrProjectExists          Code = "PROJECT_EXISTS"
	ErrProjectHasBugs         Code = "PROJECT_HAS_BUGS"
	ErrUsernameTaken          Code = "USERNAME_TAKEN"
	ErrVersionConflict        Code = "VERSION_CONFLICT"
	ErrConcurrentModification Code = "CONCURRENT_MODIFICATION"
	ErrInternalIssue          Code = "INTERNAL_ISSUE"
)

// messages - человекочитаемые строки по коду.
var messages = map[Code]string{
	ErrValidation:             "request validation failed",
	ErrInvalidReference:       "referenced entity does not exist",
	ErrNotFound:               "resource not found",
	ErrInvalidTransition:      "status transition is not allowed",
	ErrInvalidAssignee:        "assignee must be a developer",
	ErrBugClosed:              "bug is closed",
	ErrDenied:                 "action is not permitted for this role",
	ErrAuthFailure:            "authentication failed",
	ErrRateLimited:            "too many requests, slow down",
	ErrProjectExists:          "project name already exists",
	ErrProjectHasBugs:         "project is referenced by bugs",
	ErrUsernameTaken:          "username already exists",
	ErrVersionConflict:        "bug version mismatch",
	ErrConcurrentModification: "concurrent modification, retry the operation",
	ErrInternalIssue:          "internal server issue, please try again",
}

// statusByCode - HTTP-статусы по коду.
var statusByCode = map[Code]int{
	ErrValidation:             http.StatusBadRequest,
	ErrInvalidReference:       http.StatusNotFound,
	ErrNotFound:               http.StatusNotFound,
	ErrInvalidTransition:      http.StatusConflict,
	ErrInvalidAssignee:        http.StatusConflict,
	ErrBugClosed:              http.StatusConflict,
	ErrDenied:                 http.StatusForbidden,
	ErrAuthFailure:            http.StatusUnauthorized,
	ErrRateLimited:            http.StatusTooManyRequests,
	ErrProjectExists:          http.StatusBadRequest,
	ErrProjectHasBugs:         http.StatusConflict,
	ErrUsernameTaken:          http.StatusBadRequest,
	ErrVersionConflict:        http.StatusConflict,
	ErrConcurrentModification: http.StatusConflict,
	ErrInternalIssue:          http.StatusInternalServerError,
}

// New создаёт AppError по коду.
func New(code Code) *AppError {
	return &AppError{Code: code, Message: messageFor(code)}
}

// Newf создаёт AppError по коду с собственным текстом сообщения.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// FromCode возвращает сообщение по коду (без создания AppError).
func FromCode(code Code) string { return messageFor(code) }

func messageFor(code Code) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return messages[ErrInternalIssue]
}
