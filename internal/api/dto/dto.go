// Package dto содержит структуры DTO для HTTP API.
package dto

import "time"

// ErrorResponse - формат ошибки.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail - код и сообщение об ошибке.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterRequest - POST /users/register body.
type RegisterRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Secret   string `json:"secret"`
}

// RegisterResponse - POST /users/register response. Token выдаётся
// один раз при регистрации.
type RegisterResponse struct {
	User  UserDetail `json:"user"`
	Token string     `json:"token"`
}

// LoginRequest - POST /auth/login body.
type LoginRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// LoginResponse - POST /auth/login response.
type LoginResponse struct {
	User  UserDetail `json:"user"`
	Token string     `json:"token"`
}

// UserDetail содержит данные пользователя для API.
type UserDetail struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CreateProjectRequest - POST /projects/create body.
type CreateProjectRequest struct {
	ProjectName string `json:"project_name"`
}

// ProjectResponse - формат проекта.
type ProjectResponse struct {
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	ProjectID   string     `json:"project_id"`
	ProjectName string     `json:"project_name"`
}

// CreateBugRequest - POST /bugs/create body.
type CreateBugRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   string `json:"project_id"`
}

// UpdateStatusRequest - POST /bugs/updateStatus body. ExpectedVersion
// опционален: если задан и устарел, вернётся CONCURRENT_MODIFICATION.
type UpdateStatusRequest struct {
	ExpectedVersion *int64 `json:"expected_version,omitempty"`
	BugID           string `json:"bug_id"`
	Status          string `json:"status"`
}

// AssignRequest - POST /bugs/assign body. Пустой AssigneeID снимает
// назначение.
type AssignRequest struct {
	BugID      string `json:"bug_id"`
	AssigneeID string `json:"assignee_id"`
}

// BugResponse - формат бага.
type BugResponse struct {
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	BugID         string     `json:"bug_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	ProjectID     string     `json:"project_id"`
	AssignedTo    string     `json:"assigned_to,omitempty"`
	CreatedBy     string     `json:"created_by"`
	AttachmentKey string     `json:"attachment_key,omitempty"`
	Version       int64      `json:"version"`
}

// BugListResponse - GET /bugs/list response.
type BugListResponse struct {
	Bugs []BugResponse `json:"bugs"`
}

// ProjectStats - количество багов по статусам в проекте.
type ProjectStats struct {
	ProjectID  string `json:"project_id"`
	Open       int64  `json:"open"`
	InProgress int64  `json:"in_progress"`
	Closed     int64  `json:"closed"`
}

// StatsResponse - GET /stats/bugs response.
type StatsResponse struct {
	Projects []ProjectStats `json:"projects"`
}
