// Package storage содержит модели данных и интерфейсы репозиториев.
package storage

import "time"

// BugStatus - статус бага в жизненном цикле.
type BugStatus string

const (
	// StatusOpen - баг открыт и ожидает работы.
	StatusOpen BugStatus = "OPEN"
	// StatusInProgress - баг в работе.
	StatusInProgress BugStatus = "IN_PROGRESS"
	// StatusClosed - баг закрыт; терминальный статус.
	StatusClosed BugStatus = "CLOSED"
)

// IsValid возвращает true, если значение является допустимым статусом.
func (s BugStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	default:
		return false
	}
}

// Role - роль пользователя. Закрытое множество значений,
// свободные строки ролей не хранятся.
type Role string

const (
	// RoleAdmin - администратор.
	RoleAdmin Role = "ADMIN"
	// RoleDeveloper - разработчик; только его можно назначать на баг.
	RoleDeveloper Role = "DEVELOPER"
	// RoleTester - тестировщик.
	RoleTester Role = "TESTER"
)

// IsValid возвращает true, если значение является допустимой ролью.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleTester:
		return true
	default:
		return false
	}
}

// User - пользователь системы.
type User struct {
	CreatedAt time.Time
	ID        string
	Username  string
	Role      Role
}

// Project - проект, к которому привязываются баги.
type Project struct {
	CreatedAt time.Time
	ID        string
	Name      string
}

// Bug - отслеживаемый дефект.
//
// AssignedTo и AttachmentKey пустые, если назначение/вложение отсутствует.
// Version растёт ровно на 1 при каждой успешной мутации и используется
// для оптимистичной блокировки.
type Bug struct {
	CreatedAt     time.Time
	ID            string
	Title         string
	Description   string
	Status        BugStatus
	ProjectID     string
	AssignedTo    string
	CreatedBy     string
	AttachmentKey string
	Version       int64
}

// BugFilter - фильтр выборки багов. Пустое поле не ограничивает выборку,
// заполненные поля комбинируются по AND.
type BugFilter struct {
	ProjectID  string
	Status     BugStatus
	AssignedTo string
}

// Matches возвращает true, если баг проходит фильтр.
func (f BugFilter) Matches(b Bug) bool {
	if f.ProjectID != "" && b.ProjectID != f.ProjectID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.AssignedTo != "" && b.AssignedTo != f.AssignedTo {
		return false
	}
	return true
}

// BugStats - количество багов по статусам в рамках проекта.
type BugStats struct {
	ProjectID  string
	Open       int64
	InProgress int64
	Closed     int64
}
