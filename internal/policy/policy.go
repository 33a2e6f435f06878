// Package policy содержит правила авторизации действий над багами.
//
// Решения принимаются только по снимку бага, переданному вызывающей
// стороной: никакого ввода-вывода и состояния.
package policy

import (
	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

// Action - действие над багом, подлежащее авторизации.
type Action string

const (
	// ActionCreate - создание бага.
	ActionCreate Action = "create"
	// ActionUpdateStatus - смена статуса (кроме закрытия).
	ActionUpdateStatus Action = "update_status"
	// ActionAssign - назначение или снятие исполнителя.
	ActionAssign Action = "assign"
	// ActionAttach - привязка вложения.
	ActionAttach Action = "attach"
	// ActionClose - закрытие бага.
	ActionClose Action = "close"
	// ActionRead - чтение бага или списка багов.
	ActionRead Action = "read"
)

// Authorize решает, может ли actor выполнить action над bug.
// Для ActionCreate и ActionRead bug может быть nil.
// Возвращаемая ошибка не раскрывает данных других пользователей:
// только факт несоответствия роли.
func Authorize(actor storage.User, action Action, bug *storage.Bug) *apperrors.AppError {
	if !actor.Role.IsValid() {
		return apperrors.New(apperrors.ErrDenied)
	}

	switch action {
	case ActionCreate, ActionRead:
		return nil

	case ActionUpdateStatus, ActionAssign, ActionAttach:
		if actor.Role == storage.RoleAdmin {
			return nil
		}
		if actor.Role == storage.RoleDeveloper && bug != nil &&
			(actor.ID == bug.AssignedTo || actor.ID == bug.CreatedBy) {
			return nil
		}
		return apperrors.New(apperrors.ErrDenied)

	case ActionClose:
		if actor.Role == storage.RoleAdmin {
			return nil
		}
		if actor.Role == storage.RoleDeveloper && bug != nil && actor.ID == bug.AssignedTo {
			return nil
		}
		return apperrors.New(apperrors.ErrDenied)

	default:
		return apperrors.New(apperrors.ErrDenied)
	}
}
