package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VechkanovVV/bugtrack/internal/apperrors"
	"github.com/VechkanovVV/bugtrack/internal/storage"
)

func TestAuthorize(t *testing.T) {
	admin := storage.User{ID: "admin-1", Role: storage.RoleAdmin}
	assignee := storage.User{ID: "dev-assigned", Role: storage.RoleDeveloper}
	reporter := storage.User{ID: "dev-reporter", Role: storage.RoleDeveloper}
	outsider := storage.User{ID: "dev-other", Role: storage.RoleDeveloper}
	tester := storage.User{ID: "qa-1", Role: storage.RoleTester}

	bug := &storage.Bug{
		ID:         "b1",
		AssignedTo: assignee.ID,
		CreatedBy:  reporter.ID,
	}

	tests := []struct {
		name   string
		actor  storage.User
		action Action
		bug    *storage.Bug
		allow  bool
	}{
		{name: "anyone creates", actor: tester, action: ActionCreate, allow: true},
		{name: "anyone reads", actor: tester, action: ActionRead, allow: true},

		{name: "admin updates status", actor: admin, action: ActionUpdateStatus, bug: bug, allow: true},
		{name: "assigned dev updates status", actor: assignee, action: ActionUpdateStatus, bug: bug, allow: true},
		{name: "reporter dev updates status", actor: reporter, action: ActionUpdateStatus, bug: bug, allow: true},
		{name: "other dev denied", actor: outsider, action: ActionUpdateStatus, bug: bug, allow: false},
		{name: "tester denied status update", actor: tester, action: ActionUpdateStatus, bug: bug, allow: false},

		{name: "admin assigns", actor: admin, action: ActionAssign, bug: bug, allow: true},
		{name: "assigned dev reassigns", actor: assignee, action: ActionAssign, bug: bug, allow: true},
		{name: "tester denied assign", actor: tester, action: ActionAssign, bug: bug, allow: false},

		{name: "admin attaches", actor: admin, action: ActionAttach, bug: bug, allow: true},
		{name: "reporter dev attaches", actor: reporter, action: ActionAttach, bug: bug, allow: true},
		{name: "tester denied attach", actor: tester, action: ActionAttach, bug: bug, allow: false},

		{name: "admin closes", actor: admin, action: ActionClose, bug: bug, allow: true},
		{name: "assigned dev closes", actor: assignee, action: ActionClose, bug: bug, allow: true},
		{name: "reporter dev denied close", actor: reporter, action: ActionClose, bug: bug, allow: false},
		{name: "tester denied close", actor: tester, action: ActionClose, bug: bug, allow: false},

		{name: "unknown role denied", actor: storage.User{ID: "x", Role: "OWNER"}, action: ActionRead, allow: false},
		{name: "unknown action denied", actor: admin, action: Action("purge"), bug: bug, allow: false},
		{name: "nil bug denies dev update", actor: assignee, action: ActionUpdateStatus, allow: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := Authorize(tt.actor, tt.action, tt.bug)
			if tt.allow {
				assert.Nil(t, appErr)
				return
			}
			if assert.NotNil(t, appErr) {
				assert.Equal(t, apperrors.ErrDenied, appErr.Code)
			}
		})
	}
}
