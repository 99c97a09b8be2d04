package rbac

import (
	"testing"

	"go-hrms/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	e, err := infra.NewEnforcerFromString(infra.RoleModel)
	assert.NoError(t, err)
	return e
}

func newTestService(t *testing.T) Service {
	svc, err := NewService(newTestEnforcer(t), zap.NewNop())
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"employee checks in", "EMPLOYEE", ResourceAttendance, ActionSelf, true},
		{"employee cancels leave", "employee", ResourceLeave, ActionCancel, true},
		{"employee cannot approve", "EMPLOYEE", ResourceLeave, ActionApprove, false},
		{"employee cannot export", "EMPLOYEE", ResourceAttendance, ActionExport, false},
		{"hr approves leave", "HR", ResourceLeave, ActionApprove, true},
		{"hr inherits employee", "HR", ResourcePayroll, ActionRead, true},
		{"admin inherits hr", "ADMIN", ResourceSalary, ActionWrite, true},
		{"admin inherits employee", "ADMIN", ResourceAttendance, ActionSelf, true},
		{"unknown role", "GUEST", ResourceLeave, ActionRead, false},
		{"empty role", "", ResourceLeave, ActionRead, false},
		{"unknown action", "ADMIN", ResourceSalary, "delete", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, allowed)
		})
	}
}

func TestRBACService_PermissionsForRole(t *testing.T) {
	svc := newTestService(t)

	t.Run("success employee", func(t *testing.T) {
		perms, err := svc.PermissionsForRole("EMPLOYEE")
		assert.NoError(t, err)
		assert.Len(t, perms, 6)
	})

	t.Run("success hr includes inherited", func(t *testing.T) {
		perms, err := svc.PermissionsForRole("HR")
		assert.NoError(t, err)
		assert.Len(t, perms, len(DefaultPolicies))
		assert.Contains(t, perms, PermissionResponse{Resource: ResourceLeave, Action: ActionCancel})
	})
}
