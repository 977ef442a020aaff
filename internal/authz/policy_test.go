package authz_test

import (
	"testing"

	"go-leavedesk/internal/authz"

	"github.com/stretchr/testify/assert"
)

func TestPolicy(t *testing.T) {
	svc, err := authz.NewService()
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"staff can read leaves", authz.RoleStaff, "leave", "read", true},
		{"staff can create leaves", authz.RoleStaff, "leave", "create", true},
		{"staff cannot decide leaves", authz.RoleStaff, "leave", "decide", false},
		{"staff cannot manage users", authz.RoleStaff, "user", "manage", false},
		{"staff cannot write balances", authz.RoleStaff, "balance", "write", false},
		{"staff can read holidays", authz.RoleStaff, "holiday", "read", true},
		{"manager can decide leaves", authz.RoleManager, "leave", "decide", true},
		{"manager inherits staff read", authz.RoleManager, "leave", "read", true},
		{"manager can manage users", authz.RoleManager, "user", "manage", true},
		{"manager can write balances", authz.RoleManager, "balance", "write", true},
		{"manager cannot write holidays", authz.RoleManager, "holiday", "write", false},
		{"admin can write holidays", authz.RoleAdmin, "holiday", "write", true},
		{"admin inherits manager decide", authz.RoleAdmin, "leave", "decide", true},
		{"admin inherits staff read", authz.RoleAdmin, "notification", "read", true},
		{"unknown role denied", "intern", "leave", "read", false},
		{"unknown resource denied", authz.RoleAdmin, "payroll", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Authorize(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
