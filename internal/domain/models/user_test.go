package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleHasAtLeast(t *testing.T) {
	tests := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleUser, RoleUser, true},
		{RoleUser, RoleModerator, false},
		{RoleContributor, RoleModerator, false},
		{RoleModerator, RoleModerator, true},
		{RoleExpert, RoleModerator, true},
		{RoleAdmin, RoleModerator, true},
		{RoleAdmin, RoleExpert, true},
		{RoleModerator, RoleExpert, false},
		{Role("SUPERUSER"), RoleUser, false},
		{RoleAdmin, Role("SUPERUSER"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.HasAtLeast(tt.min), "%s >= %s", tt.role, tt.min)
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleContributor, RoleModerator, RoleExpert, RoleAdmin} {
		assert.True(t, role.Valid(), "%s", role)
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("SUPERUSER").Valid())
}
