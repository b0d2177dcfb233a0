package users_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/surveydesk/go-console/users"
)

func TestRoleFromIdentifier(t *testing.T) {
	assert.Equal(t, users.RoleManager, users.RoleFromIdentifier("Manager"))
	assert.Equal(t, users.RoleManagerView, users.RoleFromIdentifier("ManagerView"))
	assert.Equal(t, users.RoleUser, users.RoleFromIdentifier("User"))

	// Unknown identifiers pass through rather than failing the session.
	assert.Equal(t, users.RoleType("Auditor"), users.RoleFromIdentifier("Auditor"))
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, users.RoleManager.CanManage())
	assert.True(t, users.RoleManager.CanViewDashboards())

	assert.False(t, users.RoleManagerView.CanManage())
	assert.True(t, users.RoleManagerView.CanViewDashboards())

	assert.False(t, users.RoleUser.CanManage())
	assert.False(t, users.RoleUser.CanViewDashboards())

	assert.False(t, users.RoleType("Auditor").CanManage())
}

func TestFullName(t *testing.T) {
	u := users.User{FirstName: "John", LastName: "Doe"}
	assert.Equal(t, "John Doe", u.FullName())

	u = users.User{FirstName: "Cher"}
	assert.Equal(t, "Cher", u.FullName())
}
