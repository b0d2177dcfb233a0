package users

import "strings"

// RoleType is the canonical application role carried in the session.
// The role drives route and menu authorization in consumers.
type RoleType string

const (
	RoleManager     RoleType = "Manager"     // Full access to surveys, tasks, and administration
	RoleManagerView RoleType = "ManagerView" // Read-only access to management dashboards
	RoleUser        RoleType = "User"        // Works assigned tasks only
)

// User is the authenticated identity held for the lifetime of a session.
// Identity and role are immutable once the session is established.
type User struct {
	ID        int64    `json:"id,omitempty"`        // Internal numeric identifier
	Email     string   `json:"email,omitempty"`     // Login identity
	Mobile    string   `json:"mobile,omitempty"`    // Contact number used for out-of-band approvals
	Role      RoleType `json:"role,omitempty"`      // Canonical role (remapped from the wire identifier)
	RoleName  string   `json:"roleName,omitempty"`  // Display name for the role
	FirstName string   `json:"firstName,omitempty"` // First name of the user
	LastName  string   `json:"lastName,omitempty"`  // Last name of the user
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RoleFromIdentifier maps the wire role identifier onto a canonical RoleType.
// Unknown identifiers pass through untouched so a newer server does not lock
// the client out; authorization treats them as least privilege.
func RoleFromIdentifier(identifier string) RoleType {
	switch identifier {
	case "Manager":
		return RoleManager
	case "ManagerView":
		return RoleManagerView
	case "User":
		return RoleUser
	}
	return RoleType(identifier)
}

// CanManage reports whether the role may create or change managed data.
func (r RoleType) CanManage() bool {
	return r == RoleManager
}

// CanViewDashboards reports whether the role may open management dashboards.
func (r RoleType) CanViewDashboards() bool {
	return r == RoleManager || r == RoleManagerView
}
