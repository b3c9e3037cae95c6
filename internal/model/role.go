package model

import "strings"

// Role is one of the closed set of marketplace roles.
type Role string

const (
	RoleFarmer     Role = "farmer"
	RoleMandiOwner Role = "mandi_owner"
	RoleRetailer   Role = "retailer"
	RoleAdmin      Role = "admin"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleFarmer, RoleMandiOwner, RoleRetailer, RoleAdmin}

// ParseRole accepts a role name exactly as registered. Anything outside the
// set is rejected.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// HasProfile reports whether the role gets a role-specific profile row.
func (r Role) HasProfile() bool {
	return r == RoleFarmer || r == RoleMandiOwner || r == RoleRetailer
}

// RoleNames joins the role names for error messages.
func RoleNames() string {
	names := make([]string, len(Roles))
	for i, r := range Roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
