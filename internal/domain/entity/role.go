package entity

import (
	"errors"
	"strings"
)

// ErrUnknownRole is returned when a value names none of the Roles.
var ErrUnknownRole = errors.New("unknown role")

// Role is the closed set of portals a user can sign in to.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

// Roles lists every role in display order.
var Roles = []Role{RolePatient, RoleDoctor, RoleAdmin}

// ParseRole accepts the canonical upper-case form as well as the lower-case
// path segment ("patient", "doctor", "admin").
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RolePatient:
		return RolePatient, nil
	case RoleDoctor:
		return RoleDoctor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether r is one of the Roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	default:
		return false
	}
}

// PathSegment is the lower-case prefix used by the role's views.
func (r Role) PathSegment() string {
	return strings.ToLower(string(r))
}

// DashboardPath is the landing view for a signed-in user of this role.
func (r Role) DashboardPath() string {
	return "/" + r.PathSegment() + "/dashboard"
}
