package domain

import "errors"

// Role is the access tag issued by the tracking backend on every user.
type Role string

const (
	RoleCitizen     Role = "citizen"
	RoleDistributor Role = "distributor"
	RoleOfficial    Role = "official"
	RoleAdmin       Role = "admin"
)

// KnownRoles lists every role the dashboard serves a view for.
var KnownRoles = []Role{RoleCitizen, RoleDistributor, RoleOfficial, RoleAdmin}

// ParseRole normalises a backend role string. Unrecognised values are
// returned as-is with ok=false so callers route them to the login view
// instead of guessing.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCitizen, RoleDistributor, RoleOfficial, RoleAdmin:
		return Role(s), true
	}
	return Role(s), false
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrLoginInFlight = errors.New("login already in progress for this user")
var ErrForbidden = errors.New("access forbidden")
var ErrUserNotFound = errors.New("user not found")

// User models an authenticated actor as issued by the tracking backend.
// Immutable once issued: a new login replaces it wholesale, never patches it.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Active   bool   `json:"active,omitempty"`
}
