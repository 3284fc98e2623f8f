package ports

import (
	"context"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

// LoginOutcome is returned on a successful login: the freshly minted session
// ID (for the cookie), the user record, and the role-resolved destination.
type LoginOutcome struct {
	SessionID   string
	User        domain.User
	Destination string
}

// AuthService owns the login/logout flow over the backend and session store.
type AuthService interface {
	// Login exchanges credentials for a session. Exactly one session write
	// happens on success; none on failure.
	Login(ctx context.Context, username, password string) (*LoginOutcome, error)

	// Logout clears the session unconditionally. Idempotent: logging out an
	// already-empty session succeeds.
	Logout(ctx context.Context, sid string, actor domain.User) error
}
