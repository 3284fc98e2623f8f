package ports

import (
	"context"
	"errors"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

// ErrStoreUnavailable tags infrastructure failures of the session store, so
// a store outage is never reported as a backend outage.
var ErrStoreUnavailable = errors.New("session store unavailable")

// SessionStore is the single source of truth for "who is logged in".
// Sessions are keyed by an opaque session ID carried in the browser cookie.
type SessionStore interface {
	// Load returns the persisted session for sid. Absent or malformed
	// persisted data yields an empty session and a nil error; only
	// infrastructure failures (store unreachable) are reported.
	Load(ctx context.Context, sid string) (domain.Session, error)

	// Set atomically replaces the session for sid, persisting user and
	// token together. No partial state is ever observable.
	Set(ctx context.Context, sid string, s domain.Session) error

	// Clear removes the session for sid. Clearing an absent session is a
	// no-op, not an error.
	Clear(ctx context.Context, sid string) error
}
