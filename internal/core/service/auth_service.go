package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/api/metrics"
	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

// genericLoginMessage is shown when the backend failure carries no detail.
const genericLoginMessage = "login failed, check your credentials"

// LoginError carries the human-readable message derived from the backend's
// failure payload. Unwrap exposes the underlying transport/HTTP error.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }
func (e *LoginError) Unwrap() error { return e.Err }

// DetailFunc extracts a display message from a backend error; it returns ""
// when the error carries no structured detail.
type DetailFunc func(error) string

// AuthService implements the login/logout flow: it delegates credential
// verification to the tracking backend, owns the session write, and resolves
// the post-login destination from the role route table.
type AuthService struct {
	backend  ports.Backend
	sessions ports.SessionStore
	routes   domain.RouteTable
	detail   DetailFunc
	audit    ports.AuditRecorder
	log      zerolog.Logger

	inflight sync.Map // username -> struct{}{}
}

func NewAuthService(
	backend ports.Backend,
	sessions ports.SessionStore,
	routes domain.RouteTable,
	detail DetailFunc,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	if detail == nil {
		detail = func(error) string { return "" }
	}
	return &AuthService{
		backend:  backend,
		sessions: sessions,
		routes:   routes,
		detail:   detail,
		audit:    audit,
		log:      log,
	}
}

// Login exchanges credentials for a session. Exactly one session write
// happens on success and none on failure; a concurrent duplicate login for
// the same username fails fast instead of racing the write.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginOutcome, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if _, pending := s.inflight.LoadOrStore(username, struct{}{}); pending {
		metrics.LoginsTotal.WithLabelValues("in_flight").Inc()
		return nil, domain.ErrLoginInFlight
	}
	defer s.inflight.Delete(username)

	result, err := s.backend.Login(ctx, username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		msg := s.detail(err)
		if msg == "" {
			msg = genericLoginMessage
		}
		return nil, &LoginError{Message: msg, Err: err}
	}

	user := result.User
	if _, known := domain.ParseRole(string(user.Role)); !known {
		s.log.Warn().Str("username", username).Str("role", string(user.Role)).Msg("backend issued unmapped role")
	}

	sid := uuid.NewString()
	sess := domain.Session{User: &user, Token: result.AccessToken}
	if err := s.sessions.Set(ctx, sid, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(domain.AuditEntry{
			ID:        uuid.NewString(),
			Actor:     user.Username,
			Role:      user.Role,
			Action:    domain.AuditActionLogin,
			Timestamp: time.Now().UTC(),
		})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login")

	return &ports.LoginOutcome{
		SessionID:   sid,
		User:        user,
		Destination: s.routes.For(user.Role),
	}, nil
}

// Logout clears the session unconditionally. Idempotent: clearing an
// already-empty session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sid string, actor domain.User) error {
	if err := s.sessions.Clear(ctx, sid); err != nil {
		return err
	}

	if s.audit != nil && actor.Username != "" {
		s.audit.Record(domain.AuditEntry{
			ID:        uuid.NewString(),
			Actor:     actor.Username,
			Role:      actor.Role,
			Action:    domain.AuditActionLogout,
			Timestamp: time.Now().UTC(),
		})
	}
	return nil
}
