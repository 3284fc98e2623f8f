package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/session"
)

func resolveRequest(t *testing.T, codec *session.Codec, store *session.MemoryStore, cookieValue string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/citizen", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ResolveSession(codec, store, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return c
}

func TestResolveSession_ValidCookie(t *testing.T) {
	codec := session.NewCodec("secret", time.Hour)
	store := session.NewMemoryStore(0)
	sess := domain.Session{
		User:  &domain.User{ID: 1, Username: "amina", Role: domain.RoleCitizen},
		Token: "tok",
	}
	if err := store.Set(context.Background(), "sid-1", sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	value, err := codec.Mint("sid-1")
	if err != nil {
		t.Fatalf("mint cookie: %v", err)
	}

	c := resolveRequest(t, codec, store, value)

	if sid, _ := c.Get(CtxSessionID).(string); sid != "sid-1" {
		t.Fatalf("sid not resolved, got %q", sid)
	}
	resolved, _ := c.Get(CtxSession).(domain.Session)
	if resolved.IsEmpty() || resolved.User.Username != "amina" {
		t.Fatalf("session not resolved: %+v", resolved)
	}
}

func TestResolveSession_NoCookie(t *testing.T) {
	codec := session.NewCodec("secret", time.Hour)
	c := resolveRequest(t, codec, session.NewMemoryStore(0), "")

	resolved, _ := c.Get(CtxSession).(domain.Session)
	if !resolved.IsEmpty() {
		t.Fatalf("expected empty session without a cookie: %+v", resolved)
	}
}

func TestResolveSession_TamperedCookie(t *testing.T) {
	codec := session.NewCodec("secret", time.Hour)
	store := session.NewMemoryStore(0)
	if err := store.Set(context.Background(), "sid-1", domain.Session{
		User:  &domain.User{ID: 1, Username: "amina", Role: domain.RoleCitizen},
		Token: "tok",
	}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	forged, err := session.NewCodec("other-secret", time.Hour).Mint("sid-1")
	if err != nil {
		t.Fatalf("mint forged cookie: %v", err)
	}
	c := resolveRequest(t, codec, store, forged)

	resolved, _ := c.Get(CtxSession).(domain.Session)
	if !resolved.IsEmpty() {
		t.Fatalf("forged cookie must not resolve a session: %+v", resolved)
	}
	if sid, _ := c.Get(CtxSessionID).(string); sid != "" {
		t.Fatalf("forged cookie must not expose a sid, got %q", sid)
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) (domain.Session, error) {
	return domain.Session{}, fmt.Errorf("session load: %w: connection refused", ports.ErrStoreUnavailable)
}
func (failingStore) Set(context.Context, string, domain.Session) error { return nil }
func (failingStore) Clear(context.Context, string) error               { return nil }

func TestResolveSession_StoreFailurePropagatesTagged(t *testing.T) {
	codec := session.NewCodec("secret", time.Hour)
	value, err := codec.Mint("sid-1")
	if err != nil {
		t.Fatalf("mint cookie: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/citizen", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})
	c := e.NewContext(req, httptest.NewRecorder())

	handler := ResolveSession(codec, failingStore{}, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next on a store failure")
		return nil
	})

	err = handler(c)
	if !errors.Is(err, ports.ErrStoreUnavailable) {
		t.Fatalf("store failure must surface tagged, got %v", err)
	}
}

func TestResolveSession_StaleCookie(t *testing.T) {
	// A validly signed cookie whose session was cleared resolves empty.
	codec := session.NewCodec("secret", time.Hour)
	value, err := codec.Mint("sid-gone")
	if err != nil {
		t.Fatalf("mint cookie: %v", err)
	}
	c := resolveRequest(t, codec, session.NewMemoryStore(0), value)

	resolved, _ := c.Get(CtxSession).(domain.Session)
	if !resolved.IsEmpty() {
		t.Fatalf("stale cookie must resolve empty: %+v", resolved)
	}
}
