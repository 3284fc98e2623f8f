package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aidtrack/dashboard-api/internal/api/middleware"
	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/backend"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/session"
)

func TestCtxSession_MissingSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/citizen/shipments", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, _, err := ctxSession(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSessionGate_RelayForwardsOtherErrors(t *testing.T) {
	store := session.NewMemoryStore(0)
	gate := NewSessionGate(store, session.NewCodec("secret", time.Hour), domain.DefaultRoutes(), false)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	cause := &backend.HTTPError{Status: http.StatusBadGateway}
	if err := gate.relay(c, "sid-1", cause); !errors.Is(err, cause) {
		t.Fatalf("non-401 error must pass through, got %v", err)
	}
	plain := errors.New("transport down")
	if err := gate.relay(c, "sid-1", plain); !errors.Is(err, plain) {
		t.Fatalf("transport error must pass through, got %v", err)
	}
}

func TestSessionGate_RelayOn401ClearsSession(t *testing.T) {
	store := session.NewMemoryStore(0)
	if err := store.Set(context.Background(), "sid-1", domain.Session{
		User:  &domain.User{ID: 1, Username: "amina", Role: domain.RoleCitizen},
		Token: "revoked",
	}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	gate := NewSessionGate(store, session.NewCodec("secret", time.Hour), domain.DefaultRoutes(), false)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(middleware.CtxSessionID, "sid-1")

	err := gate.relay(c, "sid-1", &backend.HTTPError{Status: http.StatusUnauthorized})
	if err != nil {
		t.Fatalf("relay returned error: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("session not cleared on backend 401")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("cookie not cleared on backend 401: %+v", cookies)
	}
}
