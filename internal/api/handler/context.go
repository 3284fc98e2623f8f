package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aidtrack/dashboard-api/internal/api/middleware"
	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/backend"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/session"
)

// ctxSession extracts the session snapshot resolved by the session
// middleware and fast-fails if the guard was somehow bypassed: a protected
// handler must never run without an authenticated user.
func ctxSession(c echo.Context) (sid string, sess domain.Session, err error) {
	sid, _ = c.Get(middleware.CtxSessionID).(string)
	sess, _ = c.Get(middleware.CtxSession).(domain.Session)
	if sess.IsEmpty() {
		return "", domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sid, sess, nil
}

// SessionGate handles the per-caller 401 contract: when the backend rejects
// the bearer token, the call site clears the session and sends the browser
// back to the login view. The core never auto-logs-out on 401.
type SessionGate struct {
	store  ports.SessionStore
	codec  *session.Codec
	routes domain.RouteTable
	secure bool
}

func NewSessionGate(store ports.SessionStore, codec *session.Codec, routes domain.RouteTable, secure bool) SessionGate {
	return SessionGate{store: store, codec: codec, routes: routes, secure: secure}
}

// relay forwards a backend error unless it is a 401, in which case the
// session is expired and the response is a redirect to login.
func (g SessionGate) relay(c echo.Context, sid string, err error) error {
	if !backend.IsStatus(err, http.StatusUnauthorized) {
		return err
	}

	_ = g.store.Clear(c.Request().Context(), sid)
	g.codec.ClearCookie(c.Response(), g.secure)
	return c.Redirect(http.StatusFound, g.routes.Login())
}
