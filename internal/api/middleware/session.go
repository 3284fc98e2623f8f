package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/session"
)

// Context keys set by ResolveSession and read by the guard and handlers.
const (
	CtxSessionID = "sid"
	CtxSession   = "session"
)

// ResolveSession parses the session cookie and loads the session snapshot
// into the request context. An absent, tampered, or expired cookie resolves
// to an empty session rather than an error: the guard decides what an empty
// session means for the route.
func ResolveSession(codec *session.Codec, store ports.SessionStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := domain.Session{}
			sid := ""

			if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
				parsed, err := codec.Parse(cookie.Value)
				if err != nil {
					log.Debug().Err(err).Msg("rejecting session cookie")
				} else {
					sid = parsed
					loaded, err := store.Load(c.Request().Context(), sid)
					if err != nil {
						return err
					}
					sess = loaded
				}
			}

			c.Set(CtxSessionID, sid)
			c.Set(CtxSession, sess)
			return next(c)
		}
	}
}
