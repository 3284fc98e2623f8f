package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aidtrack/dashboard-api/internal/api/metrics"
	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

// Guard gates a role view. The decision is pure and re-evaluated on every
// navigation: ALLOW iff the session is non-empty and the user's role equals
// the required role; every other case redirects to the login view.
func Guard(required domain.Role, routes domain.RouteTable) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := c.Get(CtxSession).(domain.Session)
			if sess.IsEmpty() || sess.User.Role != required {
				metrics.GuardDenialsTotal.WithLabelValues(string(required)).Inc()
				return c.Redirect(http.StatusFound, routes.Login())
			}
			return next(c)
		}
	}
}
