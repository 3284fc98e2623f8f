package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

// ViewHandler serves the role view shells. Rendering is the frontend's
// concern; these endpoints confirm the guard decision and hand the shell its
// user record.
type ViewHandler struct{}

func NewViewHandler() *ViewHandler {
	return &ViewHandler{}
}

type viewBootstrap struct {
	View string       `json:"view"`
	User *domain.User `json:"user"`
}

// Bootstrap returns the signed-in user for a guarded role view.
func (h *ViewHandler) Bootstrap(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, sess, err := ctxSession(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, viewBootstrap{View: view, User: sess.User})
	}
}

// LoginView is the unauthenticated landing view.
func (h *ViewHandler) LoginView(c echo.Context) error {
	return c.JSON(http.StatusOK, viewBootstrap{View: "login"})
}
