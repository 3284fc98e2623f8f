package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aidtrack/dashboard-api/internal/api/middleware"
	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/session"
)

// AuthHandler owns the login/logout endpoints and the session cookie.
type AuthHandler struct {
	service ports.AuthService
	codec   *session.Codec
	secure  bool
}

func NewAuthHandler(service ports.AuthService, codec *session.Codec, secure bool) *AuthHandler {
	return &AuthHandler{service: service, codec: codec, secure: secure}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Destination string       `json:"destination"`
	User        *domain.User `json:"user"`
}

// Login authenticates against the tracking backend and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	outcome, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	value, err := h.codec.Mint(outcome.SessionID)
	if err != nil {
		return err
	}
	h.codec.SetCookie(c.Response(), value, h.secure)

	return c.JSON(http.StatusOK, loginResponse{
		Destination: outcome.Destination,
		User:        &outcome.User,
	})
}

// Logout ends the session. Idempotent: logging out while already logged out
// succeeds with the same empty-session result.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _ := c.Get(middleware.CtxSessionID).(string)
	sess, _ := c.Get(middleware.CtxSession).(domain.Session)

	var actor domain.User
	if sess.User != nil {
		actor = *sess.User
	}

	if err := h.service.Logout(c.Request().Context(), sid, actor); err != nil {
		return err
	}

	h.codec.ClearCookie(c.Response(), h.secure)
	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}
