package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

const reportDateLayout = "2006-01-02"

// AdminHandler serves the admin console endpoints: user management, shipment
// assignment, logs, report exports and settings.
type AdminHandler struct {
	service ports.AdminService
	gate    SessionGate
}

func NewAdminHandler(service ports.AdminService, gate SessionGate) *AdminHandler {
	return &AdminHandler{service: service, gate: gate}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=citizen distributor official admin"`
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

type assignShipmentRequest struct {
	ShipmentID    int64 `json:"shipment_id"    validate:"required"`
	DistributorID int64 `json:"distributor_id" validate:"required"`
}

// Users lists all registered accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	users, err := h.service.Users(c.Request().Context(), sess.Token)
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser registers a new account with a role.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User"
// @Success      201   {object}  domain.User
// @Failure      422   {object}  map[string]string
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.service.CreateUser(c.Request().Context(), sess.Token, *sess.User, ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// SetUserActive enables or disables an account.
//
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Accept       json
// @Param        id    path  int               true  "User ID"
// @Param        body  body  setActiveRequest  true  "Active flag"
// @Success      204
// @Router       /api/admin/users/{id}/active [patch]
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SetUserActive(c.Request().Context(), sess.Token, userID, req.Active); err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Shipments lists every shipment for the admin table.
//
// @Summary      List all shipments
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Shipment
// @Router       /api/admin/shipments [get]
func (h *AdminHandler) Shipments(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	shipments, err := h.service.Shipments(c.Request().Context(), sess.Token)
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusOK, shipments)
}

// AssignShipment hands a shipment to a distributor.
//
// @Summary      Assign a shipment
// @Tags         admin
// @Accept       json
// @Param        body  body  assignShipmentRequest  true  "Assignment"
// @Success      204
// @Failure      422   {object}  map[string]string
// @Router       /api/admin/shipments/assign [post]
func (h *AdminHandler) AssignShipment(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req assignShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err = h.service.AssignShipment(c.Request().Context(), sess.Token, *sess.User, ports.AssignShipmentInput{
		ShipmentID:    req.ShipmentID,
		DistributorID: req.DistributorID,
	})
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Logs lists the backend audit trail.
//
// @Summary      Backend audit log
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.BackendAuditRecord
// @Router       /api/admin/logs [get]
func (h *AdminHandler) Logs(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	logs, err := h.service.Logs(c.Request().Context(), sess.Token)
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusOK, logs)
}

// Report streams the shipments report for a date range as a CSV download.
//
// @Summary      Shipments report export
// @Tags         admin
// @Produce      text/csv
// @Param        from  query  string  true  "Start date (YYYY-MM-DD)"
// @Param        to    query  string  true  "End date (YYYY-MM-DD)"
// @Success      200   {string}  string
// @Router       /api/admin/reports/shipments [get]
func (h *AdminHandler) Report(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	from, err := time.Parse(reportDateLayout, c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse(reportDateLayout, c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "to date precedes from date")
	}

	csvBody, err := h.service.ReportCSV(c.Request().Context(), sess.Token, from, to)
	if err != nil {
		return h.gate.relay(c, sid, err)
	}

	filename := fmt.Sprintf("shipments_%s_%s.csv", from.Format(reportDateLayout), to.Format(reportDateLayout))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv", csvBody)
}

// Settings returns the alert-threshold configuration.
//
// @Summary      Read settings
// @Tags         admin
// @Produce      json
// @Success      200  {object}  ports.Settings
// @Router       /api/admin/settings [get]
func (h *AdminHandler) Settings(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	settings, err := h.service.Settings(c.Request().Context(), sess.Token)
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// SaveSettings replaces the alert-threshold configuration.
//
// @Summary      Update settings
// @Tags         admin
// @Accept       json
// @Success      204
// @Router       /api/admin/settings [put]
func (h *AdminHandler) SaveSettings(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var settings ports.Settings
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SaveSettings(c.Request().Context(), sess.Token, *sess.User, settings); err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Activity lists dashboard-originated audit entries, newest first.
//
// @Summary      Dashboard activity
// @Tags         admin
// @Produce      json
// @Param        limit  query    int  false  "Maximum entries (default 100)"
// @Success      200    {array}  domain.AuditEntry
// @Router       /api/admin/activity [get]
func (h *AdminHandler) Activity(c echo.Context) error {
	if _, _, err := ctxSession(c); err != nil {
		return err
	}

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	entries, err := h.service.Activity(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
