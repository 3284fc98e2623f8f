package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

// DistributorHandler serves the distributor dashboard data endpoints.
type DistributorHandler struct {
	service ports.DistributorService
	gate    SessionGate
}

func NewDistributorHandler(service ports.DistributorService, gate SessionGate) *DistributorHandler {
	return &DistributorHandler{service: service, gate: gate}
}

type scanRequest struct {
	ShipmentID int64   `json:"shipment_id" validate:"required"`
	Latitude   float64 `json:"latitude"    validate:"required,latitude"`
	Longitude  float64 `json:"longitude"   validate:"required,longitude"`
}

// Overview returns the assigned shipments, KPI counts and map markers.
//
// @Summary      Distributor overview
// @Tags         distributor
// @Produce      json
// @Success      200  {object}  ports.DistributorOverview
// @Router       /api/distributor/overview [get]
func (h *DistributorHandler) Overview(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	overview, err := h.service.Overview(c.Request().Context(), sess.Token, *sess.User)
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusOK, overview)
}

// Scan records a checkpoint scan for a shipment.
//
// @Summary      Record a checkpoint scan
// @Tags         distributor
// @Accept       json
// @Produce      json
// @Param        body  body      scanRequest  true  "Scan"
// @Success      200   {object}  ports.ScanResult
// @Failure      422   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/distributor/scan [post]
func (h *DistributorHandler) Scan(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Scan(c.Request().Context(), sess.Token, *sess.User, ports.ScanInput{
		ShipmentID: req.ShipmentID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusOK, result)
}
