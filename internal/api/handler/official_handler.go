package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

// OfficialHandler serves the official oversight dashboard.
type OfficialHandler struct {
	service ports.OfficialService
	gate    SessionGate
}

func NewOfficialHandler(service ports.OfficialService, gate SessionGate) *OfficialHandler {
	return &OfficialHandler{service: service, gate: gate}
}

// Summary returns the aggregated oversight KPIs.
//
// @Summary      Oversight summary
// @Tags         official
// @Produce      json
// @Success      200  {object}  ports.OfficialSummary
// @Router       /api/official/summary [get]
func (h *OfficialHandler) Summary(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), sess.Token)
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusOK, summary)
}
