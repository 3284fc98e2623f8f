package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

// CitizenHandler serves the citizen dashboard data endpoints.
type CitizenHandler struct {
	service ports.CitizenService
	gate    SessionGate
}

func NewCitizenHandler(service ports.CitizenService, gate SessionGate) *CitizenHandler {
	return &CitizenHandler{service: service, gate: gate}
}

type feedbackRequest struct {
	ShipmentID   int64  `json:"shipment_id"   validate:"required"`
	FeedbackType string `json:"feedback_type" validate:"required"`
	Comment      string `json:"comment"       validate:"required"`
	Anonymous    bool   `json:"anonymous"`
}

// Shipments lists tracking records for the citizen table.
//
// @Summary      List shipments
// @Tags         citizen
// @Produce      json
// @Param        status  query     string  false  "Filter by shipment status"
// @Success      200     {array}   domain.Shipment
// @Router       /api/citizen/shipments [get]
func (h *CitizenHandler) Shipments(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	status := domain.ShipmentStatus(c.QueryParam("status"))
	shipments, err := h.service.Shipments(c.Request().Context(), sess.Token, status)
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusOK, shipments)
}

// SubmitFeedback posts a citizen report against a shipment.
//
// @Summary      Submit feedback
// @Tags         citizen
// @Accept       json
// @Produce      json
// @Param        body  body      feedbackRequest  true  "Feedback"
// @Success      201   {object}  domain.Feedback
// @Failure      422   {object}  map[string]string
// @Router       /api/citizen/feedback [post]
func (h *CitizenHandler) SubmitFeedback(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.service.SubmitFeedback(c.Request().Context(), sess.Token, ports.FeedbackInput{
		ShipmentID:   req.ShipmentID,
		FeedbackType: req.FeedbackType,
		Comment:      req.Comment,
		Anonymous:    req.Anonymous,
	})
	if err != nil {
		return h.gate.relay(c, sid, err)
	}
	return c.JSON(http.StatusCreated, created)
}
