package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

// CitizenService serves the citizen view: shipment listing and feedback
// submission.
type CitizenService struct {
	backend ports.Backend
	log     zerolog.Logger
}

func NewCitizenService(backend ports.Backend, log zerolog.Logger) *CitizenService {
	return &CitizenService{backend: backend, log: log}
}

// Shipments lists tracking records, optionally filtered by status. Records
// are consumed verbatim from the backend; filtering is presentation-only.
func (s *CitizenService) Shipments(ctx context.Context, token string, status domain.ShipmentStatus) ([]domain.Shipment, error) {
	shipments, err := s.backend.ListShipments(ctx, token)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return shipments, nil
	}

	filtered := make([]domain.Shipment, 0, len(shipments))
	for _, sh := range shipments {
		if sh.Status == status {
			filtered = append(filtered, sh)
		}
	}
	return filtered, nil
}

// SubmitFeedback posts a citizen report against a shipment.
func (s *CitizenService) SubmitFeedback(ctx context.Context, token string, in ports.FeedbackInput) (*domain.Feedback, error) {
	created, err := s.backend.PostFeedback(ctx, token, domain.Feedback{
		ShipmentID:   in.ShipmentID,
		FeedbackType: in.FeedbackType,
		Comment:      in.Comment,
		Anonymous:    in.Anonymous,
		SubmittedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("shipment_id", in.ShipmentID).Str("type", in.FeedbackType).Msg("feedback submitted")
	return created, nil
}
