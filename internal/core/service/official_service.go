package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

const recentShipmentsLimit = 5

// OfficialService aggregates the program-wide KPI summary for officials.
type OfficialService struct {
	backend ports.Backend
	log     zerolog.Logger
}

func NewOfficialService(backend ports.Backend, log zerolog.Logger) *OfficialService {
	return &OfficialService{backend: backend, log: log}
}

// Summary fans out the collection fetches concurrently and joins them into
// the KPI payload. The shipments fetch is load-bearing and fails the view;
// the remaining collections degrade to empty sets on failure. Results are
// consumed in arrival order with no atomicity assumed across them.
func (s *OfficialService) Summary(ctx context.Context, token string) (*ports.OfficialSummary, error) {
	var (
		wg sync.WaitGroup

		shipments   []domain.Shipment
		shipmentErr error

		feedbacks     []domain.Feedback
		issues        []domain.Issue
		audit         []domain.BackendAuditRecord
		beneficiaries int64
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		shipments, shipmentErr = s.backend.ListShipments(ctx, token)
	}()
	go func() {
		defer wg.Done()
		var err error
		if feedbacks, err = s.backend.ListFeedbacks(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("feedbacks unavailable, degrading to empty")
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if issues, err = s.backend.ListIssues(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("issues unavailable, degrading to empty")
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if audit, err = s.backend.ListAuditTrails(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("audit trail unavailable, degrading to empty")
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if beneficiaries, err = s.backend.TotalBeneficiaries(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("beneficiary total unavailable, degrading to zero")
		}
	}()
	wg.Wait()

	if shipmentErr != nil {
		return nil, shipmentErr
	}

	summary := &ports.OfficialSummary{
		TotalShipments:     len(shipments),
		TotalBeneficiaries: beneficiaries,
		TotalFeedbacks:     len(feedbacks),
		FeedbackByType:     make(map[string]int),
		RecentShipments:    recentShipments(shipments),
		Markers:            markersOf(shipments),
		AuditTrail:         audit,
	}

	for _, sh := range shipments {
		switch sh.Status {
		case domain.StatusDelivered:
			summary.TotalDelivered++
		case domain.StatusDelayed:
			summary.TotalDelayed++
		}
	}
	for _, f := range feedbacks {
		summary.FeedbackByType[f.FeedbackType]++
	}
	for _, i := range issues {
		if i.IssueReported {
			summary.OpenIssues++
		}
	}

	return summary, nil
}

// recentShipments returns the newest shipments by timestamp, capped at the
// view's limit. The input slice is not mutated.
func recentShipments(shipments []domain.Shipment) []domain.Shipment {
	sorted := make([]domain.Shipment, len(shipments))
	copy(sorted, shipments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	if len(sorted) > recentShipmentsLimit {
		sorted = sorted[:recentShipmentsLimit]
	}
	return sorted
}
