package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/api/metrics"
	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

const scanCheckpoint = "Distributor Checkpoint"

// CooldownChecker rate-limits repeat scans per distributor (Redis-backed in
// production).
type CooldownChecker interface {
	Active(ctx context.Context, username string) (bool, error)
	Arm(ctx context.Context, username string) error
}

// DistributorService serves the distributor view: assigned shipments with
// KPI counts and the QR-scan checkpoint flow.
type DistributorService struct {
	backend  ports.Backend
	cooldown CooldownChecker
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewDistributorService(backend ports.Backend, cooldown CooldownChecker, audit ports.AuditRecorder, log zerolog.Logger) *DistributorService {
	return &DistributorService{backend: backend, cooldown: cooldown, audit: audit, log: log}
}

// Overview returns the shipments assigned to the distributor, their KPI
// counts, and the plottable markers.
func (s *DistributorService) Overview(ctx context.Context, token string, user domain.User) (*ports.DistributorOverview, error) {
	shipments, err := s.backend.ListShipments(ctx, token)
	if err != nil {
		return nil, err
	}

	assigned := make([]domain.Shipment, 0, len(shipments))
	for _, sh := range shipments {
		if sh.DistributorID == user.ID {
			assigned = append(assigned, sh)
		}
	}

	overview := &ports.DistributorOverview{
		Assigned: assigned,
		KPIs:     countKPIs(assigned),
		Markers:  markersOf(assigned),
	}
	return overview, nil
}

// Scan posts a checkpoint record for the scanned shipment. The cool-down is
// armed only after the backend accepts the scan, so a failed scan can be
// retried immediately.
func (s *DistributorService) Scan(ctx context.Context, token string, user domain.User, in ports.ScanInput) (*ports.ScanResult, error) {
	active, err := s.cooldown.Active(ctx, user.Username)
	if err != nil {
		// A broken cool-down store must not block distribution work.
		s.log.Warn().Err(err).Str("username", user.Username).Msg("cooldown check failed, allowing scan")
	} else if active {
		metrics.ScansTotal.WithLabelValues("cooldown").Inc()
		return nil, domain.ErrScanCooldown
	}

	now := time.Now().UTC()
	payload := ports.ScanPayload{
		Personnel:  user.Username,
		Checkpoint: scanCheckpoint,
		Timestamp:  now,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
	}

	if err := s.backend.ScanShipment(ctx, token, in.ShipmentID, payload); err != nil {
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := s.cooldown.Arm(ctx, user.Username); err != nil {
		s.log.Warn().Err(err).Str("username", user.Username).Msg("failed to arm scan cooldown")
	}

	if s.audit != nil {
		s.audit.Record(domain.AuditEntry{
			ID:        uuid.NewString(),
			Actor:     user.Username,
			Role:      user.Role,
			Action:    domain.AuditActionScan,
			Subject:   "shipment:" + strconv.FormatInt(in.ShipmentID, 10),
			Timestamp: now,
		})
	}

	metrics.ScansTotal.WithLabelValues("ok").Inc()
	s.log.Info().Int64("shipment_id", in.ShipmentID).Str("username", user.Username).Msg("shipment scanned")

	return &ports.ScanResult{
		ShipmentID: in.ShipmentID,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		Timestamp:  now,
	}, nil
}

// countKPIs derives the presentation counts shown above the tables.
func countKPIs(shipments []domain.Shipment) ports.ShipmentKPIs {
	kpis := ports.ShipmentKPIs{Total: len(shipments)}
	for _, sh := range shipments {
		switch sh.Status {
		case domain.StatusDelivered:
			kpis.Delivered++
		case domain.StatusPending:
			kpis.Pending++
		case domain.StatusDelayed:
			kpis.Delayed++
		case domain.StatusMissing:
			kpis.Missing++
		}
	}
	return kpis
}

// markersOf projects geolocated shipments onto map markers.
func markersOf(shipments []domain.Shipment) []domain.MapMarker {
	markers := make([]domain.MapMarker, 0, len(shipments))
	for _, sh := range shipments {
		if !sh.HasLocation() {
			continue
		}
		markers = append(markers, domain.MapMarker{
			ShipmentID: sh.ID,
			Status:     sh.Status,
			Latitude:   sh.Latitude,
			Longitude:  sh.Longitude,
		})
	}
	return markers
}
