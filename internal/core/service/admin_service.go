package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

// AdminService serves the admin panels: user management, shipment
// assignment, log viewing, report export, and settings.
type AdminService struct {
	backend ports.Backend
	repo    ports.AuditRepository
	audit   ports.AuditRecorder
	log     zerolog.Logger
}

func NewAdminService(backend ports.Backend, repo ports.AuditRepository, audit ports.AuditRecorder, log zerolog.Logger) *AdminService {
	return &AdminService{backend: backend, repo: repo, audit: audit, log: log}
}

func (s *AdminService) Users(ctx context.Context, token string) ([]domain.User, error) {
	return s.backend.ListUsers(ctx, token)
}

func (s *AdminService) CreateUser(ctx context.Context, token string, actor domain.User, in ports.CreateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if _, known := domain.ParseRole(string(in.Role)); !known {
		return nil, fmt.Errorf("unknown role %q: %w", in.Role, domain.ErrInvalidCredentials)
	}

	created, err := s.backend.CreateUser(ctx, token, in)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", in.Username).Str("role", string(in.Role)).Msg("user created")
	return created, nil
}

func (s *AdminService) SetUserActive(ctx context.Context, token string, userID int64, active bool) error {
	return s.backend.SetUserActive(ctx, token, userID, active)
}

func (s *AdminService) Shipments(ctx context.Context, token string) ([]domain.Shipment, error) {
	return s.backend.ListShipments(ctx, token)
}

func (s *AdminService) AssignShipment(ctx context.Context, token string, actor domain.User, in ports.AssignShipmentInput) error {
	if err := s.backend.AssignShipment(ctx, token, in); err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Record(domain.AuditEntry{
			ID:        uuid.NewString(),
			Actor:     actor.Username,
			Role:      actor.Role,
			Action:    domain.AuditActionAssign,
			Subject:   "shipment:" + strconv.FormatInt(in.ShipmentID, 10),
			Timestamp: time.Now().UTC(),
		})
	}
	return nil
}

func (s *AdminService) Logs(ctx context.Context, token string) ([]domain.BackendAuditRecord, error) {
	return s.backend.ListAuditTrails(ctx, token)
}

// ReportCSV renders the shipments report for [from, to] as CSV with a
// header row, ready for download.
func (s *AdminService) ReportCSV(ctx context.Context, token string, from, to time.Time) ([]byte, error) {
	rows, err := s.backend.ShipmentsReport(ctx, token, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"shipment_id", "status", "sector", "quantity_kg", "dispatched_at", "delivered_at"})
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.ShipmentID, 10),
			r.Status,
			r.Sector,
			strconv.FormatFloat(r.QuantityKg, 'f', 2, 64),
			formatReportTime(r.DispatchedAt),
			formatReportTime(r.DeliveredAt),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func formatReportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func (s *AdminService) Settings(ctx context.Context, token string) (ports.Settings, error) {
	return s.backend.GetSettings(ctx, token)
}

func (s *AdminService) SaveSettings(ctx context.Context, token string, actor domain.User, settings ports.Settings) error {
	if err := s.backend.SaveSettings(ctx, token, settings); err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Record(domain.AuditEntry{
			ID:        uuid.NewString(),
			Actor:     actor.Username,
			Role:      actor.Role,
			Action:    domain.AuditActionSettings,
			Timestamp: time.Now().UTC(),
		})
	}
	return nil
}

// Activity lists dashboard-originated audit entries, newest first.
func (s *AdminService) Activity(ctx context.Context, limit int64) ([]domain.AuditEntry, error) {
	return s.repo.List(ctx, limit)
}
