package service

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

type stubAuditRepo struct {
	entries  []domain.AuditEntry
	gotLimit int64
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, limit int64) ([]domain.AuditEntry, error) {
	r.gotLimit = limit
	return r.entries, nil
}

func TestAdminService_CreateUser_RejectsUnknownRole(t *testing.T) {
	backend := &stubBackend{
		createUserFn: func(context.Context, string, ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("backend must not be called with an unknown role")
			return nil, nil
		},
	}
	svc := NewAdminService(backend, &stubAuditRepo{}, nil, zerolog.Nop())
	actor := domain.User{Username: "root", Role: domain.RoleAdmin}

	_, err := svc.CreateUser(context.Background(), "tok", actor, ports.CreateUserInput{
		Username: "new", Password: "pw123456", Role: "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAdminService_CreateUser(t *testing.T) {
	backend := &stubBackend{
		createUserFn: func(_ context.Context, _ string, in ports.CreateUserInput) (*domain.User, error) {
			return &domain.User{ID: 51, Username: in.Username, Role: in.Role, Active: true}, nil
		},
	}
	svc := NewAdminService(backend, &stubAuditRepo{}, nil, zerolog.Nop())
	actor := domain.User{Username: "root", Role: domain.RoleAdmin}

	created, err := svc.CreateUser(context.Background(), "tok", actor, ports.CreateUserInput{
		Username: "new", Password: "pw123456", Role: domain.RoleOfficial,
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if created.ID != 51 || created.Role != domain.RoleOfficial {
		t.Fatalf("unexpected user: %+v", created)
	}
}

func TestAdminService_AssignShipment_Audited(t *testing.T) {
	var assigned ports.AssignShipmentInput
	backend := &stubBackend{
		assignFn: func(_ context.Context, _ string, in ports.AssignShipmentInput) error {
			assigned = in
			return nil
		},
	}
	audit := &recordingAudit{}
	svc := NewAdminService(backend, &stubAuditRepo{}, audit, zerolog.Nop())
	actor := domain.User{Username: "root", Role: domain.RoleAdmin}

	err := svc.AssignShipment(context.Background(), "tok", actor, ports.AssignShipmentInput{
		ShipmentID: 4, DistributorID: 7,
	})
	if err != nil {
		t.Fatalf("AssignShipment returned error: %v", err)
	}
	if assigned.ShipmentID != 4 || assigned.DistributorID != 7 {
		t.Fatalf("assignment not forwarded: %+v", assigned)
	}
	entries := audit.all()
	if len(entries) != 1 || entries[0].Action != domain.AuditActionAssign || entries[0].Subject != "shipment:4" {
		t.Fatalf("unexpected audit entries: %+v", entries)
	}
}

func TestAdminService_AssignShipment_FailureNotAudited(t *testing.T) {
	backend := &stubBackend{
		assignFn: func(context.Context, string, ports.AssignShipmentInput) error {
			return errors.New("shipment not found")
		},
	}
	audit := &recordingAudit{}
	svc := NewAdminService(backend, &stubAuditRepo{}, audit, zerolog.Nop())

	err := svc.AssignShipment(context.Background(), "tok", domain.User{Username: "root"}, ports.AssignShipmentInput{ShipmentID: 4})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(audit.all()) != 0 {
		t.Fatalf("failed assignment must not be audited")
	}
}

func TestAdminService_ReportCSV(t *testing.T) {
	dispatched := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	delivered := time.Date(2026, 2, 3, 17, 30, 0, 0, time.UTC)
	backend := &stubBackend{
		reportFn: func(_ context.Context, _ string, from, to time.Time) ([]ports.ReportRow, error) {
			if from.IsZero() || to.IsZero() {
				t.Fatalf("date range not forwarded")
			}
			return []ports.ReportRow{
				{ShipmentID: 1, Status: "delivered", Sector: "north", QuantityKg: 120.5, DispatchedAt: dispatched, DeliveredAt: delivered},
				{ShipmentID: 2, Status: "pending", Sector: "east", QuantityKg: 80},
			}, nil
		},
	}
	svc := NewAdminService(backend, &stubAuditRepo{}, nil, zerolog.Nop())

	out, err := svc.ReportCSV(context.Background(), "tok",
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ReportCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "shipment_id" {
		t.Fatalf("missing header row: %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][3] != "120.50" || rows[1][4] != "2026-02-01T08:00:00Z" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	// Zero times render as empty cells, not the zero-time string.
	if rows[2][4] != "" || rows[2][5] != "" {
		t.Fatalf("zero times must render empty: %v", rows[2])
	}
}

func TestAdminService_SaveSettings_Audited(t *testing.T) {
	var saved ports.Settings
	backend := &stubBackend{
		saveSettingsFn: func(_ context.Context, _ string, s ports.Settings) error {
			saved = s
			return nil
		},
	}
	audit := &recordingAudit{}
	svc := NewAdminService(backend, &stubAuditRepo{}, audit, zerolog.Nop())
	actor := domain.User{Username: "root", Role: domain.RoleAdmin}

	err := svc.SaveSettings(context.Background(), "tok", actor, ports.Settings{"delay_threshold_hours": 48})
	if err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	if saved["delay_threshold_hours"] != 48 {
		t.Fatalf("settings not forwarded: %+v", saved)
	}
	entries := audit.all()
	if len(entries) != 1 || entries[0].Action != domain.AuditActionSettings {
		t.Fatalf("unexpected audit entries: %+v", entries)
	}
}

func TestAdminService_Activity(t *testing.T) {
	repo := &stubAuditRepo{entries: []domain.AuditEntry{
		{ID: "a", Actor: "root", Action: domain.AuditActionLogin},
	}}
	svc := NewAdminService(&stubBackend{}, repo, nil, zerolog.Nop())

	entries, err := svc.Activity(context.Background(), 25)
	if err != nil {
		t.Fatalf("Activity returned error: %v", err)
	}
	if len(entries) != 1 || repo.gotLimit != 25 {
		t.Fatalf("repository not consulted with the limit: %+v limit=%d", entries, repo.gotLimit)
	}
}
