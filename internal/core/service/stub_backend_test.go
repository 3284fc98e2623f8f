package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

// stubBackend implements ports.Backend with per-method hooks. Unset hooks
// return zero values.
type stubBackend struct {
	loginFn         func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	listShipmentsFn func(ctx context.Context, token string) ([]domain.Shipment, error)
	listUsersFn     func(ctx context.Context, token string) ([]domain.User, error)
	listFeedbacksFn func(ctx context.Context, token string) ([]domain.Feedback, error)
	listIssuesFn    func(ctx context.Context, token string) ([]domain.Issue, error)
	listAuditFn     func(ctx context.Context, token string) ([]domain.BackendAuditRecord, error)
	beneficiariesFn func(ctx context.Context, token string) (int64, error)
	postFeedbackFn  func(ctx context.Context, token string, f domain.Feedback) (*domain.Feedback, error)
	scanFn          func(ctx context.Context, token string, shipmentID int64, p ports.ScanPayload) error
	createUserFn    func(ctx context.Context, token string, in ports.CreateUserInput) (*domain.User, error)
	setActiveFn     func(ctx context.Context, token string, userID int64, active bool) error
	assignFn        func(ctx context.Context, token string, in ports.AssignShipmentInput) error
	reportFn        func(ctx context.Context, token string, from, to time.Time) ([]ports.ReportRow, error)
	getSettingsFn   func(ctx context.Context, token string) (ports.Settings, error)
	saveSettingsFn  func(ctx context.Context, token string, s ports.Settings) error
}

func (b *stubBackend) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if b.loginFn != nil {
		return b.loginFn(ctx, username, password)
	}
	return nil, errors.New("stub: login not configured")
}

func (b *stubBackend) ListShipments(ctx context.Context, token string) ([]domain.Shipment, error) {
	if b.listShipmentsFn != nil {
		return b.listShipmentsFn(ctx, token)
	}
	return nil, nil
}

func (b *stubBackend) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	if b.listUsersFn != nil {
		return b.listUsersFn(ctx, token)
	}
	return nil, nil
}

func (b *stubBackend) ListFeedbacks(ctx context.Context, token string) ([]domain.Feedback, error) {
	if b.listFeedbacksFn != nil {
		return b.listFeedbacksFn(ctx, token)
	}
	return nil, nil
}

func (b *stubBackend) ListIssues(ctx context.Context, token string) ([]domain.Issue, error) {
	if b.listIssuesFn != nil {
		return b.listIssuesFn(ctx, token)
	}
	return nil, nil
}

func (b *stubBackend) ListAuditTrails(ctx context.Context, token string) ([]domain.BackendAuditRecord, error) {
	if b.listAuditFn != nil {
		return b.listAuditFn(ctx, token)
	}
	return nil, nil
}

func (b *stubBackend) TotalBeneficiaries(ctx context.Context, token string) (int64, error) {
	if b.beneficiariesFn != nil {
		return b.beneficiariesFn(ctx, token)
	}
	return 0, nil
}

func (b *stubBackend) PostFeedback(ctx context.Context, token string, f domain.Feedback) (*domain.Feedback, error) {
	if b.postFeedbackFn != nil {
		return b.postFeedbackFn(ctx, token, f)
	}
	return &f, nil
}

func (b *stubBackend) ScanShipment(ctx context.Context, token string, shipmentID int64, p ports.ScanPayload) error {
	if b.scanFn != nil {
		return b.scanFn(ctx, token, shipmentID, p)
	}
	return nil
}

func (b *stubBackend) CreateUser(ctx context.Context, token string, in ports.CreateUserInput) (*domain.User, error) {
	if b.createUserFn != nil {
		return b.createUserFn(ctx, token, in)
	}
	u := domain.User{Username: in.Username, Role: in.Role, Active: true}
	return &u, nil
}

func (b *stubBackend) SetUserActive(ctx context.Context, token string, userID int64, active bool) error {
	if b.setActiveFn != nil {
		return b.setActiveFn(ctx, token, userID, active)
	}
	return nil
}

func (b *stubBackend) AssignShipment(ctx context.Context, token string, in ports.AssignShipmentInput) error {
	if b.assignFn != nil {
		return b.assignFn(ctx, token, in)
	}
	return nil
}

func (b *stubBackend) ShipmentsReport(ctx context.Context, token string, from, to time.Time) ([]ports.ReportRow, error) {
	if b.reportFn != nil {
		return b.reportFn(ctx, token, from, to)
	}
	return nil, nil
}

func (b *stubBackend) GetSettings(ctx context.Context, token string) (ports.Settings, error) {
	if b.getSettingsFn != nil {
		return b.getSettingsFn(ctx, token)
	}
	return ports.Settings{}, nil
}

func (b *stubBackend) SaveSettings(ctx context.Context, token string, s ports.Settings) error {
	if b.saveSettingsFn != nil {
		return b.saveSettingsFn(ctx, token, s)
	}
	return nil
}

// recordingAudit captures audit entries synchronously.
type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(entry domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingAudit) all() []domain.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditEntry, len(a.entries))
	copy(out, a.entries)
	return out
}
