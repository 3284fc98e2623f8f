package ports

import (
	"context"
	"time"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

// LoginResult is the backend's successful login payload.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

// ScanPayload is the checkpoint record posted when a distributor scans a
// shipment QR code.
type ScanPayload struct {
	Personnel  string    `json:"personnel"`
	Checkpoint string    `json:"checkpoint"`
	Timestamp  time.Time `json:"timestamp"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
}

// CreateUserInput carries a new backend user record.
type CreateUserInput struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// AssignShipmentInput links a shipment to a distributor.
type AssignShipmentInput struct {
	ShipmentID    int64 `json:"shipment_id"`
	DistributorID int64 `json:"distributor_id"`
}

// ReportRow is one line of the shipments report export.
type ReportRow struct {
	ShipmentID   int64     `json:"shipment_id"`
	Status       string    `json:"status"`
	Sector       string    `json:"sector,omitempty"`
	QuantityKg   float64   `json:"quantity_kg,omitempty"`
	DispatchedAt time.Time `json:"dispatched_at,omitempty"`
	DeliveredAt  time.Time `json:"delivered_at,omitempty"`
}

// Settings is the admin alert-threshold configuration, passed through to the
// backend untouched.
type Settings map[string]any

// Backend is the authenticated client over the tracking REST backend.
// Every method except Login requires the caller's bearer token; an empty
// token sends the request unauthenticated and the backend decides rejection.
// Errors are never retried and reach the caller unchanged.
type Backend interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	ListShipments(ctx context.Context, token string) ([]domain.Shipment, error)
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	ListFeedbacks(ctx context.Context, token string) ([]domain.Feedback, error)
	ListIssues(ctx context.Context, token string) ([]domain.Issue, error)
	ListAuditTrails(ctx context.Context, token string) ([]domain.BackendAuditRecord, error)
	TotalBeneficiaries(ctx context.Context, token string) (int64, error)

	PostFeedback(ctx context.Context, token string, f domain.Feedback) (*domain.Feedback, error)
	ScanShipment(ctx context.Context, token string, shipmentID int64, p ScanPayload) error

	CreateUser(ctx context.Context, token string, in CreateUserInput) (*domain.User, error)
	SetUserActive(ctx context.Context, token string, userID int64, active bool) error
	AssignShipment(ctx context.Context, token string, in AssignShipmentInput) error
	ShipmentsReport(ctx context.Context, token string, from, to time.Time) ([]ReportRow, error)
	GetSettings(ctx context.Context, token string) (Settings, error)
	SaveSettings(ctx context.Context, token string, s Settings) error
}
