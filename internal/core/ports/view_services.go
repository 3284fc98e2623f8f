package ports

import (
	"context"
	"time"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

// --- Citizen ---

// FeedbackInput is a citizen feedback submission.
type FeedbackInput struct {
	ShipmentID   int64
	FeedbackType string
	Comment      string
	Anonymous    bool
}

type CitizenService interface {
	// Shipments lists tracking records, optionally filtered by status.
	Shipments(ctx context.Context, token string, status domain.ShipmentStatus) ([]domain.Shipment, error)
	SubmitFeedback(ctx context.Context, token string, in FeedbackInput) (*domain.Feedback, error)
}

// --- Distributor ---

// ShipmentKPIs are the presentation-only counts shown above the tables.
type ShipmentKPIs struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Pending   int `json:"pending"`
	Delayed   int `json:"delayed"`
	Missing   int `json:"missing"`
}

// DistributorOverview is the distributor dashboard payload.
type DistributorOverview struct {
	Assigned []domain.Shipment  `json:"assigned"`
	KPIs     ShipmentKPIs       `json:"kpis"`
	Markers  []domain.MapMarker `json:"markers"`
}

// ScanInput is the distributor scan request: the decoded QR payload plus the
// device geolocation.
type ScanInput struct {
	ShipmentID int64
	Latitude   float64
	Longitude  float64
}

// ScanResult echoes what was recorded.
type ScanResult struct {
	ShipmentID int64     `json:"shipment_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Timestamp  time.Time `json:"timestamp"`
}

type DistributorService interface {
	Overview(ctx context.Context, token string, user domain.User) (*DistributorOverview, error)
	// Scan posts a checkpoint record for the shipment. A repeat scan by the
	// same distributor inside the cool-down window fails with
	// domain.ErrScanCooldown.
	Scan(ctx context.Context, token string, user domain.User, in ScanInput) (*ScanResult, error)
}

// --- Official ---

// OfficialSummary is the KPI payload for the official dashboard.
type OfficialSummary struct {
	TotalShipments     int                         `json:"total_shipments"`
	TotalDelivered     int                         `json:"total_delivered"`
	TotalDelayed       int                         `json:"total_delayed"`
	TotalBeneficiaries int64                       `json:"total_beneficiaries"`
	FeedbackByType     map[string]int              `json:"feedback_by_type"`
	TotalFeedbacks     int                         `json:"total_feedbacks"`
	OpenIssues         int                         `json:"open_issues"`
	RecentShipments    []domain.Shipment           `json:"recent_shipments"`
	Markers            []domain.MapMarker          `json:"markers"`
	AuditTrail         []domain.BackendAuditRecord `json:"audit_trail"`
}

type OfficialService interface {
	Summary(ctx context.Context, token string) (*OfficialSummary, error)
}

// --- Admin ---

type AdminService interface {
	Users(ctx context.Context, token string) ([]domain.User, error)
	CreateUser(ctx context.Context, token string, actor domain.User, in CreateUserInput) (*domain.User, error)
	SetUserActive(ctx context.Context, token string, userID int64, active bool) error

	Shipments(ctx context.Context, token string) ([]domain.Shipment, error)
	AssignShipment(ctx context.Context, token string, actor domain.User, in AssignShipmentInput) error

	Logs(ctx context.Context, token string) ([]domain.BackendAuditRecord, error)
	// ReportCSV renders the shipments report for [from, to] as CSV.
	ReportCSV(ctx context.Context, token string, from, to time.Time) ([]byte, error)

	Settings(ctx context.Context, token string) (Settings, error)
	SaveSettings(ctx context.Context, token string, actor domain.User, s Settings) error

	// Activity lists dashboard-originated audit entries, newest first.
	Activity(ctx context.Context, limit int64) ([]domain.AuditEntry, error)
}
