package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

// Typed wrappers over the tracking backend's REST contract. Paths mirror the
// backend's routers; collection records are consumed verbatim.

func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out ports.LoginResult
	if err := c.post(ctx, "", "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListShipments(ctx context.Context, token string) ([]domain.Shipment, error) {
	var out []domain.Shipment
	if err := c.get(ctx, token, "/shipments/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var out []domain.User
	if err := c.get(ctx, token, "/users/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListFeedbacks(ctx context.Context, token string) ([]domain.Feedback, error) {
	var out []domain.Feedback
	if err := c.get(ctx, token, "/feedbacks/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListIssues(ctx context.Context, token string) ([]domain.Issue, error) {
	var out []domain.Issue
	if err := c.get(ctx, token, "/issues/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAuditTrails reads /audit_trails/ and falls back to the /logs/ alias
// some backend deployments expose instead.
func (c *Client) ListAuditTrails(ctx context.Context, token string) ([]domain.BackendAuditRecord, error) {
	var out []domain.BackendAuditRecord
	err := c.get(ctx, token, "/audit_trails/", nil, &out)
	if IsStatus(err, http.StatusNotFound) {
		err = c.get(ctx, token, "/logs/", nil, &out)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TotalBeneficiaries(ctx context.Context, token string) (int64, error) {
	var out struct {
		Total int64 `json:"total"`
	}
	if err := c.get(ctx, token, "/beneficiaries/total", nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

func (c *Client) PostFeedback(ctx context.Context, token string, f domain.Feedback) (*domain.Feedback, error) {
	var out domain.Feedback
	if err := c.post(ctx, token, "/feedbacks/", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ScanShipment(ctx context.Context, token string, shipmentID int64, p ports.ScanPayload) error {
	path := fmt.Sprintf("/shipments/%d/scan", shipmentID)
	return c.post(ctx, token, path, p, nil)
}

func (c *Client) CreateUser(ctx context.Context, token string, in ports.CreateUserInput) (*domain.User, error) {
	var out domain.User
	if err := c.post(ctx, token, "/users/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetUserActive(ctx context.Context, token string, userID int64, active bool) error {
	path := fmt.Sprintf("/users/%d/", userID)
	return c.patch(ctx, token, path, map[string]bool{"active": active}, nil)
}

func (c *Client) AssignShipment(ctx context.Context, token string, in ports.AssignShipmentInput) error {
	return c.post(ctx, token, "/shipments/assign", in, nil)
}

func (c *Client) ShipmentsReport(ctx context.Context, token string, from, to time.Time) ([]ports.ReportRow, error) {
	query := url.Values{}
	if !from.IsZero() {
		query.Set("from", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		query.Set("to", to.Format("2006-01-02"))
	}
	var out []ports.ReportRow
	if err := c.get(ctx, token, "/reports/shipments", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSettings(ctx context.Context, token string) (ports.Settings, error) {
	var out ports.Settings
	if err := c.get(ctx, token, "/admin/settings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveSettings(ctx context.Context, token string, s ports.Settings) error {
	return c.post(ctx, token, "/admin/settings", s, nil)
}
