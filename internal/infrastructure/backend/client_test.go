package backend_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/backend"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/backend/backendtest"
)

func seedAccounts() []backendtest.Account {
	return []backendtest.Account{
		{User: domain.User{ID: 1, Username: "amina", Role: domain.RoleDistributor, Active: true}, Password: "correct-horse"},
		{User: domain.User{ID: 2, Username: "root", Role: domain.RoleAdmin, Active: true}, Password: "admin-pass"},
	}
}

func newClient(t *testing.T, srv *backendtest.Server) *backend.Client {
	t.Helper()
	return backend.New(srv.URL, 5*time.Second, zerolog.Nop())
}

func TestClient_Login(t *testing.T) {
	srv := backendtest.New(seedAccounts()...)
	defer srv.Close()
	client := newClient(t, srv)

	result, err := client.Login(context.Background(), "amina", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatalf("no access token issued")
	}
	if result.User.Username != "amina" || result.User.Role != domain.RoleDistributor {
		t.Fatalf("unexpected user: %+v", result.User)
	}
}

func TestClient_Login_BadPassword(t *testing.T) {
	srv := backendtest.New(seedAccounts()...)
	defer srv.Close()
	client := newClient(t, srv)

	_, err := client.Login(context.Background(), "amina", "wrong")
	if !backend.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if got := backend.Detail(err); got != "Incorrect username or password" {
		t.Fatalf("detail not surfaced, got %q", got)
	}
}

func TestClient_Login_ValidationDetailList(t *testing.T) {
	srv := backendtest.New(seedAccounts()...)
	defer srv.Close()
	client := newClient(t, srv)

	_, err := client.Login(context.Background(), "", "")
	if !backend.IsStatus(err, http.StatusUnprocessableEntity) {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
	if got := backend.Detail(err); got != "field required" {
		t.Fatalf("validation detail not flattened, got %q", got)
	}
}

func TestClient_BearerTokenRequired(t *testing.T) {
	srv := backendtest.New(seedAccounts()...)
	defer srv.Close()
	client := newClient(t, srv)

	// Empty token sends the request unauthenticated; the backend rejects.
	_, err := client.ListShipments(context.Background(), "")
	if !backend.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 without token, got %v", err)
	}

	srv.Shipments = []domain.Shipment{{ID: 1, Status: domain.StatusPending}}
	got, err := client.ListShipments(context.Background(), srv.TokenFor("amina"))
	if err != nil {
		t.Fatalf("ListShipments returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected shipments: %+v", got)
	}
}

func TestClient_AuditTrailLogsFallback(t *testing.T) {
	srv := backendtest.New(seedAccounts()...)
	defer srv.Close()
	srv.LogsAliasOnly = true
	srv.AuditTrail = []domain.BackendAuditRecord{{ID: 5, Action: "UPDATE"}}
	client := newClient(t, srv)

	records, err := client.ListAuditTrails(context.Background(), srv.TokenFor("root"))
	if err != nil {
		t.Fatalf("ListAuditTrails returned error: %v", err)
	}
	if len(records) != 1 || records[0].ID != 5 {
		t.Fatalf("fallback to /logs/ did not deliver records: %+v", records)
	}
}

func TestClient_ScanShipment(t *testing.T) {
	srv := backendtest.New(seedAccounts()...)
	defer srv.Close()
	srv.Shipments = []domain.Shipment{{ID: 11, Status: domain.StatusDispatched}}
	client := newClient(t, srv)
	token := srv.TokenFor("amina")

	payload := ports.ScanPayload{
		Personnel:  "amina",
		Checkpoint: "Distributor Checkpoint",
		Timestamp:  time.Now().UTC(),
		Latitude:   6.52,
		Longitude:  3.37,
	}
	if err := client.ScanShipment(context.Background(), token, 11, payload); err != nil {
		t.Fatalf("ScanShipment returned error: %v", err)
	}
	if len(srv.Scans) != 1 || srv.Scans[0].Personnel != "amina" {
		t.Fatalf("scan not recorded: %+v", srv.Scans)
	}

	err := client.ScanShipment(context.Background(), token, 999, payload)
	if !backend.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 for unknown shipment, got %v", err)
	}
}

func TestClient_AssignShipment(t *testing.T) {
	srv := backendtest.New(seedAccounts()...)
	defer srv.Close()
	srv.Shipments = []domain.Shipment{{ID: 4, Status: domain.StatusPending}}
	client := newClient(t, srv)
	token := srv.TokenFor("root")

	err := client.AssignShipment(context.Background(), token, ports.AssignShipmentInput{ShipmentID: 4, DistributorID: 1})
	if err != nil {
		t.Fatalf("AssignShipment returned error: %v", err)
	}
	if srv.Shipments[0].DistributorID != 1 {
		t.Fatalf("assignment not applied: %+v", srv.Shipments[0])
	}
}

func TestClient_Settings_RoundTrip(t *testing.T) {
	srv := backendtest.New(seedAccounts()...)
	defer srv.Close()
	client := newClient(t, srv)
	token := srv.TokenFor("root")

	in := ports.Settings{"delay_threshold_hours": float64(48)}
	if err := client.SaveSettings(context.Background(), token, in); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	out, err := client.GetSettings(context.Background(), token)
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if out["delay_threshold_hours"] != float64(48) {
		t.Fatalf("settings did not round-trip: %+v", out)
	}
}

func TestClient_TransportErrorIsNotHTTPError(t *testing.T) {
	client := backend.New("http://127.0.0.1:1", 500*time.Millisecond, zerolog.Nop())

	_, err := client.ListShipments(context.Background(), "tok")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var he *backend.HTTPError
	if errors.As(err, &he) {
		t.Fatalf("transport failure must not masquerade as an HTTP status: %v", err)
	}
	if backend.Detail(err) != "" {
		t.Fatalf("transport errors carry no detail")
	}
}
