package domain

import "time"

// BackendAuditRecord is an audit trail row read verbatim from the backend's
// /audit_trails/ collection.
type BackendAuditRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	TableName string    `json:"table_name"`
	RecordID  int64     `json:"record_id"`
	OldValues string    `json:"old_values,omitempty"`
	NewValues string    `json:"new_values,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Dashboard-originated audit actions.
const (
	AuditActionLogin    = "login"
	AuditActionLogout   = "logout"
	AuditActionScan     = "scan"
	AuditActionAssign   = "assign_shipment"
	AuditActionSettings = "update_settings"
)

// AuditEntry records an action taken through the dashboard itself (as
// opposed to backend-side mutations, which the backend audits).
type AuditEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Role      Role      `json:"role"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
