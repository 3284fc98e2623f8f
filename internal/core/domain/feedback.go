package domain

import "time"

// Feedback is a citizen report attached to a shipment.
type Feedback struct {
	ID           int64     `json:"id"`
	ShipmentID   int64     `json:"shipment_id"`
	FeedbackType string    `json:"feedback_type"`
	Comment      string    `json:"comment"`
	Anonymous    bool      `json:"anonymous"`
	SubmittedAt  time.Time `json:"submitted_at,omitempty"`
}

// Issue is a problem report raised against a shipment, surfaced on the
// official dashboard as an alert.
type Issue struct {
	IssueID         int64     `json:"issue_id"`
	ShipmentID      int64     `json:"shipment_id"`
	IssueReported   bool      `json:"issue_reported"`
	IssueType       string    `json:"issue_type,omitempty"`
	Description     string    `json:"description,omitempty"`
	ReportTimestamp time.Time `json:"report_timestamp,omitempty"`
	AnonymousReport bool      `json:"anonymous_report,omitempty"`
}
