package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// HTTPError is a non-2xx response from the tracking backend. The body is
// kept verbatim so callers can interpret the backend's error contract; the
// client itself never retries.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, strings.TrimSpace(string(e.Body)))
}

// IsStatus reports whether err is an HTTPError with the given status code.
func IsStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == status
}

// detailEnvelope matches the backend's failure payload:
// {"detail": "..."} or {"detail": [{"msg": "..."}, ...]}.
type detailEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

type detailItem struct {
	Msg string `json:"msg"`
}

// Detail extracts a human-readable message from a backend error. Structured
// validation errors are joined into one string; a plain string detail is
// surfaced as-is. Anything else yields "" and the caller picks a generic
// message.
func Detail(err error) string {
	var he *HTTPError
	if !errors.As(err, &he) {
		return ""
	}

	var env detailEnvelope
	if json.Unmarshal(he.Body, &env) != nil || len(env.Detail) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(env.Detail, &s) == nil {
		return s
	}

	var items []detailItem
	if json.Unmarshal(env.Detail, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, ", ")
	}

	return ""
}
