// Package metrics defines and registers all custom Prometheus metrics for
// the AidTrack dashboard gateway. It is the single source of truth for
// metric names, labels, and help strings; metrics register with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aidtrack"

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid", "in_flight", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GuardDenialsTotal counts route guard DENY decisions.
// Label:
//   - required_role: the role the denied route demanded
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of navigations redirected to login by the role guard.",
	},
	[]string{"required_role"},
)

// ScansTotal counts distributor QR scans.
// Label:
//   - result: "ok", "cooldown", or "error"
var ScansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_total",
		Help:      "Total number of distributor scan submissions, by result.",
	},
	[]string{"result"},
)

// BackendRequestDuration measures round-trip time of tracking backend calls.
// Labels:
//   - method: HTTP verb
//   - status: numeric response status, or "transport_error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the tracking backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "status"},
)

// AuditQueueDepth tracks the entries waiting in each audit writer shard.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each writer shard.",
	},
	[]string{"worker_id"},
)
