// Package metrics defines all custom Prometheus metrics for the dreamblog
// API. It is the single source of truth for metric names, labels, and help
// strings; collectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dreamblog"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthGateTotal counts per-request identity resolution outcomes.
// Label:
//   - outcome: "authenticated", "anonymous", or "exempt"
var AuthGateTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_gate_total",
		Help:      "Total number of requests through the authentication gate, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Engagement metrics ────────────────────────────────────────────────────────

// ActivitiesRecordedTotal counts engagement events accepted by the dispatcher.
// Label:
//   - verb: "follow", "unfollow", "react", or "unreact"
var ActivitiesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_recorded_total",
		Help:      "Total number of engagement events enqueued for the activity trail.",
	},
	[]string{"verb"},
)

// ActivitiesDroppedTotal counts events dropped because a worker channel was full.
var ActivitiesDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_dropped_total",
		Help:      "Total number of engagement events dropped on a full worker channel.",
	},
)

// ActivitiesErrorsTotal counts events that failed persistence.
var ActivitiesErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_errors_total",
		Help:      "Total number of engagement events that failed to persist.",
	},
)

// ActivityQueueDepth tracks the events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
