// Package metrics defines and registers the custom Prometheus metrics of the
// product API. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry on package load through
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "products"

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductOperationsTotal counts product mutations handled by the API.
// Labels:
//   - operation: "create", "update" or "delete"
//   - outcome: "ok", "invalid", "not_found" or "error"
var ProductOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of product mutations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthorizationDecisionsTotal counts role gate decisions.
// Labels:
//   - capability: e.g. "products:manage"
//   - decision: "allow" or "deny"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization decisions, by capability and decision.",
	},
	[]string{"capability", "decision"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsPublishedTotal counts product change events handed to the broker.
// Label:
//   - result: "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of product events delivered to the event sink, by result.",
	},
	[]string{"result"},
)

// EventsDroppedTotal counts events rejected because a worker queue was full
// or the dispatcher was closed.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of product events dropped before delivery.",
	},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
