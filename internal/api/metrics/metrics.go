// Package metrics defines and registers all custom Prometheus metrics for the
// Late Show API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto and exposed by the /metrics route.
package metrics

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lateshow"

// ── Catalog metrics ───────────────────────────────────────────────────────────

// AppearancesCreatedTotal counts appearances inserted through the API.
var AppearancesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appearances_created_total",
		Help:      "Total number of appearances created.",
	},
)

// EpisodesDeletedTotal counts episodes removed together with their appearances.
var EpisodesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "episodes_deleted_total",
		Help:      "Total number of episodes deleted.",
	},
)

// IdempotentReplaysTotal counts POST /appearances requests answered from a stored Idempotency-Key.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of appearance creations answered by an idempotent replay.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityEventsTotal counts audit events handled by the dispatcher.
// Label:
//   - result: "stored", "failed" or "dropped" (queue full)
var ActivityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_total",
		Help:      "Total number of activity events, labelled by outcome.",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Database metrics ──────────────────────────────────────────────────────────

// DBQueryDuration measures repository query latency.
// Labels:
//   - operation: "select", "insert", "delete"
//   - table: target table
//   - status: "ok" or "error"
var DBQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "db_query_duration_seconds",
		Help:      "Duration of relational store queries.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "table", "status"},
)

// ObserveQuery records the duration of a query started at start. A missing row is not an error.
func ObserveQuery(operation, table string, start time.Time, err error) {
	status := "ok"
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		status = "error"
	}
	DBQueryDuration.WithLabelValues(operation, table, status).Observe(time.Since(start).Seconds())
}
