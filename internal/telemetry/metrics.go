// Package telemetry provides application-level observability for the banking portal.
//
// All metrics are registered against the default Prometheus registry and are
// served by the main router at GET /metrics.
//
// HTTP metrics use c.FullPath() (route template such as /api/v1/statements/:statementID)
// rather than the raw request URL to keep label cardinality bounded.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// Audit trail metrics.
var (
	AuditEntriesAppendedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_entries_appended_total",
			Help: "Total number of audit entries durably appended, by action.",
		},
		[]string{"action"},
	)

	AuditAppendFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_append_failures_total",
			Help: "Total number of audit appends that failed with storage unavailable.",
		},
	)

	// DegradedAuditTotal counts state changes that stand without a confirmed audit entry.
	DegradedAuditTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_degraded_total",
			Help: "Total number of state changes whose audit entry could not be confirmed, by operation.",
		},
		[]string{"operation"},
	)
)

// Linking metrics.
var (
	VerificationOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_verifications_total",
			Help: "Total number of account verification attempts, by result.",
		},
		[]string{"result"},
	)

	AccountLinkOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_link_outcomes_total",
			Help: "Total number of link and unlink attempts, by result.",
		},
		[]string{"result"},
	)
)

var NotificationDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notification_deliveries_total",
		Help: "Total number of external notification deliveries, by status.",
	},
	[]string{"status"},
)

var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector polls pool statistics every interval until ctx is done.
func StartDBStatsCollector(ctx context.Context, pool *pgxpool.Pool, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := pool.Ping(ctx); err != nil {
					slog.Warn("db stats collector: database unreachable", "error", err)
					continue
				}
				DBOpenConnections.Set(float64(pool.Stat().TotalConns()))
			}
		}
	}()
}
