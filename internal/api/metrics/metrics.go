// Package metrics defines the custom Prometheus metrics for the admin panel
// API. It is the single source of truth for metric names, labels, and help
// strings; HTTP-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin_panel"

// ProductMutationsTotal counts product mutations by operation and outcome.
// Labels:
//   - op: "create", "update" or "delete"
//   - outcome: "ok", "invalid", "not_found", "forbidden" or "error"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of product mutations, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// AuthAttemptsTotal counts authentication operations.
// Labels:
//   - action: "register", "login" or "logout"
//   - outcome: "ok" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// CacheRequestsTotal counts product cache lookups.
// Label:
//   - result: "hit" or "miss"
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total number of product cache lookups, labelled by result.",
	},
	[]string{"result"},
)
