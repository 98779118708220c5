// Package metrics defines and registers all custom Prometheus metrics for
// the rewards API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rewards"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "success", "validation", "conflict", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts explicit /auth/validate checks.
// Label:
//   - result: "valid", "expired", or "invalid"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of token validation checks, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests rejected by the access gate.
// Label:
//   - reason: "unauthenticated" (401) or "forbidden" (403)
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the access enforcer.",
	},
	[]string{"reason"},
)

// ── Reward metrics ────────────────────────────────────────────────────────────

// TransactionsAcceptedTotal counts transactions accepted for ingestion.
var TransactionsAcceptedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_accepted_total",
		Help:      "Total number of transactions accepted into the ingestion queue.",
	},
)

// TransactionsFailedTotal counts accepted transactions that failed during
// asynchronous ingestion.
var TransactionsFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_failed_total",
		Help:      "Total number of transactions that failed ingestion after acceptance.",
	},
)

// RewardComputeDuration measures how long a reward computation request takes,
// cache hits included.
// Label:
//   - scope: "all" or "customer"
var RewardComputeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reward_compute_duration_seconds",
		Help:      "Duration of reward computation requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"scope"},
)
