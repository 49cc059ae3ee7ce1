// Package metrics defines the custom Prometheus metrics of the health
// assessment API. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "health_api"

// ── Authorization chain ──────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests terminated by the authorization chain.
// Label:
//   - reason: "missing_token", "invalid_token", "expired_token",
//     "user_not_found", "account_deactivated", "lookup_failed"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by token verification or the user-state gate.",
	},
	[]string{"reason"},
)

// AuthAnonymousTotal counts optional-auth requests that continued without a principal.
// Label:
//   - reason: same values as AuthRejectionsTotal
var AuthAnonymousTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_anonymous_total",
		Help:      "Total number of optional-auth requests that proceeded unauthenticated.",
	},
	[]string{"reason"},
)

// ConsentRejectionsTotal counts requests stopped by the consent gate.
// Label:
//   - path: "anonymous" or "authenticated"
var ConsentRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consent_rejections_total",
		Help:      "Total number of requests rejected for missing GDPR consent.",
	},
	[]string{"path"},
)

// ── Accounts ─────────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "deactivated", "throttled", "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
