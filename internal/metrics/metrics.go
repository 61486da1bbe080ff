// Package metrics defines the Prometheus metrics of the assistant client.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on first import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "healthbite_client"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login/register submissions.
// Labels:
//   - operation: "login" or "register"
//   - result: "ok", "validation", "auth", "transport"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login and register submissions, by outcome.",
	},
	[]string{"operation", "result"},
)

// ── Gate metrics ──────────────────────────────────────────────────────────────

// ProfileGateTotal counts profile gate decisions.
// Label:
//   - result: "open", "closed" (server said no profile), "error" (fail-closed)
var ProfileGateTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_gate_total",
		Help:      "Total number of profile gate checks, by decision.",
	},
	[]string{"result"},
)

// WidgetMountsTotal counts widget mount decisions.
// Label:
//   - state: "hidden" or "collapsed"
var WidgetMountsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "widget_mounts_total",
		Help:      "Total number of widget mount evaluations, by resulting state.",
	},
	[]string{"state"},
)

// ── Exchange metrics ──────────────────────────────────────────────────────────

// ExchangeTotal counts message exchanges.
// Label:
//   - result: "ok" (reply rendered) or "fallback" (generic busy message)
var ExchangeTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exchange_total",
		Help:      "Total number of chat exchanges, by outcome.",
	},
	[]string{"result"},
)

// ExchangeDuration measures the round trip of one chatbot query.
var ExchangeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "exchange_duration_seconds",
		Help:      "Duration of chatbot queries from send to reply.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
