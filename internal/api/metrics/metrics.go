// Package metrics defines and registers all custom Prometheus metrics for
// the attendance API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attendance"

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid" (bad credentials), or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// CheckInsTotal counts check-in attempts.
// Label:
//   - result: "ok", "missing_location", "invalid_coordinates",
//     "already_checked_in", or "error"
var CheckInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_total",
		Help:      "Total number of check-in attempts, labelled by result.",
	},
	[]string{"result"},
)

// CheckOutsTotal counts check-out attempts.
// Label:
//   - result: "ok", "no_open_checkin", or "error"
var CheckOutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of check-out attempts, labelled by result.",
	},
	[]string{"result"},
)
