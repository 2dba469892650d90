package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PositionUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "loctracker", Name: "position_updates_total", Help: "Number of accepted position updates."},
	)
	AlertsTriggered = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "loctracker", Name: "alerts_triggered_total", Help: "Number of arrival alerts that fired a call."},
	)
	AlertDispatchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "loctracker", Name: "alert_dispatch_failures_total", Help: "Number of arrival calls that failed to dispatch."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "loctracker", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "loctracker", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(PositionUpdates)
	reg.MustRegister(AlertsTriggered)
	reg.MustRegister(AlertDispatchFailures)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
