package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GatewayCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inkspace",
		Subsystem: "gateway",
		Name:      "calls_total",
		Help:      "Backend gateway operations by name and outcome.",
	}, []string{"op", "outcome"})

	GatewayLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inkspace",
		Subsystem: "gateway",
		Name:      "call_duration_seconds",
		Help:      "Backend gateway operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	NotificationPolls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inkspace",
		Subsystem: "store",
		Name:      "notification_polls_total",
		Help:      "Notification polls by outcome.",
	}, []string{"outcome"})

	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "inkspace",
		Subsystem: "store",
		Name:      "active_sessions",
		Help:      "Open application state stores.",
	})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inkspace",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})
)

// Registry holds every collector of the service.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(GatewayCalls, GatewayLatency, NotificationPolls, ActiveSessions, HTTPRequests)
}

// Observe records one gateway call. Use as:
//
//	defer metrics.Observe("op", time.Now(), &err)
func Observe(op string, start time.Time, errp *error) {
	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = "error"
	}
	GatewayCalls.WithLabelValues(op, outcome).Inc()
	GatewayLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
