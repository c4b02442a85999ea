package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring notification delivery health.
var (
	NotificationsDispatchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total number of order notifications dispatched",
		},
	)

	DeliveryFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_delivery_failures_total",
			Help: "Total number of per-channel delivery failures",
		},
	)

	EventsReplayedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_events_replayed_total",
			Help: "Total number of cached events replayed on reconnect",
		},
	)

	ActiveStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "notification_active_streams",
			Help: "Number of currently open subscriber streams",
		},
	)
)

// Register installs all metrics on the default registerer.
// Call once during process startup.
func Register() {
	prometheus.MustRegister(
		NotificationsDispatchedTotal,
		DeliveryFailuresTotal,
		EventsReplayedTotal,
		ActiveStreams,
	)
}
