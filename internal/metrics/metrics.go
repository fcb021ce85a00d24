package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring order flow and notification delivery
var (
	OrdersAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_accepted_total",
			Help: "Total number of orders accepted by vendors",
		},
	)

	OrdersDeliveredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_delivered_total",
			Help: "Total number of orders delivered",
		},
	)

	OrdersCancelledStaleTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_cancelled_stale_total",
			Help: "Total number of pending orders cancelled automatically for vendor inactivity",
		},
	)

	ClaimConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "claim_conflicts_total",
			Help: "Total number of driver claim attempts lost to another driver",
		},
	)

	NotificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of notifications sent, by channel",
		},
		[]string{"channel"},
	)

	NotificationsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Total number of notification sends that failed, by channel",
		},
		[]string{"channel"},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(OrdersAcceptedTotal)
	prometheus.MustRegister(OrdersDeliveredTotal)
	prometheus.MustRegister(OrdersCancelledStaleTotal)
	prometheus.MustRegister(ClaimConflictsTotal)
	prometheus.MustRegister(NotificationsSentTotal)
	prometheus.MustRegister(NotificationsFailedTotal)
}
