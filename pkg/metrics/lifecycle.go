package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LifecycleMetrics records order lifecycle and identifier generator activity.
type LifecycleMetrics struct {
	ordersCreated     prometheus.Counter
	transitions       *prometheus.CounterVec
	idsMinted         prometheus.Counter
	notifyFailures    prometheus.Counter
	reservationDenied prometheus.Counter
}

// NewLifecycleMetrics registers the lifecycle metrics on the provided registerer.
func NewLifecycleMetrics(reg prometheus.Registerer) *LifecycleMetrics {
	if reg == nil {
		return &LifecycleMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created successfully.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Order status transitions applied.",
	}, []string{"status"})
	idsMinted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "identifiers_minted_total",
		Help: "Identifiers minted by the snowflake generator.",
	})
	notifyFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Best-effort notification dispatches that failed.",
	})
	reservationDenied := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stock_reservations_denied_total",
		Help: "Stock reservations rejected for insufficient stock.",
	})
	reg.MustRegister(ordersCreated, transitions, idsMinted, notifyFailures, reservationDenied)
	return &LifecycleMetrics{
		ordersCreated:     ordersCreated,
		transitions:       transitions,
		idsMinted:         idsMinted,
		notifyFailures:    notifyFailures,
		reservationDenied: reservationDenied,
	}
}

// IncOrdersCreated increments the created-orders counter.
func (m *LifecycleMetrics) IncOrdersCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncTransition increments the transition counter for the target status.
func (m *LifecycleMetrics) IncTransition(status string) {
	if m == nil || m.transitions == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.transitions.WithLabelValues(status).Inc()
}

// IncIDsMinted increments the minted-identifier counter.
func (m *LifecycleMetrics) IncIDsMinted() {
	if m == nil || m.idsMinted == nil {
		return
	}
	m.idsMinted.Inc()
}

// IncNotifyFailures increments the failed-notification counter.
func (m *LifecycleMetrics) IncNotifyFailures() {
	if m == nil || m.notifyFailures == nil {
		return
	}
	m.notifyFailures.Inc()
}

// IncReservationDenied increments the denied-reservation counter.
func (m *LifecycleMetrics) IncReservationDenied() {
	if m == nil || m.reservationDenied == nil {
		return
	}
	m.reservationDenied.Inc()
}
