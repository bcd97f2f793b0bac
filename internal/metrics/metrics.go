package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym24_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gym24_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym24_bookings_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"outcome"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gym24_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	AdminSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym24_admin_sessions_total",
			Help: "Admin session lifecycle events",
		},
		[]string{"event"},
	)

	AdminSessionLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym24_admin_session_lookups_total",
			Help: "Admin session validations by lookup path and result",
		},
		[]string{"path", "result"},
	)

	ContactTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym24_contact_transitions_total",
			Help: "Contact request state transitions",
		},
		[]string{"transition", "result"},
	)

	NotificationsCleanedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gym24_notifications_cleaned_total",
			Help: "Notifications removed by retention cleanup",
		},
	)

	BestEffortFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym24_best_effort_failures_total",
			Help: "Failed side effects that were logged and discarded",
		},
		[]string{"op"},
	)

	RealtimeViewers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gym24_realtime_viewers",
			Help: "Connected realtime viewers by view",
		},
		[]string{"view"},
	)

	RealtimeRefetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym24_realtime_refetches_total",
			Help: "Collections refetched in response to change events",
		},
		[]string{"collection"},
	)

	ChangeEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym24_change_events_total",
			Help: "Row change events received from the database feed",
		},
		[]string{"entity", "op"},
	)

	ChangeEventsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gym24_change_events_dropped_total",
			Help: "Change events dropped because a subscriber buffer was full",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym24_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gym24_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordAdminSession(event string) {
	AdminSessionsTotal.WithLabelValues(event).Inc()
}

func RecordSessionLookup(path, result string) {
	AdminSessionLookupsTotal.WithLabelValues(path, result).Inc()
}

func RecordContactTransition(transition, result string) {
	ContactTransitionsTotal.WithLabelValues(transition, result).Inc()
}

func RecordNotificationsCleaned(n int64) {
	NotificationsCleanedTotal.Add(float64(n))
}

func RecordBestEffortFailure(op string) {
	BestEffortFailuresTotal.WithLabelValues(op).Inc()
}

func RecordRefetch(collection string) {
	RealtimeRefetchesTotal.WithLabelValues(collection).Inc()
}

func RecordChangeEvent(entity, op string) {
	ChangeEventsTotal.WithLabelValues(entity, op).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
