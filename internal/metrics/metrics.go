package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "university", Name: "sessions_created_total", Help: "Sessions materialised by semester expansion or single creation",
	})
	AbsencesMarked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "university", Name: "absences_marked_total", Help: "Absence records created",
	})
	AbsenceTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "university", Name: "absence_transitions_total", Help: "Accepted absence state transitions",
	}, []string{"event"})
	NotificationsEmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "university", Name: "notifications_total", Help: "Notification rows written",
	})
	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "university", Name: "notification_failures_total", Help: "Best-effort notification writes that failed",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "university", Name: "handler_errors_total", Help: "HTTP handler internal errors",
	})
)

func init() {
	prometheus.MustRegister(
		SessionsCreated, AbsencesMarked, AbsenceTransitions,
		NotificationsEmitted, NotificationFailures, HandlerErrors,
	)
}

func Handler() http.Handler { return promhttp.Handler() }
