package webhook

import "github.com/prometheus/client_golang/prometheus"

var (
	dispatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_webhook_dispatches_total",
			Help: "Completed webhook dispatches by final result.",
		},
		[]string{"result"},
	)
	attemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_webhook_attempts_total",
			Help: "Individual delivery attempts, including retries.",
		},
	)
)

func init() {
	prometheus.MustRegister(dispatchesTotal, attemptsTotal)
}
