package payment

import "github.com/prometheus/client_golang/prometheus"

var (
	simulations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_simulations_total",
			Help: "Simulated payments by outcome.",
		},
		[]string{"outcome"},
	)
	notificationsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_notifications_total",
			Help: "Webhook notifications by verification result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(simulations, notificationsReceived)
}
