package cf

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	retrainTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cf_retrain_triggered_total",
			Help: "Count of background retrain jobs launched.",
		},
	)
	retrainCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cf_retrain_completed_total",
			Help: "Count of finished retrain jobs by outcome.",
		},
		[]string{"outcome"}, // success / failure
	)
)

func init() {
	prometheus.MustRegister(retrainTriggeredTotal, retrainCompletedTotal)
}
