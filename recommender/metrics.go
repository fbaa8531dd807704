package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	recommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Count of recommendation requests by CF path taken.",
		},
		[]string{"cf_path"}, // offline / online / skip
	)
	recommendReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates_returned",
			Help:    "Number of candidates returned per request.",
			Buckets: prometheus.LinearBuckets(0, 5, 7),
		},
	)
)

func init() {
	prometheus.MustRegister(recommendRequestsTotal, recommendReturned)
}
