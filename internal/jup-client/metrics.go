package jupclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	duration  *prometheus.HistogramVec
	retries   *prometheus.CounterVec
	cacheHits prometheus.Counter
}

var defaultMetrics = newMetrics()

func newMetrics() *metrics {
	return &metrics{
		duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "airdrop_checker",
				Subsystem: "",
				Name:      "jup_resp_duration",
				Help:      "jupiter stats api response duration",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			}, []string{"code"}),
		retries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "airdrop_checker",
				Subsystem: "",
				Name:      "jup_retries_total",
				Help:      "total quantity of retried jupiter api requests",
			}, []string{"reason"}),
		cacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "airdrop_checker",
				Subsystem: "",
				Name:      "jup_cache_hits_total",
				Help:      "total quantity of transaction lists served from cache",
			}),
	}
}
