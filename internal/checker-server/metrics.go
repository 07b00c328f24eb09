package checkerserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var defaultMetrics = newMetrics()

func newMetrics() *metrics {
	return &metrics{
		requests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "airdrop_checker",
				Subsystem: "",
				Name:      "http_req_total",
				Help:      "total quantity of http requests",
			}, []string{"code", "method", "path"}),
		duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "airdrop_checker",
				Subsystem: "",
				Name:      "http_req_duration",
				Help:      "http requests duration",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			}, []string{"code", "method", "path"}),
	}
}
