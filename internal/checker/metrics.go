package checker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	wallets  *prometheus.CounterVec
	duration prometheus.Histogram
}

var defaultMetrics = newMetrics()

func newMetrics() *metrics {
	return &metrics{
		wallets: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "airdrop_checker",
				Subsystem: "",
				Name:      "wallets_checked_total",
				Help:      "total quantity of checked wallets",
			}, []string{"outcome"}),
		duration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "airdrop_checker",
				Subsystem: "",
				Name:      "check_duration",
				Help:      "duration of a whole wallet batch check",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			}),
	}
}
