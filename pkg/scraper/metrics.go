package scraper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atp_scraper_fetches_total",
		Help: "Page fetches by result (ok, status, error)",
	}, []string{"result"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "atp_scraper_fetch_duration_seconds",
		Help:    "Duration of page fetches",
		Buckets: prometheus.DefBuckets,
	})
)
