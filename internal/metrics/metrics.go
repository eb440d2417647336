package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mawj_feed_requests_total",
			Help: "Total Open-Meteo feed requests",
		},
		[]string{"feed", "status"},
	)

	FeedLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mawj_feed_latency_seconds",
			Help:    "Open-Meteo feed latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feed"},
	)

	ReportsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mawj_reports_built_total",
			Help: "Total condition reports assembled",
		},
		[]string{"city", "outcome"},
	)

	QualityFlagsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mawj_quality_flags_total",
			Help: "Implausible feed readings flagged during report assembly",
		},
		[]string{"flag"},
	)

	TripsLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mawj_trips_logged_total",
			Help: "Total fishing trips recorded in the journal",
		},
	)
)
