package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	DonationsScored *prometheus.CounterVec
	GeocodeLookups  *prometheus.CounterVec
	GeocodeSeconds  *prometheus.HistogramVec
	RankSeconds     prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		DonationsScored: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "matching_donations_scored_total",
			Help: "Total number of donations processed by the ranker, by outcome.",
		}, []string{"outcome"}),
		GeocodeLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "matching_geocode_lookups_total",
			Help: "Total number of geocoding lookups issued during coordinate resolution.",
		}, []string{"status"}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matching_geocode_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		RankSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "matching_rank_duration_seconds",
			Help:    "Duration of full ranking passes over the donation pool.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
