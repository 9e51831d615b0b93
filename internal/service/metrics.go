package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion kinds used as metric labels.
const (
	kindBase   = "base"
	kindBytes  = "bytes"
	kindDetect = "detect"
)

// Conversion outcomes used as metric labels.
const (
	statusValid   = "valid"
	statusInvalid = "invalid"
	statusError   = "error"
)

var (
	conversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convkit_conversions_total",
			Help: "The total number of conversions processed, by kind and outcome",
		},
		[]string{"kind", "status"},
	)
	conversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "convkit_conversion_duration_seconds",
			Help:    "The duration of conversions in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"kind"},
	)
	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convkit_cache_hits_total",
			Help: "The number of conversions answered from the response cache",
		},
		[]string{"kind"},
	)
)
