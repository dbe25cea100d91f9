package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// matchRequestsTotal counts match lookups.
	// Labels: transport (http, mcp), result (matched, no_match, unknown_word)
	matchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stressmatch",
		Subsystem: "match",
		Name:      "requests_total",
		Help:      "Total phrase match lookups by transport and result",
	}, []string{"transport", "result"})

	// matchLatencySeconds measures signature computation plus bucket lookup.
	matchLatencySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stressmatch",
		Subsystem: "match",
		Name:      "latency_seconds",
		Help:      "Phrase match latency",
		Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
	}, []string{"transport"})
)

func observeMatch(transport string, known, matched bool, start time.Time) {
	result := "matched"
	switch {
	case !known:
		result = "unknown_word"
	case !matched:
		result = "no_match"
	}
	matchRequestsTotal.WithLabelValues(transport, result).Inc()
	matchLatencySeconds.WithLabelValues(transport).Observe(time.Since(start).Seconds())
}
