// Package metrics declares the Prometheus collectors of the service and the
// HTTP middleware that feeds the request duration histogram.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "classplay"

var (
	GenerationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "requests_total",
			Help:      "Total number of content generation requests by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	GenerationTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "tokens_total",
			Help:      "Total language model tokens spent by kind",
		},
		[]string{"kind"},
	)

	StorybookIllustrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storybook",
			Name:      "illustrations_total",
			Help:      "Storybook pages by illustration outcome (ok or missing)",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			// Generation endpoints wait on language models for tens of seconds.
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveGeneration records one generation call.
func ObserveGeneration(kind, outcome string, tokens int) {
	GenerationRequestsTotal.WithLabelValues(kind, outcome).Inc()
	if tokens > 0 {
		GenerationTokensTotal.WithLabelValues(kind).Add(float64(tokens))
	}
}

// ObserveIllustrations records the illustration outcome of a storybook.
func ObserveIllustrations(illustrated, missing int) {
	if illustrated > 0 {
		StorybookIllustrationsTotal.WithLabelValues("ok").Add(float64(illustrated))
	}
	if missing > 0 {
		StorybookIllustrationsTotal.WithLabelValues("missing").Add(float64(missing))
	}
}
