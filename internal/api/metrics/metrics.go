// Package metrics defines the custom Prometheus metrics for the learning
// platform API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "learning"

// PromptsCreatedTotal counts prompts that completed the full pipeline and
// were persisted.
// Label:
//   - category: the resolved category name of the submission
var PromptsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prompts_created_total",
		Help:      "Total number of prompts successfully generated and stored.",
	},
	[]string{"category"},
)

// GenerationFailuresTotal counts provider calls that failed or timed out.
var GenerationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_failures_total",
		Help:      "Total number of failed lesson generation calls.",
	},
)

// GenerationDuration measures the end-to-end Submit pipeline latency,
// dominated by the provider call.
var GenerationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Duration of prompt submission from validation to persistence.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30},
	},
)

// TokensUsedTotal accumulates the provider-reported token usage.
var TokensUsedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_used_total",
		Help:      "Total number of provider tokens consumed by lesson generation.",
	},
)
