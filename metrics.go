package suggest

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional, nil-safe set of Prometheus instruments for an
// Engine: the core traversal stays allocation-free and silent
// (per spec.md's concurrency model) whether or not a Metrics is attached,
// so every call site here guards on a nil receiver instead of assuming
// Metrics is always present.
type Metrics struct {
	traversalsRun       prometheus.Counter
	queueEvictions      prometheus.Counter
	suggestionsReturned prometheus.Histogram
}

// NewMetrics builds a Metrics and, if reg is non-nil, registers its
// instruments on it.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		traversalsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "suggest_traversals_total",
			Help: "Trie traversals run by the suggestion engine, across single-word, digraph, and multi-word passes.",
		}),
		queueEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "suggest_queue_evictions_total",
			Help: "Candidates dropped from a saturated candidate queue, rejected or evicted.",
		}),
		suggestionsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "suggest_suggestions_returned",
			Help:    "Number of suggestions returned per GetSuggestions call.",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.traversalsRun, m.queueEvictions, m.suggestionsReturned)
	}
	return m
}
