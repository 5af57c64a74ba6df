package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the counters/histograms spec §4.M calls out by name:
// request latency, graph-session counts, traversal BFS depth/fan-out,
// span-relocation case counts.
type Metrics struct {
	RequestDuration     *prometheus.HistogramVec
	GraphSessionsOpened prometheus.Counter
	TraversalDepth      prometheus.Histogram
	TraversalFanOut     prometheus.Histogram
	RelocationCases     *prometheus.CounterVec
}

// NewMetrics registers every collector against reg and returns the bundle.
// Callers pass prometheus.NewRegistry() in tests to avoid collisions with
// the default global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "corpusgraph",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status class.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status_class"}),
		GraphSessionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corpusgraph",
			Name:      "graph_sessions_opened_total",
			Help:      "Number of Neo4j driver sessions opened.",
		}),
		TraversalDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "corpusgraph",
			Name:      "traversal_bfs_depth",
			Help:      "Number of BFS levels visited by the related-segments traversal.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		TraversalFanOut: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "corpusgraph",
			Name:      "traversal_bfs_fanout",
			Help:      "Number of alignment pairs expanded per BFS pop.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
		RelocationCases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corpusgraph",
			Name:      "span_relocation_case_total",
			Help:      "Span-relocation engine invocations by case number (spec §4.H).",
		}, []string{"case"}),
	}
	reg.MustRegister(
		m.RequestDuration,
		m.GraphSessionsOpened,
		m.TraversalDepth,
		m.TraversalFanOut,
		m.RelocationCases,
	)
	return m
}
