package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the collectors exported on /metrics. Each server owns its
// registry so tests can build several side by side.
type Metrics struct {
	Registry  *prometheus.Registry
	Generated *prometheus.CounterVec
	CacheHits prometheus.Counter
	Steps     prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algonexus_traces_generated_total",
				Help: "Total number of traces served, by algorithm",
			},
			[]string{"algorithm"},
		),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "algonexus_trace_cache_hits_total",
			Help: "Traces served from the trace cache",
		}),
		Steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "algonexus_trace_steps",
			Help:    "Number of steps per served trace",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}),
	}
	m.Registry.MustRegister(
		m.Generated,
		m.CacheHits,
		m.Steps,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) observe(algorithm string, steps int, hit bool) {
	m.Generated.WithLabelValues(algorithm).Inc()
	m.Steps.Observe(float64(steps))
	if hit {
		m.CacheHits.Inc()
	}
}
