package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Canari/internal/model"
)

const namespace = "canari"

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Analysis holds the provider and analysis metrics. It satisfies collector.Observer.
type Analysis struct {
	ProviderFetches *prometheus.CounterVec
	Fallbacks       *prometheus.CounterVec
	Analyses        *prometheus.CounterVec
	SentimentScore  prometheus.Histogram
}

// NewAnalysis creates and registers analysis metrics on the given registry.
func NewAnalysis(reg prometheus.Registerer) *Analysis {
	m := &Analysis{
		ProviderFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "fetches_total",
			Help:      "Provider fetches by provider, kind and outcome.",
		}, []string{"provider", "kind", "outcome"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "fallbacks_total",
			Help:      "Fetches served by the mock provider after the primary failed.",
		}, []string{"kind"}),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "total",
			Help:      "Completed analyses by recommended action.",
		}, []string{"action"}),
		SentimentScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "sentiment_score",
			Help:      "Aggregate sentiment score per analysis.",
			Buckets:   prometheus.LinearBuckets(-1, 0.2, 11),
		}),
	}

	reg.MustRegister(m.ProviderFetches, m.Fallbacks, m.Analyses, m.SentimentScore)
	return m
}

func (m *Analysis) ObserveFetch(provider, kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ProviderFetches.WithLabelValues(provider, kind, outcome).Inc()
}

func (m *Analysis) ObserveFallback(kind string) {
	m.Fallbacks.WithLabelValues(kind).Inc()
}

// ObserveAnalysis records the outcome of one completed analysis.
func (m *Analysis) ObserveAnalysis(a *model.Analysis) {
	m.Analyses.WithLabelValues(string(a.Recommendation.Action)).Inc()
	m.SentimentScore.Observe(a.Sentiment.Score)
}
