package pricing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the pricing engine.
type Metrics struct {
	quotesTotal   *prometheus.CounterVec
	reloadsTotal  *prometheus.CounterVec
	quoteDuration *prometheus.HistogramVec
}

// NewMetrics creates a Metrics instance registered with reg. A nil reg
// registers with the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		quotesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyexpr_pricing_quotes_total",
				Help: "Total number of quotes evaluated",
			},
			[]string{"rule", "result"},
		),

		reloadsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyexpr_pricing_reloads_total",
				Help: "Total number of rule table reloads",
			},
			[]string{"result"},
		),

		quoteDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyexpr_pricing_quote_duration_seconds",
				Help:    "Duration of quote evaluation in seconds",
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"rule"},
		),
	}
}

// RecordQuote records one quote evaluation.
func (m *Metrics) RecordQuote(rule, result string, duration time.Duration) {
	m.quotesTotal.WithLabelValues(rule, result).Inc()
	m.quoteDuration.WithLabelValues(rule).Observe(duration.Seconds())
}

// RecordReload records one rule table reload.
func (m *Metrics) RecordReload(result string) {
	m.reloadsTotal.WithLabelValues(result).Inc()
}
