// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "papertrade"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status_code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	TradesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trades_executed_total",
		Help:      "Total number of trades by type and outcome.",
	}, []string{"type", "status"})

	QuoteLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_lookups_total",
		Help:      "Total number of upstream quote lookups by outcome.",
	}, []string{"outcome"})

	QuoteCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_cache_hits_total",
		Help:      "Total number of quote cache hits.",
	})

	QuoteCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_cache_misses_total",
		Help:      "Total number of quote cache misses.",
	})

	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "portfolio_aggregation_duration_seconds",
		Help:      "Duration of portfolio holdings aggregation.",
		Buckets:   prometheus.DefBuckets,
	})

	AggregationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "portfolio_aggregation_failures_total",
		Help:      "Total number of failed aggregations by error code.",
	}, []string{"code"})
)

func RecordTrade(tradeType, status string) {
	TradesExecuted.WithLabelValues(tradeType, status).Inc()
}

func RecordQuoteLookup(outcome string) {
	QuoteLookups.WithLabelValues(outcome).Inc()
}

func RecordCacheHit() {
	QuoteCacheHits.Inc()
}

func RecordCacheMiss() {
	QuoteCacheMisses.Inc()
}

func RecordAggregationFailure(code string) {
	AggregationFailures.WithLabelValues(code).Inc()
}

// Timer measures the time elapsed since it was created.
type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(time.Since(t.start).Seconds())
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
