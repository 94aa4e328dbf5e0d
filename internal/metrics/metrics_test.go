package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordTrade(t *testing.T) {
	before := testutil.ToFloat64(TradesExecuted.WithLabelValues("purchase", "ok"))
	RecordTrade("purchase", "ok")
	after := testutil.ToFloat64(TradesExecuted.WithLabelValues("purchase", "ok"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestRecordCacheHitMiss(t *testing.T) {
	hits := testutil.ToFloat64(QuoteCacheHits)
	misses := testutil.ToFloat64(QuoteCacheMisses)

	RecordCacheHit()
	RecordCacheMiss()
	RecordCacheMiss()

	if got := testutil.ToFloat64(QuoteCacheHits) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(QuoteCacheMisses) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordAggregationFailure(t *testing.T) {
	before := testutil.ToFloat64(AggregationFailures.WithLabelValues("QUOTE_UNAVAILABLE"))
	RecordAggregationFailure("QUOTE_UNAVAILABLE")
	if got := testutil.ToFloat64(AggregationFailures.WithLabelValues("QUOTE_UNAVAILABLE")) - before; got != 1 {
		t.Errorf("failures delta = %v, want 1", got)
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	if timer.Elapsed() < 0 {
		t.Error("elapsed must not be negative")
	}
	timer.ObserveDuration(AggregationDuration)
}
