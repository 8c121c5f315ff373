package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	throttleWait  prometheus.Histogram
	fetchDuration prometheus.Histogram
	lastPrice     *prometheus.GaugeVec
	catalogSize   prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aicrypto_upstream_fetches_total",
				Help: "Total number of upstream market chart fetches",
			},
			[]string{"cadence", "outcome"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aicrypto_market_cache_lookups_total",
				Help: "Market window cache lookups by result",
			},
			[]string{"cadence", "result"},
		),
		throttleWait: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "aicrypto_throttle_wait_seconds",
				Help:    "Time spent waiting out the upstream call cooldown",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 1.5, 2, 2.5, 3},
			},
		),
		fetchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "aicrypto_upstream_fetch_duration_seconds",
				Help:    "Duration of upstream market chart fetches",
				Buckets: prometheus.DefBuckets,
			},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aicrypto_last_price",
				Help: "Last observed price for an asset/currency pair",
			},
			[]string{"asset", "currency"},
		),
		catalogSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "aicrypto_catalog_coins",
				Help: "Number of coins in the last fetched catalog",
			},
		),
	}
}

// RecordFetch records one upstream fetch attempt.
func (r *Recorder) RecordFetch(cadence, outcome string) {
	r.fetchesTotal.WithLabelValues(cadence, outcome).Inc()
}

// RecordCacheLookup records a market cache hit or miss.
func (r *Recorder) RecordCacheLookup(cadence string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(cadence, result).Inc()
}

// RecordThrottleWait records time spent waiting on the rate limiter.
func (r *Recorder) RecordThrottleWait(seconds float64) {
	r.throttleWait.Observe(seconds)
}

// RecordFetchDuration records upstream call latency in seconds.
func (r *Recorder) RecordFetchDuration(seconds float64) {
	r.fetchDuration.Observe(seconds)
}

// RecordLastPrice records the newest price served for a pair.
func (r *Recorder) RecordLastPrice(asset, currency string, price float64) {
	r.lastPrice.WithLabelValues(asset, currency).Set(price)
}

// RecordCatalogSize records the size of the fetched coin catalog.
func (r *Recorder) RecordCatalogSize(n int) {
	r.catalogSize.Set(float64(n))
}
