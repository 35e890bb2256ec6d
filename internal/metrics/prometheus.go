package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the prediction pipeline's Prometheus metrics.
type Recorder struct {
	predictions *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	errorsTotal *prometheus.CounterVec
	latency     prometheus.Histogram
}

// New registers the recorder on the default registry.
func New() *Recorder {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the recorder on reg; tests pass a fresh registry to
// avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_predictions_total",
				Help: "Total number of completed predictions",
			},
			[]string{"signal"},
		),
		cacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "stockcast_cache_hits_total",
				Help: "Total number of prediction cache hits",
			},
		),
		cacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "stockcast_cache_misses_total",
				Help: "Total number of prediction cache misses",
			},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_errors_total",
				Help: "Total number of prediction errors by kind",
			},
			[]string{"kind"},
		),
		latency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockcast_prediction_duration_seconds",
				Help:    "End-to-end prediction latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordPrediction counts a completed prediction by emitted signal.
func (r *Recorder) RecordPrediction(signal string) {
	r.predictions.WithLabelValues(signal).Inc()
}

// RecordCacheHit counts a cache hit.
func (r *Recorder) RecordCacheHit() {
	r.cacheHits.Inc()
}

// RecordCacheMiss counts a cache miss.
func (r *Recorder) RecordCacheMiss() {
	r.cacheMisses.Inc()
}

// RecordError counts a pipeline failure by error kind.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records end-to-end prediction latency in seconds.
func (r *Recorder) RecordLatency(seconds float64) {
	r.latency.Observe(seconds)
}
