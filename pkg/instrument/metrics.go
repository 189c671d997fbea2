package instrument

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reactive").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics. Use these to
	// distinguish runtimes when an application creates more than one.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for effect and memo durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry. Each Metrics instance
// registers its collectors once, so use distinct registries (or distinct
// ConstLabels) for multiple instances.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "reactive",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// Metrics is a reactive.Observer that exports runtime activity as
// Prometheus metrics.
type Metrics struct {
	signalWrites   prometheus.Counter
	effectRuns     *prometheus.CounterVec
	effectDuration *prometheus.HistogramVec
	memoRecomputes prometheus.Counter
	memoDuration   prometheus.Histogram
	flushesTotal   prometheus.Counter
	flushQueued    prometheus.Histogram
	flushDuration  prometheus.Histogram
	ownersDisposed prometheus.Counter
	panicsTotal    prometheus.Counter
}

// Prometheus creates a Prometheus-backed observer.
//
// Metrics collected:
//   - reactive_signal_writes_total: Counter of accepted signal writes
//   - reactive_effect_runs_total: Counter of effect runs by effect name
//   - reactive_effect_duration_seconds: Histogram of effect run duration
//   - reactive_memo_recomputes_total: Counter of memo recomputations
//   - reactive_memo_duration_seconds: Histogram of memo recompute duration
//   - reactive_batch_flushes_total: Counter of batch flushes
//   - reactive_batch_flush_queued: Histogram of effects run per flush
//   - reactive_batch_flush_duration_seconds: Histogram of flush duration
//   - reactive_owners_disposed_total: Counter of disposed owner scopes
//   - reactive_computation_panics_total: Counter of panics in computations
//
// Example:
//
//	rt := reactive.NewRuntime(
//	    reactive.WithObserver(instrument.Prometheus(
//	        instrument.WithNamespace("myapp"),
//	    )),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		signalWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_writes_total",
			Help:        "Total number of accepted signal writes",
			ConstLabels: config.ConstLabels,
		}),

		effectRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect runs by effect name",
			ConstLabels: config.ConstLabels,
		}, []string{"name"}),

		effectDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_duration_seconds",
			Help:        "Effect run duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"name"}),

		memoRecomputes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "memo_recomputes_total",
			Help:        "Total number of memo recomputations",
			ConstLabels: config.ConstLabels,
		}),

		memoDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "memo_duration_seconds",
			Help:        "Memo recompute duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batch_flushes_total",
			Help:        "Total number of batch flushes",
			ConstLabels: config.ConstLabels,
		}),

		flushQueued: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batch_flush_queued",
			Help:        "Number of effects run per batch flush",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batch_flush_duration_seconds",
			Help:        "Batch flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		ownersDisposed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "owners_disposed_total",
			Help:        "Total number of disposed owner scopes",
			ConstLabels: config.ConstLabels,
		}),

		panicsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "computation_panics_total",
			Help:        "Total number of panics in effect and memo bodies",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// SignalWrite records an accepted signal write.
func (m *Metrics) SignalWrite(signalID uint64) {
	m.signalWrites.Inc()
}

// EffectRun records an effect run and its duration. Unnamed effects fall
// into the "" label to keep cardinality bounded by the set of names.
func (m *Metrics) EffectRun(effectID uint64, name string, d time.Duration) {
	m.effectRuns.WithLabelValues(name).Inc()
	m.effectDuration.WithLabelValues(name).Observe(d.Seconds())
}

// MemoRecompute records a memo recomputation and its duration.
func (m *Metrics) MemoRecompute(memoID uint64, d time.Duration) {
	m.memoRecomputes.Inc()
	m.memoDuration.Observe(d.Seconds())
}

// BatchFlush records a completed batch flush.
func (m *Metrics) BatchFlush(queued int, d time.Duration) {
	m.flushesTotal.Inc()
	m.flushQueued.Observe(float64(queued))
	m.flushDuration.Observe(d.Seconds())
}

// OwnerDisposed records an owner scope disposal.
func (m *Metrics) OwnerDisposed(ownerID uint64) {
	m.ownersDisposed.Inc()
}

// ComputationPanic records a panic escaping an effect or memo body.
func (m *Metrics) ComputationPanic(computationID uint64) {
	m.panicsTotal.Inc()
}
