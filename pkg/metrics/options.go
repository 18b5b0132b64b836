package metrics

import (
	"maps"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager. Zero values leave the default in place.
type Option func(*Manager)

// WithNamespace replaces the "laurel" namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) { setNonEmpty(&m.namespace, namespace) }
}

// WithSubsystem replaces the "awards" subsystem.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) { setNonEmpty(&m.subsystem, subsystem) }
}

// WithMetricPrefix prepends prefix to every metric name after the subsystem.
func WithMetricPrefix(prefix string) Option {
	return func(m *Manager) { setNonEmpty(&m.metricPrefix, prefix) }
}

// WithLatencyBuckets sets the buckets shared by the HTTP, record store and
// refresh worker latency histograms. Buckets are sorted; none keeps the
// Prometheus defaults.
func WithLatencyBuckets(buckets ...float64) Option {
	return func(m *Manager) {
		if len(buckets) == 0 {
			return
		}
		m.histogramBuckets = slices.Sorted(slices.Values(buckets))
	}
}

// WithMetricsEnabled toggles collection. A disabled manager still
// registers its metrics so /healthz keeps a stable exposition.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) { m.enabled = enabled }
}

// WithRefreshInterval sets how often system gauges are sampled.
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.refreshInterval = interval
		}
	}
}

// WithConstLabels merges labels into the constant labels of every metric.
// Later options win on key clashes.
func WithConstLabels(labels map[string]string) Option {
	return func(m *Manager) {
		if m.customLabels == nil {
			m.customLabels = make(map[string]string, len(labels))
		}
		maps.Copy(m.customLabels, labels)
	}
}

// WithInstance labels every metric with the service instance name.
func WithInstance(name string) Option {
	if name == "" {
		return func(*Manager) {}
	}
	return WithConstLabels(map[string]string{"service_instance": name})
}

// WithPrometheusRegistry registers metrics on registry instead of the
// default registerer.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

func setNonEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
