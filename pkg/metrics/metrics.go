// Package metrics exports tree mutations and integration gaps as
// Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	doc := dom.NewDocument(dom.WithObserver(metrics.New(metrics.WithRegistry(reg))))
//
// Metrics collected:
//   - widgetdom_dom_mutations_total: mutations by op and dispatch path
//   - widgetdom_dom_gaps_total: reported integration gaps by code
//   - widgetdom_dom_elements: elements created and not yet released
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/dom"
)

// Config configures the metrics observer.
type Config struct {
	// Namespace is the metrics namespace (default: "widgetdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "dom").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the metrics observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "widgetdom",
		Subsystem: "dom",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Observer is a dom.Observer that updates Prometheus metrics.
type Observer struct {
	mutations *prometheus.CounterVec
	gaps      *prometheus.CounterVec
	elements  prometheus.Gauge
}

// New registers the metrics and returns an observer feeding them. It
// panics if the metrics are already registered on the chosen registry.
func New(opts ...Option) *Observer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Observer{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_total",
			Help:        "Total number of virtual tree mutations",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "dispatch"}),

		gaps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "gaps_total",
			Help:        "Total number of reported integration gaps",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		elements: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "elements",
			Help:        "Number of elements created and not yet released",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Mutated implements dom.Observer.
func (o *Observer) Mutated(m dom.Mutation) {
	o.mutations.WithLabelValues(m.Op.String(), m.Dispatch.String()).Inc()
	if m.Kind != dom.NodeElement {
		return
	}
	switch m.Op {
	case dom.OpCreate:
		o.elements.Inc()
	case dom.OpRelease:
		o.elements.Dec()
	}
}

// Reported implements dom.Observer.
func (o *Observer) Reported(err error) {
	code := errors.CodeOf(err)
	if code == "" {
		code = "unknown"
	}
	o.gaps.WithLabelValues(code).Inc()
}
