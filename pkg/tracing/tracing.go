// Package tracing records tree mutations as OpenTelemetry spans.
//
// The observer uses the global tracer provider unless one is given.
// Configure the provider in main() before building documents:
//
//	otel.SetTracerProvider(tp)
//	doc := dom.NewDocument(dom.WithObserver(tracing.New()))
//
// Every mutation becomes a short span named "widgetdom.<op>". Integration
// gaps are recorded as error events on a "widgetdom.gap" span.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/dom"
)

// Default tracer name.
const defaultTracerName = "widgetdom"

// Config configures the tracing observer.
type Config struct {
	// TracerName is the name of the tracer (default: "widgetdom").
	TracerName string

	// Provider supplies the tracer. Default: otel.GetTracerProvider().
	Provider trace.TracerProvider

	// Filter determines which mutations are traced. If nil, all are.
	Filter func(m dom.Mutation) bool

	// Context is the parent context of every span. Default:
	// context.Background().
	Context context.Context
}

// Option configures the tracing observer.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.Provider = tp
	}
}

// WithFilter sets a filter function for mutations.
func WithFilter(filter func(m dom.Mutation) bool) Option {
	return func(c *Config) {
		c.Filter = filter
	}
}

// WithContext sets the parent context for spans.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// Observer is a dom.Observer that emits spans.
type Observer struct {
	tracer trace.Tracer
	filter func(m dom.Mutation) bool
	ctx    context.Context
}

// New creates a tracing observer.
func New(opts ...Option) *Observer {
	config := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	if config.Context == nil {
		config.Context = context.Background()
	}
	return &Observer{
		tracer: config.Provider.Tracer(config.TracerName),
		filter: config.Filter,
		ctx:    config.Context,
	}
}

// Mutated implements dom.Observer.
func (o *Observer) Mutated(m dom.Mutation) {
	if o.filter != nil && !o.filter(m) {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.Int64("widgetdom.node", m.Node),
		attribute.String("widgetdom.kind", m.Kind.String()),
	}
	if m.Tag != "" {
		attrs = append(attrs, attribute.String("widgetdom.tag", m.Tag))
	}
	if m.Parent != 0 {
		attrs = append(attrs,
			attribute.Int64("widgetdom.parent", m.Parent),
			attribute.String("widgetdom.parent_tag", m.ParentTag),
			attribute.Int("widgetdom.index", m.Index),
			attribute.String("widgetdom.dispatch", m.Dispatch.String()),
		)
	}
	if m.Name != "" {
		attrs = append(attrs, attribute.String("widgetdom.attribute", m.Name))
	}

	_, span := o.tracer.Start(o.ctx, "widgetdom."+m.Op.String(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	if m.Dispatch == dom.DispatchFailed {
		span.SetStatus(codes.Error, "native dispatch failed")
	}
	span.End()
}

// Reported implements dom.Observer.
func (o *Observer) Reported(err error) {
	_, span := o.tracer.Start(o.ctx, "widgetdom.gap",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("widgetdom.code", errors.CodeOf(err))),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}
