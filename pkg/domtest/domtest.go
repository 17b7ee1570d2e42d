// Package domtest provides helpers for testing code built on package dom.
//
//	func TestToolbar(t *testing.T) {
//	    doc, rec := domtest.NewDocument(t)
//	    bar := domtest.Create(t, doc, "view")
//	    bar.AppendChild(domtest.Create(t, doc, "button"))
//	    if codes := rec.Codes(); len(codes) != 0 {
//	        t.Fatalf("integration gaps: %v", codes)
//	    }
//	}
package domtest

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/dom"
	"github.com/vango-dev/widgetdom/pkg/registry"
	"github.com/vango-dev/widgetdom/pkg/widgets"
)

// Recorder is a dom.Observer that keeps every mutation and report it
// receives. It is safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	mutations []dom.Mutation
	reports   []error
}

// Mutated implements dom.Observer.
func (r *Recorder) Mutated(m dom.Mutation) {
	r.mu.Lock()
	r.mutations = append(r.mutations, m)
	r.mu.Unlock()
}

// Reported implements dom.Observer.
func (r *Recorder) Reported(err error) {
	r.mu.Lock()
	r.reports = append(r.reports, err)
	r.mu.Unlock()
}

// Mutations returns the recorded mutations, optionally filtered by op.
func (r *Recorder) Mutations(ops ...dom.Op) []dom.Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(ops) == 0 {
		return slices.Clone(r.mutations)
	}
	var out []dom.Mutation
	for _, m := range r.mutations {
		if slices.Contains(ops, m.Op) {
			out = append(out, m)
		}
	}
	return out
}

// Reports returns the recorded integration gaps.
func (r *Recorder) Reports() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.reports)
}

// Codes returns the error code of every report, in order.
func (r *Recorder) Codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.reports))
	for _, err := range r.reports {
		out = append(out, errors.CodeOf(err))
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.mutations = nil
	r.reports = nil
	r.mu.Unlock()
}

// NewRegistry returns a sealed registry holding the demo widget set.
func NewRegistry(t testing.TB) *registry.Registry {
	t.Helper()
	r := registry.New()
	if err := widgets.Install(r); err != nil {
		t.Fatalf("install widgets: %v", err)
	}
	r.Seal()
	return r
}

// NewDocument builds a document isolated from registry.Default. It
// resolves tags against NewRegistry, logs through t.Log and records into
// the returned Recorder. opts are applied last.
func NewDocument(t testing.TB, opts ...dom.Option) (*dom.Document, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	base := []dom.Option{
		dom.WithRegistry(NewRegistry(t)),
		dom.WithLogger(Logger(t)),
		dom.WithObserver(rec),
	}
	return dom.NewDocument(append(base, opts...)...), rec
}

// Create calls CreateElement and fails the test on error.
func Create(t testing.TB, d *dom.Document, tag string) *dom.Element {
	t.Helper()
	el, err := d.CreateElement(tag)
	if err != nil {
		t.Fatalf("CreateElement(%q): %v", tag, err)
	}
	return el
}

// SetAttributes writes each name/value pair and fails the test on the
// first error.
func SetAttributes(t testing.TB, el *dom.Element, attrs map[string]any) {
	t.Helper()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := el.SetAttribute(name, attrs[name]); err != nil {
			t.Fatalf("SetAttribute(%q): %v", name, err)
		}
	}
}

// Logger returns a debug-level logger that writes through t.Log.
func Logger(t testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
