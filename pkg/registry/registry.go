package registry

import (
	"reflect"
	"sort"
	"strings"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/widget"
)

// Sentinel errors, matched by code with errors.Is.
var (
	ErrAlreadyRegistered = errors.New("W001")
	ErrNotFound          = errors.New("W002")
	ErrSealed            = errors.New("W003")
	ErrIncompleteNodeOps = errors.New("W004")
	ErrInvalidWidget     = errors.New("W005")
)

// Entry is a registered element.
type Entry struct {
	// Tag is the normalized tag name.
	Tag string

	// Name is the tag as first registered, kept for display.
	Name string

	Factory  widget.Factory
	Meta     Meta
	Strategy ChildStrategy
}

// New constructs a widget for this entry and verifies it can be used as
// an identity key.
func (e *Entry) New() (widget.Widget, error) {
	w := e.Factory()
	if w == nil {
		return nil, errors.New("W005").WithDetailf("factory for %q returned nil", e.Name)
	}
	if !reflect.TypeOf(w).Comparable() {
		return nil, errors.New("W005").WithDetailf("factory for %q returned non-comparable %T", e.Name, w)
	}
	return w, nil
}

// Registry maps normalized tag names to entries.
type Registry struct {
	entries map[string]*Entry
	sealed  bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// NormalizeName folds case and drops "-" and "_" separators, so
// "menu-bar", "menuBar" and "MENU_BAR" share an entry.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Register adds an element. It fails if the normalized tag already exists
// or the registry is sealed. At most one Meta is used.
func (r *Registry) Register(tag string, factory widget.Factory, meta ...Meta) error {
	if r.sealed {
		return errors.New("W003").WithDetailf("cannot register %q", tag)
	}
	key := NormalizeName(tag)
	if key == "" || factory == nil {
		return errors.New("W005").WithDetailf("tag %q needs a name and a factory", tag)
	}
	if existing, ok := r.entries[key]; ok {
		return errors.New("W001").WithDetailf("%q collides with %q", tag, existing.Name)
	}

	var m Meta
	if len(meta) > 0 {
		m = meta[0]
	}
	if m.NodeOps != nil && (m.NodeOps.Insert == nil || m.NodeOps.Remove == nil) {
		return errors.New("W004").WithDetailf("tag %q", tag)
	}

	r.entries[key] = &Entry{
		Tag:      key,
		Name:     tag,
		Factory:  factory,
		Meta:     m,
		Strategy: strategyFor(m),
	}
	return nil
}

// MustRegister is like Register but panics on error. Registration
// mistakes are programming errors, so startup code usually wants this.
func (r *Registry) MustRegister(tag string, factory widget.Factory, meta ...Meta) {
	if err := r.Register(tag, factory, meta...); err != nil {
		panic(err)
	}
}

// Resolve returns the entry for tag or a W002 error.
func (r *Registry) Resolve(tag string) (*Entry, error) {
	e, ok := r.Lookup(tag)
	if !ok {
		return nil, errors.New("W002").WithDetailf("tag %q", tag)
	}
	return e, nil
}

// Lookup returns the entry for tag.
func (r *Registry) Lookup(tag string) (*Entry, bool) {
	e, ok := r.entries[NormalizeName(tag)]
	return e, ok
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Len returns the number of registered elements.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns all entries sorted by normalized tag.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Default is the process-wide registry used when a document is built
// without an explicit one.
var Default = New()

// Register adds an element to Default.
func Register(tag string, factory widget.Factory, meta ...Meta) error {
	return Default.Register(tag, factory, meta...)
}

// MustRegister adds an element to Default and panics on error.
func MustRegister(tag string, factory widget.Factory, meta ...Meta) {
	Default.MustRegister(tag, factory, meta...)
}
