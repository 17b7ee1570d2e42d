package widget

import (
	"errors"
	"fmt"
	"slices"
)

// ErrReadOnly is returned when writing a property the class declares
// read-only.
var ErrReadOnly = errors.New("read-only property")

// Class describes a widget type shared by all its instances.
type Class struct {
	// Name is reported by Widget.Class.
	Name string

	// Defaults are the class-level property values. Instances fall back to
	// them until the property is written.
	Defaults map[string]any

	// ReadOnly lists properties that reject Set. Adapters initialise them
	// with Base.Init.
	ReadOnly []string
}

// DefaultValue returns the class default for name. Nested property bags
// are returned as deep copies, so callers may write into them.
func (c *Class) DefaultValue(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.Defaults[name]
	return cloneBag(v), ok
}

// cloneBag deep-copies map[string]any and Bag values. Other values are
// shared.
func cloneBag(v any) any {
	switch m := v.(type) {
	case map[string]any:
		return cloneMap(m)
	case Bag:
		return Bag(cloneMap(m))
	}
	return v
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, nested := range m {
		out[k] = cloneBag(nested)
	}
	return out
}

func isBag(v any) bool {
	switch v.(type) {
	case map[string]any, Bag:
		return true
	}
	return false
}

func (c *Class) readOnly(name string) bool {
	return c != nil && slices.Contains(c.ReadOnly, name)
}

// Base is a map-backed widget. Toolkit adapters embed *Base and add
// their own capabilities.
type Base struct {
	class     *Class
	props     map[string]any
	listeners map[string][]*Listener
}

// NewBase creates a widget of the given class.
func NewBase(class *Class) *Base {
	return &Base{
		class: class,
		props: make(map[string]any),
	}
}

// Class implements Widget.
func (b *Base) Class() string {
	if b.class == nil {
		return "Widget"
	}
	return b.class.Name
}

// Get implements Properties. Unwritten properties report the class default.
// A default property bag is copied into the instance on first read, so
// deep writes through it never reach the class or sibling instances.
func (b *Base) Get(name string) (any, bool) {
	if v, ok := b.props[name]; ok {
		return v, true
	}
	v, ok := b.class.DefaultValue(name)
	if isBag(v) {
		b.props[name] = v
	}
	return v, ok
}

// Set implements Properties.
func (b *Base) Set(name string, value any) error {
	if b.class.readOnly(name) {
		return fmt.Errorf("%s.%s: %w", b.Class(), name, ErrReadOnly)
	}
	b.props[name] = value
	return nil
}

// Init writes a property without the read-only check. It is meant for
// constructors.
func (b *Base) Init(name string, value any) {
	b.props[name] = value
}

// DefaultValue implements Defaulter.
func (b *Base) DefaultValue(name string) (any, bool) {
	return b.class.DefaultValue(name)
}

// AddEventListener implements EventWidget.
func (b *Base) AddEventListener(event string, l *Listener) {
	if l == nil {
		return
	}
	if b.listeners == nil {
		b.listeners = make(map[string][]*Listener)
	}
	b.listeners[event] = append(b.listeners[event], l)
}

// RemoveEventListener implements EventWidget.
func (b *Base) RemoveEventListener(event string, l *Listener) {
	if l == nil {
		delete(b.listeners, event)
		return
	}
	list := b.listeners[event]
	if i := slices.Index(list, l); i >= 0 {
		b.listeners[event] = slices.Delete(slices.Clone(list), i, i+1)
	}
	if len(b.listeners[event]) == 0 {
		delete(b.listeners, event)
	}
}

// ListenerCount returns the number of listeners attached for event.
func (b *Base) ListenerCount(event string) int {
	return len(b.listeners[event])
}

// Emit delivers a native event to every listener attached for it and
// returns how many were invoked. self is the outer widget reported as the
// event target.
func (b *Base) Emit(self Widget, event string, args any) int {
	list := slices.Clone(b.listeners[event])
	for _, l := range list {
		l.Handle(Event{Type: event, Target: self, Args: args})
	}
	return len(list)
}

// TextBase adds a text API backed by the "text" property.
type TextBase struct {
	*Base
}

// NewTextBase creates a text-capable widget of the given class.
func NewTextBase(class *Class) TextBase {
	return TextBase{Base: NewBase(class)}
}

// Text implements TextWidget.
func (t TextBase) Text() string {
	v, _ := t.Get("text")
	s, _ := v.(string)
	return s
}

// SetText implements TextWidget.
func (t TextBase) SetText(text string) {
	t.Init("text", text)
}
