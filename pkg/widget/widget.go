package widget

// Properties is the named-property surface shared by widgets and nested
// property bags.
type Properties interface {
	// Get returns the current value of a property and whether it is known.
	Get(name string) (any, bool)

	// Set writes a property. Read-only or rejected writes return an error.
	Set(name string, value any) error
}

// Widget is a native toolkit object owned by exactly one element.
type Widget interface {
	Properties

	// Class names the widget type, e.g. "QPushButton". Used in reports.
	Class() string
}

// Factory constructs a fresh widget instance.
type Factory func() Widget

// TextWidget is implemented by widgets that expose textual content.
type TextWidget interface {
	Widget
	Text() string
	SetText(text string)
}

// Defaulter exposes the class-level default of a property, as opposed to
// the instance's current value.
type Defaulter interface {
	DefaultValue(name string) (any, bool)
}

// Event is delivered to listeners for native-originated events.
type Event struct {
	// Type is the registered event name.
	Type string

	// Target is the widget that emitted the event.
	Target Widget

	// Args carries toolkit-specific payload.
	Args any
}

// Handler handles an event. The return value is significant for
// listeners registered with Once: see dom.ListenerOptions.
type Handler func(Event) any

// Listener is a registered handler. Listeners are compared by pointer
// identity, so keep the pointer to remove it later.
type Listener struct {
	Handle Handler
}

// NewListener wraps h in a Listener.
func NewListener(h Handler) *Listener {
	return &Listener{Handle: h}
}

// EventWidget is implemented by widgets that emit events.
type EventWidget interface {
	AddEventListener(event string, l *Listener)

	// RemoveEventListener detaches l, or every listener for event when l
	// is nil.
	RemoveEventListener(event string, l *Listener)
}
