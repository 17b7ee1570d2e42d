package dom

import (
	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/widget"
)

// ListenerOptions configure AddEventListener.
type ListenerOptions struct {
	// Capture requests capture-phase delivery, which is not supported.
	// Such registrations are logged and ignored.
	Capture bool

	// Once detaches the listener after its first invocation, but only
	// when the handler returns a non-nil value. A handler that returns
	// nil stays attached.
	Once bool
}

type trackedListener struct {
	origin *widget.Listener
	native *widget.Listener
}

// AddEventListener attaches l to the widget for event.
//
// The element tracks one listener per event name. Registering again for
// the same name replaces the tracked listener and adds a new native
// registration; the previous native registration stays attached unless
// RemoveEventListener is called first.
func (e *Element) AddEventListener(event string, l *widget.Listener, opts ...ListenerOptions) {
	if l == nil || l.Handle == nil {
		return
	}
	var o ListenerOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Capture {
		e.doc.logger.Debug(errors.New("W020").Message, "code", "W020", "event", event, "element", e.String())
		return
	}

	ew, ok := e.widget.(widget.EventWidget)
	if !ok {
		e.doc.report(errors.New("W018").WithDetailf("%s on %s (%s)", event, e, e.widget.Class()))
		return
	}

	native := &widget.Listener{}
	native.Handle = func(ev widget.Event) any {
		ev.Type = event
		res := l.Handle(ev)
		if o.Once && res != nil {
			e.RemoveEventListener(event, native)
		}
		return res
	}

	ew.AddEventListener(event, native)
	if e.listeners == nil {
		e.listeners = make(map[string]*trackedListener)
	}
	e.listeners[event] = &trackedListener{origin: l, native: native}
}

// RemoveEventListener forgets the tracked listener for event and detaches
// l from the widget. Passing the listener given to AddEventListener
// detaches the wrapper that was actually registered. A nil l detaches
// every native listener for event.
func (e *Element) RemoveEventListener(event string, l *widget.Listener) {
	tracked := e.listeners[event]
	delete(e.listeners, event)

	target := l
	if tracked != nil && l != nil && (l == tracked.origin || l == tracked.native) {
		target = tracked.native
	}
	if ew, ok := e.widget.(widget.EventWidget); ok {
		ew.RemoveEventListener(event, target)
	}
}

// EventListener returns the listener tracked for event.
func (e *Element) EventListener(event string) (*widget.Listener, bool) {
	t, ok := e.listeners[event]
	if !ok {
		return nil, false
	}
	return t.origin, true
}

// EventNames returns the event names with a tracked listener.
func (e *Element) EventNames() []string {
	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	return names
}
