package dom

import (
	"log/slog"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/registry"
	"github.com/vango-dev/widgetdom/pkg/widget"
)

// Document is the factory entry point of a tree. It can hold children,
// but it has no widget, so its own child mutations stay virtual.
type Document struct {
	node

	registry       *registry.Registry
	logger         *slog.Logger
	observers      []Observer
	observer       Observer
	warnNoChildren bool

	// owners maps each live widget back to its element, so native events
	// can be correlated with the virtual tree.
	owners map[widget.Widget]*Element
}

// Option configures a Document.
type Option func(*Document)

// WithRegistry resolves tags against r instead of registry.Default.
func WithRegistry(r *registry.Registry) Option {
	return func(d *Document) {
		d.registry = r
	}
}

// WithLogger sets the logger used for reported integration gaps.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		d.logger = l
	}
}

// WithObserver adds observers for mutations and reports. Observers are
// called in the order they were added.
func WithObserver(obs ...Observer) Option {
	return func(d *Document) {
		for _, o := range obs {
			if o != nil {
				d.observers = append(d.observers, o)
			}
		}
	}
}

// WithWarnNoChildren reports W014 when a child is inserted into a widget
// flagged registry.FlagNoChildren. The insert is a no-op either way.
func WithWarnNoChildren(warn bool) Option {
	return func(d *Document) {
		d.warnNoChildren = warn
	}
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		node:     newNode(NodeDocument),
		registry: registry.Default,
		logger:   slog.Default(),
		owners:   make(map[widget.Widget]*Element),
	}
	for _, opt := range opts {
		opt(d)
	}
	switch len(d.observers) {
	case 0:
		d.observer = nopObserver{}
	case 1:
		d.observer = d.observers[0]
	default:
		d.observer = Observers(d.observers)
	}
	d.logger = d.logger.With("component", "widgetdom")
	return d
}

// Registry returns the registry the document resolves tags against.
func (d *Document) Registry() *registry.Registry {
	return d.registry
}

// Logger returns the document logger.
func (d *Document) Logger() *slog.Logger {
	return d.logger
}

// CreateElement resolves tag and constructs exactly one native widget for
// the new element. Unknown tags return a W002 error.
func (d *Document) CreateElement(tag string) (*Element, error) {
	entry, err := d.registry.Resolve(tag)
	if err != nil {
		return nil, err
	}
	w, err := entry.New()
	if err != nil {
		return nil, err
	}

	el := &Element{
		node:    newNode(NodeElement),
		doc:     d,
		tagName: entry.Tag,
		entry:   entry,
		widget:  w,
	}
	d.owners[w] = el
	d.mutated(Mutation{Op: OpCreate, Node: el.id, Kind: NodeElement, Tag: el.tagName, Index: -1})
	return el, nil
}

// CreateElementNS ignores the namespace; widget toolkits have none.
func (d *Document) CreateElementNS(namespace, tag string) (*Element, error) {
	return d.CreateElement(tag)
}

// CreateTextNode creates a virtual text node.
func (d *Document) CreateTextNode(text string) *Text {
	t := &Text{node: newNode(NodeText), text: text}
	d.mutated(Mutation{Op: OpCreate, Node: t.id, Kind: NodeText, Index: -1})
	return t
}

// CreateComment creates a virtual comment node.
func (d *Document) CreateComment(text string) *Comment {
	c := &Comment{node: newNode(NodeComment), text: text}
	d.mutated(Mutation{Op: OpCreate, Node: c.id, Kind: NodeComment, Index: -1})
	return c
}

// ElementFor returns the element owning w.
func (d *Document) ElementFor(w widget.Widget) (*Element, bool) {
	el, ok := d.owners[w]
	return el, ok
}

// Release drops the widget back-references of n and its descendants.
// Call it once the UI layer discards a removed subtree; the widgets are
// not reused afterwards. Elements already released are skipped.
func (d *Document) Release(n Node) {
	if n == nil {
		return
	}
	for _, c := range n.core().children {
		d.Release(c)
	}
	if el, ok := n.(*Element); ok {
		if d.owners[el.widget] == el {
			delete(d.owners, el.widget)
			d.mutated(Mutation{Op: OpRelease, Node: el.id, Kind: NodeElement, Tag: el.tagName, Index: -1})
		}
	}
}

// AppendChild implements Container. Document children are virtual only.
func (d *Document) AppendChild(child Node) {
	if child == nil || d.refuseCycle(child, d) {
		return
	}
	detachFromParent(child)
	d.attach(d, child, -1)
	d.mutated(d.childMutation(OpAppend, child, -1))
}

// InsertBefore implements Container.
func (d *Document) InsertBefore(child, anchor Node) {
	if child == nil {
		return
	}
	if !d.contains(anchor) {
		d.AppendChild(child)
		return
	}
	if child.ID() == anchor.ID() || d.refuseCycle(child, d) {
		return
	}
	detachFromParent(child)
	ref := indexOf(d.children, anchor.ID())
	d.attach(d, child, ref)
	d.mutated(d.childMutation(OpInsert, child, elementIndex(d.children, child.ID())))
}

// RemoveChild implements Container. Removing a node that is not a child
// is a silent no-op.
func (d *Document) RemoveChild(child Node) {
	if child == nil || !d.detach(child) {
		return
	}
	d.mutated(d.childMutation(OpRemove, child, -1))
}

// DispatchEvent is accepted for API compatibility and does nothing.
func (d *Document) DispatchEvent(event string) {}

// String implements Node.
func (d *Document) String() string {
	return "Document"
}

func (d *Document) childMutation(op Op, child Node, index int) Mutation {
	m := Mutation{Op: op, Node: child.ID(), Kind: child.Type(), Parent: d.id, Index: index}
	if el, ok := child.(*Element); ok {
		m.Tag = el.tagName
	}
	return m
}

func (d *Document) mutated(m Mutation) {
	d.observer.Mutated(m)
}

// refuseCycle reports W021 and returns true when inserting child into
// parent would make a node its own ancestor.
func (d *Document) refuseCycle(child, parent Node) bool {
	if !isInclusiveAncestor(child, parent) {
		return false
	}
	d.report(errors.New("W021").WithDetailf("%s into %s", child, parent))
	return true
}

// report logs an integration gap and forwards it to the observer.
func (d *Document) report(err *errors.Error) *errors.Error {
	attrs := []any{"code", err.Code}
	if err.Detail != "" {
		attrs = append(attrs, "detail", err.Detail)
	}
	if err.Wrapped != nil {
		attrs = append(attrs, "error", err.Wrapped)
	}
	d.logger.Warn(err.Message, attrs...)
	d.observer.Reported(err)
	return err
}
