package dom

import (
	"fmt"

	"github.com/vango-dev/widgetdom/pkg/registry"
	"github.com/vango-dev/widgetdom/pkg/widget"
)

// Element is a virtual node backed by exactly one native widget.
type Element struct {
	node

	doc      *Document
	tagName  string
	entry    *registry.Entry
	widget   widget.Widget
	nodeRole string

	// listeners tracks the handler attached per event name.
	listeners map[string]*trackedListener
}

// TagName returns the normalized tag name.
func (e *Element) TagName() string { return e.tagName }

// Widget returns the native widget owned by the element.
func (e *Element) Widget() widget.Widget { return e.widget }

// NodeRole returns the slot name this element occupies in its parent
// widget, or "".
func (e *Element) NodeRole() string { return e.nodeRole }

// Meta returns the registration metadata of the element's tag.
func (e *Element) Meta() registry.Meta { return e.entry.Meta }

// Strategy returns how the element's widget accepts children.
func (e *Element) Strategy() registry.ChildStrategy { return e.entry.Strategy }

// Document returns the document that created the element.
func (e *Element) Document() *Document { return e.doc }

// String implements Node.
func (e *Element) String() string {
	return fmt.Sprintf("Element:%s#%d", e.tagName, e.id)
}

// AppendChild appends child after all existing children. A child that
// already has a parent is removed from it first.
func (e *Element) AppendChild(child Node) {
	if child == nil || e.doc.refuseCycle(child, e) {
		return
	}
	detachFromParent(child)
	e.attach(e, child, -1)
	e.addChild(OpAppend, child, registry.AppendIndex)
}

// InsertBefore inserts child immediately before anchor. A nil or unknown
// anchor falls back to AppendChild. Inserting a child before itself
// leaves the order unchanged.
func (e *Element) InsertBefore(child, anchor Node) {
	if child == nil {
		return
	}
	if !e.contains(anchor) {
		e.AppendChild(child)
		return
	}
	if child.ID() == anchor.ID() || e.doc.refuseCycle(child, e) {
		return
	}
	detachFromParent(child)

	ref := indexOf(e.children, anchor.ID())
	e.attach(e, child, ref)
	e.addChild(OpInsert, child, elementIndex(e.children, child.ID()))
}

// RemoveChild removes child. Removing a node that is not a child is a
// silent no-op.
func (e *Element) RemoveChild(child Node) {
	if child == nil || !e.detach(child) {
		return
	}

	d := DispatchNone
	switch c := child.(type) {
	case *Element:
		d = e.doc.removeNative(c, e)
	case *Text:
		e.updateText()
		d = DispatchText
	}
	e.mutated(OpRemove, child, -1, d)
}

// addChild runs the native side of an append or insert.
func (e *Element) addChild(op Op, child Node, index int) {
	d := DispatchNone
	switch c := child.(type) {
	case *Element:
		d = e.doc.insertNative(c, e, index)
	case *Text:
		e.updateText()
		d = DispatchText
	}
	e.mutated(op, child, index, d)
}

func (e *Element) mutated(op Op, child Node, index int, d Dispatch) {
	m := Mutation{
		Op:        op,
		Node:      child.ID(),
		Kind:      child.Type(),
		Parent:    e.id,
		ParentTag: e.tagName,
		Index:     index,
		Dispatch:  d,
	}
	if el, ok := child.(*Element); ok {
		m.Tag = el.tagName
	}
	e.doc.mutated(m)
}

// DispatchEvent is accepted for API compatibility and does nothing: native
// toolkits offer no synthetic event send.
func (e *Element) DispatchEvent(event string) {}
