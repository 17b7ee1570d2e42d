package dom

import (
	"slices"
	"sync/atomic"
)

// NodeType is the node kind discriminator.
type NodeType uint8

const (
	NodeDocument NodeType = iota
	NodeElement
	NodeText
	NodeComment
	NodeRoot
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case NodeDocument:
		return "document"
	case NodeElement:
		return "element"
	case NodeText:
		return "text"
	case NodeComment:
		return "comment"
	case NodeRoot:
		return "root"
	default:
		return "unknown"
	}
}

// lastNodeID hands out process-unique node IDs. IDs are never reused.
var lastNodeID atomic.Int64

// Node is implemented by every virtual node.
type Node interface {
	// ID is the node's identity key. It is not an insertion order.
	ID() int64
	Type() NodeType

	// Parent returns the containing *Element or *Document, or nil.
	Parent() Node

	// Children returns a copy of the ordered child list.
	Children() []Node

	FirstChild() Node
	LastChild() Node
	NextSibling() Node
	PrevSibling() Node

	String() string

	core() *node
}

// Container is a node that can hold children.
type Container interface {
	Node
	AppendChild(child Node)
	InsertBefore(child, anchor Node)
	RemoveChild(child Node)
}

// node holds the linkage shared by all node kinds.
type node struct {
	id       int64
	typ      NodeType
	parent   Node
	children []Node
}

func newNode(t NodeType) node {
	return node{id: lastNodeID.Add(1), typ: t}
}

func (n *node) core() *node { return n }

// ID implements Node.
func (n *node) ID() int64 { return n.id }

// Type implements Node.
func (n *node) Type() NodeType { return n.typ }

// Parent implements Node.
func (n *node) Parent() Node { return n.parent }

// Children implements Node.
func (n *node) Children() []Node { return slices.Clone(n.children) }

// FirstChild implements Node.
func (n *node) FirstChild() Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild implements Node.
func (n *node) LastChild() Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// NextSibling implements Node.
func (n *node) NextSibling() Node {
	return n.sibling(1)
}

// PrevSibling implements Node.
func (n *node) PrevSibling() Node {
	return n.sibling(-1)
}

func (n *node) sibling(delta int) Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.core().children
	i := indexOf(siblings, n.id) + delta
	if i < 0 || i >= len(siblings) {
		return nil
	}
	return siblings[i]
}

// attach places child at position at, or at the end when at is out of
// range, and points it at self. Linkage is updated in one step.
func (n *node) attach(self, child Node, at int) {
	if at < 0 || at >= len(n.children) {
		n.children = append(n.children, child)
	} else {
		n.children = slices.Insert(n.children, at, child)
	}
	child.core().parent = self
}

// detach removes child and clears its parent. It reports false when child
// is not among n's children.
func (n *node) detach(child Node) bool {
	i := indexOf(n.children, child.ID())
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.core().parent = nil
	return true
}

func (n *node) contains(child Node) bool {
	return child != nil && indexOf(n.children, child.ID()) >= 0
}

// isInclusiveAncestor reports whether candidate is n or one of n's
// ancestors.
func isInclusiveAncestor(candidate, n Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.ID() == candidate.ID() {
			return true
		}
	}
	return false
}

// detachFromParent removes child from whatever container holds it.
func detachFromParent(child Node) {
	if p, ok := child.Parent().(Container); ok {
		p.RemoveChild(child)
	}
}

func indexOf(list []Node, id int64) int {
	return slices.IndexFunc(list, func(c Node) bool { return c.ID() == id })
}

// elementIndex returns the position of id counting element nodes only, or
// -1. Text and comment siblings have no native counterpart.
func elementIndex(list []Node, id int64) int {
	i := 0
	for _, c := range list {
		if c.ID() == id {
			return i
		}
		if c.Type() == NodeElement {
			i++
		}
	}
	return -1
}
