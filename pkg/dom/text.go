package dom

import "fmt"

// Text is a virtual text node. Its content is folded into the parent
// element's "text" attribute.
type Text struct {
	node
	text string
}

// Text returns the node's content.
func (t *Text) Text() string { return t.text }

// SetText replaces the content and re-projects the parent's text.
func (t *Text) SetText(text string) {
	t.text = text
	if p, ok := t.parent.(*Element); ok {
		p.updateText()
	}
}

// String implements Node.
func (t *Text) String() string {
	return fmt.Sprintf("Text:%q", t.text)
}

// Comment is a virtual comment node. It never reaches the native side.
type Comment struct {
	node
	text string
}

// Text returns the comment content.
func (c *Comment) Text() string { return c.text }

// SetText replaces the comment content.
func (c *Comment) SetText(text string) { c.text = text }

// String implements Node.
func (c *Comment) String() string {
	return fmt.Sprintf("Comment:%q", c.text)
}

// Root is a stable mount handle for the UI layer. It points at one
// top-level element without taking part in the widget hierarchy.
type Root struct {
	node
	base *Element
}

// NewRoot creates an empty root.
func NewRoot() *Root {
	return &Root{node: newNode(NodeRoot)}
}

// SetBaseRef points the root at n. Only elements are accepted; other
// node kinds are ignored.
func (r *Root) SetBaseRef(n Node) {
	if el, ok := n.(*Element); ok {
		r.base = el
	}
}

// BaseRef returns the mounted element, or nil.
func (r *Root) BaseRef() *Element { return r.base }

// String implements Node.
func (r *Root) String() string {
	if r.base == nil {
		return "Root:null"
	}
	return "Root:" + r.base.String()
}
