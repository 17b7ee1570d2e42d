package dom

import "strings"

// Dump renders n and its descendants as an indented outline, one node per
// line. Elements show their widget class and nodeRole.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n Node, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.String())
	if el, ok := n.(*Element); ok {
		b.WriteString(" <" + el.widget.Class() + ">")
		if el.nodeRole != "" {
			b.WriteString(" role=" + el.nodeRole)
		}
	}
	b.WriteByte('\n')

	if r, ok := n.(*Root); ok {
		if r.base != nil {
			dump(b, r.base, depth+1)
		}
		return
	}
	for _, c := range n.core().children {
		dump(b, c, depth+1)
	}
}
