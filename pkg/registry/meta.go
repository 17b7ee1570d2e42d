package registry

import (
	"strings"

	"github.com/vango-dev/widgetdom/pkg/widget"
)

// ViewFlags describe what kind of view an element is. They avoid runtime
// probing when adding or removing children.
type ViewFlags uint8

const (
	FlagNone ViewFlags = 0

	// FlagSkipNative marks purely structural elements with no native
	// counterpart. Inserting or removing them never touches the parent
	// widget.
	FlagSkipNative ViewFlags = 1 << 0

	// FlagNoChildren marks widgets that cannot host children.
	FlagNoChildren ViewFlags = 1 << 3
)

// Has reports whether all bits of flag are set.
func (f ViewFlags) Has(flag ViewFlags) bool {
	return flag != 0 && f&flag == flag
}

// String returns the flag names joined by "|".
func (f ViewFlags) String() string {
	if f == FlagNone {
		return "none"
	}
	var parts []string
	if f.Has(FlagSkipNative) {
		parts = append(parts, "skip-native")
	}
	if f.Has(FlagNoChildren) {
		parts = append(parts, "no-children")
	}
	if rest := f &^ (FlagSkipNative | FlagNoChildren); rest != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}

// AppendIndex asks an insert to place the child after all existing
// children.
const AppendIndex = -1

// Node is the view of a virtual element that nodeOps overrides receive.
type Node interface {
	ID() int64
	TagName() string
	Widget() widget.Widget
	NodeRole() string
}

// NodeOps lets a widget definition own native child insertion and removal.
type NodeOps struct {
	// Insert places child's widget into parent's widget. index is the
	// position among element siblings, or AppendIndex.
	Insert func(child, parent Node, index int) error

	// Remove detaches child's widget from parent's widget.
	Remove func(child, parent Node) error
}

// Meta describes how a widget type takes part in the tree.
type Meta struct {
	ViewFlags ViewFlags
	NodeOps   *NodeOps
}

// ChildStrategy is the child-insertion strategy resolved for a parent
// widget type.
type ChildStrategy uint8

const (
	// ChildrenByRole reflects children into the parent property named by
	// the child's nodeRole.
	ChildrenByRole ChildStrategy = iota

	// ChildrenOverride delegates to Meta.NodeOps.
	ChildrenOverride

	// ChildrenRejected means the widget cannot host children.
	ChildrenRejected
)

// String returns the string representation of the ChildStrategy.
func (s ChildStrategy) String() string {
	switch s {
	case ChildrenByRole:
		return "role"
	case ChildrenOverride:
		return "override"
	case ChildrenRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// strategyFor resolves the strategy in dispatch priority order.
func strategyFor(m Meta) ChildStrategy {
	switch {
	case m.ViewFlags.Has(FlagNoChildren):
		return ChildrenRejected
	case m.NodeOps != nil:
		return ChildrenOverride
	default:
		return ChildrenByRole
	}
}
