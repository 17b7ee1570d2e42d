package widgets

import (
	"github.com/vango-dev/widgetdom/pkg/registry"
	"github.com/vango-dev/widgetdom/pkg/widget"
)

// Tag names registered by Install.
const (
	TagView     = "view"
	TagWindow   = "window"
	TagMenu     = "menu"
	TagText     = "text"
	TagButton   = "button"
	TagMenuItem = "menuItem"
	TagImage    = "image"
	TagTemplate = "template"
)

var viewOps = &registry.NodeOps{
	Insert: func(child, parent registry.Node, index int) error {
		parent.Widget().(*View).InsertChild(child.Widget(), index)
		return nil
	},
	Remove: func(child, parent registry.Node) error {
		parent.Widget().(*View).RemoveChild(child.Widget())
		return nil
	},
}

type definition struct {
	tag     string
	factory widget.Factory
	meta    registry.Meta
}

var definitions = []definition{
	{TagView, func() widget.Widget { return NewView() }, registry.Meta{NodeOps: viewOps}},
	{TagWindow, func() widget.Widget { return NewWindow() }, registry.Meta{}},
	{TagMenu, func() widget.Widget { return NewMenu() }, registry.Meta{}},
	{TagText, func() widget.Widget { return NewText() }, registry.Meta{}},
	{TagButton, func() widget.Widget { return NewButton() }, registry.Meta{}},
	{TagMenuItem, func() widget.Widget { return NewMenuItem() }, registry.Meta{}},
	{TagImage, func() widget.Widget { return NewImage() }, registry.Meta{ViewFlags: registry.FlagNoChildren}},
	{TagTemplate, func() widget.Widget { return NewTemplate() }, registry.Meta{ViewFlags: registry.FlagSkipNative}},
}

// Install registers the demo widget set on r. It stops at the first
// registration error.
func Install(r *registry.Registry) error {
	for _, def := range definitions {
		if err := r.Register(def.tag, def.factory, def.meta); err != nil {
			return err
		}
	}
	return nil
}
