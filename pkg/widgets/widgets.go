package widgets

import (
	"slices"

	"github.com/vango-dev/widgetdom/pkg/widget"
)

// Property names shared by the demo widgets.
const (
	PropContent = "content"
	PropMenuBar = "menuBar"
	PropItems   = "items"
	PropTitle   = "title"
	PropSource  = "src"
	PropEnabled = "enabled"
)

// EventTap is emitted by Button.Press.
const EventTap = "tap"

var (
	viewClass = &widget.Class{
		Name:     "View",
		Defaults: map[string]any{"orientation": "vertical"},
	}
	windowClass = &widget.Class{
		Name: "Window",
		Defaults: map[string]any{
			PropTitle:   "",
			PropContent: nil,
			PropMenuBar: nil,
		},
	}
	menuClass = &widget.Class{
		Name:     "Menu",
		Defaults: map[string]any{PropItems: []widget.Widget(nil)},
	}
	textClass = &widget.Class{
		Name:     "Text",
		Defaults: map[string]any{"text": "", "wrap": false},
	}
	buttonClass = &widget.Class{
		Name:     "Button",
		Defaults: map[string]any{"text": "", PropEnabled: true},
	}
	menuItemClass = &widget.Class{
		Name:     "MenuItem",
		Defaults: map[string]any{"text": ""},
		ReadOnly: []string{"ios", "android"},
	}
	imageClass = &widget.Class{
		Name:     "Image",
		Defaults: map[string]any{PropSource: ""},
	}
	templateClass = &widget.Class{Name: "Template"}
)

// View lays out an ordered list of child widgets.
type View struct {
	*widget.Base
	children []widget.Widget
}

// NewView creates an empty view.
func NewView() *View {
	return &View{Base: widget.NewBase(viewClass)}
}

// Children returns a copy of the child list.
func (v *View) Children() []widget.Widget {
	return slices.Clone(v.children)
}

// InsertChild places w at index, or at the end when index is out of range.
func (v *View) InsertChild(w widget.Widget, index int) {
	if index < 0 || index >= len(v.children) {
		v.children = append(v.children, w)
		return
	}
	v.children = slices.Insert(v.children, index, w)
}

// RemoveChild removes w and reports whether it was present.
func (v *View) RemoveChild(w widget.Widget) bool {
	i := slices.Index(v.children, w)
	if i < 0 {
		return false
	}
	v.children = slices.Delete(v.children, i, i+1)
	return true
}

// Window is a top-level widget with a content slot and a menu bar slot.
type Window struct {
	*widget.Base
}

// NewWindow creates an empty window.
func NewWindow() *Window {
	return &Window{Base: widget.NewBase(windowClass)}
}

// Content returns the widget in the content slot, or nil.
func (w *Window) Content() widget.Widget {
	v, _ := w.Get(PropContent)
	c, _ := v.(widget.Widget)
	return c
}

// MenuBar returns the widget in the menu bar slot, or nil.
func (w *Window) MenuBar() widget.Widget {
	v, _ := w.Get(PropMenuBar)
	m, _ := v.(widget.Widget)
	return m
}

// Menu holds its entries in the "items" property.
type Menu struct {
	*widget.Base
}

// NewMenu creates an empty menu.
func NewMenu() *Menu {
	return &Menu{Base: widget.NewBase(menuClass)}
}

// Items returns the menu entries.
func (m *Menu) Items() []widget.Widget {
	v, _ := m.Get(PropItems)
	items, _ := v.([]widget.Widget)
	return items
}

// Text displays a string.
type Text struct {
	widget.TextBase
}

// NewText creates an empty text widget.
func NewText() *Text {
	return &Text{TextBase: widget.NewTextBase(textClass)}
}

// Button is a pressable text widget.
type Button struct {
	widget.TextBase
}

// NewButton creates a button.
func NewButton() *Button {
	return &Button{TextBase: widget.NewTextBase(buttonClass)}
}

// Press emits EventTap to the attached listeners unless the button is
// disabled. It returns the number of listeners invoked.
func (b *Button) Press() int {
	v, _ := b.Get(PropEnabled)
	if enabled, ok := v.(bool); ok && !enabled {
		return 0
	}
	return b.Emit(b, EventTap, nil)
}

// MenuItem is a menu entry with per-platform presentation bags.
type MenuItem struct {
	widget.TextBase
}

// NewMenuItem creates a menu item with default platform bags.
func NewMenuItem() *MenuItem {
	m := &MenuItem{TextBase: widget.NewTextBase(menuItemClass)}
	m.Init("ios", map[string]any{"position": "left"})
	m.Init("android", map[string]any{"position": "actionBar"})
	return m
}

// Image shows a picture and cannot hold children.
type Image struct {
	*widget.Base
}

// NewImage creates an image widget.
func NewImage() *Image {
	return &Image{Base: widget.NewBase(imageClass)}
}

// Template is a placeholder whose children are consumed by the UI layer
// and never reach a native parent.
type Template struct {
	*widget.Base
}

// NewTemplate creates a template widget.
func NewTemplate() *Template {
	return &Template{Base: widget.NewBase(templateClass)}
}
