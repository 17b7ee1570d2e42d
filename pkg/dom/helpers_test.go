package dom

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"testing"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/registry"
	"github.com/vango-dev/widgetdom/pkg/widget"
)

// recorder captures observer traffic.
type recorder struct {
	mutations []Mutation
	reports   []error
}

func (r *recorder) Mutated(m Mutation) { r.mutations = append(r.mutations, m) }
func (r *recorder) Reported(err error) { r.reports = append(r.reports, err) }

func (r *recorder) codes() []string {
	var out []string
	for _, err := range r.reports {
		out = append(out, errors.CodeOf(err))
	}
	return out
}

// boxWidget keeps real indexed children and is driven through NodeOps.
type boxWidget struct {
	*widget.Base
	kids  []widget.Widget
	calls []string
}

var boxClass = &widget.Class{Name: "Box"}

func (b *boxWidget) insert(w widget.Widget, index int) {
	if index < 0 || index > len(b.kids) {
		b.kids = append(b.kids, w)
		return
	}
	b.kids = slices.Insert(b.kids, index, w)
}

func (b *boxWidget) remove(w widget.Widget) {
	if i := slices.Index(b.kids, w); i >= 0 {
		b.kids = slices.Delete(b.kids, i, i+1)
	}
}

var boxOps = &registry.NodeOps{
	Insert: func(child, parent registry.Node, index int) error {
		b := parent.Widget().(*boxWidget)
		b.calls = append(b.calls, fmt.Sprintf("insert %s@%d", child.TagName(), index))
		b.insert(child.Widget(), index)
		return nil
	},
	Remove: func(child, parent registry.Node) error {
		b := parent.Widget().(*boxWidget)
		b.calls = append(b.calls, "remove "+child.TagName())
		b.remove(child.Widget())
		return nil
	},
}

var failingOps = &registry.NodeOps{
	Insert: func(child, parent registry.Node, index int) error { return fmt.Errorf("toolkit refused") },
	Remove: func(child, parent registry.Node) error { return fmt.Errorf("toolkit refused") },
}

// headerPlaceholder is the class default of panel.header.
var headerPlaceholder = widget.NewBase(&widget.Class{Name: "Placeholder"})

var panelClass = &widget.Class{
	Name: "Panel",
	Defaults: map[string]any{
		"items":  []widget.Widget(nil),
		"header": headerPlaceholder,
	},
}

var labelClass = &widget.Class{Name: "Label", Defaults: map[string]any{"padding": 0}}

var skinnedClass = &widget.Class{
	Name:     "ActionItem",
	ReadOnly: []string{SkinIOS, SkinAndroid},
}

// themedClass declares its skin as a class default instead of per instance.
var themedClass = &widget.Class{
	Name: "Themed",
	Defaults: map[string]any{
		SkinIOS: map[string]any{"position": "left"},
	},
}

func newSkinned() widget.Widget {
	w := widget.NewTextBase(skinnedClass)
	w.Init(SkinIOS, map[string]any{"position": "left", "systemIcon": 4})
	w.Init(SkinAndroid, map[string]any{"position": "actionBar"})
	return w
}

// lengthOnly has a length but is not a slice.
type lengthOnly struct{ n int }

func (l lengthOnly) Len() int { return l.n }

// pickyWidget rejects nil writes, so resetting a slot to a nil default
// fails.
type pickyWidget struct {
	*widget.Base
}

func (p *pickyWidget) Set(name string, value any) error {
	if value == nil {
		return fmt.Errorf("%s: nil not allowed", name)
	}
	return p.Base.Set(name, value)
}

// plainWidget implements only the required capability.
type plainWidget struct {
	props map[string]any
}

func (p *plainWidget) Class() string                    { return "Plain" }
func (p *plainWidget) Get(name string) (any, bool)      { v, ok := p.props[name]; return v, ok }
func (p *plainWidget) Set(name string, value any) error { p.props[name] = value; return nil }

func testRegistry() *registry.Registry {
	r := registry.New()
	r.MustRegister("box", func() widget.Widget { return &boxWidget{Base: widget.NewBase(boxClass)} },
		registry.Meta{NodeOps: boxOps})
	r.MustRegister("broken-box", func() widget.Widget { return &boxWidget{Base: widget.NewBase(boxClass)} },
		registry.Meta{NodeOps: failingOps})
	r.MustRegister("panel", func() widget.Widget { return widget.NewBase(panelClass) })
	r.MustRegister("label", func() widget.Widget { return widget.NewTextBase(labelClass) })
	r.MustRegister("action-item", newSkinned)
	r.MustRegister("themed", func() widget.Widget { return widget.NewBase(themedClass) })
	r.MustRegister("image", func() widget.Widget { return widget.NewBase(&widget.Class{Name: "Image"}) },
		registry.Meta{ViewFlags: registry.FlagNoChildren})
	r.MustRegister("template", func() widget.Widget { return widget.NewBase(&widget.Class{Name: "Template"}) },
		registry.Meta{ViewFlags: registry.FlagSkipNative})
	r.MustRegister("picky", func() widget.Widget { return &pickyWidget{Base: widget.NewBase(&widget.Class{Name: "Picky"})} })
	r.MustRegister("plain", func() widget.Widget { return &plainWidget{props: map[string]any{}} })
	r.Seal()
	return r
}

func newTestDocument(t *testing.T, opts ...Option) (*Document, *recorder) {
	t.Helper()
	rec := &recorder{}
	base := []Option{
		WithRegistry(testRegistry()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithObserver(rec),
	}
	return NewDocument(append(base, opts...)...), rec
}

func mustCreate(t *testing.T, d *Document, tag string) *Element {
	t.Helper()
	el, err := d.CreateElement(tag)
	if err != nil {
		t.Fatalf("CreateElement(%q): %v", tag, err)
	}
	return el
}

func ids(nodes []Node) []int64 {
	out := make([]int64, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

func idsOf(nodes ...Node) []int64 {
	return ids(nodes)
}

func listenerFunc(f func()) *widget.Listener {
	return widget.NewListener(func(widget.Event) any { f(); return nil })
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
