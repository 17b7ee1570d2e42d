package dom

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/vango-dev/widgetdom/internal/errors"
)

func TestCreateElementUnknownTag(t *testing.T) {
	d, rec := newTestDocument(t)

	el, err := d.CreateElement("marquee")
	if el != nil {
		t.Errorf("got element %v for unknown tag", el)
	}
	if errors.CodeOf(err) != "W002" {
		t.Errorf("err = %v, want W002", err)
	}
	if len(rec.mutations) != 0 {
		t.Errorf("failed create was observed: %v", rec.mutations)
	}
}

func TestCreateElementNSIgnoresNamespace(t *testing.T) {
	d, _ := newTestDocument(t)
	el, err := d.CreateElementNS("http://www.w3.org/2000/svg", "label")
	if err != nil {
		t.Fatal(err)
	}
	if el.TagName() != "label" {
		t.Errorf("TagName() = %q", el.TagName())
	}
}

func TestCreateElementBuildsOneWidgetEach(t *testing.T) {
	d, _ := newTestDocument(t)
	a := mustCreate(t, d, "label")
	b := mustCreate(t, d, "label")

	if a.Widget() == b.Widget() {
		t.Error("elements share a widget")
	}
	for _, el := range []*Element{a, b} {
		owner, ok := d.ElementFor(el.Widget())
		if !ok || owner != el {
			t.Errorf("ElementFor(%s) = %v, %v", el, owner, ok)
		}
	}
}

func TestReleaseDropsSubtree(t *testing.T) {
	d, rec := newTestDocument(t)
	parent := mustCreate(t, d, "box")
	child := mustCreate(t, d, "label")
	parent.AppendChild(child)
	parent.AppendChild(d.CreateTextNode("x"))

	d.Release(parent)
	d.Release(nil)

	for _, el := range []*Element{parent, child} {
		if _, ok := d.ElementFor(el.Widget()); ok {
			t.Errorf("%s still registered", el)
		}
	}
	var released []int64
	for _, m := range rec.mutations {
		if m.Op == OpRelease {
			released = append(released, m.Node)
		}
	}
	if want := idsOf(child, parent); !slices.Equal(released, want) {
		t.Errorf("released = %v, want children first %v", released, want)
	}
}

func TestReleaseTwiceEmitsOnce(t *testing.T) {
	d, rec := newTestDocument(t)
	parent := mustCreate(t, d, "box")
	child := mustCreate(t, d, "label")
	parent.AppendChild(child)

	d.Release(child)
	d.Release(parent)
	d.Release(parent)

	var released []int64
	for _, m := range rec.mutations {
		if m.Op == OpRelease {
			released = append(released, m.Node)
		}
	}
	if want := idsOf(child, parent); !slices.Equal(released, want) {
		t.Errorf("released = %v, want each element once %v", released, want)
	}
}

func TestDocumentChildrenStayVirtual(t *testing.T) {
	d, rec := newTestDocument(t)
	a := mustCreate(t, d, "label")
	b := mustCreate(t, d, "label")
	c := d.CreateComment("marker")

	d.AppendChild(a)
	d.AppendChild(b)
	d.InsertBefore(c, b)

	if got, want := ids(d.Children()), idsOf(a, c, b); !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
	if a.Parent() != Node(d) {
		t.Error("document should be the parent")
	}

	d.RemoveChild(a)
	d.RemoveChild(a)
	if got, want := ids(d.Children()), idsOf(c, b); !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
	for _, m := range rec.mutations {
		if m.Dispatch != DispatchNone {
			t.Errorf("document mutation %s dispatched %s", m.Op, m.Dispatch)
		}
	}
}

func TestMoveFromDocumentToElement(t *testing.T) {
	d, _ := newTestDocument(t)
	box := mustCreate(t, d, "box")
	label := mustCreate(t, d, "label")
	d.AppendChild(label)

	box.AppendChild(label)

	if len(d.Children()) != 0 {
		t.Error("document still holds the child")
	}
	if label.Parent() != Node(box) {
		t.Error("label was not re-parented")
	}
}

func TestRootBaseRef(t *testing.T) {
	d, _ := newTestDocument(t)
	root := NewRoot()
	if root.String() != "Root:null" || root.BaseRef() != nil {
		t.Fatalf("empty root = %s", root)
	}

	root.SetBaseRef(d.CreateTextNode("ignored"))
	if root.BaseRef() != nil {
		t.Error("text nodes cannot be mounted")
	}

	el := mustCreate(t, d, "panel")
	root.SetBaseRef(el)
	if root.BaseRef() != el {
		t.Error("BaseRef() mismatch")
	}
	if want := "Root:" + el.String(); root.String() != want {
		t.Errorf("String() = %q, want %q", root.String(), want)
	}
	if root.FirstChild() != nil {
		t.Error("root does not adopt its base as a child")
	}
}

func TestNodeStrings(t *testing.T) {
	d, _ := newTestDocument(t)
	el := mustCreate(t, d, "label")

	tests := []struct {
		node Node
		want string
	}{
		{d, "Document"},
		{el, "Element:label#" + itoa(el.ID())},
		{d.CreateTextNode("hi"), `Text:"hi"`},
		{d.CreateComment("note"), `Comment:"note"`},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDump(t *testing.T) {
	d, _ := newTestDocument(t)
	panel := mustCreate(t, d, "panel")
	header := withRole(t, d, "label", "header")
	header.AppendChild(d.CreateTextNode("Title"))
	panel.AppendChild(header)

	root := NewRoot()
	root.SetBaseRef(panel)
	out := Dump(root)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("Dump() =\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "Root:") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  Element:panel") || !strings.HasSuffix(lines[1], "<Panel>") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "<Label> role=header") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if lines[3] != `      Text:"Title"` {
		t.Errorf("line 3 = %q", lines[3])
	}
	if Dump(nil) != "" {
		t.Error("Dump(nil) should be empty")
	}
}

func TestReportsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d, _ := newTestDocument(t, WithLogger(logger))

	panel := mustCreate(t, d, "panel")
	panel.AppendChild(mustCreate(t, d, "label"))

	out := buf.String()
	for _, want := range []string{"level=WARN", "code=W010", "component=widgetdom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestObserversFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	d := NewDocument(
		WithRegistry(testRegistry()),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithObserver(a, b),
	)
	panel, _ := d.CreateElement("panel")
	label, _ := d.CreateElement("label")
	panel.AppendChild(label)

	if len(a.mutations) != 3 || len(b.mutations) != 3 {
		t.Errorf("mutations = %d/%d, want 3 each", len(a.mutations), len(b.mutations))
	}
	if !slices.Equal(a.codes(), []string{"W010"}) || !slices.Equal(b.codes(), []string{"W010"}) {
		t.Errorf("reports = %v/%v", a.codes(), b.codes())
	}
}

func TestDispatchEventIsNoop(t *testing.T) {
	d, rec := newTestDocument(t)
	el := mustCreate(t, d, "label")
	fired := false
	el.AddEventListener("tap", listenerFunc(func() { fired = true }))

	el.DispatchEvent("tap")
	d.DispatchEvent("tap")

	if fired {
		t.Error("DispatchEvent must not reach native listeners")
	}
	if len(rec.reports) != 0 {
		t.Errorf("unexpected reports %v", rec.codes())
	}
}

func TestEnumStrings(t *testing.T) {
	if OpRemoveAttribute.String() != "removeAttribute" || Op(0).String() != "unknown" {
		t.Error("Op.String mismatch")
	}
	if DispatchRole.String() != "role" || Dispatch(99).String() != "unknown" {
		t.Error("Dispatch.String mismatch")
	}
	if NodeType(99).String() != "unknown" {
		t.Error("NodeType.String mismatch")
	}
}

func TestWithObserverAccumulates(t *testing.T) {
	extra := &recorder{}
	d, rec := newTestDocument(t, WithObserver(extra, nil))
	mustCreate(t, d, "label")

	if len(rec.mutations) != 1 || len(extra.mutations) != 1 {
		t.Errorf("mutations = %d/%d, want 1 each", len(rec.mutations), len(extra.mutations))
	}
}
