package dom

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/widget"
)

// Reserved attribute names.
const (
	// AttrNodeRole is stored on the virtual node and never forwarded.
	AttrNodeRole = "nodeRole"

	// AttrText goes through the widget's text API.
	AttrText = "text"

	// AttrStyle carries the raw inline style string, unparsed.
	AttrStyle = "style"

	// SkinIOS and SkinAndroid address the two platform property bags a
	// widget may expose. Their keys are written one by one so sibling keys
	// already on the bag survive.
	SkinIOS     = "ios"
	SkinAndroid = "android"
)

// SetAttribute writes an attribute. nodeRole is kept on the element and
// must be a string, text
// goes through the text API, the platform skins are merged key by key, and
// every other name is deep-set on the widget by dotted path.
//
// Failures are reported as integration gaps and also returned.
func (e *Element) SetAttribute(name string, value any) error {
	var err error
	switch name {
	case AttrNodeRole:
		role, ok := value.(string)
		if !ok {
			err = e.doc.report(errors.New("W016").
				WithDetailf("%s on %s expects a string, got %T", name, e, value))
			break
		}
		e.nodeRole = role
	case AttrText:
		err = e.SetText(stringValue(value))
	case SkinIOS, SkinAndroid:
		err = e.setSkin(name, value)
	default:
		if werr := widget.SetPath(e.widget, name, value); werr != nil {
			err = e.doc.report(errors.New("W016").
				WithDetailf("%s.%s on %s", e.widget.Class(), name, e).
				Wrap(werr))
		}
	}
	e.doc.mutated(Mutation{
		Op: OpSetAttribute, Node: e.id, Kind: NodeElement, Tag: e.tagName, Index: -1, Name: name,
	})
	return err
}

func (e *Element) setSkin(name string, value any) error {
	if value == nil {
		return nil
	}
	values, ok := value.(map[string]any)
	if !ok {
		return e.doc.report(errors.New("W016").
			WithDetailf("%s expects map[string]any, got %T", name, value))
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		if err := widget.SetPath(e.widget, name+"."+k, values[k]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return e.doc.report(errors.New("W016").
			WithDetailf("%s.%s on %s", e.widget.Class(), name, e).
			Wrap(stderrors.Join(errs...)))
	}
	return nil
}

// GetAttribute reads a widget property by name or dotted path. The text
// attribute goes through the text API and fails on widgets without one.
func (e *Element) GetAttribute(name string) (any, error) {
	if name == AttrText {
		return e.Text()
	}
	v, _ := widget.GetPath(e.widget, name)
	return v, nil
}

// RemoveAttribute clears an attribute. nodeRole is simply cleared. Other
// properties are reset to the widget class default; properties without a
// declared default cannot be removed and report W017.
func (e *Element) RemoveAttribute(name string) error {
	var err error
	if name == AttrNodeRole {
		e.nodeRole = ""
	} else if def, ok := defaultOf(e.widget, name); !ok {
		err = e.doc.report(errors.New("W017").WithDetailf("%s.%s on %s", e.widget.Class(), name, e))
	} else if serr := e.widget.Set(name, def); serr != nil {
		err = e.doc.report(errors.New("W016").
			WithDetailf("reset %s.%s on %s", e.widget.Class(), name, e).
			Wrap(serr))
	}
	e.doc.mutated(Mutation{
		Op: OpRemoveAttribute, Node: e.id, Kind: NodeElement, Tag: e.tagName, Index: -1, Name: name,
	})
	return err
}

// Text returns the widget's text. Widgets without a text API report W011.
func (e *Element) Text() (string, error) {
	tw, ok := e.widget.(widget.TextWidget)
	if !ok {
		return "", e.doc.report(errors.New("W011").
			WithDetailf("text read on %s (%s)", e, e.widget.Class()))
	}
	return tw.Text(), nil
}

// SetText writes the widget's text. Widgets without a text API report
// W011.
func (e *Element) SetText(text string) error {
	tw, ok := e.widget.(widget.TextWidget)
	if !ok {
		return e.doc.report(errors.New("W011").
			WithDetailf("text write on %s (%s)", e, e.widget.Class()))
	}
	tw.SetText(text)
	return nil
}

// Style returns the raw inline style string.
func (e *Element) Style() string {
	v, _ := e.widget.Get(AttrStyle)
	s, _ := v.(string)
	return s
}

// SetStyle passes an inline style string through to the widget.
func (e *Element) SetStyle(style string) error {
	return e.SetAttribute(AttrStyle, style)
}

// updateText concatenates the direct text children in order and writes
// the result through the text attribute.
func (e *Element) updateText() {
	var b strings.Builder
	for _, c := range e.children {
		if t, ok := c.(*Text); ok {
			b.WriteString(t.text)
		}
	}
	_ = e.SetAttribute(AttrText, b.String())
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
