package dom

import (
	"reflect"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/registry"
	"github.com/vango-dev/widgetdom/pkg/widget"
)

// insertNative places child's widget into parent's widget. index is the
// true index among element siblings, or registry.AppendIndex.
func (d *Document) insertNative(child, parent *Element, index int) Dispatch {
	if child.entry.Meta.ViewFlags.Has(registry.FlagSkipNative) {
		return DispatchSkipped
	}

	switch parent.entry.Strategy {
	case registry.ChildrenRejected:
		if d.warnNoChildren {
			d.report(errors.New("W014").WithDetailf("%s cannot host %s", parent, child))
		}
		return DispatchRejected
	case registry.ChildrenOverride:
		if err := parent.entry.Meta.NodeOps.Insert(child, parent, index); err != nil {
			d.report(errors.New("W015").WithDetailf("insert %s into %s", child, parent).Wrap(err))
			return DispatchFailed
		}
		return DispatchOverride
	}

	if child.nodeRole == "" {
		d.report(errors.New("W010").
			WithDetailf("%s has no nodeOps and %s has no nodeRole", parent, child))
		return DispatchFailed
	}
	if err := insertByRole(child.nodeRole, child.widget, parent.widget, index); err != nil {
		d.report(err)
		return DispatchFailed
	}
	return DispatchRole
}

// removeNative detaches child's widget from parent's widget.
func (d *Document) removeNative(child, parent *Element) Dispatch {
	if child.entry.Meta.ViewFlags.Has(registry.FlagSkipNative) {
		return DispatchSkipped
	}

	switch parent.entry.Strategy {
	case registry.ChildrenRejected:
		return DispatchRejected
	case registry.ChildrenOverride:
		if err := parent.entry.Meta.NodeOps.Remove(child, parent); err != nil {
			d.report(errors.New("W015").WithDetailf("remove %s from %s", child, parent).Wrap(err))
			return DispatchFailed
		}
		return DispatchOverride
	}

	if child.nodeRole == "" {
		d.report(errors.New("W010").
			WithDetailf("%s has no nodeOps and %s has no nodeRole", parent, child))
		return DispatchFailed
	}
	if err := removeByRole(child.nodeRole, child.widget, parent.widget); err != nil {
		d.report(err)
		return DispatchFailed
	}
	return DispatchRole
}

// insertByRole reflects child into the parent property named role.
//
// An array-like value is treated as an ordered child collection and
// replaced by a copy with child spliced in at index. Anything else is a
// single-value slot and is overwritten.
func insertByRole(role string, child, parent widget.Widget, index int) *errors.Error {
	current, _ := parent.Get(role)
	if !isArrayLike(current) {
		if err := parent.Set(role, child); err != nil {
			return errors.New("W016").WithDetailf("%s.%s", parent.Class(), role).Wrap(err)
		}
		return nil
	}

	next, ok := spliceIn(current, child, index)
	if !ok {
		return errors.New("W012").
			WithDetailf("%s.%s holds %T, which has a length but is not a slice of %s",
				parent.Class(), role, current, child.Class())
	}
	if err := parent.Set(role, next); err != nil {
		return errors.New("W016").WithDetailf("%s.%s", parent.Class(), role).Wrap(err)
	}
	return nil
}

// removeByRole undoes insertByRole. Single-value slots are reset to the
// widget class default rather than to nil, since defaults vary by widget.
func removeByRole(role string, child, parent widget.Widget) *errors.Error {
	current, _ := parent.Get(role)
	if !isArrayLike(current) {
		def, _ := defaultOf(parent, role)
		if err := parent.Set(role, def); err != nil {
			return errors.New("W013").
				WithDetailf("%s.%s while removing %s", parent.Class(), role, child.Class()).
				Wrap(err)
		}
		return nil
	}

	next, found, ok := spliceOut(current, child)
	if !ok {
		return errors.New("W012").
			WithDetailf("%s.%s holds %T; cannot remove %s", parent.Class(), role, current, child.Class())
	}
	if !found {
		return nil
	}
	if err := parent.Set(role, next); err != nil {
		return errors.New("W016").WithDetailf("%s.%s", parent.Class(), role).Wrap(err)
	}
	return nil
}

func defaultOf(w widget.Widget, name string) (any, bool) {
	if d, ok := w.(widget.Defaulter); ok {
		return d.DefaultValue(name)
	}
	return nil, false
}

// isArrayLike reports whether v exposes a length.
func isArrayLike(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(interface{ Len() int }); ok {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// spliceIn returns a new slice of seq's type with child inserted at index
// (appended when index is out of range). ok is false when seq is not a
// slice that can hold child.
func spliceIn(seq any, child widget.Widget, index int) (any, bool) {
	rv := reflect.ValueOf(seq)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	cv := reflect.ValueOf(child)
	if !cv.Type().AssignableTo(rv.Type().Elem()) {
		return nil, false
	}

	n := rv.Len()
	if index < 0 || index > n {
		index = n
	}
	out := reflect.MakeSlice(rv.Type(), 0, n+1)
	out = reflect.AppendSlice(out, rv.Slice(0, index))
	out = reflect.Append(out, cv)
	out = reflect.AppendSlice(out, rv.Slice(index, n))
	return out.Interface(), true
}

// spliceOut returns a new slice of seq's type without child, located by
// identity. found is false when child is absent.
func spliceOut(seq any, child widget.Widget) (next any, found, ok bool) {
	rv := reflect.ValueOf(seq)
	if rv.Kind() != reflect.Slice {
		return nil, false, false
	}

	n := rv.Len()
	at := -1
	for i := 0; i < n; i++ {
		item := rv.Index(i)
		if item.CanInterface() && sameWidget(item.Interface(), child) {
			at = i
			break
		}
	}
	if at < 0 {
		return seq, false, true
	}

	out := reflect.MakeSlice(rv.Type(), 0, n-1)
	out = reflect.AppendSlice(out, rv.Slice(0, at))
	out = reflect.AppendSlice(out, rv.Slice(at+1, n))
	return out.Interface(), true, true
}

// sameWidget compares by identity. w always has a comparable dynamic type
// (registry.Entry.New enforces it), so the comparison cannot panic.
func sameWidget(v any, w widget.Widget) bool {
	return v == any(w)
}
