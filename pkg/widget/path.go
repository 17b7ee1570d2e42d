package widget

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotABag is returned when a dotted path walks through a value that is
// neither Properties nor a map[string]any.
var ErrNotABag = errors.New("not a property bag")

// Bag adapts a plain map to Properties. Writes mutate the map in place.
type Bag map[string]any

// Get implements Properties.
func (b Bag) Get(name string) (any, bool) {
	v, ok := b[name]
	return v, ok
}

// Set implements Properties.
func (b Bag) Set(name string, value any) error {
	b[name] = value
	return nil
}

// asBag returns v as Properties when it is a nested property bag.
func asBag(v any) (Properties, bool) {
	switch bag := v.(type) {
	case Properties:
		return bag, true
	case map[string]any:
		return Bag(bag), true
	}
	return nil, false
}

// SetPath deep-sets value at a dotted path below target.
//
// Missing intermediate segments are created as map[string]any and
// attached to their parent. Existing nested bags are written through, so
// sibling keys survive. When both value and the current value at the
// final segment are bags, value is merged key by key instead of replacing
// the bag.
func SetPath(target Properties, path string, value any) error {
	if path == "" {
		return fmt.Errorf("widget: empty property path")
	}
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		return setLeaf(target, head, value)
	}

	cur, ok := target.Get(head)
	if !ok || cur == nil {
		created := map[string]any{}
		if err := SetPath(Bag(created), rest, value); err != nil {
			return err
		}
		return target.Set(head, created)
	}
	bag, isBag := asBag(cur)
	if !isBag {
		return fmt.Errorf("widget: %s holds %T: %w", head, cur, ErrNotABag)
	}
	if err := SetPath(bag, rest, value); err != nil {
		return fmt.Errorf("%s: %w", head, err)
	}
	return nil
}

func setLeaf(target Properties, name string, value any) error {
	incoming, ok := value.(map[string]any)
	if !ok {
		return target.Set(name, value)
	}
	cur, _ := target.Get(name)
	bag, isBag := asBag(cur)
	if !isBag {
		return target.Set(name, value)
	}
	return Merge(bag, incoming)
}

// Merge writes every key of values into bag through SetPath, in sorted key
// order so failures are deterministic.
func Merge(bag Properties, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		if err := SetPath(bag, k, values[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetPath reads the value at a dotted path below target. It reports false
// when a segment is missing or walks through a non-bag value.
func GetPath(target Properties, path string) (any, bool) {
	head, rest, nested := strings.Cut(path, ".")
	cur, ok := target.Get(head)
	if !ok || !nested {
		return cur, ok
	}
	bag, isBag := asBag(cur)
	if !isBag {
		return nil, false
	}
	return GetPath(bag, rest)
}
