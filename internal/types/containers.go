package types

import (
	"fmt"
	"sort"
	"strings"
)

// ArrayKeyLit is a scalar array key: either an int or a string, used as
// the key type in KeyedArray.KnownItems.
type ArrayKeyLit struct {
	IsString bool
	IntKey   int64
	StrKey   string
}

func (k ArrayKeyLit) String() string {
	if k.IsString {
		return k.StrKey
	}
	return fmt.Sprintf("%d", k.IntKey)
}

func (k ArrayKeyLit) less(o ArrayKeyLit) bool {
	if k.IsString != o.IsString {
		return !k.IsString // ints sort before strings
	}
	if k.IsString {
		return k.StrKey < o.StrKey
	}
	return k.IntKey < o.IntKey
}

// KnownItem is one entry of a KeyedArray's known_items map.
type KnownItem struct {
	Required bool
	Type     *Union
}

// List is list<T> with an optional known prefix of element types.
type List struct {
	Element   *Union
	Prefix    []*Union // known leading elements, index 0..len-1
	NonEmpty  bool
}

func (List) atomicMarker() {}
func (l List) StructuralId() string {
	var b strings.Builder
	b.WriteString("list:")
	if l.Element != nil {
		b.WriteString(l.Element.String())
	}
	b.WriteString(fmt.Sprintf(":%v:%d", l.NonEmpty, len(l.Prefix)))
	for _, p := range l.Prefix {
		b.WriteString(":" + p.String())
	}
	return b.String()
}
func (l List) String() string {
	prefix := "list"
	if l.NonEmpty {
		prefix = "non-empty-list"
	}
	if len(l.Prefix) > 0 {
		items := make([]string, len(l.Prefix))
		for i, p := range l.Prefix {
			items[i] = p.String()
		}
		return fmt.Sprintf("array{%s}", strings.Join(items, ", "))
	}
	if l.Element == nil {
		return prefix
	}
	return fmt.Sprintf("%s<%s>", prefix, l.Element.String())
}

// KeyedArray is keyed_array<K,V> with optional known_items.
type KeyedArray struct {
	Key        *Union
	Value      *Union
	KnownItems map[string]KnownItem // keyed by ArrayKeyLit.String()
	NonEmpty   bool
}

func (KeyedArray) atomicMarker() {}
func (k KeyedArray) StructuralId() string {
	var b strings.Builder
	b.WriteString("keyed:")
	if k.Key != nil {
		b.WriteString(k.Key.String())
	}
	b.WriteString(":")
	if k.Value != nil {
		b.WriteString(k.Value.String())
	}
	b.WriteString(fmt.Sprintf(":%v:", k.NonEmpty))
	names := make([]string, 0, len(k.KnownItems))
	for name := range k.KnownItems {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, n := range names {
		item := k.KnownItems[n]
		b.WriteString(fmt.Sprintf("%s=%v:%s;", n, item.Required, item.Type.String()))
	}
	return b.String()
}
func (k KeyedArray) String() string {
	if len(k.KnownItems) > 0 {
		names := make([]string, 0, len(k.KnownItems))
		for name := range k.KnownItems {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, n := range names {
			item := k.KnownItems[n]
			opt := ""
			if !item.Required {
				opt = "?"
			}
			parts = append(parts, fmt.Sprintf("%s%s: %s", n, opt, item.Type.String()))
		}
		return fmt.Sprintf("array{%s}", strings.Join(parts, ", "))
	}
	prefix := "array"
	if k.NonEmpty {
		prefix = "non-empty-array"
	}
	keyS, valS := "array-key", "mixed"
	if k.Key != nil {
		keyS = k.Key.String()
	}
	if k.Value != nil {
		valS = k.Value.String()
	}
	return fmt.Sprintf("%s<%s, %s>", prefix, keyS, valS)
}

// RequiredKeys returns the keys of the known_items map that are
// required, in deterministic order. Used by subtype checks that must
// verify parent coverage.
func (k KeyedArray) RequiredKeys() []string {
	keys := make([]string, 0, len(k.KnownItems))
	for name, item := range k.KnownItems {
		if item.Required {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}

// Iterable is iterable<K, V>.
type Iterable struct {
	Key   *Union
	Value *Union
}

func (Iterable) atomicMarker() {}
func (i Iterable) StructuralId() string {
	k, v := "", ""
	if i.Key != nil {
		k = i.Key.String()
	}
	if i.Value != nil {
		v = i.Value.String()
	}
	return "iterable:" + k + ":" + v
}
func (i Iterable) String() string {
	k, v := "mixed", "mixed"
	if i.Key != nil {
		k = i.Key.String()
	}
	if i.Value != nil {
		v = i.Value.String()
	}
	return fmt.Sprintf("iterable<%s, %s>", k, v)
}
