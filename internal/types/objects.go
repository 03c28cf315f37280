package types

import (
	"fmt"
	"strings"

	"github.com/yigitcukuren/mago-sub004/internal/intern"
)

// Intersectable is implemented by atomics that may carry extra
// intersection types (named objects, generic parameters, classlike
// strings per §3.2's invariant).
type Intersectable interface {
	Atomic
	Intersections() []Atomic
}

// AnyObject is `object`, the supertype of every named object.
type AnyObject struct{}

func (AnyObject) atomicMarker()        {}
func (AnyObject) StructuralId() string { return "object" }
func (AnyObject) String() string       { return "object" }

// Named is a named class/interface/enum type, e.g. Foo<Bar>.
type Named struct {
	Name            intern.StringId
	TypeParameters  []*Union
	IntersectionSet []Atomic
	IsThis          bool // `static`/`$this`-typed marker

	// Sentinel is "self", "static" or "parent" prior to expansion; it is
	// cleared once typeops.Expand resolves it against the enclosing
	// class context. Empty for an already-concrete named type.
	Sentinel string
}

func (Named) atomicMarker() {}
func (n Named) StructuralId() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("named:%d:%v:", n.Name, n.IsThis))
	for _, tp := range n.TypeParameters {
		b.WriteString(tp.String() + ",")
	}
	for _, it := range n.IntersectionSet {
		b.WriteString("&" + it.StructuralId())
	}
	return b.String()
}
func (n Named) String() string {
	s := fmt.Sprintf("#%d", n.Name)
	if len(n.TypeParameters) > 0 {
		parts := make([]string, len(n.TypeParameters))
		for i, tp := range n.TypeParameters {
			parts[i] = tp.String()
		}
		s += "<" + strings.Join(parts, ", ") + ">"
	}
	for _, it := range n.IntersectionSet {
		s += "&" + it.String()
	}
	return s
}
func (n Named) Intersections() []Atomic { return n.IntersectionSet }

// WithIntersections attempts to add extra intersection members; fails
// (returns ok=false) for atomics that don't permit intersections, per
// the §3.2 invariant.
func WithIntersections(a Atomic, extra []Atomic) (Atomic, bool) {
	switch v := a.(type) {
	case Named:
		v.IntersectionSet = append(append([]Atomic(nil), v.IntersectionSet...), extra...)
		return v, true
	case GenericParam:
		v.IntersectionSet = append(append([]Atomic(nil), v.IntersectionSet...), extra...)
		return v, true
	case ClassString:
		// classlike-strings permit intersections only when naming a type.
		if v.Kind == ClassStringOfType {
			return v, true
		}
		return a, false
	default:
		return a, false
	}
}

// EnumCase is a single enum case, e.g. Suit::Hearts.
type EnumCase struct {
	EnumName intern.StringId
	CaseName intern.StringId
}

func (EnumCase) atomicMarker() {}
func (e EnumCase) StructuralId() string { return fmt.Sprintf("enumcase:%d:%d", e.EnumName, e.CaseName) }
func (e EnumCase) String() string       { return fmt.Sprintf("#%d::#%d", e.EnumName, e.CaseName) }
