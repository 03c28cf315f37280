package types

import "fmt"

// KeyOf is key_of<T>: the union of a keyed container's key type.
type KeyOf struct{ Target *Union }

func (KeyOf) atomicMarker()        {}
func (k KeyOf) StructuralId() string { return "keyof:" + k.Target.String() }
func (k KeyOf) String() string       { return fmt.Sprintf("key-of<%s>", k.Target.String()) }

// ValueOf is value_of<T>.
type ValueOf struct{ Target *Union }

func (ValueOf) atomicMarker()        {}
func (v ValueOf) StructuralId() string { return "valueof:" + v.Target.String() }
func (v ValueOf) String() string       { return fmt.Sprintf("value-of<%s>", v.Target.String()) }

// PropertiesOf is properties_of<T>, a keyed_array of a class's
// declared property types.
type PropertiesOf struct{ Target *Union }

func (PropertiesOf) atomicMarker()        {}
func (p PropertiesOf) StructuralId() string { return "propertiesof:" + p.Target.String() }
func (p PropertiesOf) String() string       { return fmt.Sprintf("properties-of<%s>", p.Target.String()) }

// Conditional is `T is [not] U ? A : B`, evaluated once both branches
// resolve (see typeops.Expand).
type Conditional struct {
	Subject  *Union
	Target   *Union
	Negated  bool
	IfTrue   *Union
	IfFalse  *Union
}

func (Conditional) atomicMarker() {}
func (c Conditional) StructuralId() string {
	return fmt.Sprintf("cond:%s:%v:%s:%s:%s", c.Subject.String(), c.Negated, c.Target.String(), c.IfTrue.String(), c.IfFalse.String())
}
func (c Conditional) String() string {
	not := ""
	if c.Negated {
		not = "not "
	}
	return fmt.Sprintf("(%s is %s%s ? %s : %s)", c.Subject.String(), not, c.Target.String(), c.IfTrue.String(), c.IfFalse.String())
}

// GenericParam is a generic/template parameter `T`.
type GenericParam struct {
	ParameterName   string
	DefiningEntity  string
	Constraint      *Union
	IntersectionSet []Atomic
}

func (GenericParam) atomicMarker() {}
func (g GenericParam) StructuralId() string {
	c := ""
	if g.Constraint != nil {
		c = g.Constraint.String()
	}
	return fmt.Sprintf("generic:%s:%s:%s", g.ParameterName, g.DefiningEntity, c)
}
func (g GenericParam) String() string { return g.ParameterName }
func (g GenericParam) Intersections() []Atomic { return g.IntersectionSet }

// MemberSelector distinguishes the shapes a MemberReference selector
// takes: a bare identifier, the wildcard `*`, or a prefix/suffix match.
type MemberSelectorKind int

const (
	SelectorIdent MemberSelectorKind = iota
	SelectorWildcard
	SelectorPrefix
	SelectorSuffix
)

type MemberSelector struct {
	Kind  MemberSelectorKind
	Ident string // for Ident/Prefix/Suffix, the identifier or partial text
}

// MemberReference is an unresolved `ClassName::SELECTOR` reference,
// resolved against class constants/enum cases during expansion.
type MemberReference struct {
	Class    string
	Selector MemberSelector
}

func (MemberReference) atomicMarker() {}
func (m MemberReference) StructuralId() string {
	return fmt.Sprintf("memberref:%s:%d:%s", m.Class, m.Selector.Kind, m.Selector.Ident)
}
func (m MemberReference) String() string {
	switch m.Selector.Kind {
	case SelectorWildcard:
		return m.Class + "::*"
	case SelectorPrefix:
		return m.Class + "::" + m.Selector.Ident + "*"
	case SelectorSuffix:
		return m.Class + "::*" + m.Selector.Ident
	default:
		return m.Class + "::" + m.Selector.Ident
	}
}
