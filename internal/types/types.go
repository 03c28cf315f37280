// Package types is the algebraic representation of the analyzer's type
// lattice: atomic variants combined into ordered unions, plus the scalar
// and container payloads every other component reasons about.
//
// Types are plain immutable-by-convention structs; callers clone by
// copying slices, the same "cheaply cloneable, small expected fan-out"
// shape the design notes call for. Nothing here owns a reference back to
// the AST: only spans travel with a type.
package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yigitcukuren/mago-sub004/internal/intern"
)

// Atomic is a single type variant appearing as a member of a Union.
type Atomic interface {
	// StructuralId is a string key two structurally-identical atomics
	// agree on; used to deduplicate atomics inside a Union.
	StructuralId() string
	String() string
	atomicMarker()
}

// Union is an ordered set of Atomics plus the flags the analyzer's flow
// logic attaches to an expression's inferred type.
type Union struct {
	Atomics []Atomic

	PossiblyUndefined         bool
	PossiblyUndefinedFromTry  bool
	IgnoreNullableIssues      bool
	IgnoreFalsableIssues      bool
	HadTemplate               bool
	ReferenceFree             bool
}

// NewUnion builds a Union from atomics, deduplicating by structural id
// and preserving first-seen order (the order matters for deterministic
// String() output and for diagnostics that quote "mixed member" lists).
func NewUnion(atomics ...Atomic) *Union {
	seen := make(map[string]bool, len(atomics))
	out := make([]Atomic, 0, len(atomics))
	for _, a := range atomics {
		key := a.StructuralId()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	if len(out) == 0 {
		out = []Atomic{Mixed{Variant: MixedVanilla}}
	}
	return &Union{Atomics: out}
}

// Single is shorthand for a one-atomic union.
func Single(a Atomic) *Union { return NewUnion(a) }

// Clone returns a Union sharing no mutable backing array with u.
func (u *Union) Clone() *Union {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Atomics = append([]Atomic(nil), u.Atomics...)
	return &cp
}

// WithFlags returns a copy of u with the given flag-mutator applied,
// leaving u untouched. Used by the analyzer when it needs to mark a
// variable possibly-undefined without mutating the shared type of the
// expression that produced it.
func (u *Union) WithFlags(mutate func(*Union)) *Union {
	cp := u.Clone()
	mutate(cp)
	return cp
}

func (u *Union) String() string {
	if u == nil {
		return "mixed"
	}
	parts := make([]string, len(u.Atomics))
	for i, a := range u.Atomics {
		parts[i] = a.String()
	}
	s := strings.Join(parts, "|")
	if u.PossiblyUndefined {
		s += "?"
	}
	return s
}

// IsSingle reports whether u has exactly one atomic member.
func (u *Union) IsSingle() bool { return len(u.Atomics) == 1 }

// SingleAtomic returns the sole atomic of a single-member union, or nil.
func (u *Union) SingleAtomic() Atomic {
	if u.IsSingle() {
		return u.Atomics[0]
	}
	return nil
}

// HasAtomic reports whether any member matches predicate.
func (u *Union) HasAtomic(pred func(Atomic) bool) bool {
	for _, a := range u.Atomics {
		if pred(a) {
			return true
		}
	}
	return false
}

// SourceSpan identifies a byte range within one source file for
// diagnostics; it never carries AST pointers, only ids and offsets.
type SourceSpan struct {
	SourceId intern.StringId
	Start    int
	End      int
}

func (s SourceSpan) String() string {
	return fmt.Sprintf("%d:%d-%d", s.SourceId, s.Start, s.End)
}

// ---- Scalars ----

// IntVariantKind distinguishes the shapes an int atomic may take.
type IntVariantKind int

const (
	IntAny IntVariantKind = iota
	IntRange
	IntFrom
	IntTo
	IntLiteral
)

type Int struct {
	Variant    IntVariantKind
	Lo, Hi     int64 // valid for Range/From/To as applicable
	LiteralVal int64 // valid for Literal
}

func (Int) atomicMarker() {}
func (i Int) StructuralId() string {
	return fmt.Sprintf("int:%d:%d:%d:%d", i.Variant, i.Lo, i.Hi, i.LiteralVal)
}
func (i Int) String() string {
	switch i.Variant {
	case IntRange:
		return fmt.Sprintf("int<%d, %d>", i.Lo, i.Hi)
	case IntFrom:
		return fmt.Sprintf("int<%d, max>", i.Lo)
	case IntTo:
		return fmt.Sprintf("int<min, %d>", i.Hi)
	case IntLiteral:
		return fmt.Sprintf("%d", i.LiteralVal)
	default:
		return "int"
	}
}

type Float struct {
	IsLiteral  bool
	LiteralVal float64
}

func (Float) atomicMarker() {}
func (f Float) StructuralId() string {
	if f.IsLiteral {
		return fmt.Sprintf("float:%v", f.LiteralVal)
	}
	return "float:any"
}
func (f Float) String() string {
	if f.IsLiteral {
		return fmt.Sprintf("%v", f.LiteralVal)
	}
	return "float"
}

// String atomic property lattice: literal ⊑ non_empty ⊑ general, with
// numeric/lowercase/truthy as orthogonal tags.
type StringAtomic struct {
	Numeric              bool
	Truthy               bool
	NonEmpty             bool
	Lowercase            bool
	UnspecifiedLiteral   bool // "some literal string, value unknown"
	IsLiteral            bool
	LiteralVal           string
}

func (StringAtomic) atomicMarker() {}
func (s StringAtomic) StructuralId() string {
	return fmt.Sprintf("string:%v:%v:%v:%v:%v:%v:%q", s.Numeric, s.Truthy, s.NonEmpty, s.Lowercase, s.UnspecifiedLiteral, s.IsLiteral, s.LiteralVal)
}
func (s StringAtomic) String() string {
	if s.IsLiteral {
		return fmt.Sprintf("%q", s.LiteralVal)
	}
	if s.UnspecifiedLiteral {
		return "literal-string"
	}
	switch {
	case s.NonEmpty:
		return "non-empty-string"
	default:
		return "string"
	}
}

type BoolVariant int

const (
	BoolAny BoolVariant = iota
	BoolTrue
	BoolFalse
)

type Bool struct{ Variant BoolVariant }

func (Bool) atomicMarker() {}
func (b Bool) StructuralId() string { return fmt.Sprintf("bool:%d", b.Variant) }
func (b Bool) String() string {
	switch b.Variant {
	case BoolTrue:
		return "true"
	case BoolFalse:
		return "false"
	default:
		return "bool"
	}
}

type ArrayKey struct{}

func (ArrayKey) atomicMarker()          {}
func (ArrayKey) StructuralId() string   { return "array-key" }
func (ArrayKey) String() string         { return "array-key" }

type Numeric struct{}

func (Numeric) atomicMarker()          {}
func (Numeric) StructuralId() string   { return "numeric" }
func (Numeric) String() string         { return "numeric" }

// ClassLikeSelector distinguishes what a classlike-string can denote.
type ClassLikeSelector int

const (
	SelectorClass ClassLikeSelector = iota
	SelectorInterface
	SelectorEnum
	SelectorTrait
)

type ClassStringKind int

const (
	ClassStringGeneral ClassStringKind = iota
	ClassStringLiteral
	ClassStringOfType   // class-string<Foo>
	ClassStringTemplate // class-string-of template param
)

type ClassString struct {
	Selector     ClassLikeSelector
	Kind         ClassStringKind
	LiteralName  intern.StringId // valid for ClassStringLiteral
	OfType       *Union          // valid for ClassStringOfType
	TemplateName string          // valid for ClassStringTemplate
}

func (ClassString) atomicMarker() {}
func (c ClassString) StructuralId() string {
	of := ""
	if c.OfType != nil {
		of = c.OfType.String()
	}
	return fmt.Sprintf("classstring:%d:%d:%d:%s:%s", c.Selector, c.Kind, c.LiteralName, of, c.TemplateName)
}
func (c ClassString) String() string {
	switch c.Kind {
	case ClassStringLiteral:
		return fmt.Sprintf("class-string(%d)", c.LiteralName)
	case ClassStringOfType:
		return fmt.Sprintf("class-string<%s>", c.OfType.String())
	case ClassStringTemplate:
		return fmt.Sprintf("class-string-of<%s>", c.TemplateName)
	default:
		return "class-string"
	}
}

// ---- Resource, sentinels ----

type ResourceState int

const (
	ResourceUnknown ResourceState = iota
	ResourceOpen
	ResourceClosed
)

type Resource struct{ State ResourceState }

func (Resource) atomicMarker()        {}
func (r Resource) StructuralId() string { return fmt.Sprintf("resource:%d", r.State) }
func (r Resource) String() string       { return "resource" }

type Null struct{}

func (Null) atomicMarker()        {}
func (Null) StructuralId() string { return "null" }
func (Null) String() string       { return "null" }

type Void struct{}

func (Void) atomicMarker()        {}
func (Void) StructuralId() string { return "void" }
func (Void) String() string       { return "void" }

type Never struct{}

func (Never) atomicMarker()        {}
func (Never) StructuralId() string { return "never" }
func (Never) String() string       { return "never" }

type MixedVariant int

const (
	MixedVanilla MixedVariant = iota
	MixedAny
	MixedMaybeFromLoop
)

type Mixed struct{ Variant MixedVariant }

func (Mixed) atomicMarker()        {}
func (m Mixed) StructuralId() string { return fmt.Sprintf("mixed:%d", m.Variant) }
func (m Mixed) String() string       { return "mixed" }

type Placeholder struct{}

func (Placeholder) atomicMarker()        {}
func (Placeholder) StructuralId() string { return "placeholder" }
func (Placeholder) String() string       { return "_" }

// MixedUnion is the canonical "mixed" type returned whenever a combine
// would otherwise produce an empty union (an invariant of §3.2).
func MixedUnion() *Union { return NewUnion(Mixed{Variant: MixedVanilla}) }

// NeverUnion is the identity element for union combination.
func NeverUnion() *Union { return NewUnion(Never{}) }

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
