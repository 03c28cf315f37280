// Package assertion implements the predicate algebra the flow analyzer
// derives from conditions (`is_X`, `!is_X`, `has_key`, `count=N`, ...)
// and uses to narrow block-context types across branch edges.
package assertion

import (
	"fmt"

	"github.com/yigitcukuren/mago-sub004/internal/types"
	"github.com/yigitcukuren/mago-sub004/internal/typeops"
)

// Kind enumerates the assertion variants named in spec §4.2. The list
// is not exhaustive of every PHP-ism but covers every kind the flow
// analyzer (package analyzer) actually emits or consumes.
type Kind int

const (
	KindAny Kind = iota // unrepresentable negation sentinel
	KindIsType
	KindIsNotType
	KindTruthy
	KindFalsy
	KindIsIsset
	KindIsNotIsset
	KindInArray
	KindNotInArray
	KindHasArrayKey
	KindDoesNotHaveArrayKey
	KindHasNonNullEntry
	KindDoesNotHaveNonNullEntry
	KindArrayKeyExists
	KindArrayKeyDoesNotExist
	KindHasExactCount
	KindHasAtLeastCount
	KindHasAtMostCount
	KindCountable
	KindNotCountable
	KindIsLessThan
	KindIsLessThanOrEqual
	KindIsGreaterThan
	KindIsGreaterThanOrEqual
	KindIsEqual
	KindIsNotEqual
)

// Assertion is a narrowing predicate. Payload fields are interpreted
// according to Kind; Resolve/negate dispatch on Kind, not on a type
// hierarchy, since the family is a closed sum (design note §9).
type Assertion struct {
	Kind      Kind
	Type      *types.Union      // IsType/IsNotType
	ArrayType *types.Union      // InArray/NotInArray
	Key       types.ArrayKeyLit // HasArrayKey family
	Count     int               // count-family
}

func IsType(t *types.Union) Assertion    { return Assertion{Kind: KindIsType, Type: t} }
func IsNotType(t *types.Union) Assertion { return Assertion{Kind: KindIsNotType, Type: t} }
func Truthy() Assertion                  { return Assertion{Kind: KindTruthy} }
func Falsy() Assertion                   { return Assertion{Kind: KindFalsy} }
func IsIsset() Assertion                 { return Assertion{Kind: KindIsIsset} }
func IsNotIsset() Assertion              { return Assertion{Kind: KindIsNotIsset} }
func InArray(t *types.Union) Assertion   { return Assertion{Kind: KindInArray, ArrayType: t} }
func NotInArray(t *types.Union) Assertion { return Assertion{Kind: KindNotInArray, ArrayType: t} }
func HasArrayKey(k types.ArrayKeyLit) Assertion { return Assertion{Kind: KindHasArrayKey, Key: k} }
func DoesNotHaveArrayKey(k types.ArrayKeyLit) Assertion {
	return Assertion{Kind: KindDoesNotHaveArrayKey, Key: k}
}
func HasExactCount(n int) Assertion   { return Assertion{Kind: KindHasExactCount, Count: n} }
func HasAtLeastCount(n int) Assertion { return Assertion{Kind: KindHasAtLeastCount, Count: n} }
func HasAtMostCount(n int) Assertion  { return Assertion{Kind: KindHasAtMostCount, Count: n} }
func Countable() Assertion            { return Assertion{Kind: KindCountable} }
func NotCountable() Assertion         { return Assertion{Kind: KindNotCountable} }
func Any() Assertion                  { return Assertion{Kind: KindAny} }

func (a Assertion) String() string {
	switch a.Kind {
	case KindIsType:
		return "is(" + a.Type.String() + ")"
	case KindIsNotType:
		return "!is(" + a.Type.String() + ")"
	case KindTruthy:
		return "truthy"
	case KindFalsy:
		return "falsy"
	case KindIsIsset:
		return "isset"
	case KindIsNotIsset:
		return "!isset"
	case KindHasArrayKey:
		return "has_key(" + a.Key.String() + ")"
	case KindDoesNotHaveArrayKey:
		return "!has_key(" + a.Key.String() + ")"
	case KindHasExactCount:
		return fmt.Sprintf("count=%d", a.Count)
	case KindHasAtLeastCount:
		return fmt.Sprintf("count>=%d", a.Count)
	case KindHasAtMostCount:
		return fmt.Sprintf("count<=%d", a.Count)
	case KindCountable:
		return "countable"
	case KindNotCountable:
		return "!countable"
	case KindAny:
		return "any"
	default:
		return "assertion"
	}
}

// negationTable pairs every representable Kind with its logical
// negation; a Kind absent from the table negates to KindAny per §4.2
// ("Any when the negation is not representable", e.g.
// HasStringArrayAccess in the source system has no clean negation and
// is modeled here simply as absent from the table).
var negationTable = map[Kind]Kind{
	KindIsType:                KindIsNotType,
	KindIsNotType:             KindIsType,
	KindTruthy:                KindFalsy,
	KindFalsy:                 KindTruthy,
	KindIsIsset:               KindIsNotIsset,
	KindIsNotIsset:            KindIsIsset,
	KindInArray:               KindNotInArray,
	KindNotInArray:            KindInArray,
	KindHasArrayKey:           KindDoesNotHaveArrayKey,
	KindDoesNotHaveArrayKey:   KindHasArrayKey,
	KindHasNonNullEntry:       KindDoesNotHaveNonNullEntry,
	KindDoesNotHaveNonNullEntry: KindHasNonNullEntry,
	KindArrayKeyExists:        KindArrayKeyDoesNotExist,
	KindArrayKeyDoesNotExist:  KindArrayKeyExists,
	KindCountable:             KindNotCountable,
	KindNotCountable:          KindCountable,
	KindIsLessThan:            KindIsGreaterThanOrEqual,
	KindIsGreaterThanOrEqual:  KindIsLessThan,
	KindIsLessThanOrEqual:     KindIsGreaterThan,
	KindIsGreaterThan:         KindIsLessThanOrEqual,
	KindIsEqual:               KindIsNotEqual,
	KindIsNotEqual:            KindIsEqual,
}

// Negate returns the logical negation of a, or Any() when the negation
// is not representable. HasExactCount/HasAtLeastCount/HasAtMostCount
// are absent from negationTable (count != N, for one, is not itself an
// exact/at-least/at-most count assertion), so all three negate to Any
// like the source system's non-representable negations.
func Negate(a Assertion) Assertion {
	if neg, ok := negationTable[a.Kind]; ok {
		cp := a
		cp.Kind = neg
		return cp
	}
	return Any()
}

// IsNegationOf is symmetric: a negates b iff b negates a.
func IsNegationOf(a, b Assertion) bool {
	negA := Negate(a)
	return negA.Kind != KindAny && sameShape(negA, b)
}

func sameShape(a, b Assertion) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindIsType, KindIsNotType:
		return a.Type.String() == b.Type.String()
	case KindInArray, KindNotInArray:
		return a.ArrayType.String() == b.ArrayType.String()
	case KindHasArrayKey, KindDoesNotHaveArrayKey:
		return a.Key == b.Key
	case KindHasExactCount, KindHasAtLeastCount, KindHasAtMostCount:
		return a.Count == b.Count
	default:
		return true
	}
}

// ResolveTemplates substitutes template parameters inside a's atomic
// payloads, used when an @assert tag mentioning a generic parameter is
// applied at a call site with concrete template bindings.
func ResolveTemplates(a Assertion, result typeops.TemplateResult) Assertion {
	cp := a
	if a.Type != nil {
		cp.Type = typeops.Replace(a.Type, result)
	}
	if a.ArrayType != nil {
		cp.ArrayType = typeops.Replace(a.ArrayType, result)
	}
	return cp
}
