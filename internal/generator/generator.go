// Package generator specializes the statement/expression analyzer for
// two constructs that need their own reconciliation algorithm: yield
// expressions against a function-like's declared generator shape, and
// catch-clause type resolution (spec §4.5.1, §4.6).
package generator

import (
	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/typeops"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// ClassIndex is the slice of the codebase index this package needs:
// subtype queries for yield reconciliation and throwable-root /
// class-existence checks for catch resolution.
type ClassIndex interface {
	typeops.ClassIndex
	ClassLikeExists(name string) bool
	ClassLikeKind(name string) (ClassLikeKind, bool)
	InternLowered(s string) intern.StringId
}

// ClassLikeKind mirrors codebase.ClassLikeKind without importing it
// (codebase already imports typeops and generator sits alongside it;
// this interface-based seam avoids a second import cycle candidate).
type ClassLikeKind int

const (
	KindClass ClassLikeKind = iota
	KindInterface
	KindTrait
	KindEnum
)

const generatorClassName = "Generator"
const iterableClassName = "iterable"

// GeneratorShape is the destructured (K, V, S, R) of a declared return
// type, per spec §4.6 step 1.
type GeneratorShape struct {
	Key, Value, Send, Return *types.Union
	IsIterableOnly           bool // declared as iterable<K,V>, not Generator<K,V,S,R>
}

// Destructure resolves declaredReturn into a GeneratorShape. It reports
// ok=false (caller must raise InvalidGeneratorReturnType and stop
// checking yields in this function-like) when declaredReturn is
// neither a Generator nor an iterable. index resolves the interned
// name behind a Named atomic back to class-like identity.
func Destructure(declaredReturn *types.Union, index ClassIndex) (GeneratorShape, bool) {
	if declaredReturn == nil {
		return GeneratorShape{}, false
	}
	generatorId := index.InternLowered(generatorClassName)
	iterableId := index.InternLowered(iterableClassName)
	for _, a := range declaredReturn.Atomics {
		named, ok := a.(types.Named)
		if ok && named.Name == generatorId {
			return shapeFromParams(named.TypeParameters, false), true
		}
	}
	for _, a := range declaredReturn.Atomics {
		if it, ok := a.(types.Iterable); ok {
			return GeneratorShape{Key: it.Key, Value: it.Value, Send: types.NewUnion(types.Mixed{Variant: types.MixedVanilla}), Return: types.NewUnion(types.Mixed{Variant: types.MixedVanilla}), IsIterableOnly: true}, true
		}
		if named, ok := a.(types.Named); ok && named.Name == iterableId {
			return shapeFromParams(named.TypeParameters, true), true
		}
	}
	return GeneratorShape{}, false
}

func shapeFromParams(params []*types.Union, iterableOnly bool) GeneratorShape {
	mixedU := func() *types.Union { return types.NewUnion(types.Mixed{Variant: types.MixedVanilla}) }
	get := func(i int) *types.Union {
		if i < len(params) && params[i] != nil {
			return params[i]
		}
		return mixedU()
	}
	return GeneratorShape{
		Key:            get(0),
		Value:          get(1),
		Send:           get(2),
		Return:         get(3),
		IsIterableOnly: iterableOnly,
	}
}

// CheckYieldValue implements §4.6 step 2: `yield v`. The implicit key
// is int. Returns the type of the yield expression itself (Send).
func CheckYieldValue(shape GeneratorShape, valueType *types.Union, span types.SourceSpan, index typeops.ClassIndex, sink *diagnostics.Sink) *types.Union {
	implicitKey := types.NewUnion(types.Int{Variant: types.IntAny})
	if ok, _ := typeops.IsContainedBy(implicitKey, shape.Key, typeops.Options{}, index); !ok {
		sink.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.InvalidYieldKeyType,
			Message: "implicit integer yield key is not contained by the declared key type " + shape.Key.String(),
			Primary: diagnostics.Annotation{Span: span},
		})
	}
	if ok, _ := typeops.IsContainedBy(valueType, shape.Value, typeops.Options{}, index); !ok {
		sink.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.InvalidYieldValueType,
			Message: "yielded value type " + valueType.String() + " is not contained by " + shape.Value.String(),
			Primary: diagnostics.Annotation{Span: span},
		})
	}
	return shape.Send
}

// CheckYieldKeyValue implements §4.6 step 3: `yield k => v`.
func CheckYieldKeyValue(shape GeneratorShape, keyType, valueType *types.Union, span types.SourceSpan, index typeops.ClassIndex, sink *diagnostics.Sink) *types.Union {
	if ok, _ := typeops.IsContainedBy(keyType, shape.Key, typeops.Options{}, index); !ok {
		sink.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.InvalidYieldKeyType,
			Message: "yielded key type " + keyType.String() + " is not contained by " + shape.Key.String(),
			Primary: diagnostics.Annotation{Span: span},
		})
	}
	if ok, _ := typeops.IsContainedBy(valueType, shape.Value, typeops.Options{}, index); !ok {
		sink.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.InvalidYieldValueType,
			Message: "yielded value type " + valueType.String() + " is not contained by " + shape.Value.String(),
			Primary: diagnostics.Annotation{Span: span},
		})
	}
	return shape.Send
}

// CheckYieldFrom implements §4.6 step 4: `yield from e`, iterating
// every atomic of sourceType independently (Open Question 1: continue
// checking remaining atomics, one YieldFromNonIterable per offender).
func CheckYieldFrom(shape GeneratorShape, sourceType *types.Union, span types.SourceSpan, index ClassIndex, sink *diagnostics.Sink) *types.Union {
	if sourceType == nil {
		sink.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.UnknownYieldFromIteratorType,
			Message: "could not determine the type of the yield from source",
			Primary: diagnostics.Annotation{Span: span},
		})
		return shape.Return
	}
	for _, a := range sourceType.Atomics {
		checkYieldFromAtomic(shape, a, span, index, sink)
	}
	return shape.Return
}

func checkYieldFromAtomic(shape GeneratorShape, a types.Atomic, span types.SourceSpan, index ClassIndex, sink *diagnostics.Sink) {
	switch v := a.(type) {
	case types.Named:
		if v.Name == index.InternLowered(generatorClassName) {
			inner := shapeFromParams(v.TypeParameters, false)
			if ok, _ := typeops.IsContainedBy(shape.Send, inner.Send, typeops.Options{}, index); !ok {
				sink.Add(diagnostics.Diagnostic{
					Kind:    diagnostics.YieldFromInvalidSendType,
					Message: "outer send type " + shape.Send.String() + " is not contained by the inner generator's send type " + inner.Send.String(),
					Primary: diagnostics.Annotation{Span: span},
				})
			}
			if ok, _ := typeops.IsContainedBy(inner.Value, shape.Value, typeops.Options{}, index); !ok {
				sink.Add(diagnostics.Diagnostic{
					Kind:    diagnostics.YieldFromInvalidValueType,
					Message: "inner generator value type " + inner.Value.String() + " is not contained by " + shape.Value.String(),
					Primary: diagnostics.Annotation{Span: span},
				})
			}
			if ok, _ := typeops.IsContainedBy(inner.Key, shape.Key, typeops.Options{}, index); !ok {
				sink.Add(diagnostics.Diagnostic{
					Kind:    diagnostics.YieldFromInvalidKeyType,
					Message: "inner generator key type " + inner.Key.String() + " is not contained by " + shape.Key.String(),
					Primary: diagnostics.Annotation{Span: span},
				})
			}
			return
		}
	case types.Iterable:
		if ok, _ := typeops.IsContainedBy(v.Value, shape.Value, typeops.Options{}, index); !ok {
			sink.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.YieldFromInvalidValueType,
				Message: "iterable value type " + v.Value.String() + " is not contained by " + shape.Value.String(),
				Primary: diagnostics.Annotation{Span: span},
			})
		}
		if ok, _ := typeops.IsContainedBy(v.Key, shape.Key, typeops.Options{}, index); !ok {
			sink.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.YieldFromInvalidKeyType,
				Message: "iterable key type " + v.Key.String() + " is not contained by " + shape.Key.String(),
				Primary: diagnostics.Annotation{Span: span},
			})
		}
		return
	case types.List:
		intKey := types.NewUnion(types.Int{Variant: types.IntAny})
		if ok, _ := typeops.IsContainedBy(intKey, shape.Key, typeops.Options{}, index); !ok {
			sink.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.YieldFromInvalidKeyType,
				Message: "list keys are int, not contained by " + shape.Key.String(),
				Primary: diagnostics.Annotation{Span: span},
			})
		}
		if v.Element != nil {
			if ok, _ := typeops.IsContainedBy(v.Element, shape.Value, typeops.Options{}, index); !ok {
				sink.Add(diagnostics.Diagnostic{
					Kind:    diagnostics.YieldFromInvalidValueType,
					Message: "list element type " + v.Element.String() + " is not contained by " + shape.Value.String(),
					Primary: diagnostics.Annotation{Span: span},
				})
			}
		}
		return
	}
	sink.Add(diagnostics.Diagnostic{
		Kind:    diagnostics.YieldFromNonIterable,
		Message: a.String() + " is not iterable",
		Primary: diagnostics.Annotation{Span: span},
	})
}
