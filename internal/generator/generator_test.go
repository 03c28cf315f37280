package generator

import (
	"testing"

	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/typeops"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

type fakeIndex struct{}

func (fakeIndex) IsClassSubtypeOf(child, parent intern.StringId, allowEquality bool) bool {
	return true
}
func (fakeIndex) TemplateVariance(intern.StringId, int) typeops.Variance { return typeops.VarianceCovariant }
func (fakeIndex) ClassLikeExists(string) bool               { return true }
func (fakeIndex) ClassLikeKind(string) (ClassLikeKind, bool) { return KindClass, true }
func (fakeIndex) InternLowered(s string) intern.StringId    { return intern.StringId(len(s)) }

func TestDestructureIterableOnly(t *testing.T) {
	declared := types.NewUnion(types.Iterable{
		Key:   types.NewUnion(types.Int{Variant: types.IntAny}),
		Value: types.NewUnion(types.StringAtomic{}),
	})
	shape, ok := Destructure(declared, fakeIndex{})
	if !ok {
		t.Fatalf("expected iterable to destructure")
	}
	if !shape.IsIterableOnly {
		t.Fatalf("expected IsIterableOnly")
	}
}

func TestDestructureFailsOnUnrelatedType(t *testing.T) {
	declared := types.NewUnion(types.Int{Variant: types.IntAny})
	_, ok := Destructure(declared, fakeIndex{})
	if ok {
		t.Fatalf("expected destructure to fail for a non-generator, non-iterable return type")
	}
}

func TestCheckYieldValueFlagsKeyMismatch(t *testing.T) {
	shape := GeneratorShape{
		Key:    types.NewUnion(types.StringAtomic{}),
		Value:  types.NewUnion(types.Mixed{Variant: types.MixedVanilla}),
		Send:   types.NewUnion(types.Mixed{Variant: types.MixedVanilla}),
		Return: types.NewUnion(types.Mixed{Variant: types.MixedVanilla}),
	}
	sink := diagnostics.NewSink()
	CheckYieldValue(shape, types.NewUnion(types.StringAtomic{}), types.SourceSpan{}, fakeIndex{}, sink)
	if sink.CountOf(diagnostics.InvalidYieldKeyType) != 1 {
		t.Fatalf("expected one InvalidYieldKeyType, got %d", sink.CountOf(diagnostics.InvalidYieldKeyType))
	}
}

func TestCheckYieldFromNonIterable(t *testing.T) {
	shape := GeneratorShape{
		Key:    types.NewUnion(types.Int{Variant: types.IntAny}),
		Value:  types.NewUnion(types.StringAtomic{}),
		Send:   types.NewUnion(types.Mixed{Variant: types.MixedVanilla}),
		Return: types.NewUnion(types.Mixed{Variant: types.MixedVanilla}),
	}
	sink := diagnostics.NewSink()
	CheckYieldFrom(shape, types.NewUnion(types.Int{Variant: types.IntAny}), types.SourceSpan{}, fakeIndex{}, sink)
	if sink.CountOf(diagnostics.YieldFromNonIterable) != 1 {
		t.Fatalf("expected one YieldFromNonIterable")
	}
}

func TestResolveCatchTypesEnumRejected(t *testing.T) {
	sink := diagnostics.NewSink()
	idx := fakeEnumIndex{}
	res := ResolveCatchTypes([]string{"MoveEnum"}, types.SourceSpan{}, "Throwable", idx, sink)
	if sink.CountOf(diagnostics.InvalidCatchTypeNotClassOrInterface) != 1 {
		t.Fatalf("expected InvalidCatchTypeNotClassOrInterface")
	}
	if !res.FellBack {
		t.Fatalf("expected fallback to root throwable when no valid candidate remains")
	}
}

type fakeEnumIndex struct{ fakeIndex }

func (fakeEnumIndex) ClassLikeKind(string) (ClassLikeKind, bool) { return KindEnum, true }

func TestResolveCatchTypesDedup(t *testing.T) {
	sink := diagnostics.NewSink()
	res := ResolveCatchTypes([]string{"FooError", "FooError"}, types.SourceSpan{}, "Throwable", fakeIndex{}, sink)
	if sink.CountOf(diagnostics.DuplicateCaughtType) != 1 {
		t.Fatalf("expected one DuplicateCaughtType")
	}
	if len(res.ClassNames) != 1 {
		t.Fatalf("expected a single accepted class name, got %d", len(res.ClassNames))
	}
}
