package typeops

import (
	"testing"

	"github.com/yigitcukuren/mago-sub004/internal/types"
)

func TestCombineIdempotence(t *testing.T) {
	i := types.Int{Variant: types.IntLiteral, LiteralVal: 3}
	got := Combine([]types.Atomic{i, i}, false)
	if len(got) != 1 {
		t.Fatalf("combine([T,T]) should collapse to [T], got %v", got)
	}
}

func TestCombineNeverIdentity(t *testing.T) {
	i := types.Int{Variant: types.IntLiteral, LiteralVal: 3}
	got := Combine([]types.Atomic{i, types.Never{}}, false)
	if len(got) != 1 {
		t.Fatalf("combine([T, Never]) should collapse to [T], got %v", got)
	}
	if _, ok := got[0].(types.Int); !ok {
		t.Fatalf("expected Int survivor, got %T", got[0])
	}
}

func TestCombineEmptyYieldsMixed(t *testing.T) {
	got := Combine(nil, false)
	if _, ok := got[0].(types.Mixed); !ok {
		t.Fatalf("expected Mixed for empty combine, got %T", got[0])
	}
}

func TestCombineTrueFalseIsBool(t *testing.T) {
	got := Combine([]types.Atomic{types.Bool{Variant: types.BoolTrue}, types.Bool{Variant: types.BoolFalse}}, false)
	if len(got) != 1 {
		t.Fatalf("expected single bool, got %v", got)
	}
	b, ok := got[0].(types.Bool)
	if !ok || b.Variant != types.BoolAny {
		t.Fatalf("expected bool(any), got %#v", got[0])
	}
}

func TestSubtypeReflexivity(t *testing.T) {
	scalars := []types.Atomic{
		types.Int{Variant: types.IntAny},
		types.StringAtomic{},
		types.Bool{Variant: types.BoolAny},
		types.Float{},
		types.Null{},
	}
	for _, a := range scalars {
		u := types.Single(a)
		ok, _ := IsContainedBy(u, u, Options{}, nil)
		if !ok {
			t.Fatalf("%s is not contained by itself", a)
		}
	}
}

func TestSubtypeTransitivity(t *testing.T) {
	// int literal 5 ⊑ int<0,10> ⊑ int (any)
	lit := types.Single(types.Int{Variant: types.IntLiteral, LiteralVal: 5})
	rng := types.Single(types.Int{Variant: types.IntRange, Lo: 0, Hi: 10})
	any := types.Single(types.Int{Variant: types.IntAny})

	ok1, _ := IsContainedBy(lit, rng, Options{}, nil)
	ok2, _ := IsContainedBy(rng, any, Options{}, nil)
	ok3, _ := IsContainedBy(lit, any, Options{}, nil)
	if !ok1 || !ok2 || !ok3 {
		t.Fatalf("expected transitive chain to hold: %v %v %v", ok1, ok2, ok3)
	}
}

func TestNeverContainedByAnything(t *testing.T) {
	never := types.Single(types.Never{})
	other := types.Single(types.StringAtomic{})
	ok, _ := IsContainedBy(never, other, Options{}, nil)
	if !ok {
		t.Fatalf("never ⊑ anything must hold")
	}
}

func TestAnythingContainedByMixed(t *testing.T) {
	mixed := types.Single(types.Mixed{})
	s := types.Single(types.StringAtomic{})
	ok, res := IsContainedBy(s, mixed, Options{}, nil)
	if !ok {
		t.Fatalf("anything ⊑ mixed must hold")
	}
	if res.TypeCoercedFromMixed {
		t.Fatalf("child isn't mixed, coercion-from-mixed should not fire")
	}
}

func TestMixedChildCoercesIntoNarrowerParent(t *testing.T) {
	mixed := types.Single(types.Mixed{})
	s := types.Single(types.StringAtomic{})
	ok, res := IsContainedBy(mixed, s, Options{}, nil)
	if !ok || !res.TypeCoercedFromMixed {
		t.Fatalf("expected coercion from mixed to a narrower parent")
	}
}

func TestTemplateRoundTripWithMixed(t *testing.T) {
	gp := types.GenericParam{ParameterName: "T", DefiningEntity: "C"}
	u := types.Single(gp)
	result := TemplateResult{{TemplateName: "T", DefiningEntity: "C"}: types.MixedUnion()}
	replaced := Replace(u, result)
	ok, _ := IsContainedBy(replaced, types.MixedUnion(), Options{}, nil)
	if !ok {
		t.Fatalf("substituting T with mixed then comparing to mixed should hold")
	}
}

func TestExpansionIdempotence(t *testing.T) {
	u := types.Single(types.List{Element: types.Single(types.Int{Variant: types.IntAny})})
	once := Expand(u, ExpandOptions{}, nil)
	twice := Expand(once, ExpandOptions{}, nil)
	if once.String() != twice.String() {
		t.Fatalf("expand(expand(u)) != expand(u): %s vs %s", once.String(), twice.String())
	}
}

func TestArrayKeyAndListSubtype(t *testing.T) {
	// list<int> vs keyed_array(int-keyed)
	listInt := types.Single(types.List{Element: types.Single(types.Int{Variant: types.IntAny})})
	keyedAny := types.Single(types.KeyedArray{Key: types.Single(types.Int{Variant: types.IntAny}), Value: types.Single(types.Int{Variant: types.IntAny})})
	ok, _ := IsContainedBy(listInt, keyedAny, Options{}, nil)
	if !ok {
		t.Fatalf("list<int> should be contained by array<int,int>")
	}
}
