package assertion

import (
	"testing"

	"github.com/yigitcukuren/mago-sub004/internal/types"
)

func TestNegationInvolution(t *testing.T) {
	representable := []Assertion{
		IsType(types.Single(types.Int{})),
		IsNotType(types.Single(types.StringAtomic{})),
		Truthy(),
		Falsy(),
		IsIsset(),
		IsNotIsset(),
		Countable(),
		NotCountable(),
	}
	for _, a := range representable {
		got := Negate(Negate(a))
		if got.Kind != a.Kind {
			t.Fatalf("negate(negate(%s)) != %s, got kind %d want %d", a, a, got.Kind, a.Kind)
		}
	}
}

func TestNegateUnrepresentableYieldsAny(t *testing.T) {
	a := Assertion{Kind: KindHasExactCount, Count: 3}
	if Negate(a).Kind != KindAny {
		t.Fatalf("expected Any for unrepresentable negation")
	}
}

func TestIsNegationOfSymmetric(t *testing.T) {
	a := Truthy()
	b := Falsy()
	if !IsNegationOf(a, b) || !IsNegationOf(b, a) {
		t.Fatalf("expected symmetric negation relationship")
	}
}

func TestApplyTruthyNarrowsOutFalseAndNull(t *testing.T) {
	u := types.NewUnion(types.Bool{Variant: types.BoolAny}, types.Null{}, types.Int{Variant: types.IntAny})
	narrowed := Apply(Truthy(), u, nil)
	for _, a := range narrowed.Atomics {
		if _, ok := a.(types.Null); ok {
			t.Fatalf("truthy narrowing must remove null")
		}
		if b, ok := a.(types.Bool); ok && b.Variant == types.BoolFalse {
			t.Fatalf("truthy narrowing must remove false")
		}
	}
}

func TestApplyIsNotTypeRemovesMatchingMember(t *testing.T) {
	u := types.NewUnion(types.Int{Variant: types.IntAny}, types.StringAtomic{})
	narrowed := Apply(IsNotType(types.Single(types.Int{Variant: types.IntAny})), u, nil)
	if len(narrowed.Atomics) != 1 {
		t.Fatalf("expected int removed, got %s", narrowed.String())
	}
	if _, ok := narrowed.Atomics[0].(types.StringAtomic); !ok {
		t.Fatalf("expected remaining atomic to be string, got %T", narrowed.Atomics[0])
	}
}
