package types

import "testing"

func TestNewUnionDeduplicates(t *testing.T) {
	u := NewUnion(Int{Variant: IntAny}, Int{Variant: IntAny}, Bool{Variant: BoolAny})
	if len(u.Atomics) != 2 {
		t.Fatalf("expected 2 atomics after dedup, got %d (%s)", len(u.Atomics), u.String())
	}
}

func TestEmptyUnionBecomesMixed(t *testing.T) {
	u := NewUnion()
	if len(u.Atomics) != 1 {
		t.Fatalf("expected 1 atomic")
	}
	if _, ok := u.Atomics[0].(Mixed); !ok {
		t.Fatalf("expected Mixed, got %T", u.Atomics[0])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	u := NewUnion(Int{Variant: IntAny})
	c := u.Clone()
	c.Atomics = append(c.Atomics, Bool{Variant: BoolAny})
	if len(u.Atomics) != 1 {
		t.Fatalf("clone mutated original")
	}
}

func TestIntersectionsRejectedOnScalars(t *testing.T) {
	_, ok := WithIntersections(Int{Variant: IntAny}, []Atomic{AnyObject{}})
	if ok {
		t.Fatalf("expected intersections to be rejected on Int")
	}
}
