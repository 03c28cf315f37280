package context

import (
	"testing"

	"github.com/yigitcukuren/mago-sub004/internal/types"
)

func TestCloneSharesLocalsUntilMutated(t *testing.T) {
	bc := New(&ScopeInfo{Name: "f"})
	bc.SetLocal("x", types.NewUnion(types.Int{Variant: types.IntAny}))

	clone := bc.Clone()
	if len(clone.Locals) != 1 {
		t.Fatalf("expected clone to see parent's locals")
	}

	clone.SetLocal("y", types.NewUnion(types.StringAtomic{}))
	if _, ok := bc.Locals["y"]; ok {
		t.Fatalf("mutating the clone must not affect the original (copy-on-write)")
	}
	if _, ok := clone.Locals["x"]; !ok {
		t.Fatalf("clone should still see the original's prior assignment")
	}
}

func TestMarkPossiblyUndefinedClearedOnAssign(t *testing.T) {
	bc := New(&ScopeInfo{Name: "f"})
	bc.MarkPossiblyUndefined("x")
	if !bc.PossiblyUndefinedVariables["x"] {
		t.Fatalf("expected x to be marked possibly undefined")
	}
	bc.SetLocal("x", types.NewUnion(types.Int{Variant: types.IntAny}))
	if bc.PossiblyUndefinedVariables["x"] {
		t.Fatalf("assigning x should clear the possibly-undefined flag")
	}
}

func TestFinallyScopeMergesContributions(t *testing.T) {
	fs := NewFinallyScope()
	fs.Contribute(map[string]*types.Union{"x": types.NewUnion(types.Int{Variant: types.IntAny})})
	fs.Contribute(map[string]*types.Union{"x": types.NewUnion(types.StringAtomic{})})

	merged := fs.Merged(func(a, b *types.Union) *types.Union {
		return types.NewUnion(append(append([]types.Atomic{}, a.Atomics...), b.Atomics...)...)
	})
	if len(merged["x"].Atomics) != 2 {
		t.Fatalf("expected both contributions merged into x's type, got %v", merged["x"])
	}
}

func TestAddAndRemoveThrown(t *testing.T) {
	bc := New(&ScopeInfo{Name: "f"})
	span := types.SourceSpan{Start: 1, End: 2}
	bc.AddThrown(7, span)
	if len(bc.PossiblyThrownExceptions[7]) != 1 {
		t.Fatalf("expected one thrown span recorded")
	}
	bc.RemoveThrown(7)
	if _, ok := bc.PossiblyThrownExceptions[7]; ok {
		t.Fatalf("expected RemoveThrown to delete the entry")
	}
}
