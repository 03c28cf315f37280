package analyzer

import (
	"testing"

	"github.com/yigitcukuren/mago-sub004/internal/ast"
	"github.com/yigitcukuren/mago-sub004/internal/codebase"
	"github.com/yigitcukuren/mago-sub004/internal/config"
	blockctx "github.com/yigitcukuren/mago-sub004/internal/context"
	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

func span(n int) types.SourceSpan { return types.SourceSpan{Start: n, End: n + 1} }

func newTestAnalyzer(t *testing.T) (*Analyzer, *intern.Interner) {
	t.Helper()
	in := intern.New()
	ix := codebase.New(in)
	if err := ix.Populate(); err != nil {
		t.Fatal(err)
	}
	return New(ix, diagnostics.NewSink(), config.Default(), 1_700_000_000), in
}

// scenario 1: needs_string(123) where needs_string(string $s): void.
func TestCallNeedsStringRejectsInt(t *testing.T) {
	a, in := newTestAnalyzer(t)
	a.Index.AddFunctionLike(&codebase.FunctionLike{
		Name:      in.InternLowered("needs_string"),
		Container: codebase.FunctionLikeContainer{IsGlobal: true},
		Signature: &types.Signature{
			Parameters: []types.Param{{Name: "s", Type: types.NewUnion(types.StringAtomic{})}},
			Return:     types.NewUnion(types.Mixed{Variant: types.MixedVanilla}),
		},
	})

	call := &ast.CallExpr{
		Kind:       ast.CalleeIdentifier,
		Identifier: "needs_string",
		Args:       []ast.Argument{{Value: ast.Literal{Value: types.NewUnion(types.Int{Variant: types.IntLiteral, LiteralVal: 123})}}},
	}
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "test"})
	a.walkCall(call, bc, nil)

	if got := a.Sink.CountOf(diagnostics.InvalidArgument); got != 1 {
		t.Fatalf("expected exactly one InvalidArgument, got %d", got)
	}
}

// scenario 2: requires_two(1) where requires_two takes two ints.
func TestCallRequiresTwoTooFewArguments(t *testing.T) {
	a, in := newTestAnalyzer(t)
	intTy := types.NewUnion(types.Int{Variant: types.IntAny})
	a.Index.AddFunctionLike(&codebase.FunctionLike{
		Name:      in.InternLowered("requires_two"),
		Container: codebase.FunctionLikeContainer{IsGlobal: true},
		Signature: &types.Signature{
			Parameters: []types.Param{{Name: "a", Type: intTy}, {Name: "b", Type: intTy}},
			Return:     types.MixedUnion(),
		},
	})

	call := &ast.CallExpr{
		Kind:       ast.CalleeIdentifier,
		Identifier: "requires_two",
		Args:       []ast.Argument{{Value: ast.Literal{Value: types.NewUnion(types.Int{Variant: types.IntLiteral, LiteralVal: 1})}}},
	}
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "test"})
	a.walkCall(call, bc, nil)

	if got := a.Sink.CountOf(diagnostics.TooFewArguments); got != 1 {
		t.Fatalf("expected exactly one TooFewArguments, got %d", got)
	}
}

// scenario 5: a top-level yield raises YieldOutsideFunction.
func TestYieldOutsideFunction(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "test"})
	yieldExpr := &ast.YieldExpr{Value: ast.Literal{Value: types.NewUnion(types.StringAtomic{IsLiteral: true, LiteralVal: "value"})}}
	a.walkExpr(yieldExpr, bc, nil)

	if got := a.Sink.CountOf(diagnostics.YieldOutsideFunction); got != 1 {
		t.Fatalf("expected exactly one YieldOutsideFunction, got %d", got)
	}
}

// scenario 3: a generator declared iterable<int, string> executing
// yield 'key' => 'value' raises InvalidYieldKeyType.
func TestGeneratorYieldKeyValueMismatch(t *testing.T) {
	a, in := newTestAnalyzer(t)
	iterableTy := types.NewUnion(types.Iterable{
		Key:   types.NewUnion(types.Int{Variant: types.IntAny}),
		Value: types.NewUnion(types.StringAtomic{}),
	})
	fn := &ast.FunctionLikeDecl{
		Kind:           ast.KindFunction,
		Name:           "gen",
		DeclaredReturn: iterableTy,
		IsGenerator:    true,
	}
	_ = in

	yieldExpr := &ast.YieldExpr{
		Key:   ast.Literal{Value: types.NewUnion(types.StringAtomic{IsLiteral: true, LiteralVal: "key"})},
		Value: ast.Literal{Value: types.NewUnion(types.StringAtomic{IsLiteral: true, LiteralVal: "value"})},
	}
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "gen", IsGenerator: true})
	a.walkExpr(yieldExpr, bc, fn)

	if got := a.Sink.CountOf(diagnostics.InvalidYieldKeyType); got != 1 {
		t.Fatalf("expected exactly one InvalidYieldKeyType, got %d", got)
	}
}

// scenario 6: catch (MoveEnum $e) where MoveEnum is an enum raises
// InvalidCatchTypeNotClassOrInterface.
func TestCatchEnumTypeRejected(t *testing.T) {
	a, in := newTestAnalyzer(t)
	a.Index.AddClassLike(&codebase.ClassLike{
		Kind:        codebase.KindEnum,
		LoweredName: in.InternLowered("MoveEnum"),
	})

	tryStmt := &ast.TryStmt{
		Try: []ast.Statement{&ast.ExpressionStmt{Expr: ast.Literal{Value: types.MixedUnion()}}},
		Catches: []ast.CatchClause{
			{Types: []string{"MoveEnum"}, VarName: "e", Span: span(1)},
		},
	}
	fn := &ast.FunctionLikeDecl{Kind: ast.KindFunction, Name: "f"}
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "f"})
	a.walkTry(tryStmt, bc, fn)

	if got := a.Sink.CountOf(diagnostics.InvalidCatchTypeNotClassOrInterface); got != 1 {
		t.Fatalf("expected exactly one InvalidCatchTypeNotClassOrInterface, got %d", got)
	}
}

// scenario 7a: list<int> vs a callee requiring list<string> is an
// InvalidArgument.
func TestListElementTypeMismatchIsInvalidArgument(t *testing.T) {
	a, in := newTestAnalyzer(t)
	a.Index.AddFunctionLike(&codebase.FunctionLike{
		Name:      in.InternLowered("needs_string_list"),
		Container: codebase.FunctionLikeContainer{IsGlobal: true},
		Signature: &types.Signature{
			Parameters: []types.Param{{Name: "items", Type: types.NewUnion(types.List{Element: types.NewUnion(types.StringAtomic{})})}},
			Return:     types.MixedUnion(),
		},
	})

	intListArg := types.NewUnion(types.List{Element: types.NewUnion(types.Int{Variant: types.IntAny})})
	call := &ast.CallExpr{
		Kind:       ast.CalleeIdentifier,
		Identifier: "needs_string_list",
		Args:       []ast.Argument{{Value: ast.Literal{Value: intListArg}}},
	}
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "test"})
	a.walkCall(call, bc, nil)

	if got := a.Sink.CountOf(diagnostics.InvalidArgument); got != 1 {
		t.Fatalf("expected exactly one InvalidArgument, got %d", got)
	}
}

// An if/else where neither branch returns should leave the outer context
// not marked HasReturned (spec §4.3).
func TestIfElseNeitherReturnsLeavesHasReturnedFalse(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	fn := &ast.FunctionLikeDecl{Kind: ast.KindFunction, Name: "f"}
	ifStmt := &ast.IfStmt{
		Cond: ast.Literal{Value: types.NewUnion(types.Bool{Variant: types.BoolTrue})},
		Then: []ast.Statement{&ast.ExpressionStmt{Expr: ast.Literal{Value: types.MixedUnion()}}},
		Else: []ast.Statement{&ast.ExpressionStmt{Expr: ast.Literal{Value: types.MixedUnion()}}},
	}
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "f"})
	a.walkIf(ifStmt, bc, fn)
	if bc.HasReturned {
		t.Fatalf("neither branch returns; HasReturned should stay false")
	}
}

// A try whose body and every catch return should leave the outer
// context marked HasReturned (spec §4.5 step 6).
func TestTryCatchBothReturnSetsHasReturned(t *testing.T) {
	a, in := newTestAnalyzer(t)
	a.Index.AddClassLike(&codebase.ClassLike{
		Kind:        codebase.KindClass,
		LoweredName: in.InternLowered("RuntimeError"),
	})

	tryStmt := &ast.TryStmt{
		Try:     []ast.Statement{ast.NewReturnStmt(span(1), nil)},
		Catches: []ast.CatchClause{{Types: []string{"RuntimeError"}, Span: span(2)}},
	}
	for i := range tryStmt.Catches {
		tryStmt.Catches[i].Body = []ast.Statement{ast.NewReturnStmt(span(3), nil)}
	}
	fn := &ast.FunctionLikeDecl{Kind: ast.KindFunction, Name: "f"}
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "f"})
	a.walkTry(tryStmt, bc, fn)

	if !bc.HasReturned {
		t.Fatalf("expected HasReturned to be true when try and every catch return")
	}
}

// scenario 4: a generator declared iterable<int, string> executing
// yield from [1, 2, 3] raises YieldFromInvalidValueType (the source
// list's int elements don't fit the declared string value type).
func TestYieldFromListValueMismatch(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	iterableTy := types.NewUnion(types.Iterable{
		Key:   types.NewUnion(types.Int{Variant: types.IntAny}),
		Value: types.NewUnion(types.StringAtomic{}),
	})
	fn := &ast.FunctionLikeDecl{
		Kind:           ast.KindFunction,
		Name:           "gen",
		DeclaredReturn: iterableTy,
		IsGenerator:    true,
	}

	source := ast.Literal{Value: types.NewUnion(types.List{
		Element: types.NewUnion(types.Int{Variant: types.IntAny}),
	})}
	yieldFrom := &ast.YieldFromExpr{Source: source}
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "gen", IsGenerator: true})
	a.walkExpr(yieldFrom, bc, fn)

	if got := a.Sink.CountOf(diagnostics.YieldFromInvalidValueType); got != 1 {
		t.Fatalf("expected exactly one YieldFromInvalidValueType, got %d", got)
	}
}

// scenario 7b: an empty list `[]` passed where a callee requires
// non-empty-list<int> is a PossiblyInvalidArgument, not a hard
// InvalidArgument: the argument might turn out non-empty at runtime.
func TestEmptyListVsNonEmptyListIsPossiblyInvalid(t *testing.T) {
	a, in := newTestAnalyzer(t)
	a.Index.AddFunctionLike(&codebase.FunctionLike{
		Name:      in.InternLowered("needs_non_empty_int_list"),
		Container: codebase.FunctionLikeContainer{IsGlobal: true},
		Signature: &types.Signature{
			Parameters: []types.Param{{Name: "items", Type: types.NewUnion(types.List{
				Element:  types.NewUnion(types.Int{Variant: types.IntAny}),
				NonEmpty: true,
			})}},
			Return: types.MixedUnion(),
		},
	})

	emptyListArg := types.NewUnion(types.List{Element: types.NewUnion(types.Never{})})
	call := &ast.CallExpr{
		Kind:       ast.CalleeIdentifier,
		Identifier: "needs_non_empty_int_list",
		Args:       []ast.Argument{{Value: ast.Literal{Value: emptyListArg}}},
	}
	bc := blockctx.New(&blockctx.ScopeInfo{Name: "test"})
	a.walkCall(call, bc, nil)

	if got := a.Sink.CountOf(diagnostics.PossiblyInvalidArgument); got != 1 {
		t.Fatalf("expected exactly one PossiblyInvalidArgument, got %d", got)
	}
	if got := a.Sink.CountOf(diagnostics.InvalidArgument); got != 0 {
		t.Fatalf("expected zero hard InvalidArgument, got %d", got)
	}
}
