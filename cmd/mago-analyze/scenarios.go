package main

import (
	"github.com/yigitcukuren/mago-sub004/internal/analyzer"
	"github.com/yigitcukuren/mago-sub004/internal/ast"
	"github.com/yigitcukuren/mago-sub004/internal/codebase"
	blockctx "github.com/yigitcukuren/mago-sub004/internal/context"
	"github.com/yigitcukuren/mago-sub004/internal/config"
	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// scenario is one named, self-contained exercise of the core, built the
// same way internal/analyzer's own end-to-end tests build one: a hand
// constructed AST fragment plus a populated index, run through a fresh
// Analyzer. The CLI runs every scenario and reports the diagnostic
// kinds its Sink collected, the smoke-test surface SPEC_FULL.md's
// cmd/mago-analyze entry exists for.
type scenario struct {
	name string
	run  func() *diagnostics.Sink
}

// activeConfig is the tunable set every scenario's Analyzer is built
// with. main sets it from -config before running scenarios, so a
// caller overriding, say, the root throwable interface name sees that
// override reflected in the catch-analysis scenarios.
var activeConfig = config.Default()

func newScenarioAnalyzer() (*analyzer.Analyzer, *intern.Interner) {
	in := intern.New()
	ix := codebase.New(in)
	if err := ix.Populate(); err != nil {
		panic(err)
	}
	return analyzer.New(ix, diagnostics.NewSink(), activeConfig, 1_700_000_000), in
}

var scenarios = []scenario{
	{"needs-string-rejects-int", scenarioNeedsStringRejectsInt},
	{"requires-two-too-few-arguments", scenarioRequiresTwoTooFewArguments},
	{"yield-key-value-mismatch", scenarioYieldKeyValueMismatch},
	{"yield-from-list-value-mismatch", scenarioYieldFromListValueMismatch},
	{"yield-outside-function", scenarioYieldOutsideFunction},
	{"catch-enum-rejected", scenarioCatchEnumRejected},
	{"list-element-type-mismatch", scenarioListElementTypeMismatch},
	{"empty-list-vs-non-empty-list", scenarioEmptyListVsNonEmptyList},
}

// scenario 1 (spec §8): needs_string(123) where
// needs_string(string $s): void → one InvalidArgument.
func scenarioNeedsStringRejectsInt() *diagnostics.Sink {
	a, in := newScenarioAnalyzer()
	a.Index.AddFunctionLike(&codebase.FunctionLike{
		Name:      in.InternLowered("needs_string"),
		Container: codebase.FunctionLikeContainer{IsGlobal: true},
		Signature: &types.Signature{
			Parameters: []types.Param{{Name: "s", Type: types.NewUnion(types.StringAtomic{})}},
			Return:     types.MixedUnion(),
		},
	})
	call := &ast.CallExpr{
		Kind:       ast.CalleeIdentifier,
		Identifier: "needs_string",
		Args:       []ast.Argument{{Value: ast.Literal{Value: types.NewUnion(types.Int{Variant: types.IntLiteral, LiteralVal: 123})}}},
	}
	fn := &ast.FunctionLikeDecl{Kind: ast.KindFunction, Name: "test", Body: []ast.Statement{&ast.ExpressionStmt{Expr: call}}}
	a.AnalyzeFunctionLike(fn, &blockctx.ScopeInfo{Name: "test"})
	return a.Sink
}

// scenario 2: requires_two(1) where requires_two takes two ints → one
// TooFewArguments.
func scenarioRequiresTwoTooFewArguments() *diagnostics.Sink {
	a, in := newScenarioAnalyzer()
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
	fn := &ast.FunctionLikeDecl{Kind: ast.KindFunction, Name: "test", Body: []ast.Statement{&ast.ExpressionStmt{Expr: call}}}
	a.AnalyzeFunctionLike(fn, &blockctx.ScopeInfo{Name: "test"})
	return a.Sink
}

// scenario 3: a generator declared iterable<int, string> executing
// yield 'key' => 'value' → one InvalidYieldKeyType.
func scenarioYieldKeyValueMismatch() *diagnostics.Sink {
	a, _ := newScenarioAnalyzer()
	iterableTy := types.NewUnion(types.Iterable{
		Key:   types.NewUnion(types.Int{Variant: types.IntAny}),
		Value: types.NewUnion(types.StringAtomic{}),
	})
	yieldExpr := &ast.YieldExpr{
		Key:   ast.Literal{Value: types.NewUnion(types.StringAtomic{IsLiteral: true, LiteralVal: "key"})},
		Value: ast.Literal{Value: types.NewUnion(types.StringAtomic{IsLiteral: true, LiteralVal: "value"})},
	}
	fn := &ast.FunctionLikeDecl{
		Kind:           ast.KindFunction,
		Name:           "gen",
		DeclaredReturn: iterableTy,
		IsGenerator:    true,
		Body:           []ast.Statement{&ast.ExpressionStmt{Expr: yieldExpr}},
	}
	a.AnalyzeFunctionLike(fn, &blockctx.ScopeInfo{Name: "gen", IsGenerator: true})
	return a.Sink
}

// scenario 4: the same generator executing yield from [1, 2, 3] → one
// YieldFromInvalidValueType.
func scenarioYieldFromListValueMismatch() *diagnostics.Sink {
	a, _ := newScenarioAnalyzer()
	iterableTy := types.NewUnion(types.Iterable{
		Key:   types.NewUnion(types.Int{Variant: types.IntAny}),
		Value: types.NewUnion(types.StringAtomic{}),
	})
	source := ast.Literal{Value: types.NewUnion(types.List{Element: types.NewUnion(types.Int{Variant: types.IntAny})})}
	yieldFrom := &ast.YieldFromExpr{Source: source}
	fn := &ast.FunctionLikeDecl{
		Kind:           ast.KindFunction,
		Name:           "gen",
		DeclaredReturn: iterableTy,
		IsGenerator:    true,
		Body:           []ast.Statement{&ast.ExpressionStmt{Expr: yieldFrom}},
	}
	a.AnalyzeFunctionLike(fn, &blockctx.ScopeInfo{Name: "gen", IsGenerator: true})
	return a.Sink
}

// scenario 5: a top-level yield 'value' → one YieldOutsideFunction.
func scenarioYieldOutsideFunction() *diagnostics.Sink {
	a, _ := newScenarioAnalyzer()
	yieldExpr := &ast.YieldExpr{Value: ast.Literal{Value: types.NewUnion(types.StringAtomic{IsLiteral: true, LiteralVal: "value"})}}
	a.AnalyzeTopLevel([]ast.Statement{&ast.ExpressionStmt{Expr: yieldExpr}}, &blockctx.ScopeInfo{Name: "test"})
	return a.Sink
}

// scenario 6: try { ... } catch (MoveEnum $e) { ... } where MoveEnum is
// an enum → one InvalidCatchTypeNotClassOrInterface.
func scenarioCatchEnumRejected() *diagnostics.Sink {
	a, in := newScenarioAnalyzer()
	a.Index.AddClassLike(&codebase.ClassLike{Kind: codebase.KindEnum, LoweredName: in.InternLowered("MoveEnum")})
	tryStmt := &ast.TryStmt{
		Try:     []ast.Statement{&ast.ExpressionStmt{Expr: ast.Literal{Value: types.MixedUnion()}}},
		Catches: []ast.CatchClause{{Types: []string{"MoveEnum"}, VarName: "e", Span: types.SourceSpan{Start: 1, End: 2}}},
	}
	fn := &ast.FunctionLikeDecl{Kind: ast.KindFunction, Name: "f", Body: []ast.Statement{tryStmt}}
	a.AnalyzeFunctionLike(fn, &blockctx.ScopeInfo{Name: "f"})
	return a.Sink
}

// scenario 7a: [1,2,3] of type list<int> passed to a callee requiring
// list<string> → one InvalidArgument.
func scenarioListElementTypeMismatch() *diagnostics.Sink {
	a, in := newScenarioAnalyzer()
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
	fn := &ast.FunctionLikeDecl{Kind: ast.KindFunction, Name: "test", Body: []ast.Statement{&ast.ExpressionStmt{Expr: call}}}
	a.AnalyzeFunctionLike(fn, &blockctx.ScopeInfo{Name: "test"})
	return a.Sink
}

// scenario 7b: [] passed to a callee requiring non-empty-list<int> → one
// PossiblyInvalidArgument, not a hard InvalidArgument.
func scenarioEmptyListVsNonEmptyList() *diagnostics.Sink {
	a, in := newScenarioAnalyzer()
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
	fn := &ast.FunctionLikeDecl{Kind: ast.KindFunction, Name: "test", Body: []ast.Statement{&ast.ExpressionStmt{Expr: call}}}
	a.AnalyzeFunctionLike(fn, &blockctx.ScopeInfo{Name: "test"})
	return a.Sink
}
