// Package analyzer is the orchestrator (spec component H): it drives
// the type lattice, codebase index, assertion algebra, block context
// and control-flow analyzer over an AST, publishing per-expression
// types into Artifacts and raising diagnostics into a Sink.
package analyzer

import (
	"github.com/yigitcukuren/mago-sub004/internal/ast"
	"github.com/yigitcukuren/mago-sub004/internal/codebase"
	"github.com/yigitcukuren/mago-sub004/internal/config"
	blockctx "github.com/yigitcukuren/mago-sub004/internal/context"
	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
	"github.com/yigitcukuren/mago-sub004/internal/globals"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// Analyzer holds everything a single whole-program run shares: the
// populated codebase index, the diagnostic sink, the tunables, and the
// per-expression type artifacts every function-like contributes to.
// Analyzing distinct function-likes concurrently is safe: Index is
// read-only, Sink accepts concurrent writes, and Artifacts is guarded.
type Analyzer struct {
	Index  *codebase.Index
	Sink   *diagnostics.Sink
	Config config.Config

	// StartUnixTime lower-bounds $_SERVER['REQUEST_TIME'] for every
	// file this run analyzes (Open Question decision, SPEC_FULL.md §4).
	StartUnixTime int64

	artifacts *artifactMap
}

// New builds an Analyzer ready to run AnalyzeFunctionLike.
func New(index *codebase.Index, sink *diagnostics.Sink, cfg config.Config, startUnixTime int64) *Analyzer {
	return &Analyzer{
		Index:         index,
		Sink:          sink,
		Config:        cfg,
		StartUnixTime: startUnixTime,
		artifacts:     newArtifactMap(),
	}
}

// Artifact returns the inferred type recorded for span, if any.
func (a *Analyzer) Artifact(span types.SourceSpan) (*types.Union, bool) {
	return a.artifacts.get(span)
}

func (a *Analyzer) record(span types.SourceSpan, u *types.Union) *types.Union {
	a.artifacts.set(span, u)
	return u
}

// AnalyzeFunctionLike runs the full statement walk over one
// function-like's body. A fatal *diagnostics.AnalysisError aborts just
// this function-like; the caller should continue with the next one
// (spec §7 propagation policy).
func (a *Analyzer) AnalyzeFunctionLike(fn *ast.FunctionLikeDecl, scope *blockctx.ScopeInfo) error {
	if !a.Index.IsPopulated() {
		return diagnostics.NewAnalysisError("codebase index is not populated", fn.Span())
	}

	bc := blockctx.New(scope)
	a.seedTopLevelGlobals(bc)
	for _, p := range fn.Params {
		pt := p.Type
		if pt == nil {
			pt = types.MixedUnion()
		}
		bc.SetLocal(p.Name, pt)
	}

	a.walkStatements(fn.Body, bc, fn)
	a.checkUnusedParameters(fn)
	return nil
}

// AnalyzeTopLevel runs the statement walk over a top-level script body
// (no enclosing function-like), the shape cmd/mago-analyze exercises
// for the YieldOutsideFunction scenario (spec §4.6: "yield outside any
// function-like"): fn is nil throughout, so a bare yield is correctly
// flagged instead of resolved against a declared generator shape.
func (a *Analyzer) AnalyzeTopLevel(stmts []ast.Statement, scope *blockctx.ScopeInfo) error {
	if !a.Index.IsPopulated() {
		return diagnostics.NewAnalysisError("codebase index is not populated", types.SourceSpan{})
	}
	bc := blockctx.New(scope)
	a.seedTopLevelGlobals(bc)
	a.walkStatements(stmts, bc, nil)
	return nil
}

// checkUnusedParameters implements the declaration-side half of spec
// §4.7's UnusedParameter rule: a parameter a non-abstract function-like
// declares but never references in its body.
func (a *Analyzer) checkUnusedParameters(fn *ast.FunctionLikeDecl) {
	used := map[string]bool{}
	for _, stmt := range fn.Body {
		collectVariableNames(stmt, used)
	}
	for _, p := range fn.Params {
		if p.Variadic || p.ByRef {
			continue
		}
		if !used[p.Name] {
			a.Sink.Add(unusedParameterDiagnostic(fn.Span(), p.Name))
		}
	}
}

func collectVariableNames(n ast.Node, used map[string]bool) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case ast.VariableRef:
		used[v.Name] = true
	case *ast.VariableRef:
		used[v.Name] = true
	}
	for _, child := range n.Children() {
		collectVariableNames(child, used)
	}
}

// seedTopLevelGlobals installs the superglobal table (spec §4.8) before
// the first statement of a top-level script runs. Function/method
// bodies don't normally see these directly, but seeding them
// unconditionally keeps a single code path and matches globals being
// "seeded" rather than scope-looked-up.
func (a *Analyzer) seedTopLevelGlobals(bc *blockctx.BlockContext) {
	for name, ty := range globals.Seed(a.StartUnixTime) {
		bc.SetLocal(name, ty)
	}
}
