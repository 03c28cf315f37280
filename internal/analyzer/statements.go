package analyzer

import (
	"github.com/yigitcukuren/mago-sub004/internal/ast"
	"github.com/yigitcukuren/mago-sub004/internal/controlflow"
	blockctx "github.com/yigitcukuren/mago-sub004/internal/context"
	"github.com/yigitcukuren/mago-sub004/internal/generator"
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// walkStatements analyzes stmts in source order, mutating bc in place
// per spec §4.3's sequential rule. A statement reached after an
// unconditional return is unreachable and skipped.
func (a *Analyzer) walkStatements(stmts []ast.Statement, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) {
	for _, stmt := range stmts {
		if bc.HasReturned {
			break
		}
		a.walkStatement(stmt, bc, fn)
	}
}

func (a *Analyzer) walkStatement(stmt ast.Statement, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		a.walkExpr(s.Expr, bc, fn)
	case *ast.ReturnStmt:
		if s.Value != nil {
			a.walkExpr(s.Value, bc, fn)
		}
		bc.HasReturned = true
	case *ast.ThrowStmt:
		thrownType := a.walkExpr(s.Value, bc, fn)
		for _, atomic := range thrownType.Atomics {
			if named, ok := atomic.(types.Named); ok {
				bc.AddThrown(named.Name, s.Span())
			}
		}
	case *ast.BreakStmt, *ast.ContinueStmt:
		// No block-context effect beyond the control-flow action the
		// statement itself already reports via OwnAction().
	case *ast.IfStmt:
		a.walkIf(s, bc, fn)
	case *ast.WhileStmt:
		a.walkWhile(s, bc, fn)
	case *ast.TryStmt:
		a.walkTry(s, bc, fn)
	}
}

func stmtActions(stmts []ast.Statement) []controlflow.StatementAction {
	out := make([]controlflow.StatementAction, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

// walkIf implements spec §4.3's branching rule for if/else.
func (a *Analyzer) walkIf(s *ast.IfStmt, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) {
	a.walkExpr(s.Cond, bc, fn)

	thenBC := bc.Clone()
	a.applyCondition(s.Cond, true, thenBC)
	a.walkStatements(s.Then, thenBC, fn)
	thenActions := controlflow.FromStatements(stmtActions(s.Then))

	elseBC := bc.Clone()
	a.applyCondition(s.Cond, false, elseBC)
	elseActions := controlflow.NewActionSet(controlflow.None)
	if s.Else != nil {
		a.walkStatements(s.Else, elseBC, fn)
		elseActions = controlflow.FromStatements(stmtActions(s.Else))
	}

	merged := mergeBranches(bc, []*blockctx.BlockContext{thenBC, elseBC}, []bool{thenActions.Terminal(), elseActions.Terminal()})
	*bc = *merged
}

// walkWhile implements spec §4.3's loop rule: a two-pass (bounded)
// fixed point, widening per-variable types against the pre-loop
// context until stable or the cap (config.LoopFixedPointCap) is hit,
// then one final aggressive widen (overwrite_empty_array) to guarantee
// termination per the design notes.
func (a *Analyzer) walkWhile(s *ast.WhileStmt, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) {
	a.walkExpr(s.Cond, bc, fn)

	preLocals := make(map[string]*types.Union, len(bc.Locals))
	for k, v := range bc.Locals {
		preLocals[k] = v
	}

	iterations := a.Config.LoopFixedPointCap
	if iterations <= 0 {
		iterations = 1
	}

	var lastBody *blockctx.BlockContext
	for i := 0; i < iterations; i++ {
		bodyBC := bc.Clone()
		bodyBC.InsideLoop = true
		a.applyCondition(s.Cond, true, bodyBC)
		a.walkStatements(s.Body, bodyBC, fn)
		lastBody = bodyBC

		stable := true
		for name, bodyTy := range bodyBC.Locals {
			preTy, existed := preLocals[name]
			widened := bodyTy
			if existed {
				widened = widenLoopVariable(preTy, bodyTy, false)
				if widened.String() != preTy.String() {
					stable = false
				}
			} else {
				stable = false
			}
			preLocals[name] = widened
		}
		if stable {
			break
		}
	}

	if lastBody == nil {
		return
	}
	for name, bodyTy := range lastBody.Locals {
		preTy, existed := bc.GetLocal(name)
		final := bodyTy
		if existed {
			final = widenLoopVariable(preTy, bodyTy, true)
		} else {
			bc.MarkPossiblyUndefined(name)
		}
		bc.SetLocal(name, final)
	}
}

// walkTry implements spec §4.5's full try/catch/finally algorithm.
func (a *Analyzer) walkTry(s *ast.TryStmt, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) {
	preLocals := make(map[string]*types.Union, len(bc.Locals))
	for k, v := range bc.Locals {
		preLocals[k] = v
	}

	var fscope *blockctx.FinallyScope
	if len(s.Finally) > 0 {
		fscope = blockctx.NewFinallyScope()
	}

	// Step 2: analyze the try body with inside_try = true.
	tryBC := bc.Clone()
	tryBC.InsideTry = true
	tryBC.FinallyScope = fscope
	a.walkStatements(s.Try, tryBC, fn)
	tryActions := controlflow.FromStatements(stmtActions(s.Try))

	// Step 3: a local reassigned inside the try may not have completed
	// before a throw interrupted it.
	for name, tryTy := range tryBC.Locals {
		preTy, existed := preLocals[name]
		if !existed || tryTy.String() != preTy.String() {
			bc.MarkPossiblyUndefined(name)
		}
	}

	if fscope != nil {
		fscope.Contribute(tryBC.Locals)
	}

	catchBranches := make([]*blockctx.BlockContext, 0, len(s.Catches))
	catchTerminal := make([]bool, 0, len(s.Catches))
	catchAllReturn := true
	var allCaught []intern.StringId
	for _, catch := range s.Catches {
		// Step 4: each catch clone starts from the pre-try context.
		catchBC := bc.Clone()
		resolved := generator.ResolveCatchTypes(catch.Types, catch.Span, a.Config.RootThrowableInterface, a.Index, a.Sink)
		allCaught = append(allCaught, resolved.ClassNames...)

		if catch.VarName != "" {
			atomics := make([]types.Atomic, 0, len(resolved.ClassNames))
			for _, cls := range resolved.ClassNames {
				atomics = append(atomics, types.Named{Name: cls})
			}
			if len(atomics) == 0 {
				atomics = append(atomics, types.Named{Name: a.Index.Interner().InternLowered(a.Config.RootThrowableInterface)})
			}
			catchBC.SetLocal(catch.VarName, types.NewUnion(atomics...))
		}

		a.walkStatements(catch.Body, catchBC, fn)
		actions := controlflow.FromStatements(stmtActions(catch.Body))
		if fscope != nil {
			fscope.Contribute(catchBC.Locals)
		}
		catchBranches = append(catchBranches, catchBC)
		catchTerminal = append(catchTerminal, actions.Terminal())
		if !actionsAllReturn(actions) {
			catchAllReturn = false
		}
	}

	allBranches := append([]*blockctx.BlockContext{tryBC}, catchBranches...)
	allTerminalFlags := append([]bool{tryActions.Terminal()}, catchTerminal...)
	merged := mergeBranches(bc, allBranches, allTerminalFlags)
	// Step 4 (cont.): the try body's throws only land in the merged
	// set above (mergeBranches folds every live branch's
	// PossiblyThrownExceptions in); removing caught subtypes has to
	// happen here, against that merged set, not against the pre-try
	// base which never held them.
	removeSubtypesOf(merged, allCaught, a.Index)
	*bc = *merged

	tryAllReturn := actionsAllReturn(tryActions)
	constructReturns := tryAllReturn && (len(s.Catches) == 0 || catchAllReturn)

	// Step 5: finally sees the merged finally_scope.
	if fscope != nil {
		mergedFinally := fscope.Merged(combineUnions)
		wasUndefined := make(map[string]bool, len(bc.PossiblyUndefinedVariables))
		for name := range bc.PossiblyUndefinedVariables {
			wasUndefined[name] = true
		}
		for name, ty := range mergedFinally {
			bc.SetLocal(name, ty)
		}
		a.walkStatements(s.Finally, bc, fn)
		finallyActions := controlflow.FromStatements(stmtActions(s.Finally))
		for name := range bc.Locals {
			if wasUndefined[name] {
				delete(bc.PossiblyUndefinedVariables, name)
			}
		}
		if finallyActions.Has(controlflow.Return) {
			bc.HasReturned = true
			return
		}
	}

	if constructReturns {
		bc.HasReturned = true
	}
}

// actionsAllReturn reports whether set is exactly {Return}: the block
// unconditionally returns, as opposed to unconditionally throwing,
// breaking or continuing.
func actionsAllReturn(set controlflow.ActionSet) bool {
	return set.Terminal() && set.Has(controlflow.Return) && len(set) == 1
}

// removeSubtypesOf implements spec §4.5 step 4's "remove from
// possibly_thrown_exceptions those classes that are subtypes of any
// caught class". It must run against the post-merge context: that's
// the first point at which the try body's own throws (recorded on its
// clone, then folded in by mergeBranches) are actually present to
// remove from.
func removeSubtypesOf(merged *blockctx.BlockContext, caught []intern.StringId, index generator.ClassIndex) {
	for thrownCls := range merged.PossiblyThrownExceptions {
		for _, cls := range caught {
			if thrownCls == cls || index.IsClassSubtypeOf(thrownCls, cls, false) {
				merged.RemoveThrown(thrownCls)
				break
			}
		}
	}
}
