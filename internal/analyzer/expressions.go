package analyzer

import (
	"github.com/yigitcukuren/mago-sub004/internal/ast"
	blockctx "github.com/yigitcukuren/mago-sub004/internal/context"
	"github.com/yigitcukuren/mago-sub004/internal/generator"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

var boolUnion = types.NewUnion(types.Bool{Variant: types.BoolAny})

// walkExpr infers expr's type, recording it in Artifacts, and performs
// whatever side analysis that expression kind triggers (call checking,
// yield checking). fn is the enclosing function-like, nil at the top
// level (needed to detect a stray `yield`, spec §4.6).
func (a *Analyzer) walkExpr(expr ast.Expression, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) *types.Union {
	if expr == nil {
		return types.MixedUnion()
	}
	switch e := expr.(type) {
	case ast.Literal:
		return a.recordLiteral(e)
	case *ast.Literal:
		return a.recordLiteral(*e)
	case ast.VariableRef:
		return a.recordVariable(e, bc)
	case *ast.VariableRef:
		return a.recordVariable(*e, bc)
	case *ast.BinaryExpr:
		return a.walkBinary(e, bc, fn)
	case *ast.UnaryExpr:
		a.walkExpr(e.Operand, bc, fn)
		ty := boolUnion
		if e.Op != "!" {
			ty = types.MixedUnion()
		}
		return a.record(e.Span(), ty)
	case *ast.InstanceOfExpr:
		a.walkExpr(e.Subject, bc, fn)
		return a.record(e.Span(), boolUnion)
	case *ast.IssetExpr:
		for _, s := range e.Subjects {
			a.walkExpr(s, bc, fn)
		}
		return a.record(e.Span(), boolUnion)
	case *ast.CallExpr:
		return a.walkCall(e, bc, fn)
	case *ast.YieldExpr:
		return a.walkYield(e, bc, fn)
	case *ast.YieldFromExpr:
		return a.walkYieldFrom(e, bc, fn)
	default:
		return types.MixedUnion()
	}
}

func (a *Analyzer) recordLiteral(l ast.Literal) *types.Union {
	ty := l.Value
	if ty == nil {
		ty = types.MixedUnion()
	}
	return a.record(l.Span(), ty)
}

func (a *Analyzer) recordVariable(v ast.VariableRef, bc *blockctx.BlockContext) *types.Union {
	ty, ok := bc.GetLocal(v.Name)
	if !ok {
		ty = types.MixedUnion()
	}
	return a.record(v.Span(), ty)
}

func (a *Analyzer) walkBinary(e *ast.BinaryExpr, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) *types.Union {
	a.walkExpr(e.Left, bc, fn)
	a.walkExpr(e.Right, bc, fn)
	switch e.Op {
	case "==", "!=", "===", "!==", "<", ">", "<=", ">=", "&&", "||", "and", "or", "xor":
		return a.record(e.Span(), boolUnion)
	default:
		return a.record(e.Span(), types.MixedUnion())
	}
}

// walkYield implements spec §4.6 steps 1-3 for a single `yield` /
// `yield k => v`.
func (a *Analyzer) walkYield(e *ast.YieldExpr, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) *types.Union {
	shape, ok := a.generatorShape(fn, e.Span())
	if !ok {
		return a.record(e.Span(), types.MixedUnion())
	}
	if e.Key != nil {
		keyTy := a.walkExpr(e.Key, bc, fn)
		valTy := a.walkExpr(e.Value, bc, fn)
		return a.record(e.Span(), generator.CheckYieldKeyValue(shape, keyTy, valTy, e.Span(), a.Index, a.Sink))
	}
	var valTy *types.Union
	if e.Value != nil {
		valTy = a.walkExpr(e.Value, bc, fn)
	} else {
		valTy = types.NewUnion(types.Null{})
	}
	return a.record(e.Span(), generator.CheckYieldValue(shape, valTy, e.Span(), a.Index, a.Sink))
}

// walkYieldFrom implements spec §4.6 step 4.
func (a *Analyzer) walkYieldFrom(e *ast.YieldFromExpr, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) *types.Union {
	shape, ok := a.generatorShape(fn, e.Span())
	if !ok {
		return a.record(e.Span(), types.MixedUnion())
	}
	sourceTy := a.walkExpr(e.Source, bc, fn)
	return a.record(e.Span(), generator.CheckYieldFrom(shape, sourceTy, e.Span(), a.Index, a.Sink))
}

// generatorShape resolves and destructures the enclosing function-like's
// declared return type, raising YieldOutsideFunction /
// InvalidGeneratorReturnType per spec §4.6 step 1.
func (a *Analyzer) generatorShape(fn *ast.FunctionLikeDecl, span types.SourceSpan) (generator.GeneratorShape, bool) {
	if fn == nil {
		a.Sink.Add(yieldOutsideFunctionDiagnostic(span))
		return generator.GeneratorShape{}, false
	}
	shape, ok := generator.Destructure(fn.DeclaredReturn, a.Index)
	if !ok {
		a.Sink.Add(invalidGeneratorReturnTypeDiagnostic(span, fn.Name))
		return generator.GeneratorShape{}, false
	}
	return shape, true
}
