package analyzer

import (
	"github.com/yigitcukuren/mago-sub004/internal/assertion"
	"github.com/yigitcukuren/mago-sub004/internal/ast"
	"github.com/yigitcukuren/mago-sub004/internal/codebase"
	blockctx "github.com/yigitcukuren/mago-sub004/internal/context"
	"github.com/yigitcukuren/mago-sub004/internal/types"
	"github.com/yigitcukuren/mago-sub004/internal/typeops"
)

// callTarget is one materialized callee a CallExpr may dispatch to
// (spec §4.7's resolve_targets result). assertions is nil for bare
// callable values that carry no indexed metadata.
type callTarget struct {
	sig        *types.Signature
	assertions []codebase.AssertionTag
	paramOut   map[int]*types.Union
}

// walkCall implements spec §4.7 end to end: resolve_targets, argument
// binding, per-parameter containment, arity, and @assert* application.
func (a *Analyzer) walkCall(call *ast.CallExpr, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) *types.Union {
	argTypes := make([]*types.Union, len(call.Args))
	for i, arg := range call.Args {
		argTypes[i] = a.walkExpr(arg.Value, bc, fn)
	}

	targets, sawInvalid := a.resolveTargets(call, bc, fn)
	if sawInvalid && len(targets) == 0 {
		a.Sink.Add(invalidCallableDiagnostic(call.Span(), "callee does not resolve to anything callable"))
		return a.record(call.Span(), types.MixedUnion())
	}

	var ret *types.Union
	for _, target := range targets {
		a.checkArguments(target, call, argTypes, bc)
		if target.sig != nil && target.sig.Return != nil {
			if ret == nil {
				ret = target.sig.Return
			} else {
				ret = combineUnions(ret, target.sig.Return)
			}
		}
	}
	if ret == nil {
		ret = types.MixedUnion()
	}
	return a.record(call.Span(), ret)
}

// resolveTargets implements spec §4.7's resolve_targets.
func (a *Analyzer) resolveTargets(call *ast.CallExpr, bc *blockctx.BlockContext, fn *ast.FunctionLikeDecl) ([]callTarget, bool) {
	if call.Kind == ast.CalleeIdentifier {
		if found, ok := a.Index.FunctionLikeByName(call.Identifier); ok {
			return []callTarget{{sig: found.Signature, assertions: found.Assertions, paramOut: found.ParamOut}}, false
		}
		// namespaced fallback: retry against the unqualified tail.
		if unqualified := lastSegment(call.Identifier); unqualified != call.Identifier {
			if found, ok := a.Index.FunctionLikeByName(unqualified); ok {
				return []callTarget{{sig: found.Signature, assertions: found.Assertions, paramOut: found.ParamOut}}, false
			}
		}
		return nil, true
	}

	calleeType := a.walkExpr(call.CalleeExpr, bc, fn)
	var targets []callTarget
	sawInvalid := false
	for _, atomic := range calleeType.Atomics {
		target, ok := a.castAtomicToCallable(atomic)
		if !ok {
			sawInvalid = true
			continue
		}
		targets = append(targets, target)
	}
	return targets, sawInvalid
}

func (a *Analyzer) castAtomicToCallable(atomic types.Atomic) (callTarget, bool) {
	switch v := atomic.(type) {
	case types.Callable:
		return callTarget{sig: v.Sig}, true
	case types.Closure:
		return callTarget{sig: v.Sig}, true
	case types.StringAtomic:
		if v.IsLiteral {
			if found, ok := a.Index.FunctionLikeByName(v.LiteralVal); ok {
				return callTarget{sig: found.Signature, assertions: found.Assertions}, true
			}
		}
		return callTarget{}, false
	case types.Named:
		className := a.Index.Interner().Lookup(v.Name)
		if found, ok := a.Index.MethodByName(className, "__invoke"); ok {
			return callTarget{sig: found.Signature, assertions: found.Assertions}, true
		}
		return callTarget{}, false
	default:
		return callTarget{}, false
	}
}

func lastSegment(name string) string {
	idx := -1
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '\\' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return name
	}
	return name[idx+1:]
}

func paramIndexByName(params []types.Param, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// checkArguments binds call's arguments against target's declared
// parameters and applies spec §4.7's containment, arity and
// @assert* rules.
func (a *Analyzer) checkArguments(target callTarget, call *ast.CallExpr, argTypes []*types.Union, bc *blockctx.BlockContext) {
	sig := target.sig
	if sig == nil {
		return
	}
	params := sig.Parameters
	bound := make([]*types.Union, len(params))
	boundExpr := make([]ast.Expression, len(params))
	boundSet := make([]bool, len(params))

	posIdx := 0
	extra := 0
	hasVariadic := len(params) > 0 && params[len(params)-1].Variadic
	for i, arg := range call.Args {
		if arg.Name == "" {
			switch {
			case posIdx < len(params) && !params[posIdx].Variadic:
				bound[posIdx] = argTypes[i]
				boundExpr[posIdx] = arg.Value
				boundSet[posIdx] = true
				posIdx++
			case hasVariadic:
				last := len(params) - 1
				if !boundSet[last] {
					bound[last] = argTypes[i]
					boundExpr[last] = arg.Value
					boundSet[last] = true
				} else {
					bound[last] = combineUnions(bound[last], argTypes[i])
				}
			default:
				extra++
			}
			continue
		}
		idx := paramIndexByName(params, arg.Name)
		if idx < 0 {
			a.Sink.Add(invalidNamedArgumentDiagnostic(arg.Value.Span(), arg.Name))
			continue
		}
		bound[idx] = argTypes[i]
		boundExpr[idx] = arg.Value
		boundSet[idx] = true
	}

	required := 0
	for _, p := range params {
		if !p.HasDefault && !p.Variadic {
			required++
		}
	}
	if posIdx < required {
		a.Sink.Add(tooFewArgumentsDiagnostic(call.Span(), len(call.Args), required))
	}
	if !hasVariadic && extra > 0 {
		a.Sink.Add(tooManyArgumentsDiagnostic(call.Span(), len(call.Args), len(params)))
	}

	for i, p := range params {
		if !boundSet[i] || p.Type == nil {
			continue
		}
		contained, res := typeops.IsContainedBy(bound[i], p.Type, typeops.Options{}, a.Index)
		span := call.Span()
		if boundExpr[i] != nil {
			span = boundExpr[i].Span()
		}
		if !contained {
			a.Sink.Add(invalidArgumentDiagnostic(span, p.Name, false))
		} else if res.TypeCoerced {
			a.Sink.Add(invalidArgumentDiagnostic(span, p.Name, true))
		}
	}

	// Only unconditional @assert tags apply immediately after the call;
	// @assert-if-true/@assert-if-false are applied by
	// buildConditionAssertions when this call sits directly in an
	// if/while condition, the same way instanceof/isset are handled.
	unconditional := make([]codebase.AssertionTag, 0, len(target.assertions))
	for _, tag := range target.assertions {
		if !tag.OnlyIfTrue && !tag.OnlyIfFalse {
			unconditional = append(unconditional, tag)
		}
	}
	a.applyAssertionTags(unconditional, boundExpr, bc)
	a.applyParamOut(target.paramOut, boundExpr, bc)
}

// applyParamOut implements the @param-out supplement: after a call
// returns, a by-ref argument bound to a tagged parameter takes on that
// parameter's declared output type. Unlike @assert tags, which narrow the
// existing type, this replaces the variable's type outright.
func (a *Analyzer) applyParamOut(paramOut map[int]*types.Union, boundExpr []ast.Expression, bc *blockctx.BlockContext) {
	for idx, outTy := range paramOut {
		if idx >= len(boundExpr) || boundExpr[idx] == nil || outTy == nil {
			continue
		}
		if name, ok := subjectVariable(boundExpr[idx]); ok {
			bc.SetLocal(name, outTy)
		}
	}
}

// applyAssertionTags narrows every argument expression that is a bare
// variable reference by the @assert* tag bound to its parameter
// position (spec §4.7's "apply @assert* tags to the post-call
// context").
func (a *Analyzer) applyAssertionTags(tags []codebase.AssertionTag, boundExpr []ast.Expression, bc *blockctx.BlockContext) {
	for _, tag := range tags {
		if tag.ParamIndex >= len(boundExpr) || boundExpr[tag.ParamIndex] == nil {
			continue
		}
		name, ok := subjectVariable(boundExpr[tag.ParamIndex])
		if !ok {
			continue
		}
		current, ok := bc.GetLocal(name)
		if !ok {
			continue
		}
		bc.SetLocal(name, assertion.Apply(tag.Assertion, current, a.Index))
	}
}
