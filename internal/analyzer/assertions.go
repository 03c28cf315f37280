package analyzer

import (
	"github.com/yigitcukuren/mago-sub004/internal/assertion"
	"github.com/yigitcukuren/mago-sub004/internal/ast"
	blockctx "github.com/yigitcukuren/mago-sub004/internal/context"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// varAssertion pairs one narrowing predicate with the local variable it
// narrows, the unit buildConditionAssertions produces.
type varAssertion struct {
	VarName   string
	Assertion assertion.Assertion
}

// applyCondition narrows bc's locals along a branch of cond: positive
// for the "then"/truthy edge, false for the "else"/falsy edge (spec
// §4.2's "the analyzer builds assertions from conditions").
func (a *Analyzer) applyCondition(cond ast.Expression, positive bool, bc *blockctx.BlockContext) {
	for _, va := range a.buildConditionAssertions(cond, positive) {
		current, ok := bc.GetLocal(va.VarName)
		if !ok {
			continue
		}
		bc.SetLocal(va.VarName, assertion.Apply(va.Assertion, current, a.Index))
	}
}

func (a *Analyzer) buildConditionAssertions(cond ast.Expression, positive bool) []varAssertion {
	switch c := cond.(type) {
	case *ast.InstanceOfExpr:
		return a.instanceOfAssertion(c, positive)
	case *ast.IssetExpr:
		return issetAssertions(c, positive)
	case *ast.UnaryExpr:
		if c.Op == "!" {
			return a.buildConditionAssertions(c.Operand, !positive)
		}
	case *ast.BinaryExpr:
		switch c.Op {
		case "&&", "and":
			if positive {
				return append(a.buildConditionAssertions(c.Left, true), a.buildConditionAssertions(c.Right, true)...)
			}
		case "||", "or":
			if !positive {
				return append(a.buildConditionAssertions(c.Left, false), a.buildConditionAssertions(c.Right, false)...)
			}
		}
	case *ast.CallExpr:
		return a.callConditionAssertions(c, positive)
	case ast.VariableRef:
		return []varAssertion{truthyAssertion(c.Name, positive)}
	case *ast.VariableRef:
		return []varAssertion{truthyAssertion(c.Name, positive)}
	}
	return nil
}

// callConditionAssertions applies @assert-if-true/@assert-if-false tags
// when a call sits directly in an if/while condition (spec §4.2, §4.7).
// Only positional arguments are matched against tagged parameter
// indices; named arguments are not resolved here.
func (a *Analyzer) callConditionAssertions(call *ast.CallExpr, positive bool) []varAssertion {
	if call.Kind != ast.CalleeIdentifier {
		return nil
	}
	found, ok := a.Index.FunctionLikeByName(call.Identifier)
	if !ok {
		return nil
	}
	var out []varAssertion
	for _, tag := range found.Assertions {
		if positive && !tag.OnlyIfTrue {
			continue
		}
		if !positive && !tag.OnlyIfFalse {
			continue
		}
		if tag.ParamIndex >= len(call.Args) {
			continue
		}
		ref, ok := subjectVariable(call.Args[tag.ParamIndex].Value)
		if !ok {
			continue
		}
		out = append(out, varAssertion{VarName: ref, Assertion: tag.Assertion})
	}
	return out
}

func truthyAssertion(name string, positive bool) varAssertion {
	if positive {
		return varAssertion{VarName: name, Assertion: assertion.Truthy()}
	}
	return varAssertion{VarName: name, Assertion: assertion.Falsy()}
}

// instanceOfAssertion resolves ClassName through the index's interner
// so the resulting Named atomic's identity matches whatever the
// codebase index already uses for that class everywhere else (spec
// §3.1: class-like names compare case-insensitively via the interner's
// lowered form).
func (a *Analyzer) instanceOfAssertion(c *ast.InstanceOfExpr, positive bool) []varAssertion {
	ref, ok := subjectVariable(c.Subject)
	if !ok {
		return nil
	}
	named := types.NewUnion(types.Named{Name: a.Index.Interner().InternLowered(c.ClassName)})
	if positive {
		return []varAssertion{{VarName: ref, Assertion: assertion.IsType(named)}}
	}
	return []varAssertion{{VarName: ref, Assertion: assertion.IsNotType(named)}}
}

func issetAssertions(c *ast.IssetExpr, positive bool) []varAssertion {
	if !positive {
		// isset(a, b) is false when ANY subject is unset; that
		// disjunction isn't representable per-variable, so the falsy
		// edge narrows nothing (spec's assertion algebra allows a
		// non-representable negation to degrade to a no-op).
		return nil
	}
	out := make([]varAssertion, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		if ref, ok := subjectVariable(s); ok {
			out = append(out, varAssertion{VarName: ref, Assertion: assertion.IsIsset()})
		}
	}
	return out
}

func subjectVariable(e ast.Expression) (string, bool) {
	switch v := e.(type) {
	case ast.VariableRef:
		return v.Name, true
	case *ast.VariableRef:
		return v.Name, true
	}
	return "", false
}
