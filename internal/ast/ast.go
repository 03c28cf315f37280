// Package ast defines the minimal statement/expression node set the
// analyzer walks. The real tokenizer/parser is out of scope (spec §1);
// this package only needs to carry enough shape for the analyzer to
// exercise every operation spec §4 describes, plus spans for
// diagnostics. Non-listed node kinds still expose Children() for
// generic traversal, per spec §6.1.
package ast

import (
	"github.com/yigitcukuren/mago-sub004/internal/controlflow"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// Node is any AST node; every node carries its source span.
type Node interface {
	Span() types.SourceSpan
	Children() []Node
}

// Expression is any AST expression node.
type Expression interface {
	Node
	exprMarker()
}

// Statement is any AST statement node. Every statement also reports
// the control-flow action it may contribute, so package controlflow
// can classify a block without importing this package.
type Statement interface {
	Node
	controlflow.StatementAction
}

type baseNode struct {
	SourceSpan types.SourceSpan
}

func (b baseNode) Span() types.SourceSpan { return b.SourceSpan }

// ---- Expressions ----

type Literal struct {
	baseNode
	Value *types.Union // the literal's own inferred type, set by the parser/constant folder
}

func (Literal) exprMarker()        {}
func (l Literal) Children() []Node { return nil }

type VariableRef struct {
	baseNode
	Name string
}

func (VariableRef) exprMarker()        {}
func (v VariableRef) Children() []Node { return nil }

type BinaryExpr struct {
	baseNode
	Op          string
	Left, Right Expression
}

func (BinaryExpr) exprMarker() {}
func (b BinaryExpr) Children() []Node { return []Node{b.Left, b.Right} }

type UnaryExpr struct {
	baseNode
	Op      string
	Operand Expression
}

func (UnaryExpr) exprMarker()        {}
func (u UnaryExpr) Children() []Node { return []Node{u.Operand} }

type InstanceOfExpr struct {
	baseNode
	Subject   Expression
	ClassName string
}

func (InstanceOfExpr) exprMarker()        {}
func (i InstanceOfExpr) Children() []Node { return []Node{i.Subject} }

type IssetExpr struct {
	baseNode
	Subjects []Expression
}

func (IssetExpr) exprMarker() {}
func (i IssetExpr) Children() []Node {
	out := make([]Node, len(i.Subjects))
	for idx, s := range i.Subjects {
		out[idx] = s
	}
	return out
}

// Argument is one call argument, positional (Name == "") or named.
type Argument struct {
	Name  string
	Value Expression
}

// CalleeKind distinguishes the shapes resolve_targets (spec §4.7) must
// handle.
type CalleeKind int

const (
	CalleeIdentifier CalleeKind = iota
	CalleeExpression
)

type CallExpr struct {
	baseNode
	Kind           CalleeKind
	Identifier     string     // valid when Kind == CalleeIdentifier
	CalleeExpr     Expression // valid when Kind == CalleeExpression
	Args           []Argument
}

func (CallExpr) exprMarker() {}
func (c CallExpr) Children() []Node {
	var out []Node
	if c.CalleeExpr != nil {
		out = append(out, c.CalleeExpr)
	}
	for _, a := range c.Args {
		out = append(out, a.Value)
	}
	return out
}

type YieldExpr struct {
	baseNode
	Key   Expression // nil for bare `yield v`
	Value Expression // nil for bare `yield;`
}

func (YieldExpr) exprMarker() {}
func (y YieldExpr) Children() []Node {
	var out []Node
	if y.Key != nil {
		out = append(out, y.Key)
	}
	if y.Value != nil {
		out = append(out, y.Value)
	}
	return out
}

type YieldFromExpr struct {
	baseNode
	Source Expression
}

func (YieldFromExpr) exprMarker()        {}
func (y YieldFromExpr) Children() []Node { return []Node{y.Source} }

// ---- Statements ----

type terminalStmt struct {
	baseNode
	action controlflow.Action
}

func (t terminalStmt) OwnAction() controlflow.Action  { return t.action }
func (t terminalStmt) Branches() []controlflow.ActionSet { return nil }
func (t terminalStmt) AllBranchesRequired() bool       { return false }
func (t terminalStmt) Children() []Node                { return nil }

type ReturnStmt struct {
	terminalStmt
	Value Expression
}

func NewReturnStmt(span types.SourceSpan, value Expression) *ReturnStmt {
	return &ReturnStmt{terminalStmt: terminalStmt{baseNode: baseNode{span}, action: controlflow.Return}, Value: value}
}
func (r *ReturnStmt) Children() []Node {
	if r.Value == nil {
		return nil
	}
	return []Node{r.Value}
}

type ThrowStmt struct {
	terminalStmt
	Value Expression
}

func NewThrowStmt(span types.SourceSpan, value Expression) *ThrowStmt {
	return &ThrowStmt{terminalStmt: terminalStmt{baseNode: baseNode{span}, action: controlflow.Throw}, Value: value}
}
func (t *ThrowStmt) Children() []Node { return []Node{t.Value} }

type BreakStmt struct{ terminalStmt }

func NewBreakStmt(span types.SourceSpan) *BreakStmt {
	return &BreakStmt{terminalStmt{baseNode: baseNode{span}, action: controlflow.Break}}
}

type ContinueStmt struct{ terminalStmt }

func NewContinueStmt(span types.SourceSpan) *ContinueStmt {
	return &ContinueStmt{terminalStmt{baseNode: baseNode{span}, action: controlflow.Continue}}
}

type ExpressionStmt struct {
	baseNode
	Expr Expression
}

func (e *ExpressionStmt) OwnAction() controlflow.Action     { return controlflow.None }
func (e *ExpressionStmt) Branches() []controlflow.ActionSet  { return nil }
func (e *ExpressionStmt) AllBranchesRequired() bool          { return false }
func (e *ExpressionStmt) Children() []Node                   { return []Node{e.Expr} }

type IfStmt struct {
	baseNode
	Cond       Expression
	Then, Else []Statement
}

func (i *IfStmt) OwnAction() controlflow.Action { return controlflow.None }
func (i *IfStmt) Branches() []controlflow.ActionSet {
	thenActs := controlflow.FromStatements(toStatementActions(i.Then))
	elseActs := controlflow.NewActionSet(controlflow.None)
	if i.Else != nil {
		elseActs = controlflow.FromStatements(toStatementActions(i.Else))
	}
	return []controlflow.ActionSet{thenActs, elseActs}
}
func (i *IfStmt) AllBranchesRequired() bool { return true }
func (i *IfStmt) Children() []Node {
	out := []Node{i.Cond}
	for _, s := range i.Then {
		out = append(out, s)
	}
	for _, s := range i.Else {
		out = append(out, s)
	}
	return out
}

type WhileStmt struct {
	baseNode
	Cond Expression
	Body []Statement
}

func (w *WhileStmt) OwnAction() controlflow.Action    { return controlflow.None }
func (w *WhileStmt) Branches() []controlflow.ActionSet { return nil }
func (w *WhileStmt) AllBranchesRequired() bool         { return false }
func (w *WhileStmt) Children() []Node {
	out := []Node{w.Cond}
	for _, s := range w.Body {
		out = append(out, s)
	}
	return out
}

// CatchClause is one `catch (Type1|Type2 $var) { ... }` clause.
type CatchClause struct {
	Types   []string // as written; may include unions, duplicates, invalid hints
	VarName string   // "" if no bound variable
	Body    []Statement
	Span    types.SourceSpan
}

type TryStmt struct {
	baseNode
	Try     []Statement
	Catches []CatchClause
	Finally []Statement
}

func (t *TryStmt) OwnAction() controlflow.Action { return controlflow.None }
func (t *TryStmt) Branches() []controlflow.ActionSet {
	sets := []controlflow.ActionSet{controlflow.FromStatements(toStatementActions(t.Try))}
	for _, c := range t.Catches {
		sets = append(sets, controlflow.FromStatements(toStatementActions(c.Body)))
	}
	return sets
}
func (t *TryStmt) AllBranchesRequired() bool { return len(t.Catches) > 0 }
func (t *TryStmt) Children() []Node {
	var out []Node
	for _, s := range t.Try {
		out = append(out, s)
	}
	for _, c := range t.Catches {
		for _, s := range c.Body {
			out = append(out, s)
		}
	}
	for _, s := range t.Finally {
		out = append(out, s)
	}
	return out
}

func toStatementActions(stmts []Statement) []controlflow.StatementAction {
	out := make([]controlflow.StatementAction, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

// Param is one declared parameter of a function-like.
type Param struct {
	Name       string
	Type       *types.Union
	ByRef      bool
	Variadic   bool
	HasDefault bool
}

// FunctionLikeKind distinguishes the four function-like shapes spec's
// GLOSSARY names.
type FunctionLikeKind int

const (
	KindFunction FunctionLikeKind = iota
	KindMethod
	KindClosure
	KindArrowFunction
)

// FunctionLikeDecl is the AST shape the analyzer walks to perform
// generator/return checking (§4.6) and argument checking (§4.7).
type FunctionLikeDecl struct {
	baseNode
	Kind         FunctionLikeKind
	Name         string
	Params       []Param
	DeclaredReturn *types.Union // nil if untyped
	Body         []Statement
	IsGenerator  bool // syntactically contains yield/yield-from
}

func (f *FunctionLikeDecl) Children() []Node {
	var out []Node
	for _, s := range f.Body {
		out = append(out, s)
	}
	return out
}
