package ast

import (
	"testing"

	"github.com/yigitcukuren/mago-sub004/internal/controlflow"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

func TestIfStmtBothBranchesReturnIsTerminal(t *testing.T) {
	span := types.SourceSpan{}
	ifStmt := &IfStmt{
		baseNode: baseNode{span},
		Then:     []Statement{NewReturnStmt(span, nil)},
		Else:     []Statement{NewThrowStmt(span, Literal{})},
	}
	set := controlflow.FromStatements([]controlflow.StatementAction{ifStmt})
	if !set.Terminal() {
		t.Fatalf("expected if/else where both branches exit to be terminal")
	}
}

func TestTryStmtWithoutCatchesIsNotTerminal(t *testing.T) {
	span := types.SourceSpan{}
	tryStmt := &TryStmt{
		baseNode: baseNode{span},
		Try:      []Statement{&ExpressionStmt{Expr: Literal{}}},
	}
	set := controlflow.FromStatements([]controlflow.StatementAction{tryStmt})
	if set.Terminal() {
		t.Fatalf("a try with no catches and a falling-through body should not be terminal")
	}
}

func TestBreakStmtReportsBreakAction(t *testing.T) {
	span := types.SourceSpan{}
	b := NewBreakStmt(span)
	if b.OwnAction() != controlflow.Break {
		t.Fatalf("expected Break action")
	}
}
