package controlflow

import "testing"

type fakeStmt struct {
	own      Action
	branches []ActionSet
	allReq   bool
}

func (f fakeStmt) OwnAction() Action        { return f.own }
func (f fakeStmt) Branches() []ActionSet    { return f.branches }
func (f fakeStmt) AllBranchesRequired() bool { return f.allReq }

func TestBareReturnIsTerminal(t *testing.T) {
	set := FromStatements([]StatementAction{fakeStmt{own: Return}})
	if !set.Terminal() {
		t.Fatalf("expected terminal action set")
	}
	if !set.Has(Return) {
		t.Fatalf("expected Return present")
	}
}

func TestIfElseBothReturnIsTerminal(t *testing.T) {
	ifElse := fakeStmt{
		own:    None,
		allReq: true,
		branches: []ActionSet{
			NewActionSet(Return),
			NewActionSet(Throw),
		},
	}
	set := FromStatements([]StatementAction{ifElse})
	if !set.Terminal() {
		t.Fatalf("expected terminal: both branches exit")
	}
}

func TestIfWithoutElseIsNotTerminal(t *testing.T) {
	ifOnly := fakeStmt{
		own:    None,
		allReq: true,
		branches: []ActionSet{
			NewActionSet(Return),
			NewActionSet(None), // implicit empty else falls through
		},
	}
	set := FromStatements([]StatementAction{ifOnly})
	if set.Terminal() {
		t.Fatalf("expected fallthrough to remain possible")
	}
}

func TestStatementsAfterTerminalAreUnreachable(t *testing.T) {
	set := FromStatements([]StatementAction{
		fakeStmt{own: Return},
		fakeStmt{own: Throw},
	})
	if set.Has(Throw) {
		t.Fatalf("statement after terminal return must not contribute")
	}
}
