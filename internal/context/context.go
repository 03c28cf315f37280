// Package context implements the per-program-point block context: the
// analyzer's snapshot of variable types, definedness, thrown
// exceptions, and the small amount of state try/catch/finally and loop
// analysis need to thread through nested blocks (spec §3.5, §4.3).
package context

import (
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// Clause is one atom of the path-sensitive formula the analyzer
// accumulates from conditions, used to simplify assertions that would
// otherwise contradict a fact already established on the current path.
type Clause struct {
	VarName string
	Atom    string // printable assertion key, e.g. "is(int)"
	Negated bool
}

// FinallyScope is the shared mutable container every catch clause and
// the try body itself contribute their exit-locals to, so the
// enclosing finally can merge all of them (spec §4.5, design note on
// finally-scope sharing: single owner, interior mutability).
type FinallyScope struct {
	contributions []map[string]*types.Union
}

func NewFinallyScope() *FinallyScope { return &FinallyScope{} }

// Contribute records one exit view of locals (from the try body or one
// catch clause).
func (f *FinallyScope) Contribute(locals map[string]*types.Union) {
	cp := make(map[string]*types.Union, len(locals))
	for k, v := range locals {
		cp[k] = v
	}
	f.contributions = append(f.contributions, cp)
}

// Merged returns the union, per variable, of every contribution.
func (f *FinallyScope) Merged(combine func(a, b *types.Union) *types.Union) map[string]*types.Union {
	out := map[string]*types.Union{}
	for _, contrib := range f.contributions {
		for name, ty := range contrib {
			if existing, ok := out[name]; ok {
				out[name] = combine(existing, ty)
			} else {
				out[name] = ty
			}
		}
	}
	return out
}

// ScopeInfo identifies the function-like currently being analyzed, the
// minimum the generator/return checks (package generator) need.
type ScopeInfo struct {
	Name        string
	IsGenerator bool
	IsClosure   bool
	ClassName   string // "" for non-methods
}

// BlockContext is the per-program-point snapshot. Locals is shared via
// copy-on-write: Clone() does a shallow copy of the map header, and any
// mutation first takes a private copy (see SetLocal).
type BlockContext struct {
	Locals                      map[string]*types.Union
	VariablesPossiblyInScope    map[string]bool
	AssignedVariableIds         map[string]bool
	PossiblyAssignedVariableIds map[string]bool
	PossiblyUndefinedVariables  map[string]bool

	PossiblyThrownExceptions map[intern.StringId]map[types.SourceSpan]bool

	Clauses []Clause

	InsideCall bool
	InsideTry  bool
	InsideLoop bool
	HasReturned bool

	FinallyScope *FinallyScope
	Scope        *ScopeInfo

	owned bool // true once this context has its own private Locals map
}

// New returns an empty, ready-to-use BlockContext for the start of a
// function-like body.
func New(scope *ScopeInfo) *BlockContext {
	return &BlockContext{
		Locals:                      map[string]*types.Union{},
		VariablesPossiblyInScope:    map[string]bool{},
		AssignedVariableIds:         map[string]bool{},
		PossiblyAssignedVariableIds: map[string]bool{},
		PossiblyUndefinedVariables:  map[string]bool{},
		PossiblyThrownExceptions:    map[intern.StringId]map[types.SourceSpan]bool{},
		Scope:                       scope,
		owned:                       true,
	}
}

// Clone returns a context that shares Locals with bc (copy-on-write)
// until the clone's first mutation, matching "branches copy-on-write"
// from spec §3.5.
func (bc *BlockContext) Clone() *BlockContext {
	cp := &BlockContext{
		Locals:                      bc.Locals,
		VariablesPossiblyInScope:    copySet(bc.VariablesPossiblyInScope),
		AssignedVariableIds:         copySet(bc.AssignedVariableIds),
		PossiblyAssignedVariableIds: copySet(bc.PossiblyAssignedVariableIds),
		PossiblyUndefinedVariables:  copySet(bc.PossiblyUndefinedVariables),
		PossiblyThrownExceptions:    copyThrown(bc.PossiblyThrownExceptions),
		Clauses:                     append([]Clause(nil), bc.Clauses...),
		InsideCall:                  bc.InsideCall,
		InsideTry:                   bc.InsideTry,
		InsideLoop:                  bc.InsideLoop,
		HasReturned:                 bc.HasReturned,
		FinallyScope:                bc.FinallyScope,
		Scope:                       bc.Scope,
		owned:                       false,
	}
	return cp
}

func copySet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func copyThrown(m map[intern.StringId]map[types.SourceSpan]bool) map[intern.StringId]map[types.SourceSpan]bool {
	out := make(map[intern.StringId]map[types.SourceSpan]bool, len(m))
	for k, spans := range m {
		s2 := make(map[types.SourceSpan]bool, len(spans))
		for sp := range spans {
			s2[sp] = true
		}
		out[k] = s2
	}
	return out
}

// takeOwnLocals makes a private copy of Locals if this context is
// still sharing one, implementing the copy-on-write contract.
func (bc *BlockContext) takeOwnLocals() {
	if bc.owned {
		return
	}
	cp := make(map[string]*types.Union, len(bc.Locals))
	for k, v := range bc.Locals {
		cp[k] = v
	}
	bc.Locals = cp
	bc.owned = true
}

// SetLocal assigns ty to name, marking it assigned/possibly-in-scope.
func (bc *BlockContext) SetLocal(name string, ty *types.Union) {
	bc.takeOwnLocals()
	bc.Locals[name] = ty
	bc.VariablesPossiblyInScope[name] = true
	bc.AssignedVariableIds[name] = true
	bc.PossiblyAssignedVariableIds[name] = true
	delete(bc.PossiblyUndefinedVariables, name)
}

// GetLocal returns the current type of name, or nil if never assigned
// on any path reaching this point.
func (bc *BlockContext) GetLocal(name string) (*types.Union, bool) {
	ty, ok := bc.Locals[name]
	return ty, ok
}

// MarkPossiblyUndefined flags name as defined on at least one but not
// every path (spec §4.3's branching rule).
func (bc *BlockContext) MarkPossiblyUndefined(name string) {
	bc.PossiblyUndefinedVariables[name] = true
}

// AddThrown records that span may throw an instance of exceptionClass.
func (bc *BlockContext) AddThrown(exceptionClass intern.StringId, span types.SourceSpan) {
	if bc.PossiblyThrownExceptions[exceptionClass] == nil {
		bc.PossiblyThrownExceptions[exceptionClass] = map[types.SourceSpan]bool{}
	}
	bc.PossiblyThrownExceptions[exceptionClass][span] = true
}

// RemoveThrown deletes exceptionClass from the possibly-thrown set
// (used after a catch clause proves it handles that class, spec §4.5
// step 4).
func (bc *BlockContext) RemoveThrown(exceptionClass intern.StringId) {
	delete(bc.PossiblyThrownExceptions, exceptionClass)
}
