package analyzer

import (
	blockctx "github.com/yigitcukuren/mago-sub004/internal/context"
	"github.com/yigitcukuren/mago-sub004/internal/types"
	"github.com/yigitcukuren/mago-sub004/internal/typeops"
)

// combineUnions is the two-argument form of typeops.Combine every join
// point in the merge logic below needs.
func combineUnions(a, b *types.Union) *types.Union {
	atomics := append(append([]types.Atomic{}, a.Atomics...), b.Atomics...)
	return types.NewUnion(typeops.Combine(atomics, false)...)
}

// mergeBranches implements spec §4.3's branching rule: a branch whose
// reachable actions are all terminal (return/throw/break/continue)
// contributes nothing to the join since control never reaches past
// the construct along that path. A variable assigned on only some of
// the surviving branches becomes possibly_undefined.
func mergeBranches(base *blockctx.BlockContext, branches []*blockctx.BlockContext, terminal []bool) *blockctx.BlockContext {
	live := make([]*blockctx.BlockContext, 0, len(branches))
	for i, b := range branches {
		if !terminal[i] {
			live = append(live, b)
		}
	}
	if len(live) == 0 {
		// Every branch exits; nothing survives to the join, but callers
		// still need a context to keep threading subsequent statements.
		return base.Clone()
	}

	result := live[0].Clone()
	names := map[string]bool{}
	for _, b := range live {
		for name := range b.Locals {
			names[name] = true
		}
	}

	for name := range names {
		var combined *types.Union
		definedInAll := true
		for _, b := range live {
			ty, ok := b.GetLocal(name)
			if !ok {
				definedInAll = false
				continue
			}
			if combined == nil {
				combined = ty
			} else {
				combined = combineUnions(combined, ty)
			}
		}
		if combined == nil {
			continue
		}
		result.SetLocal(name, combined)
		if !definedInAll {
			result.MarkPossiblyUndefined(name)
		}
	}

	for _, b := range live {
		for name := range b.PossiblyUndefinedVariables {
			result.MarkPossiblyUndefined(name)
		}
		for cls, spans := range b.PossiblyThrownExceptions {
			for sp := range spans {
				result.AddThrown(cls, sp)
			}
		}
	}
	return result
}

// widenLoopVariable combines the pre-loop type of name with the type
// observed after one pass of the body, per the fixed-point iteration
// spec §4.3/§9 describe; overwriteEmptyArray mirrors the "widen
// aggressively beyond the cap" guidance once the iteration budget is
// spent.
func widenLoopVariable(preLoop, afterPass *types.Union, overwriteEmptyArray bool) *types.Union {
	atomics := append(append([]types.Atomic{}, preLoop.Atomics...), afterPass.Atomics...)
	return types.NewUnion(typeops.Combine(atomics, overwriteEmptyArray)...)
}
