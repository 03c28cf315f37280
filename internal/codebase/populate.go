package codebase

import (
	"fmt"

	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// NotPopulatedError is returned by any query requiring Populate to have
// run, per spec §3.3 "is_populated must be true before querying".
type NotPopulatedError struct{}

func (NotPopulatedError) Error() string { return "codebase index: Populate has not run" }

// CycleError reports an inheritance cycle discovered while populating.
type CycleError struct{ Chain []string }

func (e CycleError) Error() string {
	return fmt.Sprintf("codebase index: inheritance cycle: %v", e.Chain)
}

// Populate computes, for every registered classlike, the transitive
// closures (all_parent_classes, all_parent_interfaces) and the
// inheritance-flattened member tables (appearing/declaring method and
// property ids, constants, enum cases). Safe to call once; a second
// call is a no-op.
func (ix *Index) Populate() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.populated {
		return nil
	}

	visiting := map[intern.StringId]bool{}
	done := map[intern.StringId]bool{}

	var visit func(id intern.StringId, chain []string) error
	visit = func(id intern.StringId, chain []string) error {
		if done[id] {
			return nil
		}
		cl, ok := ix.classlikes[id]
		if !ok {
			return nil
		}
		name := ix.interner.Lookup(cl.LoweredName)
		if visiting[id] {
			return CycleError{Chain: append(append([]string(nil), chain...), name)}
		}
		visiting[id] = true
		defer delete(visiting, id)

		cl.AllParentClasses = map[intern.StringId]bool{}
		cl.AllParentInterfaces = map[intern.StringId]bool{}
		cl.AppearingMethodIds = map[intern.StringId]MemberId{}
		cl.DeclaringMethodIds = map[intern.StringId]MemberId{}
		cl.AppearingPropertyIds = map[intern.StringId]MemberId{}
		cl.DeclaringPropertyIds = map[intern.StringId]MemberId{}
		if cl.Constants == nil {
			cl.Constants = map[intern.StringId]*types.Union{}
		}
		if cl.EnumCases == nil {
			cl.EnumCases = map[intern.StringId]*types.Union{}
		}
		if cl.TemplateExtendedParameters == nil {
			cl.TemplateExtendedParameters = map[intern.StringId][]*types.Union{}
		}

		mergeAncestor := func(ancestorId intern.StringId) error {
			if err := visit(ancestorId, append(chain, name)); err != nil {
				return err
			}
			anc, ok := ix.classlikes[ancestorId]
			if !ok {
				return nil
			}
			cl.AllParentClasses[ancestorId] = true
			for id2 := range anc.AllParentClasses {
				cl.AllParentClasses[id2] = true
			}
			cl.AllParentInterfaces[ancestorId] = true
			for id2 := range anc.AllParentInterfaces {
				cl.AllParentInterfaces[id2] = true
			}
			for mid, owner := range anc.AppearingMethodIds {
				if _, exists := cl.AppearingMethodIds[mid]; !exists {
					cl.AppearingMethodIds[mid] = owner
				}
			}
			for mid, owner := range anc.AppearingPropertyIds {
				if _, exists := cl.AppearingPropertyIds[mid]; !exists {
					cl.AppearingPropertyIds[mid] = owner
				}
			}
			for cid, ty := range anc.Constants {
				if _, exists := cl.Constants[cid]; !exists {
					cl.Constants[cid] = ty
				}
			}
			recordDescendant(ix.directDescendants, ancestorId, id)
			return nil
		}

		if cl.DirectParentClass != intern.Invalid {
			cl.AllParentClasses[cl.DirectParentClass] = true
			if err := mergeAncestor(cl.DirectParentClass); err != nil {
				return err
			}
		}
		for _, iface := range cl.DirectParentInterfaces {
			cl.AllParentInterfaces[iface] = true
			if err := mergeAncestor(iface); err != nil {
				return err
			}
		}
		for _, tr := range cl.UsedTraits {
			if err := mergeAncestor(tr); err != nil {
				return err
			}
		}

		// Own declarations take priority and are recorded as both
		// appearing and declaring.
		for mid := range cl.Methods {
			owner := MemberId{Class: id, Name: mid}
			cl.AppearingMethodIds[mid] = owner
			cl.DeclaringMethodIds[mid] = owner
		}
		for pid := range cl.Properties {
			owner := MemberId{Class: id, Name: pid}
			cl.AppearingPropertyIds[pid] = owner
			cl.DeclaringPropertyIds[pid] = owner
		}

		done[id] = true
		return nil
	}

	for id := range ix.classlikes {
		if err := visit(id, nil); err != nil {
			return err
		}
	}

	ix.populated = true
	return nil
}

func recordDescendant(m map[intern.StringId]map[intern.StringId]bool, ancestor, descendant intern.StringId) {
	if m[ancestor] == nil {
		m[ancestor] = map[intern.StringId]bool{}
	}
	m[ancestor][descendant] = true
}

// DirectDescendants returns the direct (non-transitive) descendants of
// className, the reversed edge set spec §3.3 calls
// direct_classlike_descendants.
func (ix *Index) DirectDescendants(classId intern.StringId) []intern.StringId {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	set := ix.directDescendants[classId]
	out := make([]intern.StringId, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
