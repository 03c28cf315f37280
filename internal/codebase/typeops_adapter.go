package codebase

import (
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/types"
	"github.com/yigitcukuren/mago-sub004/internal/typeops"
)

// IsClassSubtypeOf implements typeops.ClassIndex: walk
// all_parent_classes ∪ all_parent_interfaces ∪ used_traits, per §4.1.
func (ix *Index) IsClassSubtypeOf(child, parent intern.StringId, allowEquality bool) bool {
	if child == parent {
		return allowEquality
	}
	cl, ok := ix.classLikeById(child)
	if !ok {
		return false
	}
	if cl.AllParentClasses[parent] || cl.AllParentInterfaces[parent] {
		return true
	}
	for _, tr := range cl.UsedTraits {
		if tr == parent {
			return true
		}
	}
	return false
}

// TemplateVariance implements typeops.ClassIndex, reading the
// @template-covariant / @template-contravariant declaration off the
// classlike's template type list (invariant when unspecified falls
// back to the covariant default per §4.1).
func (ix *Index) TemplateVariance(className intern.StringId, index int) typeops.Variance {
	cl, ok := ix.classLikeById(className)
	if !ok || index >= len(cl.TemplateTypes) {
		return typeops.VarianceCovariant
	}
	return cl.TemplateTypes[index].Variance
}

// DefaultTemplateTypes implements typeops.ExpandIndex.
func (ix *Index) DefaultTemplateTypes(className string) []*types.Union {
	cl, ok := ix.ClassLikeByName(className)
	if !ok {
		return nil
	}
	out := make([]*types.Union, 0, len(cl.TemplateTypes))
	for _, tt := range cl.TemplateTypes {
		if tt.Default != nil {
			out = append(out, tt.Default)
		}
	}
	return out
}

// ResolveClassConstant implements typeops.ExpandIndex.
func (ix *Index) ResolveClassConstant(className, constName string) (*types.Union, bool) {
	cl, ok := ix.ClassLikeByName(className)
	if !ok {
		return nil, false
	}
	// Class constants are case-sensitive per spec §3.1.
	id := ix.interner.Intern(constName)
	u, ok := cl.Constants[id]
	return u, ok
}

// ResolveEnumCase implements typeops.ExpandIndex.
func (ix *Index) ResolveEnumCase(enumName, caseName string) (*types.Union, bool) {
	cl, ok := ix.ClassLikeByName(enumName)
	if !ok {
		return nil, false
	}
	id := ix.interner.Intern(caseName)
	u, ok := cl.EnumCases[id]
	return u, ok
}

// EnumCaseNames implements typeops.ExpandIndex.
func (ix *Index) EnumCaseNames(enumName string) []string {
	cl, ok := ix.ClassLikeByName(enumName)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(cl.EnumCases))
	for id := range cl.EnumCases {
		out = append(out, ix.interner.Lookup(id))
	}
	return out
}

// ClassConstantNames implements typeops.ExpandIndex.
func (ix *Index) ClassConstantNames(className string) []string {
	cl, ok := ix.ClassLikeByName(className)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(cl.Constants))
	for id := range cl.Constants {
		out = append(out, ix.interner.Lookup(id))
	}
	return out
}

// FunctionSignature implements typeops.ExpandIndex, inlining
// Callable::Alias(id) by looking up the aliased function-like's
// signature.
func (ix *Index) FunctionSignature(aliasId string) (*types.Signature, bool) {
	fn, ok := ix.FunctionLikeByName(aliasId)
	if !ok {
		return nil, false
	}
	return fn.Signature, true
}

var _ typeops.ExpandIndex = (*Index)(nil)
