package typeops

import (
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// ClassIndex is the slice of codebase.Index queries subtype comparison
// needs. Defined here (not imported from package codebase) so typeops
// stays a pure, dependency-free leaf; codebase.Index satisfies it.
type ClassIndex interface {
	// IsClassSubtypeOf reports whether child is child-of (or equal to,
	// when allowEquality) parent, walking all_parent_classes,
	// all_parent_interfaces and used_traits.
	IsClassSubtypeOf(child, parent intern.StringId, allowEquality bool) bool
	// TemplateVariance reports the declared variance of the nth
	// template parameter of className ("" = invariant default is
	// covariant per §4.1).
	TemplateVariance(className intern.StringId, index int) Variance
}

type Variance int

const (
	VarianceCovariant Variance = iota
	VarianceContravariant
	VarianceInvariant
)

// ComparisonResult is the out-parameter contained_by populates so
// callers can upgrade/downgrade diagnostic severity.
type ComparisonResult struct {
	ScalarTypeMatchFound    bool
	TypeCoerced             bool
	TypeCoercedFromMixed    bool
	ReplacementAtomic       types.Atomic
}

// Options bundles the optional relaxations contained_by accepts.
type Options struct {
	IgnoreNull              bool
	IgnoreFalse             bool
	AllowInterfaceEquality  bool
}

// IsContainedBy reports whether every atomic of child is contained by
// some atomic of parent (§4.1's Union rule), filling res with upgrade
// hints along the way. A nil index degrades named-object comparison to
// "assume not related" rather than panicking, so callers that only
// exercise scalar/array logic don't need to wire one up.
func IsContainedBy(child, parent *types.Union, opts Options, index ClassIndex) (bool, ComparisonResult) {
	var res ComparisonResult
	ok := isUnionContainedBy(child, parent, opts, index, &res)
	return ok, res
}

func isUnionContainedBy(child, parent *types.Union, opts Options, index ClassIndex, res *ComparisonResult) bool {
	if child == nil || parent == nil {
		return false
	}
	for _, ca := range child.Atomics {
		if _, isNever := ca.(types.Never); isNever {
			continue // never ⊑ anything
		}
		if !atomicContainedByAny(ca, parent.Atomics, opts, index, res) {
			return false
		}
	}
	return true
}

func atomicContainedByAny(child types.Atomic, parents []types.Atomic, opts Options, index ClassIndex, res *ComparisonResult) bool {
	for _, p := range parents {
		if atomicContainedBy(child, p, opts, index, res) {
			return true
		}
	}
	return false
}

func atomicContainedBy(child, parent types.Atomic, opts Options, index ClassIndex, res *ComparisonResult) bool {
	if _, ok := parent.(types.Mixed); ok {
		if _, isMixed := child.(types.Mixed); isMixed {
			res.TypeCoercedFromMixed = false
		} else {
			// anything ⊑ mixed
		}
		return true
	}
	if _, isMixed := child.(types.Mixed); isMixed {
		// child = mixed, parent demanded something narrower: coercion.
		res.TypeCoerced = true
		res.TypeCoercedFromMixed = true
		return true
	}
	if _, ok := child.(types.Never); ok {
		return true
	}

	switch c := child.(type) {
	case types.Int:
		p, ok := parent.(types.Int)
		if !ok {
			if _, isNum := parent.(types.Numeric); isNum {
				return true
			}
			if _, isKey := parent.(types.ArrayKey); isKey {
				return true
			}
			return false
		}
		return intContainedBy(c, p)

	case types.Float:
		p, ok := parent.(types.Float)
		if !ok {
			return false
		}
		if !p.IsLiteral {
			return true
		}
		return c.IsLiteral && c.LiteralVal == p.LiteralVal

	case types.StringAtomic:
		p, ok := parent.(types.StringAtomic)
		if !ok {
			if _, isKey := parent.(types.ArrayKey); isKey {
				return true
			}
			return false
		}
		return stringContainedBy(c, p)

	case types.Bool:
		p, ok := parent.(types.Bool)
		if !ok {
			return false
		}
		if p.Variant == types.BoolAny {
			return true
		}
		return c.Variant == p.Variant

	case types.Null:
		if opts.IgnoreNull {
			return true
		}
		_, ok := parent.(types.Null)
		return ok

	case types.Void:
		_, ok := parent.(types.Void)
		return ok

	case types.List:
		return listContainedBy(c, parent, opts, index, res)

	case types.KeyedArray:
		return keyedContainedBy(c, parent, opts, index, res)

	case types.Iterable:
		p, ok := parent.(types.Iterable)
		if !ok {
			return false
		}
		return isUnionContainedBy(c.Key, p.Key, opts, index, res) && isUnionContainedBy(c.Value, p.Value, opts, index, res)

	case types.Callable:
		return callableContainedBy(c.Sig, parent, opts, index, res)

	case types.Closure:
		return callableContainedBy(c.Sig, parent, opts, index, res)

	case types.AnyObject:
		_, ok := parent.(types.AnyObject)
		return ok

	case types.Named:
		return namedContainedBy(c, parent, opts, index, res)

	case types.EnumCase:
		if p, ok := parent.(types.EnumCase); ok {
			return p.EnumName == c.EnumName && p.CaseName == c.CaseName
		}
		if p, ok := parent.(types.Named); ok {
			return p.Name == c.EnumName
		}
		return false

	case types.Resource:
		_, ok := parent.(types.Resource)
		return ok

	case types.ArrayKey:
		_, ok := parent.(types.ArrayKey)
		return ok

	case types.Numeric:
		_, ok := parent.(types.Numeric)
		return ok

	case types.GenericParam:
		if c.Constraint != nil {
			return isUnionContainedBy(c.Constraint, types.Single(parent), opts, index, res)
		}
		return false

	default:
		return child.StructuralId() == parent.StructuralId()
	}
}

func intContainedBy(c, p types.Int) bool {
	if p.Variant == types.IntAny {
		return true
	}
	clo, chi, cok := intBounds(c)
	plo, phi, pok := intBounds(p)
	if !cok || !pok {
		return false
	}
	return plo <= clo && chi <= phi
}

func intBounds(i types.Int) (lo, hi int64, ok bool) {
	switch i.Variant {
	case types.IntLiteral:
		return i.LiteralVal, i.LiteralVal, true
	case types.IntRange:
		return i.Lo, i.Hi, true
	case types.IntFrom:
		return i.Lo, int64(1) << 62, true
	case types.IntTo:
		return -(int64(1) << 62), i.Hi, true
	default:
		return 0, 0, false
	}
}

// stringContainedBy implements the property lattice: literal ⊑
// non_empty ⊑ general, with numeric/lowercase/truthy checked
// orthogonally when the parent demands them.
func stringContainedBy(c, p types.StringAtomic) bool {
	if p.IsLiteral {
		return c.IsLiteral && c.LiteralVal == p.LiteralVal
	}
	if p.NonEmpty && !(c.NonEmpty || c.IsLiteral && len(c.LiteralVal) > 0) {
		return false
	}
	if p.Numeric && !c.Numeric {
		return false
	}
	if p.Lowercase && !c.Lowercase {
		return false
	}
	if p.Truthy && !c.Truthy {
		return false
	}
	return true
}

func listContainedBy(c types.List, parent types.Atomic, opts Options, index ClassIndex, res *ComparisonResult) bool {
	switch p := parent.(type) {
	case types.List:
		if p.NonEmpty && !c.NonEmpty {
			// child may or may not turn out empty at runtime; this is a
			// soft mismatch rather than a hard one.
			res.TypeCoerced = true
		}
		if !isUnionContainedBy(c.Element, p.Element, opts, index, res) {
			return false
		}
		for i, pp := range p.Prefix {
			var ce *types.Union
			if i < len(c.Prefix) {
				ce = c.Prefix[i]
			} else {
				ce = c.Element
			}
			if !isUnionContainedBy(ce, pp, opts, index, res) {
				return false
			}
		}
		return true
	case types.KeyedArray:
		// list ⊑ keyed_array(int-keyed): reinterpret as int-keyed array.
		keyT := types.Single(types.Int{Variant: types.IntAny})
		if p.Key != nil && !isUnionContainedBy(keyT, p.Key, opts, index, res) {
			return false
		}
		if p.NonEmpty && !c.NonEmpty {
			return false
		}
		return isUnionContainedBy(c.Element, p.Value, opts, index, res)
	default:
		return false
	}
}

func keyedContainedBy(c types.KeyedArray, parent types.Atomic, opts Options, index ClassIndex, res *ComparisonResult) bool {
	p, ok := parent.(types.KeyedArray)
	if !ok {
		return false
	}
	if p.NonEmpty && !c.NonEmpty {
		return false
	}
	for _, req := range p.RequiredKeys() {
		item, has := c.KnownItems[req]
		if !has || !item.Required {
			return false
		}
	}
	for name, pItem := range p.KnownItems {
		if cItem, ok := c.KnownItems[name]; ok {
			if !isUnionContainedBy(cItem.Type, pItem.Type, opts, index, res) {
				return false
			}
		}
	}
	if len(c.KnownItems) == 0 && len(p.KnownItems) == 0 {
		return isUnionContainedBy(c.Key, p.Key, opts, index, res) && isUnionContainedBy(c.Value, p.Value, opts, index, res)
	}
	return true
}

// callableContainedBy checks contravariant parameters / covariant
// return / purity-must-not-downgrade, per §4.1 Callables.
func callableContainedBy(childSig *types.Signature, parent types.Atomic, opts Options, index ClassIndex, res *ComparisonResult) bool {
	var parentSig *types.Signature
	switch p := parent.(type) {
	case types.Callable:
		parentSig = p.Sig
	case types.Closure:
		parentSig = p.Sig
	default:
		return false
	}
	if parentSig == nil {
		return true // parent accepts any signature
	}
	if childSig == nil {
		res.TypeCoerced = true
		return true
	}
	if parentSig.IsPure && !childSig.IsPure {
		return false
	}
	if len(childSig.Parameters) > len(parentSig.Parameters) {
		return false
	}
	for i, pp := range parentSig.Parameters {
		if i >= len(childSig.Parameters) {
			if !pp.HasDefault && !pp.Variadic {
				return false
			}
			continue
		}
		cp := childSig.Parameters[i]
		// contravariant: parent's parameter type must be contained by
		// the child's (the child must accept everything the parent did).
		if cp.Type != nil && pp.Type != nil && !isUnionContainedBy(pp.Type, cp.Type, opts, index, res) {
			return false
		}
	}
	return isUnionContainedBy(childSig.Return, parentSig.Return, opts, index, res)
}

func namedContainedBy(c types.Named, parent types.Atomic, opts Options, index ClassIndex, res *ComparisonResult) bool {
	p, ok := parent.(types.Named)
	if !ok {
		if _, isObj := parent.(types.AnyObject); isObj {
			return true
		}
		return false
	}
	if c.Name == p.Name {
		return namedTemplateParamsCompatible(c, p, opts, index, res)
	}
	if index == nil {
		return false
	}
	if !index.IsClassSubtypeOf(c.Name, p.Name, opts.AllowInterfaceEquality) {
		return false
	}
	return namedTemplateParamsCompatible(c, p, opts, index, res)
}

func namedTemplateParamsCompatible(c, p types.Named, opts Options, index ClassIndex, res *ComparisonResult) bool {
	for i := range p.TypeParameters {
		if i >= len(c.TypeParameters) {
			break
		}
		variance := VarianceCovariant
		if index != nil {
			variance = index.TemplateVariance(p.Name, i)
		}
		switch variance {
		case VarianceContravariant:
			if !isUnionContainedBy(p.TypeParameters[i], c.TypeParameters[i], opts, index, res) {
				return false
			}
		case VarianceInvariant:
			if !isUnionContainedBy(c.TypeParameters[i], p.TypeParameters[i], opts, index, res) ||
				!isUnionContainedBy(p.TypeParameters[i], c.TypeParameters[i], opts, index, res) {
				return false
			}
		default: // covariant
			if !isUnionContainedBy(c.TypeParameters[i], p.TypeParameters[i], opts, index, res) {
				return false
			}
		}
	}
	return true
}
