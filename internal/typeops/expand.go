package typeops

import "github.com/yigitcukuren/mago-sub004/internal/types"

// ExpandIndex is the slice of codebase queries Expand needs: default
// template bindings, class constants / enum cases for MemberReference
// resolution, and function-like signatures for Callable::Alias
// inlining.
type ExpandIndex interface {
	ClassIndex
	DefaultTemplateTypes(className string) []*types.Union
	ResolveClassConstant(className string, constName string) (*types.Union, bool)
	ResolveEnumCase(enumName string, caseName string) (*types.Union, bool)
	EnumCaseNames(enumName string) []string
	ClassConstantNames(className string) []string
	FunctionSignature(aliasId string) (*types.Signature, bool)
}

// ExpandOptions carries the self/static/parent bindings in scope for
// the expansion, mirroring §4.1 Expansion.
type ExpandOptions struct {
	SelfClass       string
	StaticClassType types.Atomic // a Named or the self class if unset
	ParentClass     string
}

// SelfSentinel, StaticSentinel and ParentSentinel are the conventional
// class-name strings a Named atomic carries before expansion resolves
// them against ExpandOptions.
const (
	SelfSentinel   = "self"
	StaticSentinel = "static"
	ParentSentinel = "parent"
)

// Expand resolves self/static/parent, fills missing class template
// arguments with the class's declared defaults (only for a named type
// resolved from a self/parent/static sentinel; an already-concrete named
// type keeps the type arguments it has), resolves member
// references, evaluates Conditional/KeyOf/ValueOf, and inlines
// Callable aliases. Expand is idempotent: a second call on its own
// output is a no-op because every resolvable form above is eliminated
// in a single pass.
func Expand(u *types.Union, opts ExpandOptions, index ExpandIndex) *types.Union {
	if u == nil {
		return u
	}
	var out []types.Atomic
	for _, a := range u.Atomics {
		out = append(out, expandAtomic(a, opts, index)...)
	}
	cp := u.Clone()
	cp.Atomics = dedupByStructuralId(out)
	return cp
}

func expandAtomic(a types.Atomic, opts ExpandOptions, index ExpandIndex) []types.Atomic {
	switch v := a.(type) {
	case types.Named:
		return expandNamed(v, opts, index)
	case types.MemberReference:
		return expandMemberReference(v, index)
	case types.Conditional:
		return expandConditional(v, opts, index)
	case types.KeyOf:
		return expandKeyOf(v, opts, index)
	case types.ValueOf:
		return expandValueOf(v, opts, index)
	case types.PropertiesOf:
		v.Target = Expand(v.Target, opts, index)
		return []types.Atomic{v}
	case types.List:
		v.Element = Expand(v.Element, opts, index)
		newPrefix := make([]*types.Union, len(v.Prefix))
		for i, p := range v.Prefix {
			newPrefix[i] = Expand(p, opts, index)
		}
		v.Prefix = newPrefix
		return []types.Atomic{v}
	case types.KeyedArray:
		v.Key = Expand(v.Key, opts, index)
		v.Value = Expand(v.Value, opts, index)
		return []types.Atomic{v}
	case types.Iterable:
		v.Key = Expand(v.Key, opts, index)
		v.Value = Expand(v.Value, opts, index)
		return []types.Atomic{v}
	default:
		return []types.Atomic{a}
	}
}

func expandNamed(v types.Named, opts ExpandOptions, index ExpandIndex) []types.Atomic {
	name := v
	switch name.Sentinel {
	case SelfSentinel:
		return resolveSentinelClass(opts.SelfClass, name, opts, index)
	case ParentSentinel:
		return resolveSentinelClass(opts.ParentClass, name, opts, index)
	case StaticSentinel:
		if staticNamed, ok := opts.StaticClassType.(types.Named); ok {
			merged := staticNamed
			merged.IntersectionSet = append(merged.IntersectionSet, name.IntersectionSet...)
			name = merged
		} else {
			return resolveSentinelClass(opts.SelfClass, name, opts, index)
		}
	}

	for i, tp := range name.TypeParameters {
		name.TypeParameters[i] = Expand(tp, opts, index)
	}
	return []types.Atomic{name}
}

func resolveSentinelClass(className string, orig types.Named, opts ExpandOptions, index ExpandIndex) []types.Atomic {
	if className == "" || index == nil {
		orig.Sentinel = ""
		return []types.Atomic{orig}
	}
	resolved := types.Named{TypeParameters: orig.TypeParameters, IntersectionSet: orig.IntersectionSet, IsThis: orig.IsThis}
	if defaults := index.DefaultTemplateTypes(className); len(defaults) > 0 && len(resolved.TypeParameters) == 0 {
		resolved.TypeParameters = defaults
	}
	return []types.Atomic{resolved}
}

func expandMemberReference(v types.MemberReference, index ExpandIndex) []types.Atomic {
	if index == nil {
		return []types.Atomic{v}
	}
	switch v.Selector.Kind {
	case types.SelectorIdent:
		if u, ok := index.ResolveClassConstant(v.Class, v.Selector.Ident); ok {
			return append([]types.Atomic(nil), u.Atomics...)
		}
		if u, ok := index.ResolveEnumCase(v.Class, v.Selector.Ident); ok {
			return append([]types.Atomic(nil), u.Atomics...)
		}
		return []types.Atomic{v}
	case types.SelectorWildcard:
		return resolveAllMembers(v.Class, index, func(string) bool { return true })
	case types.SelectorPrefix:
		prefix := v.Selector.Ident
		return resolveAllMembers(v.Class, index, func(s string) bool { return hasPrefix(s, prefix) })
	case types.SelectorSuffix:
		suffix := v.Selector.Ident
		return resolveAllMembers(v.Class, index, func(s string) bool { return hasSuffix(s, suffix) })
	default:
		return []types.Atomic{v}
	}
}

func resolveAllMembers(class string, index ExpandIndex, match func(string) bool) []types.Atomic {
	var out []types.Atomic
	for _, name := range index.ClassConstantNames(class) {
		if !match(name) {
			continue
		}
		if u, ok := index.ResolveClassConstant(class, name); ok {
			out = append(out, u.Atomics...)
		}
	}
	for _, name := range index.EnumCaseNames(class) {
		if !match(name) {
			continue
		}
		if u, ok := index.ResolveEnumCase(class, name); ok {
			out = append(out, u.Atomics...)
		}
	}
	return out
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func expandConditional(v types.Conditional, opts ExpandOptions, index ExpandIndex) []types.Atomic {
	subject := Expand(v.Subject, opts, index)
	target := Expand(v.Target, opts, index)
	ifTrue := Expand(v.IfTrue, opts, index)
	ifFalse := Expand(v.IfFalse, opts, index)

	contained, _ := IsContainedBy(subject, target, Options{}, index)
	if v.Negated {
		contained = !contained
	}
	if contained {
		return append([]types.Atomic(nil), ifTrue.Atomics...)
	}
	return append([]types.Atomic(nil), ifFalse.Atomics...)
}

func expandKeyOf(v types.KeyOf, opts ExpandOptions, index ExpandIndex) []types.Atomic {
	target := Expand(v.Target, opts, index)
	var out []types.Atomic
	for _, a := range target.Atomics {
		switch t := a.(type) {
		case types.KeyedArray:
			if t.Key != nil {
				out = append(out, t.Key.Atomics...)
			}
		case types.List:
			out = append(out, types.Int{Variant: types.IntAny})
		}
	}
	if len(out) == 0 {
		return []types.Atomic{v}
	}
	return out
}

func expandValueOf(v types.ValueOf, opts ExpandOptions, index ExpandIndex) []types.Atomic {
	target := Expand(v.Target, opts, index)
	var out []types.Atomic
	for _, a := range target.Atomics {
		switch t := a.(type) {
		case types.KeyedArray:
			if t.Value != nil {
				out = append(out, t.Value.Atomics...)
			}
		case types.List:
			if t.Element != nil {
				out = append(out, t.Element.Atomics...)
			}
		}
	}
	if len(out) == 0 {
		return []types.Atomic{v}
	}
	return out
}
