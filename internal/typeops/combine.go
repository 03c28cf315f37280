// Package typeops implements the pure operations over the type lattice:
// combine (union), is_contained_by (subtype), template substitution and
// alias/self/static expansion. Every operation here is a pure function
// over owned or borrowed types.Union values plus whatever index queries
// it needs, passed in explicitly (no hidden singletons, per the design
// notes).
package typeops

import (
	"sort"

	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// LiteralStringWidenThreshold is the number of distinct literal strings
// combine tolerates before folding them into a general string atomic.
// The source spec leaves this unspecified; SPEC_FULL.md fixes it at 3.
const LiteralStringWidenThreshold = 3

// Combine merges atomics into their canonical minimal representation:
// integer ranges collapse to their enclosing range, literal strings
// fold into a general string past the widen threshold, list/keyed-array
// prefixes merge up to their shorter length, and named objects merge
// only when identical name and template parameters.
func Combine(atomics []types.Atomic, overwriteEmptyArray bool) []types.Atomic {
	if len(atomics) == 0 {
		return []types.Atomic{types.Mixed{Variant: types.MixedVanilla}}
	}

	atomics = dropNeverUnlessAll(atomics)

	var (
		ints      []types.Int
		floats    []types.Float
		strs      []types.StringAtomic
		bools     []types.Bool
		lists     []types.List
		keyed     []types.KeyedArray
		callables []types.Callable
		closures  []types.Closure
		rest      []types.Atomic
	)

	for _, a := range atomics {
		switch v := a.(type) {
		case types.Int:
			ints = append(ints, v)
		case types.Float:
			floats = append(floats, v)
		case types.StringAtomic:
			strs = append(strs, v)
		case types.Bool:
			bools = append(bools, v)
		case types.List:
			lists = append(lists, v)
		case types.KeyedArray:
			keyed = append(keyed, v)
		case types.Callable:
			callables = append(callables, v)
		case types.Closure:
			closures = append(closures, v)
		default:
			rest = append(rest, v)
		}
	}

	var out []types.Atomic
	out = append(out, combineInts(ints)...)
	out = append(out, combineFloats(floats)...)
	out = append(out, combineStrings(strs)...)
	out = append(out, combineBools(bools)...)
	out = append(out, combineLists(lists, overwriteEmptyArray)...)
	out = append(out, combineKeyed(keyed, overwriteEmptyArray)...)
	out = append(out, combineCallables(callables)...)
	out = append(out, combineClosures(closures)...)
	out = append(out, combineNamedAndRest(rest)...)

	out = dedupByStructuralId(out)

	if len(out) == 0 {
		return []types.Atomic{types.Mixed{Variant: types.MixedVanilla}}
	}
	return out
}

// dropNeverUnlessAll implements spec §3.2's "never is an identity
// element for union combine (T ∪ never = T)": a types.Never atomic is
// dropped whenever at least one non-never atomic is present, and kept
// (singly) only when every input is never.
func dropNeverUnlessAll(atomics []types.Atomic) []types.Atomic {
	out := make([]types.Atomic, 0, len(atomics))
	for _, a := range atomics {
		if _, ok := a.(types.Never); ok {
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return []types.Atomic{types.Never{}}
	}
	return out
}

func dedupByStructuralId(atomics []types.Atomic) []types.Atomic {
	seen := make(map[string]bool, len(atomics))
	out := make([]types.Atomic, 0, len(atomics))
	for _, a := range atomics {
		key := a.StructuralId()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}

func combineInts(ints []types.Int) []types.Atomic {
	if len(ints) == 0 {
		return nil
	}
	// true|false => bool is handled in combineBools; here, a literal
	// folded with its negation sentinel is out of scope for ints (no
	// int negation sentinel exists), so we just widen to the minimal
	// enclosing range when there's more than one distinct shape.
	hasAny := false
	lo, hi := int64(1), int64(-1) // hi < lo means "unset"
	for _, i := range ints {
		switch i.Variant {
		case types.IntAny:
			hasAny = true
		case types.IntLiteral:
			widen(&lo, &hi, i.LiteralVal, i.LiteralVal)
		case types.IntRange:
			widen(&lo, &hi, i.Lo, i.Hi)
		case types.IntFrom:
			hasAny = true // unbounded above; treat conservatively as any
		case types.IntTo:
			hasAny = true
		}
	}
	if hasAny {
		return []types.Atomic{types.Int{Variant: types.IntAny}}
	}
	if len(ints) == 1 {
		return []types.Atomic{ints[0]}
	}
	if lo > hi {
		return nil
	}
	if lo == hi {
		return []types.Atomic{types.Int{Variant: types.IntLiteral, LiteralVal: lo}}
	}
	return []types.Atomic{types.Int{Variant: types.IntRange, Lo: lo, Hi: hi}}
}

func widen(lo, hi *int64, a, b int64) {
	if *lo > *hi {
		*lo, *hi = a, b
		return
	}
	if a < *lo {
		*lo = a
	}
	if b > *hi {
		*hi = b
	}
}

func combineFloats(floats []types.Float) []types.Atomic {
	if len(floats) == 0 {
		return nil
	}
	for _, f := range floats {
		if !f.IsLiteral {
			return []types.Atomic{types.Float{}}
		}
	}
	if len(floats) == 1 {
		return []types.Atomic{floats[0]}
	}
	return []types.Atomic{types.Float{}}
}

func combineStrings(strs []types.StringAtomic) []types.Atomic {
	if len(strs) == 0 {
		return nil
	}
	literals := map[string]bool{}
	generalSeen := false
	props := strs[0]
	for _, s := range strs {
		if s.IsLiteral {
			literals[s.LiteralVal] = true
		} else {
			generalSeen = true
		}
		// orthogonal property tags only hold when every member agrees
		if !s.Numeric {
			props.Numeric = false
		}
		if !s.Truthy {
			props.Truthy = false
		}
		if !s.NonEmpty {
			props.NonEmpty = false
		}
		if !s.Lowercase {
			props.Lowercase = false
		}
	}
	if !generalSeen && len(literals) > 0 && len(literals) <= LiteralStringWidenThreshold {
		out := make([]types.Atomic, 0, len(literals))
		keys := make([]string, 0, len(literals))
		for k := range literals {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, types.StringAtomic{IsLiteral: true, LiteralVal: k})
		}
		return out
	}
	props.IsLiteral = false
	props.LiteralVal = ""
	props.UnspecifiedLiteral = false
	return []types.Atomic{props}
}

func combineBools(bools []types.Bool) []types.Atomic {
	if len(bools) == 0 {
		return nil
	}
	sawTrue, sawFalse, sawAny := false, false, false
	for _, b := range bools {
		switch b.Variant {
		case types.BoolTrue:
			sawTrue = true
		case types.BoolFalse:
			sawFalse = true
		default:
			sawAny = true
		}
	}
	if sawAny || (sawTrue && sawFalse) {
		// T ∪ ¬T = the scalar supertype, per §4.1 Combine.
		return []types.Atomic{types.Bool{Variant: types.BoolAny}}
	}
	if sawTrue {
		return []types.Atomic{types.Bool{Variant: types.BoolTrue}}
	}
	return []types.Atomic{types.Bool{Variant: types.BoolFalse}}
}

func combineLists(lists []types.List, overwriteEmptyArray bool) []types.Atomic {
	if len(lists) == 0 {
		return nil
	}
	if len(lists) == 1 {
		return []types.Atomic{lists[0]}
	}
	result := lists[0]
	for _, l := range lists[1:] {
		result = mergeLists(result, l, overwriteEmptyArray)
	}
	return []types.Atomic{result}
}

func mergeLists(a, b types.List, overwriteEmptyArray bool) types.List {
	minLen := len(a.Prefix)
	if len(b.Prefix) < minLen {
		minLen = len(b.Prefix)
	}
	prefix := make([]*types.Union, minLen)
	for i := 0; i < minLen; i++ {
		prefix[i] = unionOf(a.Prefix[i], b.Prefix[i])
	}
	// tail elements beyond the shorter length widen into Element.
	elem := unionOf(a.Element, b.Element)
	for i := minLen; i < len(a.Prefix); i++ {
		elem = unionOf(elem, a.Prefix[i])
	}
	for i := minLen; i < len(b.Prefix); i++ {
		elem = unionOf(elem, b.Prefix[i])
	}
	nonEmpty := a.NonEmpty && b.NonEmpty
	if overwriteEmptyArray {
		nonEmpty = a.NonEmpty || b.NonEmpty
	}
	return types.List{Element: elem, Prefix: prefix, NonEmpty: nonEmpty}
}

func unionOf(a, b *types.Union) *types.Union {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return types.NewUnion(Combine(append(append([]types.Atomic(nil), a.Atomics...), b.Atomics...), false)...)
}

func combineKeyed(keyed []types.KeyedArray, overwriteEmptyArray bool) []types.Atomic {
	if len(keyed) == 0 {
		return nil
	}
	if len(keyed) == 1 {
		return []types.Atomic{keyed[0]}
	}
	result := keyed[0]
	for _, k := range keyed[1:] {
		result = mergeKeyed(result, k, overwriteEmptyArray)
	}
	return []types.Atomic{result}
}

func mergeKeyed(a, b types.KeyedArray, overwriteEmptyArray bool) types.KeyedArray {
	if len(a.KnownItems) == 0 && len(b.KnownItems) == 0 {
		nonEmpty := a.NonEmpty && b.NonEmpty
		if overwriteEmptyArray {
			nonEmpty = a.NonEmpty || b.NonEmpty
		}
		return types.KeyedArray{Key: unionOf(a.Key, b.Key), Value: unionOf(a.Value, b.Value), NonEmpty: nonEmpty}
	}
	merged := map[string]types.KnownItem{}
	for name, item := range a.KnownItems {
		merged[name] = item
	}
	for name, item := range b.KnownItems {
		if existing, ok := merged[name]; ok {
			merged[name] = types.KnownItem{
				Required: existing.Required && item.Required,
				Type:     unionOf(existing.Type, item.Type),
			}
		} else {
			item.Required = false // only present on one side: not required
			merged[name] = item
		}
	}
	for name, item := range a.KnownItems {
		if _, ok := b.KnownItems[name]; !ok {
			item.Required = false
			merged[name] = item
		}
	}
	return types.KeyedArray{KnownItems: merged, Key: unionOf(a.Key, b.Key), Value: unionOf(a.Value, b.Value), NonEmpty: a.NonEmpty || b.NonEmpty}
}

func combineCallables(cs []types.Callable) []types.Atomic {
	if len(cs) == 0 {
		return nil
	}
	if len(cs) == 1 {
		return []types.Atomic{cs[0]}
	}
	sig := cs[0].Sig
	for _, c := range cs[1:] {
		sig = mergeSig(sig, c.Sig)
	}
	return []types.Atomic{types.Callable{Sig: sig}}
}

func combineClosures(cs []types.Closure) []types.Atomic {
	if len(cs) == 0 {
		return nil
	}
	if len(cs) == 1 {
		return []types.Atomic{cs[0]}
	}
	sig := cs[0].Sig
	for _, c := range cs[1:] {
		sig = mergeSig(sig, c.Sig)
	}
	return []types.Atomic{types.Closure{Sig: sig}}
}

// mergeSig folds purity down to the conservative intersection: a
// combined callable is pure only when every contributor was pure,
// an original_source-supplemented rule (see SPEC_FULL.md §3).
func mergeSig(a, b *types.Signature) *types.Signature {
	if a == nil || b == nil {
		return nil
	}
	return &types.Signature{
		Parameters: a.Parameters,
		Return:     unionOf(a.Return, b.Return),
		IsPure:     a.IsPure && b.IsPure,
	}
}

func combineNamedAndRest(rest []types.Atomic) []types.Atomic {
	if len(rest) == 0 {
		return nil
	}
	var named []types.Named
	var out []types.Atomic
	for _, a := range rest {
		if n, ok := a.(types.Named); ok {
			named = append(named, n)
			continue
		}
		out = append(out, a)
	}
	// Named objects merge only when identical name+template params,
	// i.e. structural ids already equal; dedup handles that later, so
	// distinct named objects are retained separately per §4.1.
	for _, n := range named {
		out = append(out, n)
	}
	return out
}
