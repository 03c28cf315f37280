package assertion

import (
	"github.com/yigitcukuren/mago-sub004/internal/types"
	"github.com/yigitcukuren/mago-sub004/internal/typeops"
)

// Apply narrows current according to a, consulting index for subtype
// questions (may be nil for assertions that only need scalar/shape
// reasoning). This is the function block-context merging calls along
// each branch edge (spec §4.3).
func Apply(a Assertion, current *types.Union, index typeops.ClassIndex) *types.Union {
	switch a.Kind {
	case KindIsType:
		return narrowToType(current, a.Type, index)
	case KindIsNotType:
		return narrowAwayFromType(current, a.Type, index)
	case KindTruthy:
		return narrowTruthy(current)
	case KindFalsy:
		return narrowFalsy(current)
	case KindIsIsset:
		return narrowAwayFromType(current, types.Single(types.Null{}), index).WithFlags(func(u *types.Union) {
			u.PossiblyUndefined = false
		})
	case KindIsNotIsset:
		return types.NewUnion(types.Null{})
	default:
		return current
	}
}

func narrowToType(current, target *types.Union, index typeops.ClassIndex) *types.Union {
	if current == nil || target == nil {
		return target
	}
	var kept []types.Atomic
	for _, a := range current.Atomics {
		ok, _ := typeops.IsContainedBy(types.Single(a), target, typeops.Options{}, index)
		if ok {
			kept = append(kept, a)
			continue
		}
		ok, _ = typeops.IsContainedBy(target, types.Single(a), typeops.Options{}, index)
		if ok {
			kept = append(kept, target.Atomics...)
		}
	}
	if len(kept) == 0 {
		return target.Clone()
	}
	return types.NewUnion(kept...)
}

func narrowAwayFromType(current, target *types.Union, index typeops.ClassIndex) *types.Union {
	if current == nil {
		return current
	}
	var kept []types.Atomic
	for _, a := range current.Atomics {
		if target != nil {
			if ok, _ := typeops.IsContainedBy(types.Single(a), target, typeops.Options{}, index); ok {
				continue
			}
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		return types.NewUnion(types.Never{})
	}
	return types.NewUnion(kept...)
}

func isFalsyAtomic(a types.Atomic) bool {
	switch v := a.(type) {
	case types.Null:
		return true
	case types.Bool:
		return v.Variant != types.BoolTrue
	case types.Int:
		return v.Variant == types.IntLiteral && v.LiteralVal == 0
	case types.Float:
		return v.IsLiteral && v.LiteralVal == 0
	case types.StringAtomic:
		return !v.Truthy && (!v.IsLiteral || v.LiteralVal == "" || v.LiteralVal == "0")
	case types.List:
		return !v.NonEmpty
	case types.KeyedArray:
		return !v.NonEmpty && len(v.KnownItems) == 0
	default:
		return false
	}
}

func narrowTruthy(current *types.Union) *types.Union {
	var kept []types.Atomic
	for _, a := range current.Atomics {
		if b, ok := a.(types.Bool); ok {
			if b.Variant != types.BoolFalse {
				kept = append(kept, types.Bool{Variant: types.BoolTrue})
			}
			continue
		}
		if !isFalsyAtomic(a) {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		return types.NewUnion(types.Never{})
	}
	return types.NewUnion(kept...)
}

func narrowFalsy(current *types.Union) *types.Union {
	var kept []types.Atomic
	for _, a := range current.Atomics {
		if b, ok := a.(types.Bool); ok {
			if b.Variant != types.BoolTrue {
				kept = append(kept, types.Bool{Variant: types.BoolFalse})
			}
			continue
		}
		if isFalsyAtomic(a) {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		return types.NewUnion(types.Null{}, types.Bool{Variant: types.BoolFalse})
	}
	return types.NewUnion(kept...)
}
