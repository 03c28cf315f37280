package typeops

import "github.com/yigitcukuren/mago-sub004/internal/types"

// TemplateKey identifies a template parameter by its declaring entity,
// since two ancestors in an inheritance chain may reuse a name like `T`.
type TemplateKey struct {
	TemplateName   string
	DefiningEntity string
}

// TemplateResult maps a template parameter to the lower bound it was
// solved to during call/instantiation analysis.
type TemplateResult map[TemplateKey]*types.Union

// Replace substitutes every GenericParam in u whose (name, defining
// entity) pair appears in result with its bound union. Unresolved
// parameters are left untouched. Substitution walks the type tree
// rather than aliasing it.
func Replace(u *types.Union, result TemplateResult) *types.Union {
	if u == nil || len(result) == 0 {
		return u
	}
	out := make([]types.Atomic, 0, len(u.Atomics))
	for _, a := range u.Atomics {
		out = append(out, replaceAtomic(a, result)...)
	}
	cp := u.Clone()
	cp.Atomics = dedupByStructuralId(out)
	return cp
}

func replaceAtomic(a types.Atomic, result TemplateResult) []types.Atomic {
	switch v := a.(type) {
	case types.GenericParam:
		key := TemplateKey{TemplateName: v.ParameterName, DefiningEntity: v.DefiningEntity}
		if bound, ok := result[key]; ok {
			return append([]types.Atomic(nil), bound.Atomics...)
		}
		return []types.Atomic{v}
	case types.Named:
		v.TypeParameters = replaceEach(v.TypeParameters, result)
		return []types.Atomic{v}
	case types.List:
		v.Element = Replace(v.Element, result)
		newPrefix := make([]*types.Union, len(v.Prefix))
		for i, p := range v.Prefix {
			newPrefix[i] = Replace(p, result)
		}
		v.Prefix = newPrefix
		return []types.Atomic{v}
	case types.KeyedArray:
		v.Key = Replace(v.Key, result)
		v.Value = Replace(v.Value, result)
		if v.KnownItems != nil {
			newItems := make(map[string]types.KnownItem, len(v.KnownItems))
			for k, item := range v.KnownItems {
				item.Type = Replace(item.Type, result)
				newItems[k] = item
			}
			v.KnownItems = newItems
		}
		return []types.Atomic{v}
	case types.Iterable:
		v.Key = Replace(v.Key, result)
		v.Value = Replace(v.Value, result)
		return []types.Atomic{v}
	case types.Callable:
		v.Sig = replaceSig(v.Sig, result)
		return []types.Atomic{v}
	case types.Closure:
		v.Sig = replaceSig(v.Sig, result)
		return []types.Atomic{v}
	case types.KeyOf:
		v.Target = Replace(v.Target, result)
		return []types.Atomic{v}
	case types.ValueOf:
		v.Target = Replace(v.Target, result)
		return []types.Atomic{v}
	case types.PropertiesOf:
		v.Target = Replace(v.Target, result)
		return []types.Atomic{v}
	case types.Conditional:
		v.Subject = Replace(v.Subject, result)
		v.Target = Replace(v.Target, result)
		v.IfTrue = Replace(v.IfTrue, result)
		v.IfFalse = Replace(v.IfFalse, result)
		return []types.Atomic{v}
	default:
		return []types.Atomic{a}
	}
}

func replaceEach(us []*types.Union, result TemplateResult) []*types.Union {
	out := make([]*types.Union, len(us))
	for i, u := range us {
		out[i] = Replace(u, result)
	}
	return out
}

func replaceSig(sig *types.Signature, result TemplateResult) *types.Signature {
	if sig == nil {
		return nil
	}
	params := make([]types.Param, len(sig.Parameters))
	for i, p := range sig.Parameters {
		p.Type = Replace(p.Type, result)
		params[i] = p
	}
	return &types.Signature{Parameters: params, Return: Replace(sig.Return, result), IsPure: sig.IsPure}
}
