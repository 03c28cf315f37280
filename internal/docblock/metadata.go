package docblock

import (
	"github.com/yigitcukuren/mago-sub004/internal/assertion"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// ParamMetadata carries the docblock-derived facts about one
// declared parameter beyond its plain type hint.
type ParamMetadata struct {
	Name string
	Type *types.Union

	// ParamOut is the type the parameter's bound variable takes on
	// after the call returns, when the docblock carries @param-out
	// (spec §3 SUPPLEMENTED FEATURES: by-ref narrowing).
	ParamOut *types.Union
}

// AssertTag is one parsed @assert/@assert-if-true/@assert-if-false
// entry, naming the parameter it narrows.
type AssertTag struct {
	ParamName string
	Assertion assertion.Assertion
	OnlyIfTrue  bool
	OnlyIfFalse bool
}

// FunctionLikeMetadata is the docblock-derived half of a function-like's
// signature: everything beyond the plain parameter/return types that
// call analysis (§4.7) and generator checking (§4.6) need.
type FunctionLikeMetadata struct {
	Params []ParamMetadata
	Return *types.Union

	IsPure              bool
	IsMutationFree      bool
	IsExternalMutationFree bool
	Deprecated          bool

	Asserts []AssertTag

	// IfThisIs/ThisOut carry the @if-this-is / @this-out types. Call
	// analysis does not read them; a call never narrows $this.
	IfThisIs *types.Union
	ThisOut  *types.Union

	Templates []TemplateTag
}

// TemplateTag is one @template declaration on a function-like or
// class-like, carrying the variance spec §4.1 uses for specialized
// parameter comparison.
type TemplateTag struct {
	Name       string
	Constraint *types.Union
	Covariant  bool
	Contravariant bool
}

// ParamByName returns the metadata for the named parameter, if any.
func (m *FunctionLikeMetadata) ParamByName(name string) (ParamMetadata, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamMetadata{}, false
}
