package types

import (
	"fmt"
	"strings"
)

// Param describes one parameter of a callable signature.
type Param struct {
	Name       string
	Type       *Union // nil means unspecified/mixed
	ByRef      bool
	Variadic   bool
	HasDefault bool
}

// Signature is the optional payload carried by Callable/Closure atomics.
type Signature struct {
	Parameters []Param
	Return     *Union
	IsPure     bool
}

func (s *Signature) String() string {
	if s == nil {
		return ""
	}
	parts := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		t := "mixed"
		if p.Type != nil {
			t = p.Type.String()
		}
		suffix := ""
		if p.Variadic {
			suffix = "..."
		}
		if p.HasDefault {
			suffix += "="
		}
		ref := ""
		if p.ByRef {
			ref = "&"
		}
		parts[i] = fmt.Sprintf("%s%s%s%s", ref, t, suffix, "")
	}
	ret := "mixed"
	if s.Return != nil {
		ret = s.Return.String()
	}
	return fmt.Sprintf("(%s): %s", strings.Join(parts, ", "), ret)
}

// Callable is the `callable` atomic, optionally carrying a signature.
type Callable struct{ Sig *Signature }

func (Callable) atomicMarker() {}
func (c Callable) StructuralId() string { return "callable:" + c.Sig.String() }
func (c Callable) String() string {
	if c.Sig == nil {
		return "callable"
	}
	return "callable" + c.Sig.String()
}

// Closure is the `Closure` atomic, optionally carrying a signature.
type Closure struct{ Sig *Signature }

func (Closure) atomicMarker() {}
func (c Closure) StructuralId() string { return "closure:" + c.Sig.String() }
func (c Closure) String() string {
	if c.Sig == nil {
		return "Closure"
	}
	return "Closure" + c.Sig.String()
}
