package generator

import (
	"strings"

	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
	"github.com/yigitcukuren/mago-sub004/internal/intern"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// alwaysAcceptedThrowables are treated as present even when the index
// has no declaration for them (spec §4.5.1).
var alwaysAcceptedThrowables = map[string]bool{
	"Throwable": true,
	"Exception": true,
	"Error":     true,
}

// ResolvedCatch is the outcome of resolving one catch clause's type
// hints against the codebase index.
type ResolvedCatch struct {
	ClassNames []intern.StringId // deduplicated, order preserved; just the root throwable when FellBack
	FellBack   bool
}

// ResolveCatchTypes implements §4.5.1. rootThrowable is the name of the
// configured root throwable interface (internal/config).
func ResolveCatchTypes(hintTexts []string, span types.SourceSpan, rootThrowable string, index ClassIndex, sink *diagnostics.Sink) ResolvedCatch {
	seen := map[string]bool{}
	var accepted []intern.StringId

	for _, raw := range hintTexts {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if seen[lower] {
			sink.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.DuplicateCaughtType,
				Message: name + " is caught more than once in this clause",
				Primary: diagnostics.Annotation{Span: span},
			})
			continue
		}
		seen[lower] = true

		if !isIdentifierLike(name) {
			sink.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.InvalidCatchType,
				Message: name + " is not a valid class-like catch hint",
				Primary: diagnostics.Annotation{Span: span},
			})
			continue
		}

		if alwaysAcceptedThrowables[name] {
			accepted = append(accepted, index.InternLowered(name))
			continue
		}

		if !index.ClassLikeExists(name) {
			sink.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.NonExistentCatchType,
				Message: name + " is not declared anywhere in the codebase",
				Primary: diagnostics.Annotation{Span: span},
			})
			continue
		}

		kind, _ := index.ClassLikeKind(name)
		if kind == KindEnum || kind == KindTrait {
			sink.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.InvalidCatchTypeNotClassOrInterface,
				Message: name + " is not a class or interface",
				Primary: diagnostics.Annotation{Span: span},
			})
			continue
		}

		rootId := index.InternLowered(rootThrowable)
		nameId := index.InternLowered(name)
		if !index.IsClassSubtypeOf(nameId, rootId, true) {
			sink.Add(diagnostics.Diagnostic{
				Kind:    diagnostics.CatchTypeNotThrowable,
				Message: name + " does not implement " + rootThrowable,
				Primary: diagnostics.Annotation{Span: span},
			})
			continue
		}

		accepted = append(accepted, nameId)
	}

	if len(accepted) == 0 {
		sink.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.NoValidCatchTypeFound,
			Message: "no valid type remained in this catch clause after validation; falling back to " + rootThrowable,
			Primary: diagnostics.Annotation{Span: span},
		})
		return ResolvedCatch{ClassNames: []intern.StringId{index.InternLowered(rootThrowable)}, FellBack: true}
	}

	return ResolvedCatch{ClassNames: accepted}
}

func isIdentifierLike(s string) bool {
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '\\'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && isDigit {
			return false
		}
		if !isAlpha && !isDigit {
			return false
		}
	}
	return len(s) > 0
}
