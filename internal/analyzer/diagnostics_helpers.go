package analyzer

import (
	"fmt"

	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
	"github.com/yigitcukuren/mago-sub004/internal/types"
)

func yieldOutsideFunctionDiagnostic(span types.SourceSpan) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Kind:    diagnostics.YieldOutsideFunction,
		Message: "yield used outside any function-like",
		Primary: diagnostics.Annotation{Span: span, Message: "yield is only valid inside a function, method, or closure body"},
	}
}

func invalidGeneratorReturnTypeDiagnostic(span types.SourceSpan, fnName string) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Kind:    diagnostics.InvalidGeneratorReturnType,
		Message: fmt.Sprintf("%s contains yield but its declared return type is neither Generator nor iterable", fnName),
		Primary: diagnostics.Annotation{Span: span, Message: "yield found here"},
	}
}

func invalidCallableDiagnostic(span types.SourceSpan, reason string) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Kind:    diagnostics.InvalidCallable,
		Message: reason,
		Primary: diagnostics.Annotation{Span: span, Message: reason},
	}
}

func invalidNamedArgumentDiagnostic(span types.SourceSpan, name string) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Kind:    diagnostics.InvalidNamedArgument,
		Message: fmt.Sprintf("no parameter named $%s", name),
		Primary: diagnostics.Annotation{Span: span, Message: "unknown named argument"},
	}
}

func tooFewArgumentsDiagnostic(span types.SourceSpan, have, want int) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Kind:    diagnostics.TooFewArguments,
		Message: fmt.Sprintf("expected at least %d argument(s), got %d", want, have),
		Primary: diagnostics.Annotation{Span: span, Message: "call here"},
	}
}

func tooManyArgumentsDiagnostic(span types.SourceSpan, have, want int) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Kind:    diagnostics.TooManyArguments,
		Message: fmt.Sprintf("expected at most %d argument(s), got %d", want, have),
		Primary: diagnostics.Annotation{Span: span, Message: "call here"},
	}
}

func invalidArgumentDiagnostic(span types.SourceSpan, paramName string, possibly bool) diagnostics.Diagnostic {
	kind := diagnostics.InvalidArgument
	if possibly {
		kind = diagnostics.PossiblyInvalidArgument
	}
	return diagnostics.Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf("argument type is incompatible with declared parameter $%s", paramName),
		Primary: diagnostics.Annotation{Span: span, Message: "this argument"},
	}
}

func unusedParameterDiagnostic(span types.SourceSpan, paramName string) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Kind:    diagnostics.UnusedParameter,
		Message: fmt.Sprintf("parameter $%s is never used in the function body", paramName),
		Primary: diagnostics.Annotation{Span: span, Message: "declared here"},
	}
}
