// Package diagnostics is the structured issue collector every other
// component writes to. It distinguishes the two error populations of
// spec §7: AnalysisError (fatal, aborts the current function-like) and
// Diagnostic (non-fatal, appended to the Sink and never interrupts
// analysis).
package diagnostics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// Kind is a stable diagnostic kind name. Every kind spec §4/§7/§8 names
// has a constant here; the string value is what callers match on in
// tests and in SPEC_FULL.md's end-to-end scenarios.
type Kind string

const (
	InvalidArgument                    Kind = "InvalidArgument"
	PossiblyInvalidArgument             Kind = "PossiblyInvalidArgument"
	InvalidNamedArgument                Kind = "InvalidNamedArgument"
	TooFewArguments                     Kind = "TooFewArguments"
	TooManyArguments                    Kind = "TooManyArguments"
	UnusedParameter                     Kind = "UnusedParameter"
	InvalidCallable                     Kind = "InvalidCallable"
	InvalidYieldKeyType                 Kind = "InvalidYieldKeyType"
	InvalidYieldValueType               Kind = "InvalidYieldValueType"
	YieldFromInvalidKeyType             Kind = "YieldFromInvalidKeyType"
	YieldFromInvalidValueType           Kind = "YieldFromInvalidValueType"
	YieldFromInvalidSendType            Kind = "YieldFromInvalidSendType"
	YieldFromNonIterable                Kind = "YieldFromNonIterable"
	UnknownYieldFromIteratorType        Kind = "UnknownYieldFromIteratorType"
	YieldOutsideFunction                Kind = "YieldOutsideFunction"
	InvalidGeneratorReturnType          Kind = "InvalidGeneratorReturnType"
	DuplicateCaughtType                 Kind = "DuplicateCaughtType"
	InvalidCatchType                    Kind = "InvalidCatchType"
	NonExistentCatchType                Kind = "NonExistentCatchType"
	InvalidCatchTypeNotClassOrInterface Kind = "InvalidCatchTypeNotClassOrInterface"
	CatchTypeNotThrowable               Kind = "CatchTypeNotThrowable"
	NoValidCatchTypeFound               Kind = "NoValidCatchTypeFound"
	DocblockParseError                  Kind = "DocblockParseError"
)

// Annotation is a span plus an explanatory message, used for both the
// primary and any secondary annotations of a Diagnostic.
type Annotation struct {
	Span    types.SourceSpan
	Message string
}

// Diagnostic is one non-fatal issue surfaced to the sink.
type Diagnostic struct {
	Kind      Kind
	Message   string
	Primary   Annotation
	Secondary []Annotation
	Note      string
	Help      string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Kind, d.Message, d.Primary.Span)
}

// AnalysisError is fatal for the current function-like: malformed
// state such as a missing resolved name or an unpopulated codebase
// index (spec §7.1). Other function-likes continue.
type AnalysisError struct {
	Reason string
	Span   types.SourceSpan
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error at %s: %s", e.Span, e.Reason)
}

func NewAnalysisError(reason string, span types.SourceSpan) *AnalysisError {
	return &AnalysisError{Reason: reason, Span: span}
}

// CancellationToken lets a long whole-program run be aborted between
// function-like boundaries (spec §5). A nil token is never cancelled.
type CancellationToken interface {
	Cancelled() bool
}

// Sink is an append-only, concurrency-safe diagnostic collector.
// Writers append from any number of parallel function-like workers;
// Sorted() restores the deterministic (source, start_offset) order the
// design notes require for final output.
type Sink struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
	dedup       map[string]bool
}

func NewSink() *Sink {
	return &Sink{dedup: make(map[string]bool)}
}

// Add appends d, deduplicating by (span, kind) the same way the
// teacher walker dedups by "line:col:code".
func (s *Sink) Add(d Diagnostic) {
	key := fmt.Sprintf("%d:%d:%d:%s", d.Primary.Span.SourceId, d.Primary.Span.Start, d.Primary.Span.End, d.Kind)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dedup[key] {
		return
	}
	s.dedup[key] = true
	s.diagnostics = append(s.diagnostics, d)
}

// All returns every collected diagnostic in insertion order.
func (s *Sink) All() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Diagnostic(nil), s.diagnostics...)
}

// Sorted returns every collected diagnostic ordered by
// (source, start_offset) for deterministic output across a
// parallelized whole-program run.
func (s *Sink) Sorted() []Diagnostic {
	all := s.All()
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].Primary.Span, all[j].Primary.Span
		if a.SourceId != b.SourceId {
			return a.SourceId < b.SourceId
		}
		return a.Start < b.Start
	})
	return all
}

// CountOf returns how many collected diagnostics have the given kind,
// a helper every end-to-end scenario test in §8 uses.
func (s *Sink) CountOf(kind Kind) int {
	n := 0
	for _, d := range s.All() {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
