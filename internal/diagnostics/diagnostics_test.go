package diagnostics

import (
	"testing"

	"github.com/yigitcukuren/mago-sub004/internal/types"
)

func TestSinkDeduplicatesBySpanAndKind(t *testing.T) {
	s := NewSink()
	span := types.SourceSpan{SourceId: 1, Start: 10, End: 20}
	s.Add(Diagnostic{Kind: InvalidArgument, Primary: Annotation{Span: span}})
	s.Add(Diagnostic{Kind: InvalidArgument, Primary: Annotation{Span: span}})
	if len(s.All()) != 1 {
		t.Fatalf("expected dedup to keep one diagnostic, got %d", len(s.All()))
	}
}

func TestSortedOrdersBySourceThenOffset(t *testing.T) {
	s := NewSink()
	s.Add(Diagnostic{Kind: TooFewArguments, Primary: Annotation{Span: types.SourceSpan{SourceId: 1, Start: 50}}})
	s.Add(Diagnostic{Kind: TooManyArguments, Primary: Annotation{Span: types.SourceSpan{SourceId: 1, Start: 10}}})
	sorted := s.Sorted()
	if sorted[0].Primary.Span.Start != 10 {
		t.Fatalf("expected lowest offset first, got %+v", sorted)
	}
}

func TestCountOf(t *testing.T) {
	s := NewSink()
	s.Add(Diagnostic{Kind: InvalidArgument, Primary: Annotation{Span: types.SourceSpan{Start: 1}}})
	s.Add(Diagnostic{Kind: InvalidArgument, Primary: Annotation{Span: types.SourceSpan{Start: 2}}})
	if s.CountOf(InvalidArgument) != 2 {
		t.Fatalf("expected 2 InvalidArgument diagnostics")
	}
}
