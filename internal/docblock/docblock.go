// Package docblock models the pre-parsed docblock document the
// analyzer consumes (spec §6.1): the lexer/parser that turns comment
// text into this structure is out of scope, but the tag vocabulary and
// vendor-tag folding the analyzer relies on live here.
package docblock

import (
	"strings"

	"github.com/yigitcukuren/mago-sub004/internal/types"
)

// TagKind is the closed vocabulary of tags the analyzer understands.
// Vendor variants (@psalm-*, @phpstan-*) are folded to these before a
// Tag is attached to function-like metadata.
type TagKind int

const (
	TagParam TagKind = iota
	TagReturn
	TagThrows
	TagVar
	TagTemplate
	TagTemplateCovariant
	TagTemplateContravariant
	TagAssert
	TagAssertIfTrue
	TagAssertIfFalse
	TagIfThisIs
	TagThisOut
	TagParamOut
	TagDeprecated
	TagInternal
	TagPure
	TagMutationFree
	TagExternalMutationFree
	TagInheritDoc
	TagUnknown
)

func (k TagKind) String() string {
	switch k {
	case TagParam:
		return "@param"
	case TagReturn:
		return "@return"
	case TagThrows:
		return "@throws"
	case TagVar:
		return "@var"
	case TagTemplate:
		return "@template"
	case TagTemplateCovariant:
		return "@template-covariant"
	case TagTemplateContravariant:
		return "@template-contravariant"
	case TagAssert:
		return "@assert"
	case TagAssertIfTrue:
		return "@assert-if-true"
	case TagAssertIfFalse:
		return "@assert-if-false"
	case TagIfThisIs:
		return "@if-this-is"
	case TagThisOut:
		return "@this-out"
	case TagParamOut:
		return "@param-out"
	case TagDeprecated:
		return "@deprecated"
	case TagInternal:
		return "@internal"
	case TagPure:
		return "@pure"
	case TagMutationFree:
		return "@mutation-free"
	case TagExternalMutationFree:
		return "@external-mutation-free"
	case TagInheritDoc:
		return "@inheritdoc"
	default:
		return "@unknown"
	}
}

// canonicalTags maps every spelling (bare and vendor-prefixed) to its
// TagKind. The vendor prefixes (@psalm-*, @phpstan-*) are folded to
// their non-vendored equivalent per spec §6.1.
var canonicalTags = map[string]TagKind{
	"param":                   TagParam,
	"return":                  TagReturn,
	"throws":                  TagThrows,
	"var":                     TagVar,
	"template":                TagTemplate,
	"template-covariant":      TagTemplateCovariant,
	"template-contravariant":  TagTemplateContravariant,
	"assert":                  TagAssert,
	"assert-if-true":          TagAssertIfTrue,
	"assert-if-false":         TagAssertIfFalse,
	"if-this-is":              TagIfThisIs,
	"this-out":                TagThisOut,
	"param-out":               TagParamOut,
	"deprecated":              TagDeprecated,
	"internal":                TagInternal,
	"pure":                    TagPure,
	"mutation-free":           TagMutationFree,
	"external-mutation-free":  TagExternalMutationFree,
	"inheritdoc":              TagInheritDoc,

	"psalm-param":                  TagParam,
	"psalm-return":                 TagReturn,
	"psalm-var":                    TagVar,
	"psalm-template":               TagTemplate,
	"psalm-assert":                 TagAssert,
	"psalm-assert-if-true":         TagAssertIfTrue,
	"psalm-assert-if-false":        TagAssertIfFalse,
	"psalm-if-this-is":             TagIfThisIs,
	"psalm-this-out":               TagThisOut,
	"psalm-param-out":              TagParamOut,
	"psalm-internal":               TagInternal,
	"psalm-pure":                   TagPure,
	"psalm-mutation-free":          TagMutationFree,
	"psalm-external-mutation-free": TagExternalMutationFree,

	"phpstan-param":  TagParam,
	"phpstan-return": TagReturn,
	"phpstan-var":    TagVar,
	"phpstan-pure":   TagPure,
	"phpstan-impure":  TagUnknown,
}

// FoldTagName resolves a raw tag name (without the leading '@') to its
// canonical TagKind, folding vendor prefixes.
func FoldTagName(raw string) TagKind {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if kind, ok := canonicalTags[lower]; ok {
		return kind
	}
	return TagUnknown
}

// Element is one member of a Document: free text, an inline code span,
// a tag, a plain line, or an annotation (`@Foo(bar)`-style attribute
// syntax distinct from a doc tag).
type Element interface{ elementMarker() }

type Text struct {
	Span     types.SourceSpan
	Segments []string
}

func (Text) elementMarker() {}

type Code struct {
	Span    types.SourceSpan
	Content string
}

func (Code) elementMarker() {}

type Tag struct {
	Span        types.SourceSpan
	Kind        TagKind
	RawName     string // as written, before vendor folding
	Description string
}

func (Tag) elementMarker() {}

type Line struct{ Span types.SourceSpan }

func (Line) elementMarker() {}

type Annotation struct {
	Span      types.SourceSpan
	Name      string
	Arguments string
}

func (Annotation) elementMarker() {}

// Document is the parsed docblock attached to one declaration.
type Document struct {
	Elements []Element
}

// Tags returns every Tag element of kind k, in document order.
func (d *Document) Tags(k TagKind) []Tag {
	var out []Tag
	for _, el := range d.Elements {
		if t, ok := el.(Tag); ok && t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}
