package docblock

import "testing"

func TestFoldTagNameVendorVariants(t *testing.T) {
	cases := map[string]TagKind{
		"param":             TagParam,
		"psalm-param":       TagParam,
		"phpstan-param":     TagParam,
		"psalm-assert":      TagAssert,
		"this-out":          TagThisOut,
		"psalm-this-out":    TagThisOut,
		"param-out":         TagParamOut,
		"psalm-param-out":   TagParamOut,
		"not-a-real-tag":    TagUnknown,
	}
	for raw, want := range cases {
		if got := FoldTagName(raw); got != want {
			t.Errorf("FoldTagName(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestDocumentTagsFiltersByKind(t *testing.T) {
	doc := &Document{Elements: []Element{
		Tag{Kind: TagParam, RawName: "param"},
		Tag{Kind: TagReturn, RawName: "return"},
		Tag{Kind: TagParam, RawName: "psalm-param"},
	}}
	params := doc.Tags(TagParam)
	if len(params) != 2 {
		t.Fatalf("expected 2 @param tags, got %d", len(params))
	}
}

func TestParamByNameMissing(t *testing.T) {
	meta := &FunctionLikeMetadata{}
	if _, ok := meta.ParamByName("x"); ok {
		t.Fatalf("expected no match on empty metadata")
	}
}
