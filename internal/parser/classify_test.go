package parser

import (
	"testing"

	"github.com/docdex/docdex/internal/doc"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		kind doc.Kind
		year int
		ok   bool
	}{
		{"/designs/accepted/2020/cbor/cbor.md", doc.KindAccepted, 2020, true},
		{"/designs/proposed/2019/jit-tiering.md", doc.KindProposed, 2019, true},
		{"/designs/meta/template.md", doc.KindMeta, 0, true},
		{"/designs/ACCEPTED/Doc.md", doc.KindAccepted, 0, true},
		{"/designs/Proposed/2022/x/y/z.md", doc.KindProposed, 2022, true},
		// A numeric directory above the category is never consulted.
		{"/archive/2019/accepted/doc.md", doc.KindAccepted, 0, true},
		// Renaming a non-category ancestor must not change the result.
		{"/somewhere-else/accepted/2021/sub/doc.md", doc.KindAccepted, 2021, true},
		{"/designs/notes/readme.md", "", 0, false},
		{"/readme.md", "", 0, false},
	}
	for _, tc := range cases {
		kind, year, ok := Classify(tc.path)
		if ok != tc.ok {
			t.Errorf("Classify(%q): expected ok=%v, got %v", tc.path, tc.ok, ok)
			continue
		}
		if kind != tc.kind || year != tc.year {
			t.Errorf("Classify(%q): expected (%s, %d), got (%s, %d)", tc.path, tc.kind, tc.year, kind, year)
		}
	}
}

func TestClassify_NestedNumericAncestors(t *testing.T) {
	// With several numeric ancestors the walk overwrites the candidate on
	// each match, so the directory closest to the category wins.
	kind, year, ok := Classify("/designs/accepted/2020/2021/doc.md")
	if !ok {
		t.Fatalf("expected classification, got none")
	}
	if kind != doc.KindAccepted {
		t.Errorf("expected kind %s, got %s", doc.KindAccepted, kind)
	}
	if year != 2020 {
		t.Errorf("expected year=2020 (closest to category), got %d", year)
	}
}

func TestClassify_RelativePath(t *testing.T) {
	kind, year, ok := Classify("accepted/2022/doc.md")
	if !ok {
		t.Fatalf("expected classification, got none")
	}
	if kind != doc.KindAccepted || year != 2022 {
		t.Errorf("expected (accepted, 2022), got (%s, %d)", kind, year)
	}
}
