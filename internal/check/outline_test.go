package check

import (
	"reflect"
	"testing"
)

func TestBuildOutline_CollectsHeadings(t *testing.T) {
	src := []byte(`# Title

Intro.

## Section A

### Subsection

## Section B
`)
	o := BuildOutline(src)

	want := []Heading{
		{Level: 1, Text: "Title"},
		{Level: 2, Text: "Section A"},
		{Level: 3, Text: "Subsection"},
		{Level: 2, Text: "Section B"},
	}
	if !reflect.DeepEqual(o.Headings, want) {
		t.Errorf("expected %v, got %v", want, o.Headings)
	}
}

func TestBuildOutline_IgnoresCodeFences(t *testing.T) {
	src := []byte("```\n# not a heading\n```\n")
	o := BuildOutline(src)
	if len(o.Headings) != 0 {
		t.Errorf("expected no headings, got %v", o.Headings)
	}
}

func TestBuildOutline_SetextHeading(t *testing.T) {
	src := []byte("Underlined Title\n================\n\nBody.\n")
	o := BuildOutline(src)
	if len(o.Headings) != 1 {
		t.Fatalf("expected 1 heading, got %v", o.Headings)
	}
	if o.Headings[0].Level != 1 || o.Headings[0].Text != "Underlined Title" {
		t.Errorf("expected level-1 %q, got %+v", "Underlined Title", o.Headings[0])
	}
}

func TestOutline_TopLevel(t *testing.T) {
	src := []byte("# One\n\ntext\n\n# Two\n\n## Not top level\n")
	top := BuildOutline(src).TopLevel()
	if !reflect.DeepEqual(top, []string{"One", "Two"}) {
		t.Errorf("expected [One Two], got %v", top)
	}
}
