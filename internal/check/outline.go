package check

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one heading in document order.
type Heading struct {
	Level int
	Text  string
}

// Outline is the flattened heading structure of a Markdown document,
// built from the real Markdown AST rather than the line rules the
// indexer uses. Comparing the two views is what surfaces documents
// that look right to one and wrong to the other.
type Outline struct {
	Headings []Heading
}

// BuildOutline parses src with goldmark and collects the top-level
// headings in order.
func BuildOutline(src []byte) Outline {
	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	var o Outline
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		o.Headings = append(o.Headings, Heading{
			Level: h.Level,
			Text:  string(h.Text(src)),
		})
	}
	return o
}

// TopLevel returns the text of every level-one heading.
func (o Outline) TopLevel() []string {
	var out []string
	for _, h := range o.Headings {
		if h.Level == 1 {
			out = append(out, h.Text)
		}
	}
	return out
}

// firstIndex returns the position of the first heading satisfying the
// predicate, or -1.
func (o Outline) firstIndex(pred func(Heading) bool) int {
	for i, h := range o.Headings {
		if pred(h) {
			return i
		}
	}
	return -1
}
