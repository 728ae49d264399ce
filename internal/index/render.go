// Package index renders the generated design index and writes it to
// disk. Rendering is a pure function of the document set: identical
// documents always produce byte-identical output, so the file can be
// committed and diffed.
package index

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/docdex/docdex/internal/doc"
)

const generatedHeader = `<!--
  This file is generated by docdex. Do not edit it by hand; run
  "docdex <directory>" to regenerate it.
-->
`

// Render produces the full index document. rootAbs is the scanned root
// and outAbs the file the result will be written to; links are computed
// relative to the output file's directory with forward slashes. Both
// paths must be absolute, or at least both relative to the same base.
func Render(docs []doc.Document, rootAbs, outAbs string) []byte {
	outDir := filepath.Dir(outAbs)

	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString("\n# Design Index\n")

	b.WriteString("\n## Meta\n")
	if meta := filterByKind(docs, doc.KindMeta); len(meta) > 0 {
		b.WriteString("\n")
		for _, d := range meta {
			fmt.Fprintf(&b, "- [%s](%s)\n", d.Title, relLink(rootAbs, outDir, d.Path))
		}
	}

	writeTable(&b, "Accepted Designs", filterByKind(docs, doc.KindAccepted), rootAbs, outDir)
	writeTable(&b, "Proposed Designs", filterByKind(docs, doc.KindProposed), rootAbs, outDir)
	if drafts := filterByKind(docs, doc.KindDraft); len(drafts) > 0 {
		writeTable(&b, "Draft Designs", drafts, rootAbs, outDir)
	}

	return []byte(b.String())
}

func writeTable(b *strings.Builder, heading string, docs []doc.Document, rootAbs, outDir string) {
	b.WriteString("\n## " + heading + "\n\n")
	b.WriteString("| Year | Title | Owners |\n")
	b.WriteString("|------|-------|--------|\n")
	for _, d := range docs {
		year := ""
		if d.Year != 0 {
			year = strconv.Itoa(d.Year)
		}
		fmt.Fprintf(b, "| %s | [%s](%s) | %s |\n",
			year,
			escapeCell(d.Title),
			relLink(rootAbs, outDir, d.Path),
			escapeCell(strings.Join(d.Owners, ", ")))
	}
}

// filterByKind returns the section's documents in render order: year
// ascending with year-less documents first, then title by ordinal
// comparison, then path so the order is total.
func filterByKind(docs []doc.Document, kind doc.Kind) []doc.Document {
	var out []doc.Document
	for _, d := range docs {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.Path < b.Path
	})
	return out
}

// relLink resolves a root-relative document path into a link relative
// to the directory the index is written to.
func relLink(rootAbs, outDir, docRel string) string {
	target := filepath.Join(rootAbs, filepath.FromSlash(docRel))
	rel, err := filepath.Rel(outDir, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

// escapeCell keeps pipe characters from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
