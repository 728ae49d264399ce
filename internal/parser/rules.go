package parser

import (
	"regexp"
	"strings"
)

// Line classifiers for the region of a document before its first
// sub-heading. Each is a pure function so it can be tested without
// touching the filesystem.
var (
	// A single top-level heading, optionally closed with a trailing #.
	titlePattern = regexp.MustCompile(`^#\s*(.*?)#?$`)

	// **Owner** or **Owners**, optionally with a qualifier word such as
	// **Libraries Owner**, followed by the owner names on the same line.
	ownerPattern = regexp.MustCompile(`(?i)^\s*\*\*(\w+ )?owners?\*\*\s*(.*)$`)

	// A Markdown link; owner names are reduced to the link text.
	linkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
)

// IsSubheading reports whether the line opens a heading of level two or
// deeper. It must be checked before MatchTitle: a ## line also satisfies
// the title pattern.
func IsSubheading(line string) bool {
	return strings.HasPrefix(line, "##")
}

// MatchTitle extracts the heading text from a top-level heading line.
// The second result is false when the line is not a title or the
// extracted text is empty.
func MatchTitle(line string) (string, bool) {
	m := titlePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	title := strings.TrimSpace(m[1])
	return title, title != ""
}

// OwnerNames extracts owner names from an owner-marker line. Names are
// separated by commas or pipes; Markdown links collapse to their link
// text; empty entries are dropped. Returns nil when the line is not an
// owner line.
func OwnerNames(line string) []string {
	m := ownerPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	rest := strings.TrimLeft(strings.TrimSpace(m[2]), ":")

	var names []string
	for _, part := range strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == '|'
	}) {
		part = linkPattern.ReplaceAllString(part, "$1")
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// IsDraftMarker reports whether the line is a standalone draft marker.
func IsDraftMarker(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "**DRAFT**")
}
