// Package parser turns one Markdown file into zero or one Document.
//
// A file only becomes a Document when an ancestor directory classifies
// it (meta, accepted or proposed) and its leading region yields a title.
// Everything after the first sub-heading is body prose and is never
// scanned for metadata.
package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"

	"github.com/docdex/docdex/internal/doc"
)

// SkipReason explains why a file produced no Document. Skips are
// expected conditions (READMEs, templates, sub-designs), not errors.
type SkipReason string

const (
	// SkipUnclassified: no meta/accepted/proposed ancestor directory.
	SkipUnclassified SkipReason = "unclassified"
	// SkipNoTitle: no top-level heading before the first sub-heading.
	SkipNoTitle SkipReason = "no_title"
	// SkipNoOwners: an accepted design without owners is a sub-design.
	SkipNoOwners SkipReason = "no_owners"
)

// Parse examines one file's contents and builds its Document. The
// returned Document is nil when the file is skipped, with the reason as
// the second result. absPath drives classification; relPath is recorded
// on the Document with forward slashes.
func Parse(absPath, relPath string, content []byte) (*doc.Document, SkipReason) {
	kind, year, ok := Classify(absPath)
	if !ok {
		return nil, SkipUnclassified
	}

	var fm doc.FrontMatter
	var meta *doc.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &fm)
	if err != nil {
		// Malformed front matter is body prose as far as we care.
		body = content
	} else if len(body) != len(content) {
		meta = &fm
	}

	var (
		title  string
		owners []string
		draft  bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if IsSubheading(line) {
			break
		}
		if title == "" {
			if t, ok := MatchTitle(line); ok {
				title = t
			}
		}
		if names := OwnerNames(line); len(names) > 0 {
			owners = append(owners, names...)
		}
		if IsDraftMarker(line) {
			draft = true
		}
	}

	if title == "" {
		return nil, SkipNoTitle
	}
	if draft && kind == doc.KindAccepted {
		kind = doc.KindDraft
	}
	if kind == doc.KindAccepted && len(owners) == 0 {
		return nil, SkipNoOwners
	}

	return &doc.Document{
		Kind:   kind,
		Path:   filepath.ToSlash(relPath),
		Year:   year,
		Title:  title,
		Owners: owners,
		Draft:  draft,
		Meta:   meta,
	}, ""
}

// ParseFile reads path from disk and parses it. The error is non-nil
// only for I/O failures, which are fatal to the surrounding run.
func ParseFile(absPath, relPath string) (*doc.Document, SkipReason, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", relPath, err)
	}
	d, skip := Parse(absPath, relPath, content)
	return d, skip, nil
}
