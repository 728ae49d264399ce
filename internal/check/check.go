// Package check audits a design tree for documents the index silently
// drops or indexes with questionable metadata. It reuses the pipeline's
// collect stage and never writes the index file.
package check

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docdex/docdex/internal/doc"
	"github.com/docdex/docdex/internal/parser"
	"github.com/docdex/docdex/internal/pipeline"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one finding about one file.
type Problem struct {
	Path     string   `json:"path"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Run audits the tree described by cfg and returns findings sorted by
// path, along with the underlying collect report. Files with no
// category ancestor are expected (READMEs, scratch notes) and produce
// no finding.
func Run(ctx context.Context, cfg pipeline.Config, log *slog.Logger) ([]Problem, *pipeline.Report, error) {
	rep, err := pipeline.New(cfg, log).Collect(ctx)
	if err != nil {
		return nil, nil, err
	}

	var problems []Problem
	for _, s := range rep.Skips {
		switch s.Reason {
		case parser.SkipNoTitle:
			problems = append(problems, diagnoseNoTitle(rep.Root, s.Path))
		case parser.SkipNoOwners:
			problems = append(problems, Problem{
				Path:     s.Path,
				Severity: SeverityWarning,
				Message:  "accepted design has no owner line and is excluded as a sub-design",
			})
		}
	}
	for _, d := range rep.Documents {
		problems = append(problems, auditDocument(rep.Root, d)...)
	}

	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Path != problems[j].Path {
			return problems[i].Path < problems[j].Path
		}
		return problems[i].Message < problems[j].Message
	})
	return problems, rep, nil
}

// HasErrors reports whether any finding is an error.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

// diagnoseNoTitle explains why no title was extracted, using the
// Markdown outline to distinguish a missing heading from one in a form
// the index does not recognize.
func diagnoseNoTitle(root, rel string) Problem {
	p := Problem{Path: rel, Severity: SeverityError, Message: "no title heading"}

	src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return p
	}
	o := BuildOutline(src)
	h1 := o.firstIndex(func(h Heading) bool { return h.Level == 1 })
	if h1 == -1 {
		return p
	}
	sub := o.firstIndex(func(h Heading) bool { return h.Level >= 2 })
	if sub != -1 && sub < h1 {
		p.Message = "title heading appears only after the first sub-heading"
	} else {
		p.Message = "title heading is not in leading # form"
	}
	return p
}

func auditDocument(root string, d doc.Document) []Problem {
	var problems []Problem
	warn := func(format string, args ...any) {
		problems = append(problems, Problem{
			Path:     d.Path,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(d.Path)))
	if err == nil {
		o := BuildOutline(src)
		top := o.TopLevel()
		if len(top) > 1 {
			warn("document has %d top-level headings", len(top))
		}
		found := false
		for _, t := range top {
			if normalizeTitle(t) == normalizeTitle(d.Title) {
				found = true
				break
			}
		}
		if !found {
			warn("indexed title %q is not a top-level Markdown heading", d.Title)
		}
	}

	if d.Meta != nil {
		if d.Meta.Title != "" && d.Meta.Title != d.Title {
			warn("front matter title %q differs from indexed title %q", d.Meta.Title, d.Title)
		}
		if d.Meta.Draft && !d.Draft {
			warn("front matter marks the document draft but the body has no **DRAFT** marker")
		}
	}

	return problems
}

// normalizeTitle drops inline markup characters so a heading like
// "# Spans **v2**" still matches the text the line rules extracted.
func normalizeTitle(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '*', '`', '_':
			return -1
		}
		return r
	}, s)
}
