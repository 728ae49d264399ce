// Package pipeline wires discovery, parsing and rendering into one run.
// Files parse independently on a small worker pool; results are
// collected and sorted, so the rendered index never depends on
// completion order.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/docdex/docdex/internal/doc"
	"github.com/docdex/docdex/internal/index"
	"github.com/docdex/docdex/internal/parser"
	"github.com/docdex/docdex/internal/scan"
)

// Config controls a pipeline run.
type Config struct {
	// Root is the directory to scan.
	Root string

	// Out is the index file to write. Empty means <Root>/INDEX.md.
	Out string

	// Workers is the parse pool size; values below one fall back to
	// the default of 4.
	Workers int

	// Excludes are doublestar patterns dropped during discovery.
	Excludes []string
}

// Pipeline executes scan → parse → render → write runs.
type Pipeline struct {
	cfg Config
	log *slog.Logger
}

func New(cfg Config, log *slog.Logger) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Out returns the absolute output path the pipeline writes to.
func (p *Pipeline) Out() (string, error) {
	out := p.cfg.Out
	if out == "" {
		out = filepath.Join(p.cfg.Root, "INDEX.md")
	}
	return filepath.Abs(out)
}

// Run executes the whole pipeline and writes the index file. The
// returned report carries the rendered bytes and every per-file skip.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	rep, err := p.Collect(ctx)
	if err != nil {
		return nil, err
	}

	rep.Rendered = index.Render(rep.Documents, rep.Root, rep.Out)
	if err := index.Write(rep.Out, rep.Rendered); err != nil {
		return nil, err
	}
	rep.Duration = time.Since(rep.started)

	p.log.Info("index written",
		"run_id", rep.RunID,
		"out", rep.Out,
		"scanned", rep.Scanned,
		"documents", len(rep.Documents),
		"skipped", len(rep.Skips),
		"duration_ms", rep.Duration.Milliseconds(),
	)
	return rep, nil
}

// Collect runs discovery and parsing but does not touch the output
// file. The check command audits trees through this entry point.
func (p *Pipeline) Collect(ctx context.Context) (*Report, error) {
	started := time.Now()

	root, err := filepath.Abs(p.cfg.Root)
	if err != nil {
		return nil, err
	}
	out, err := p.Out()
	if err != nil {
		return nil, err
	}

	files, err := scan.Markdown(scan.Config{Root: root, Excludes: p.cfg.Excludes})
	if err != nil {
		return nil, err
	}

	// The generated index is our own artifact, never an input.
	kept := files[:0]
	for _, f := range files {
		if f.Abs != out {
			kept = append(kept, f)
		}
	}
	files = kept

	type result struct {
		file scan.File
		doc  *doc.Document
		skip parser.SkipReason
		err  error
	}

	queue := make(chan scan.File)
	results := make(chan result, len(files))

	var wg sync.WaitGroup
	for i := 0; i < p.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case f, ok := <-queue:
					if !ok {
						return
					}
					d, skip, err := parser.ParseFile(f.Abs, f.Rel)
					results <- result{file: f, doc: d, skip: skip, err: err}
				}
			}
		}()
	}

feed:
	for _, f := range files {
		select {
		case <-ctx.Done():
			break feed
		case queue <- f:
		}
	}
	close(queue)
	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := &Report{
		RunID:   newRunID(),
		Root:    root,
		Out:     out,
		Scanned: len(files),
		started: started,
	}
	for r := range results {
		if r.err != nil {
			return nil, r.err
		}
		if r.doc != nil {
			rep.Documents = append(rep.Documents, *r.doc)
			continue
		}
		rep.Skips = append(rep.Skips, Skip{Path: r.file.Rel, Reason: r.skip})
		p.log.Debug("skipped", "path", r.file.Rel, "reason", r.skip)
	}

	// Parse completion order is nondeterministic; the report is not.
	sort.Slice(rep.Documents, func(i, j int) bool { return rep.Documents[i].Path < rep.Documents[j].Path })
	sort.Slice(rep.Skips, func(i, j int) bool { return rep.Skips[i].Path < rep.Skips[j].Path })

	rep.Duration = time.Since(started)
	return rep, nil
}
