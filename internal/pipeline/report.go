package pipeline

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/docdex/docdex/internal/doc"
	"github.com/docdex/docdex/internal/parser"
)

// Skip records one file that produced no document.
type Skip struct {
	Path   string            `json:"path"`
	Reason parser.SkipReason `json:"reason"`
}

// Report summarizes a single pipeline run. Documents and Skips are
// sorted by path.
type Report struct {
	RunID     string         `json:"run_id"`
	Root      string         `json:"root"`
	Out       string         `json:"out"`
	Scanned   int            `json:"scanned"`
	Documents []doc.Document `json:"documents"`
	Skips     []Skip         `json:"skips,omitempty"`

	// Rendered is the index exactly as written, set only by Run.
	Rendered []byte `json:"-"`

	Duration time.Duration `json:"-"`
	started  time.Time
}

// KindCounts tallies documents per kind.
func (r *Report) KindCounts() map[doc.Kind]int {
	counts := make(map[doc.Kind]int, 4)
	for _, d := range r.Documents {
		counts[d.Kind]++
	}
	return counts
}

// SkipCounts tallies skipped files per reason.
func (r *Report) SkipCounts() map[parser.SkipReason]int {
	counts := make(map[parser.SkipReason]int, 3)
	for _, s := range r.Skips {
		counts[s.Reason]++
	}
	return counts
}

// newRunID tags a run so its log lines and stats entry can be
// correlated. Millisecond timestamp plus random suffix; runs on one
// pipeline are serialized, so this never needs to be stronger.
func newRunID() string {
	var b [5]byte
	rand.Read(b[:])
	return fmt.Sprintf("%012x-%x", time.Now().UnixMilli(), b)
}
