package parser

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/docdex/docdex/internal/doc"
)

// Classify walks the directory chain from the file's immediate parent
// toward the filesystem root. The nearest ancestor named meta, accepted
// or proposed (case-insensitively) decides the kind and stops the walk.
// Any numeric ancestor seen on the way records a year candidate, each
// overwriting the previous one, so the numeric directory closest to the
// category wins. Files with no category ancestor are not documents.
func Classify(path string) (kind doc.Kind, year int, ok bool) {
	dir := filepath.Dir(path)
	for {
		switch strings.ToLower(filepath.Base(dir)) {
		case "meta":
			return doc.KindMeta, year, true
		case "accepted":
			return doc.KindAccepted, year, true
		case "proposed":
			return doc.KindProposed, year, true
		}
		if n, err := strconv.Atoi(filepath.Base(dir)); err == nil {
			year = n
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", 0, false
		}
		dir = parent
	}
}
