// Package doc defines the document model shared by the scanner, parser,
// renderer and API layers.
package doc

// Kind classifies a design document by the category directory it lives under.
type Kind string

const (
	KindMeta     Kind = "meta"
	KindAccepted Kind = "accepted"
	KindProposed Kind = "proposed"
	KindDraft    Kind = "draft"
)

// Document is the parsed representation of one Markdown design file.
type Document struct {
	Kind Kind `json:"kind"`

	// Path is relative to the scanned root, with forward slashes.
	Path string `json:"path"`

	// Year is taken from a numeric ancestor directory; 0 means none was found.
	Year int `json:"year,omitempty"`

	Title  string   `json:"title"`
	Owners []string `json:"owners,omitempty"`
	Draft  bool     `json:"draft,omitempty"`

	// Meta holds YAML front matter when the file carries any. It is
	// auxiliary: the index is always built from the document body.
	Meta *FrontMatter `json:"-"`
}

// FrontMatter is the optional YAML block at the top of a design file.
type FrontMatter struct {
	Title  string   `yaml:"title"`
	Owner  string   `yaml:"owner"`
	Owners []string `yaml:"owners"`
	Status string   `yaml:"status"`
	Draft  bool     `yaml:"draft"`
}

// OwnerList merges the singular and plural front matter fields.
func (f *FrontMatter) OwnerList() []string {
	if f == nil {
		return nil
	}
	owners := make([]string, 0, len(f.Owners)+1)
	if f.Owner != "" {
		owners = append(owners, f.Owner)
	}
	owners = append(owners, f.Owners...)
	return owners
}
