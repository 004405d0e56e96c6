package interfaces

import "time"

// FrontMatter models metadata extracted from a post's header block. Recognized
// keys get typed fields; everything else is preserved in Custom so templates
// can reach site-specific values. Raw mirrors the full key set as parsed.
type FrontMatter struct {
	Title      string         `yaml:"title" json:"title"`
	Slug       string         `yaml:"slug" json:"slug"`
	Date       time.Time      `yaml:"date" json:"date"`
	Categories []string       `yaml:"categories" json:"categories"`
	Tags       []string       `yaml:"tags" json:"tags"`
	Mermaid    bool           `yaml:"mermaid" json:"mermaid"`
	TOC        bool           `yaml:"toc" json:"toc"`
	Custom     map[string]any `yaml:",inline" json:"custom"`
	Raw        map[string]any `yaml:"-" json:"raw"`
}

// Post represents one Markdown source file with parsed metadata and content.
// Posts are immutable after construction; build stages derive new values
// instead of mutating the record.
type Post struct {
	// Slug is the corpus-unique identifier, either declared in front matter
	// or derived from the source path, always in normalized form.
	Slug        string
	Title       string
	PublishDate time.Time
	// Categories preserve declaration order; breadcrumb rendering depends on it.
	Categories []string
	// Tags are de-duplicated; order carries no meaning.
	Tags    []string
	Mermaid bool
	TOC     bool
	// Body holds the Markdown source without the front matter block.
	Body        []byte
	SourcePath  string
	FrontMatter FrontMatter
	// Checksum stores a SHA-256 digest of the original file content so
	// incremental builds can detect changes without re-rendering.
	Checksum     []byte
	LastModified time.Time
}

// Rejection records a post excluded from the build together with the reason.
// Code carries the machine readable error code attached by the error layer.
type Rejection struct {
	SourcePath string
	Code       string
	Reason     string
}
