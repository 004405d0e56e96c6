package interfaces

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations are expected to be stateless so a single instance can be
// shared across a concurrent build without additional locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) (*RenderResult, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) (*RenderResult, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
	// Mermaid switches fenced code blocks tagged "mermaid" from plain code
	// output to diagram containers picked up by the client side renderer.
	Mermaid bool
}

// RenderResult carries the rendered HTML together with the document outline
// collected during the same parse. Headings appear in document order.
type RenderResult struct {
	HTML     []byte
	Headings []Heading
}

// Heading describes a single heading encountered in a Markdown body. ID holds
// the auto-generated anchor attached to the rendered element.
type Heading struct {
	Level int
	ID    string
	Text  string
}
