package interfaces

// TemplateRenderer abstracts the layout engine used to wrap rendered post
// bodies into full documents. Implementations resolve names against their
// own template set and must be safe for concurrent use.
type TemplateRenderer interface {
	Render(name string, data any) (string, error)
	RenderString(templateContent string, data any) (string, error)
}
