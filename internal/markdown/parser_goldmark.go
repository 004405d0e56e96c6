package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark
// engine. The parser is intentionally stateless so callers can reuse a single
// instance across concurrent renders without additional locking.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
}

// NewGoldmarkParser constructs a parser with the supplied defaults. Rendering
// walks the document once, collecting the heading outline alongside the HTML
// so table-of-contents anchors always match the emitted markup.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaultOptions: defaults,
	}
}

// Parse satisfies interfaces.MarkdownParser by rendering Markdown into HTML
// using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) (*interfaces.RenderResult, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) (*interfaces.RenderResult, error) {
	if err := CheckFences(markdown); err != nil {
		return nil, err
	}

	engine := newGoldmarkEngine(opts)
	doc := engine.Parser().Parse(text.NewReader(markdown))

	headings, err := collectHeadings(doc, markdown)
	if err != nil {
		return nil, fmt.Errorf("markdown outline: %w", err)
	}

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, markdown, doc); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}

	return &interfaces.RenderResult{
		HTML:     buf.Bytes(),
		Headings: headings,
	}, nil
}

func collectHeadings(doc ast.Node, source []byte) ([]interfaces.Heading, error) {
	var headings []interfaces.Heading

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		id := ""
		if value, found := heading.AttributeString("id"); found {
			if raw, ok := value.([]byte); ok {
				id = string(raw)
			}
		}

		headings = append(headings, interfaces.Heading{
			Level: heading.Level,
			ID:    id,
			Text:  string(heading.Text(source)),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return headings, nil
}

// newGoldmarkEngine builds a goldmark.Markdown configured from the supplied
// parse options. Unsupported extension names are ignored.
func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(
			util.Prioritized(newCodeBlockRenderer(opts.Mermaid), 100),
		),
	}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// Treat both SafeMode and Sanitize as signals to avoid emitting raw HTML.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
