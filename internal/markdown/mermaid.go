package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var mermaidLanguage = []byte("mermaid")

// codeBlockRenderer overrides the default fenced code block output so that
// ```mermaid fences can be handed to a client-side diagram runtime instead of
// being escaped into a plain code listing.
type codeBlockRenderer struct {
	html.Config
	mermaid bool
}

func newCodeBlockRenderer(mermaid bool) renderer.NodeRenderer {
	return &codeBlockRenderer{
		Config:  html.NewConfig(),
		mermaid: mermaid,
	}
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	language := n.Language(source)

	if r.mermaid && bytes.Equal(language, mermaidLanguage) {
		if entering {
			_, _ = w.WriteString(`<pre class="mermaid">`)
			r.writeRawLines(w, source, n)
		} else {
			_, _ = w.WriteString("</pre>\n")
		}
		return ast.WalkContinue, nil
	}

	if entering {
		_, _ = w.WriteString("<pre><code")
		if language != nil {
			_, _ = w.WriteString(` class="language-`)
			r.Writer.Write(w, language)
			_, _ = w.WriteString(`"`)
		}
		_ = w.WriteByte('>')
		r.writeEscapedLines(w, source, n)
	} else {
		_, _ = w.WriteString("</code></pre>\n")
	}
	return ast.WalkContinue, nil
}

func (r *codeBlockRenderer) writeEscapedLines(w util.BufWriter, source []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		r.Writer.RawWrite(w, line.Value(source))
	}
}

func (r *codeBlockRenderer) writeRawLines(w util.BufWriter, source []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
}
