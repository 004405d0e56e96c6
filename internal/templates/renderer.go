// Package templates implements the HTML layout engine backing the generator.
// Default layouts ship embedded; a site can override any of them by pointing
// the renderer at a directory containing files with the same names.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

//go:embed layouts/*.html
var defaultLayouts embed.FS

// Options configure the renderer.
type Options struct {
	// OverrideDir holds site-specific layout files that shadow the embedded
	// defaults by name. Optional.
	OverrideDir string
	// Funcs extends the template function map. Optional.
	Funcs template.FuncMap
}

// Renderer implements interfaces.TemplateRenderer on html/template. Pages are
// parsed lazily and each page template gets its own set cloned from the base
// layout, so sibling pages can define the same block names without clashing.
type Renderer struct {
	opts  Options
	once  sync.Once
	pages map[string]*template.Template
	err   error
}

var _ interfaces.TemplateRenderer = (*Renderer)(nil)

// New constructs a Renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render executes the named page template. Names are layout file names
// without extension, e.g. "post" or "list".
func (r *Renderer) Render(name string, data any) (string, error) {
	pages, err := r.ensurePages()
	if err != nil {
		return "", err
	}

	page, ok := pages[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "base", data); err != nil {
		return "", fmt.Errorf("render template %q: %w", name, err)
	}
	return buf.String(), nil
}

// RenderString parses and executes an inline template.
func (r *Renderer) RenderString(templateContent string, data any) (string, error) {
	tpl, err := template.New("inline").Funcs(r.funcs()).Parse(templateContent)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) ensurePages() (map[string]*template.Template, error) {
	r.once.Do(func() {
		r.pages, r.err = r.parsePages()
	})
	return r.pages, r.err
}

func (r *Renderer) parsePages() (map[string]*template.Template, error) {
	sources := map[string]string{}

	if err := collectLayouts(defaultLayouts, "layouts", sources); err != nil {
		return nil, fmt.Errorf("embedded layouts: %w", err)
	}

	if dir := strings.TrimSpace(r.opts.OverrideDir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("inspect template directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template path %q is not a directory", dir)
		}
		if err := collectLayouts(os.DirFS(dir), ".", sources); err != nil {
			return nil, fmt.Errorf("layout overrides: %w", err)
		}
	}

	base, ok := sources["base"]
	if !ok {
		return nil, fmt.Errorf("layout %q not found", "base")
	}

	pages := make(map[string]*template.Template, len(sources))
	for name, source := range sources {
		if name == "base" {
			continue
		}
		tpl, err := template.New(name).Funcs(r.funcs()).Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse base layout: %w", err)
		}
		if _, err := tpl.Parse(source); err != nil {
			return nil, fmt.Errorf("parse layout %q: %w", name, err)
		}
		pages[name] = tpl
	}
	return pages, nil
}

func collectLayouts(filesystem fs.FS, root string, into map[string]string) error {
	return fs.WalkDir(filesystem, root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".html" && ext != ".tmpl" {
			return nil
		}
		data, err := fs.ReadFile(filesystem, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		into[name] = string(data)
		return nil
	})
}

func (r *Renderer) funcs() template.FuncMap {
	funcs := template.FuncMap{
		"safeHTML":   func(value any) template.HTML { return toHTML(value) },
		"formatDate": func(ts time.Time) string { return ts.Format("January 2, 2006") },
		"lower":      strings.ToLower,
	}
	for name, fn := range r.opts.Funcs {
		funcs[name] = fn
	}
	return funcs
}

func toHTML(value any) template.HTML {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case template.HTML:
		return v
	case string:
		return template.HTML(v)
	case []byte:
		return template.HTML(v)
	default:
		return template.HTML(fmt.Sprint(v))
	}
}
