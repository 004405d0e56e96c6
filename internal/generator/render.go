package generator

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitegen/internal/markdown"
	"github.com/goliatone/go-sitegen/internal/posts"
	"github.com/goliatone/go-sitegen/internal/templates"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// RenderedPost captures the rendered HTML output for a single post.
type RenderedPost struct {
	Slug        string
	Title       string
	Source      string
	Output      string
	URL         string
	HTML        string
	SourceHash  string
	Checksum    string
	PublishDate time.Time
	Categories  []string
	Tags        []string
	Duration    time.Duration
}

// RenderDiagnostic records rendering timing and errors for individual posts.
type RenderDiagnostic struct {
	Slug     string
	Source   string
	Output   string
	Duration time.Duration
	Skipped  bool
	Err      error
}

type renderOutcome struct {
	post       RenderedPost
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}

func (s *service) renderPost(ctx context.Context, post *interfaces.Post, manifest *buildManifest, selection *ThemeSelection) renderOutcome {
	output := postOutputPath(post.Slug)
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			Slug:   post.Slug,
			Source: post.SourcePath,
			Output: output,
		},
	}

	select {
	case <-ctx.Done():
		outcome.err = ctx.Err()
		outcome.diagnostic.Err = ctx.Err()
		return outcome
	default:
	}

	hash := sourceHash(post)
	if s.cfg.Incremental && manifest != nil {
		if entry, ok := manifest.lookupPost(post.Slug); ok && manifest.shouldSkipPost(post.Slug, hash, output) {
			outcome.skipped = true
			outcome.diagnostic.Skipped = true
			outcome.post = RenderedPost{
				Slug:        post.Slug,
				Title:       post.Title,
				Source:      post.SourcePath,
				Output:      entry.Output,
				URL:         postURL(post.Slug),
				SourceHash:  entry.Hash,
				Checksum:    entry.Checksum,
				PublishDate: post.PublishDate,
				Categories:  post.Categories,
				Tags:        post.Tags,
			}
			return outcome
		}
	}

	start := time.Now()

	opts := s.cfg.Parser
	opts.Mermaid = opts.Mermaid || post.Mermaid
	body, err := s.deps.Parser.ParseWithOptions(post.Body, opts)
	if err != nil {
		wrapped := posts.RenderFailure(fmt.Errorf("%s: %w", post.SourcePath, err))
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		outcome.diagnostic.Duration = time.Since(start)
		return outcome
	}

	page := templates.PostPage{
		Site:    s.siteData(),
		Assets:  s.assetsData(selection),
		Theme:   themeData(selection),
		Post:    postView(post),
		Content: template.HTML(body.HTML),
		Mermaid: opts.Mermaid,
	}
	if post.TOC {
		page.TOC = template.HTML(markdown.TOCHTML(body.Headings, s.cfg.TOCMaxLevel))
	}

	html, err := s.deps.Renderer.Render(templatePost, page)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := posts.RenderFailure(fmt.Errorf("template %q for %s: %w", templatePost, post.SourcePath, err))
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	outcome.post = RenderedPost{
		Slug:        post.Slug,
		Title:       post.Title,
		Source:      post.SourcePath,
		Output:      output,
		URL:         postURL(post.Slug),
		HTML:        html,
		SourceHash:  hash,
		Checksum:    computeHashFromString(html),
		PublishDate: post.PublishDate,
		Categories:  post.Categories,
		Tags:        post.Tags,
		Duration:    duration,
	}
	return outcome
}

// renderIndex produces the front page listing. Posts arrive newest first.
func (s *service) renderIndex(rendered []RenderedPost, selection *ThemeSelection) (string, error) {
	page := templates.ListPage{
		Site:   s.siteData(),
		Assets: s.assetsData(selection),
		Theme:  themeData(selection),
		Posts:  make([]templates.PostView, 0, len(rendered)),
	}
	for _, post := range rendered {
		page.Posts = append(page.Posts, templates.PostView{
			Title:       post.Title,
			Slug:        post.Slug,
			URL:         post.URL,
			PublishDate: post.PublishDate,
			Categories:  post.Categories,
			Tags:        post.Tags,
		})
	}

	html, err := s.deps.Renderer.Render(templateList, page)
	if err != nil {
		return "", fmt.Errorf("generator: render index: %w", err)
	}
	return html, nil
}

// renderCategoryIndexes produces one listing per category, keyed by artifact
// path. Rendered posts arrive newest first, so each listing inherits that
// order.
func (s *service) renderCategoryIndexes(rendered []RenderedPost, selection *ThemeSelection) (map[string]string, error) {
	groups := map[string][]templates.PostView{}
	headings := map[string]string{}
	for _, post := range rendered {
		view := templates.PostView{
			Title:       post.Title,
			Slug:        post.Slug,
			URL:         post.URL,
			PublishDate: post.PublishDate,
			Categories:  post.Categories,
			Tags:        post.Tags,
		}
		for _, category := range post.Categories {
			key, err := slug.Normalize(category)
			if err != nil || key == "" {
				continue
			}
			if _, ok := headings[key]; !ok {
				headings[key] = category
			}
			groups[key] = append(groups[key], view)
		}
	}

	pages := make(map[string]string, len(groups))
	for key, views := range groups {
		page := templates.ListPage{
			Site:    s.siteData(),
			Assets:  s.assetsData(selection),
			Theme:   themeData(selection),
			Heading: headings[key],
			Posts:   views,
		}
		html, err := s.deps.Renderer.Render(templateList, page)
		if err != nil {
			return nil, fmt.Errorf("generator: render category %s: %w", key, err)
		}
		pages[categoryOutputPath(key)] = html
	}
	return pages, nil
}

func (s *service) siteData() templates.SiteData {
	return templates.SiteData{
		Title:       s.cfg.SiteTitle,
		Description: s.cfg.SiteDescription,
		BaseURL:     s.cfg.BaseURL,
		Author:      s.cfg.SiteAuthor,
		Language:    s.cfg.SiteLanguage,
	}
}

func (s *service) assetsData(selection *ThemeSelection) templates.AssetsData {
	if selection == nil {
		return templates.AssetsData{}
	}
	return templates.AssetsData{
		Stylesheets: selection.Stylesheets(),
		Scripts:     selection.Scripts(),
	}
}

func themeData(selection *ThemeSelection) templates.ThemeData {
	if selection == nil {
		return templates.ThemeData{}
	}
	return templates.ThemeData{CSSVariables: selection.CSSVariables}
}

func postView(post *interfaces.Post) templates.PostView {
	return templates.PostView{
		Title:       post.Title,
		Slug:        post.Slug,
		URL:         postURL(post.Slug),
		PublishDate: post.PublishDate,
		Categories:  post.Categories,
		Tags:        post.Tags,
	}
}
