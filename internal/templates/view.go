package templates

import (
	"html/template"
	"time"
)

// SiteData carries site-wide metadata into every layout.
type SiteData struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

// AssetsData lists resolved asset URLs for the page head.
type AssetsData struct {
	Stylesheets []string
	Scripts     []string
}

// ThemeData carries design tokens resolved from the active theme.
type ThemeData struct {
	CSSVariables map[string]string
}

// PostView is the per-post shape exposed to layouts.
type PostView struct {
	Title       string
	Slug        string
	URL         string
	PublishDate time.Time
	Categories  []string
	Tags        []string
}

// PostPage is the data contract for the "post" layout.
type PostPage struct {
	Site    SiteData
	Assets  AssetsData
	Theme   ThemeData
	Post    PostView
	Content template.HTML
	TOC     template.HTML
	Mermaid bool
}

// ListPage is the data contract for the "list" layout. Heading overrides the
// site title for scoped listings such as category pages.
type ListPage struct {
	Site    SiteData
	Assets  AssetsData
	Theme   ThemeData
	Heading string
	Posts   []PostView
	Mermaid bool
}
