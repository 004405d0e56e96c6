package templates

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func postPage() PostPage {
	return PostPage{
		Site: SiteData{
			Title:    "Exception Handling Notes",
			Language: "en",
		},
		Post: PostView{
			Title:       "Retry Storms",
			Slug:        "retry-storms",
			URL:         "/posts/retry-storms/",
			PublishDate: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			Categories:  []string{"aws"},
			Tags:        []string{"backoff"},
		},
		Content: template.HTML("<p>Hello <strong>world</strong></p>"),
	}
}

func TestRenderer_PostLayout(t *testing.T) {
	renderer := New(Options{})

	out, err := renderer.Render("post", postPage())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(out, "<h1>Retry Storms</h1>") {
		t.Fatalf("expected post title in output, got %q", out)
	}
	if !strings.Contains(out, "<p>Hello <strong>world</strong></p>") {
		t.Fatalf("expected body HTML to pass through unescaped, got %q", out)
	}
	if !strings.Contains(out, "Retry Storms &middot; Exception Handling Notes</title>") {
		t.Fatalf("expected page title override, got %q", out)
	}
	if !strings.Contains(out, "January 5, 2024") {
		t.Fatalf("expected formatted publish date, got %q", out)
	}
}

func TestRenderer_ListLayout(t *testing.T) {
	renderer := New(Options{})

	out, err := renderer.Render("list", ListPage{
		Site: SiteData{Title: "Exception Handling Notes"},
		Posts: []PostView{
			{
				Title:       "Retry Storms",
				URL:         "/posts/retry-storms/",
				PublishDate: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			},
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(out, `<a href="/posts/retry-storms/">Retry Storms</a>`) {
		t.Fatalf("expected post link in listing, got %q", out)
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	renderer := New(Options{})

	if _, err := renderer.Render("missing", postPage()); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestRenderer_OverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := `{{define "content"}}<p class="custom">{{.Post.Title}}</p>{{end}}`
	if err := os.WriteFile(filepath.Join(dir, "post.html"), []byte(override), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	renderer := New(Options{OverrideDir: dir})

	out, err := renderer.Render("post", postPage())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `<p class="custom">Retry Storms</p>`) {
		t.Fatalf("expected override layout to win, got %q", out)
	}
}

func TestRenderer_RenderString(t *testing.T) {
	renderer := New(Options{})

	out, err := renderer.RenderString(`{{lower .Name}}`, map[string]string{"Name": "AWS"})
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if out != "aws" {
		t.Fatalf("expected lowercased value, got %q", out)
	}
}

func TestRenderer_MermaidScriptGatedByFlag(t *testing.T) {
	renderer := New(Options{})

	page := postPage()
	out, err := renderer.Render("post", page)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "mermaid.esm.min.mjs") {
		t.Fatalf("mermaid runtime should be opt-in, got %q", out)
	}

	page.Mermaid = true
	out, err = renderer.Render("post", page)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "mermaid.esm.min.mjs") {
		t.Fatalf("expected mermaid runtime script, got %q", out)
	}
}
