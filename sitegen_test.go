package sitegen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func moduleConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Site.Title = "Facade Test"
	cfg.Site.BaseURL = "https://example.com"
	cfg.Content.Dir = t.TempDir()
	cfg.Output.Dir = t.TempDir()
	cfg.Assets.Enabled = false
	return cfg
}

func TestNew_BuildAndClean(t *testing.T) {
	cfg := moduleConfig(t)
	source := `---
title: Facade Post
date: 2024-05-01
categories: [meta]
---
Built through the public API.
`
	if err := os.WriteFile(filepath.Join(cfg.Content.Dir, "facade-post.md"), []byte(source), 0o600); err != nil {
		t.Fatalf("write post: %v", err)
	}

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	result, err := module.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PostsBuilt != 1 || len(result.Rejected) != 0 {
		t.Fatalf("unexpected build result: %+v", result)
	}

	rendered := filepath.Join(cfg.Output.Dir, "posts", "facade-post", "index.html")
	if _, err := os.Stat(rendered); err != nil {
		t.Fatalf("expected rendered post: %v", err)
	}

	if err := module.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, err := os.Stat(rendered); !os.IsNotExist(err) {
		t.Fatalf("expected output removed after clean, err %v", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Dir = ""
	if _, err := New(cfg); err == nil {
		t.Fatal("expected configuration error")
	}
}

func TestLoadConfigOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Content.Dir == "" || cfg.Output.Dir == "" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
