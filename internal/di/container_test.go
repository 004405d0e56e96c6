package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-sitegen/internal/generator"
	"github.com/goliatone/go-sitegen/internal/runtimeconfig"
)

func testConfig(tb testing.TB) runtimeconfig.Config {
	tb.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.Title = "Test Site"
	cfg.Site.BaseURL = "https://example.com"
	cfg.Content.Dir = tb.TempDir()
	cfg.Output.Dir = tb.TempDir()
	cfg.Assets.Enabled = false
	return cfg
}

func TestNewContainer_WiresPipeline(t *testing.T) {
	cfg := testConfig(t)
	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if container.GeneratorService() == nil {
		t.Fatal("expected generator service")
	}
	if container.BuildHandler() == nil || container.DiffHandler() == nil || container.CleanHandler() == nil {
		t.Fatal("expected command handlers to be wired")
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected logger provider")
	}
}

func TestNewContainer_BuildEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	post := filepath.Join(cfg.Content.Dir, "2024-01-05-hello.md")
	content := `---
title: Hello
date: 2024-01-05
categories: [general]
---
Hello world.
`
	if err := os.WriteFile(post, []byte(content), 0o600); err != nil {
		t.Fatalf("write post: %v", err)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := container.GeneratorService().Build(context.Background(), generator.BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PostsBuilt != 1 {
		t.Fatalf("expected one post, got %+v", result)
	}
	if _, err := os.Stat(filepath.Join(cfg.Output.Dir, "posts", "hello", "index.html")); err != nil {
		t.Fatalf("expected rendered output: %v", err)
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = ""
	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewContainer_GeneratorOverride(t *testing.T) {
	cfg := testConfig(t)
	disabled := generator.NewDisabledService()

	container, err := NewContainer(cfg, WithGeneratorService(disabled))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.GeneratorService() != disabled {
		t.Fatal("expected injected generator service")
	}
}
