package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildCommand(t *testing.T) {
	contentDir := t.TempDir()
	outputDir := t.TempDir()

	post := `---
title: CLI Post
date: 2024-06-01
categories: [tools]
---
Built from the command line.
`
	if err := os.WriteFile(filepath.Join(contentDir, "cli-post.md"), []byte(post), 0o600); err != nil {
		t.Fatalf("write post: %v", err)
	}

	buildContentDir = contentDir
	buildOutputDir = outputDir
	t.Cleanup(func() {
		buildContentDir = ""
		buildOutputDir = ""
		buildDryRun = false
	})

	var out bytes.Buffer
	buildCmd.SetOut(&out)

	if err := buildCmd.RunE(buildCmd, nil); err != nil {
		t.Fatalf("build command: %v", err)
	}

	if !strings.Contains(out.String(), "built 1 posts") {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(outputDir, "posts", "cli-post", "index.html")); err != nil {
		t.Fatalf("expected rendered post: %v", err)
	}
}

func TestBuildCommand_DryRun(t *testing.T) {
	contentDir := t.TempDir()
	outputDir := t.TempDir()

	buildContentDir = contentDir
	buildOutputDir = outputDir
	buildDryRun = true
	t.Cleanup(func() {
		buildContentDir = ""
		buildOutputDir = ""
		buildDryRun = false
	})

	var out bytes.Buffer
	buildCmd.SetOut(&out)

	if err := buildCmd.RunE(buildCmd, nil); err != nil {
		t.Fatalf("build command: %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run should write nothing, found %d entries", len(entries))
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	if !strings.Contains(out.String(), "sitegen version") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}
