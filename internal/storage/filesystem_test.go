package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

func TestFilesystemStore_WriteAndRead(t *testing.T) {
	store := NewFilesystem(t.TempDir())
	ctx := context.Background()

	content := "<html></html>"
	err := store.WriteFile(ctx, "posts/retry-storms/index.html", strings.NewReader(content), interfaces.ArtifactMeta{
		Category:    "page",
		ContentType: "text/html; charset=utf-8",
		Size:        int64(len(content)),
	})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := store.ReadFile(ctx, "posts/retry-storms/index.html")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != content {
		t.Fatalf("round trip mismatch: %q", string(data))
	}
}

func TestFilesystemStore_EnsureDir(t *testing.T) {
	root := t.TempDir()
	store := NewFilesystem(root)

	if err := store.EnsureDir(context.Background(), "assets/css"); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, "assets", "css"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist, err %v", err)
	}
}

func TestFilesystemStore_Remove(t *testing.T) {
	root := t.TempDir()
	store := NewFilesystem(root)
	ctx := context.Background()

	if err := store.WriteFile(ctx, "stale.html", strings.NewReader("x"), interfaces.ArtifactMeta{}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := store.Remove(ctx, "stale.html"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "stale.html")); !os.IsNotExist(err) {
		t.Fatalf("expected file to be gone, err %v", err)
	}
}

func TestFilesystemStore_RejectsEscapingPaths(t *testing.T) {
	store := NewFilesystem(t.TempDir())

	err := store.WriteFile(context.Background(), "../outside.html", strings.NewReader("x"), interfaces.ArtifactMeta{})
	if err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}
