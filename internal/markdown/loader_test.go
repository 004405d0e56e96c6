package markdown

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

type captureLogger struct {
	messages []string
}

func (l *captureLogger) Trace(msg string, _ ...any) { l.messages = append(l.messages, msg) }
func (l *captureLogger) Debug(msg string, _ ...any) { l.messages = append(l.messages, msg) }
func (l *captureLogger) Info(msg string, _ ...any)  { l.messages = append(l.messages, msg) }
func (l *captureLogger) Warn(msg string, _ ...any)  { l.messages = append(l.messages, msg) }
func (l *captureLogger) Error(msg string, _ ...any) { l.messages = append(l.messages, msg) }
func (l *captureLogger) Fatal(msg string, _ ...any) { l.messages = append(l.messages, msg) }
func (l *captureLogger) WithContext(context.Context) interfaces.Logger { return l }

func TestLoader_LoadDirectory(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{BasePath: "testdata"})

	sources, err := loader.LoadDirectory(context.Background(), "posts")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("expected 2 markdown sources, got %d", len(sources))
	}
	if sources[0].Path != "posts/2024-01-05-retry-storms.md" {
		t.Fatalf("expected deterministic path order, got %q", sources[0].Path)
	}
	if sources[1].Path != "posts/drafts/2024-02-11-throttling.md" {
		t.Fatalf("expected recursive discovery, got %q", sources[1].Path)
	}
	for _, source := range sources {
		if len(source.Data) == 0 {
			t.Fatalf("expected raw bytes for %s", source.Path)
		}
		if source.ModTime.IsZero() {
			t.Fatalf("expected mod time for %s", source.Path)
		}
	}
}

func TestLoader_LoadDirectoryPattern(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{
		BasePath: "testdata",
		Pattern:  "*.md",
	})

	sources, err := loader.LoadDirectory(context.Background(), "posts")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(sources) != 1 {
		t.Fatalf("expected single-level glob to skip subdirectories, got %d", len(sources))
	}
	if !strings.HasSuffix(sources[0].Path, "retry-storms.md") {
		t.Fatalf("unexpected source %q", sources[0].Path)
	}
}

func TestLoader_LogsDiscovery(t *testing.T) {
	logger := &captureLogger{}
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{
		BasePath: "testdata",
		Logger:   logger,
	})

	if _, err := loader.LoadDirectory(context.Background(), "posts"); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	found := false
	for _, msg := range logger.messages {
		if msg == "loader.discovered" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected discovery entry, got %v", logger.messages)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{BasePath: "testdata"})

	source, err := loader.LoadFile(context.Background(), "posts/2024-01-05-retry-storms.md")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if !strings.Contains(string(source.Data), "Retry Storms") {
		t.Fatalf("unexpected file contents: %q", string(source.Data))
	}
}

func TestLoader_LoadDirectoryCancelled(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{BasePath: "testdata"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadDirectory(ctx, "posts"); err == nil {
		t.Fatalf("expected context cancellation to abort discovery")
	}
}

func TestLoader_ModTimeMatchesFilesystem(t *testing.T) {
	info, err := os.Stat("testdata/posts/2024-01-05-retry-storms.md")
	if err != nil {
		t.Fatalf("stat fixture: %v", err)
	}

	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{BasePath: "testdata"})
	source, err := loader.LoadFile(context.Background(), "posts/2024-01-05-retry-storms.md")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if !source.ModTime.Truncate(time.Second).Equal(info.ModTime().Truncate(time.Second)) {
		t.Fatalf("mod time mismatch: %v vs %v", source.ModTime, info.ModTime())
	}
}
