package console

import (
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
}

func TestConsoleLoggerWritesFormattedEntry(t *testing.T) {
	var buf strings.Builder
	provider := NewProvider(Options{Writer: &buf, TimeFunc: fixedClock})

	logger := provider.GetLogger("sitegen.generator")
	logger.Info("build.completed", "posts", 42, "rejected", 3)

	out := buf.String()
	if !strings.Contains(out, "INFO build.completed") {
		t.Fatalf("expected level and message in output, got %q", out)
	}
	if !strings.Contains(out, "posts=42") || !strings.Contains(out, "rejected=3") {
		t.Fatalf("expected key/value fields in output, got %q", out)
	}
	if !strings.Contains(out, "logger=sitegen.generator") {
		t.Fatalf("expected logger name field, got %q", out)
	}
}

func TestConsoleLoggerHonoursMinLevel(t *testing.T) {
	var buf strings.Builder
	min := LevelWarn
	provider := NewProvider(Options{Writer: &buf, TimeFunc: fixedClock, MinLevel: &min})

	logger := provider.GetLogger("sitegen")
	logger.Debug("discarded")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "discarded") {
		t.Fatalf("expected debug entry to be dropped, got %q", out)
	}
	if !strings.Contains(out, "WARN kept") {
		t.Fatalf("expected warn entry to be written, got %q", out)
	}
}

func TestConsoleLoggerQuotesValuesWithSpaces(t *testing.T) {
	var buf strings.Builder
	provider := NewProvider(Options{Writer: &buf, TimeFunc: fixedClock})

	provider.GetLogger("sitegen").Error("post.rejected", "reason", "missing required field")

	if !strings.Contains(buf.String(), `reason="missing required field"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}
