package runtimeconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRequiresContentDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Dir = "   "

	if err := cfg.Validate(); !errors.Is(err, ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestValidateRequiresOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Dir = ""

	if err := cfg.Validate(); !errors.Is(err, ErrOutputDirRequired) {
		t.Fatalf("expected ErrOutputDirRequired, got %v", err)
	}
}

func TestValidateBaseURLForFeeds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Feeds.Enabled = true
	cfg.Site.BaseURL = ""

	if err := cfg.Validate(); !errors.Is(err, ErrSiteBaseURLRequired) {
		t.Fatalf("expected ErrSiteBaseURLRequired, got %v", err)
	}

	cfg.Site.BaseURL = "https://blog.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected config with base URL to validate, got %v", err)
	}
}

func TestValidateLoggingProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestValidateLoggingFormatOnlyForGologger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected pretty format to validate, got %v", err)
	}
}

func TestValidateThemeNeedsName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme.Dir = "themes"

	if err := cfg.Validate(); !errors.Is(err, ErrThemeNameRequired) {
		t.Fatalf("expected ErrThemeNameRequired, got %v", err)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	contents := `
site:
  title: Exception Handling Notes
  base_url: https://blog.example.com
content:
  dir: posts
feeds:
  enabled: true
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Site.Title != "Exception Handling Notes" {
		t.Fatalf("expected file value to win, got %q", cfg.Site.Title)
	}
	if cfg.Content.Dir != "posts" {
		t.Fatalf("expected content dir override, got %q", cfg.Content.Dir)
	}
	if cfg.Output.Dir != "dist" {
		t.Fatalf("expected default output dir to survive, got %q", cfg.Output.Dir)
	}
	if cfg.Feeds.Limit != 20 {
		t.Fatalf("expected default feed limit to survive, got %d", cfg.Feeds.Limit)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	if err := os.WriteFile(path, []byte("output:\n  dir: \"\"\n"), 0o600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}

	if _, err := Load(path); !errors.Is(err, ErrOutputDirRequired) {
		t.Fatalf("expected validation to run during load, got %v", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault(\"\"): %v", err)
	}
	if cfg.Output.Dir != "dist" {
		t.Fatalf("expected defaults, got %#v", cfg.Output)
	}

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault(missing): %v", err)
	}
	if cfg.Content.Dir != "content/posts" {
		t.Fatalf("expected defaults for missing file, got %#v", cfg.Content)
	}
}
