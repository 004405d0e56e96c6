package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrSiteBaseURLRequired = errors.New("sitegen config: site base URL is required when sitemap or feeds are enabled")
var ErrContentDirRequired = errors.New("sitegen config: content directory is required")
var ErrOutputDirRequired = errors.New("sitegen config: output directory is required")
var ErrWorkersInvalid = errors.New("sitegen config: worker count must be zero or positive")
var ErrLoggingProviderUnknown = errors.New("sitegen config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitegen config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitegen config: logging format is invalid")
var ErrThemeNameRequired = errors.New("sitegen config: theme name is required when a themes directory is set")

// Config aggregates the build pipeline settings. Fields intentionally use
// simple types so host applications can extend them later.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Output    OutputConfig    `yaml:"output"`
	Build     BuildConfig     `yaml:"build"`
	Assets    AssetsConfig    `yaml:"assets"`
	Feeds     FeedsConfig     `yaml:"feeds"`
	Sitemap   SitemapConfig   `yaml:"sitemap"`
	Theme     ThemeConfig     `yaml:"theme"`
	Templates TemplatesConfig `yaml:"templates"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig captures site-wide metadata rendered into layouts and feeds.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"base_url"`
	Author      string `yaml:"author"`
	Language    string `yaml:"language"`
}

// ContentConfig captures filesystem and parser behaviour for post ingestion.
type ContentConfig struct {
	Dir         string               `yaml:"dir"`
	Pattern     string               `yaml:"pattern"`
	RequireTags bool                 `yaml:"require_tags"`
	Parser      MarkdownParserConfig `yaml:"parser"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
	Mermaid    bool     `yaml:"mermaid"`
}

// OutputConfig controls where and how artifacts are written.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	CleanBuild  bool   `yaml:"clean_build"`
	Incremental bool   `yaml:"incremental"`
}

// BuildConfig captures behaviour of the render phase.
type BuildConfig struct {
	Workers       int           `yaml:"workers"`
	RenderTimeout time.Duration `yaml:"render_timeout"`
	TOCMaxLevel   int           `yaml:"toc_max_level"`
}

// AssetsConfig controls static asset copying.
type AssetsConfig struct {
	Dir     string `yaml:"dir"`
	Enabled bool   `yaml:"enabled"`
}

// FeedsConfig toggles RSS and Atom feed generation.
type FeedsConfig struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit"`
}

// SitemapConfig toggles sitemap and robots.txt generation.
type SitemapConfig struct {
	Enabled bool `yaml:"enabled"`
	Robots  bool `yaml:"robots"`
}

// ThemeConfig points the generator at an on-disk theme bundle.
type ThemeConfig struct {
	Dir     string `yaml:"dir"`
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// TemplatesConfig points at custom layout overrides.
type TemplatesConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns opinionated defaults for a conventional blog layout.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:    "Blog",
			Language: "en",
		},
		Content: ContentConfig{
			Dir:     "content/posts",
			Pattern: "**/*.md",
		},
		Output: OutputConfig{
			Dir:        "dist",
			CleanBuild: true,
		},
		Build: BuildConfig{
			Workers:     0,
			TOCMaxLevel: 3,
		},
		Assets: AssetsConfig{
			Dir:     "assets",
			Enabled: true,
		},
		Feeds: FeedsConfig{
			Limit: 20,
		},
		Sitemap: SitemapConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return ErrOutputDirRequired
	}
	if cfg.Build.Workers < 0 {
		return ErrWorkersInvalid
	}
	if (cfg.Sitemap.Enabled || cfg.Feeds.Enabled) && strings.TrimSpace(cfg.Site.BaseURL) == "" {
		return ErrSiteBaseURLRequired
	}
	if strings.TrimSpace(cfg.Theme.Dir) != "" && strings.TrimSpace(cfg.Theme.Name) == "" {
		return ErrThemeNameRequired
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
