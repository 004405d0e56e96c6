package sitegen

import "github.com/goliatone/go-sitegen/internal/runtimeconfig"

var (
	ErrSiteBaseURLRequired    = runtimeconfig.ErrSiteBaseURLRequired
	ErrContentDirRequired     = runtimeconfig.ErrContentDirRequired
	ErrOutputDirRequired      = runtimeconfig.ErrOutputDirRequired
	ErrWorkersInvalid         = runtimeconfig.ErrWorkersInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrThemeNameRequired      = runtimeconfig.ErrThemeNameRequired
)

type (
	Config               = runtimeconfig.Config
	SiteConfig           = runtimeconfig.SiteConfig
	ContentConfig        = runtimeconfig.ContentConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	OutputConfig         = runtimeconfig.OutputConfig
	BuildConfig          = runtimeconfig.BuildConfig
	AssetsConfig         = runtimeconfig.AssetsConfig
	FeedsConfig          = runtimeconfig.FeedsConfig
	SitemapConfig        = runtimeconfig.SitemapConfig
	ThemeConfig          = runtimeconfig.ThemeConfig
	TemplatesConfig      = runtimeconfig.TemplatesConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the baseline configuration for a sitegen module.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file, layering it over defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}

// LoadConfigOrDefault behaves like LoadConfig but tolerates a missing file.
func LoadConfigOrDefault(path string) (Config, error) {
	return runtimeconfig.LoadOrDefault(path)
}
