// Package di wires the build pipeline: configuration in, ready-to-use
// services out. Every collaborator can be swapped through an Option, which is
// how tests and host applications inject fakes.
package di

import (
	"fmt"
	"os"

	"github.com/goliatone/go-sitegen/internal/commands"
	sitecmd "github.com/goliatone/go-sitegen/internal/commands/site"
	"github.com/goliatone/go-sitegen/internal/generator"
	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/logging/console"
	"github.com/goliatone/go-sitegen/internal/logging/gologger"
	"github.com/goliatone/go-sitegen/internal/markdown"
	"github.com/goliatone/go-sitegen/internal/runtimeconfig"
	"github.com/goliatone/go-sitegen/internal/storage"
	"github.com/goliatone/go-sitegen/internal/templates"
	"github.com/goliatone/go-sitegen/internal/watch"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// Container holds the configured services for a sitegen runtime.
type Container struct {
	cfg runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	loader         *markdown.Loader
	parser         interfaces.MarkdownParser
	renderer       interfaces.TemplateRenderer
	store          interfaces.ArtifactStore
	theme          *generator.ThemeSelector
	generatorSvc   generator.Service

	buildHandler *sitecmd.BuildSiteHandler
	diffHandler  *sitecmd.DiffSiteHandler
	cleanHandler *sitecmd.CleanSiteHandler
}

// Option overrides a container collaborator before wiring completes.
type Option func(*Container)

// WithLoggerProvider injects a custom logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLoader injects a custom source loader.
func WithLoader(loader *markdown.Loader) Option {
	return func(c *Container) {
		c.loader = loader
	}
}

// WithMarkdownParser injects a custom Markdown parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithTemplateRenderer injects a custom template renderer.
func WithTemplateRenderer(renderer interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithArtifactStore injects a custom artifact store.
func WithArtifactStore(store interfaces.ArtifactStore) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithGeneratorService short-circuits generator wiring entirely.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		c.generatorSvc = svc
	}
}

// NewContainer validates cfg and wires the full pipeline.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}
	if c.loader == nil {
		c.loader = markdown.NewLoader(os.DirFS(cfg.Content.Dir), markdown.LoaderConfig{
			BasePath: cfg.Content.Dir,
			Pattern:  cfg.Content.Pattern,
			Logger:   logging.MarkdownLogger(c.loggerProvider),
		})
	}
	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(parseOptions(cfg.Content.Parser))
	}
	if c.renderer == nil {
		c.renderer = templates.New(templates.Options{OverrideDir: cfg.Templates.Dir})
	}
	if c.store == nil {
		c.store = storage.NewFilesystem(cfg.Output.Dir)
	}
	if c.theme == nil && cfg.Theme.Name != "" {
		c.theme = generator.NewThemeSelector(cfg.Theme.Dir, cfg.Theme.Name, cfg.Theme.Variant)
	}

	if c.generatorSvc == nil {
		c.generatorSvc = generator.NewService(generatorConfig(cfg), generator.Dependencies{
			Loader:      c.loader,
			Parser:      c.parser,
			Renderer:    c.renderer,
			Store:       c.store,
			Theme:       c.theme,
			Logger:      logging.GeneratorLogger(c.loggerProvider),
			PostsLogger: logging.PostsLogger(c.loggerProvider),
		})
	}

	gates := sitecmd.FeatureGates{GeneratorEnabled: func() bool { return true }}
	commandLogger := commands.CommandLogger(c.loggerProvider, "site")
	c.buildHandler = sitecmd.NewBuildSiteHandler(c.generatorSvc, commandLogger, gates)
	c.diffHandler = sitecmd.NewDiffSiteHandler(c.generatorSvc, commandLogger, gates)
	c.cleanHandler = sitecmd.NewCleanSiteHandler(c.generatorSvc, commandLogger, gates)

	return c, nil
}

// Config returns the validated runtime configuration.
func (c *Container) Config() runtimeconfig.Config {
	return c.cfg
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// GeneratorService exposes the build pipeline service.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// MarkdownParser exposes the configured parser.
func (c *Container) MarkdownParser() interfaces.MarkdownParser {
	return c.parser
}

// TemplateRenderer exposes the configured renderer.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.renderer
}

// ArtifactStore exposes the configured output store.
func (c *Container) ArtifactStore() interfaces.ArtifactStore {
	return c.store
}

// BuildHandler returns the command handler for full builds.
func (c *Container) BuildHandler() *sitecmd.BuildSiteHandler {
	return c.buildHandler
}

// DiffHandler returns the command handler for dry-run builds.
func (c *Container) DiffHandler() *sitecmd.DiffSiteHandler {
	return c.diffHandler
}

// CleanHandler returns the command handler for output cleanup.
func (c *Container) CleanHandler() *sitecmd.CleanSiteHandler {
	return c.cleanHandler
}

// NewWatcher builds a filesystem watcher over the content, template, theme,
// and asset directories, invoking onChange on each debounced batch.
func (c *Container) NewWatcher(onChange watch.OnChange) *watch.Watcher {
	dirs := []string{c.cfg.Content.Dir}
	for _, dir := range []string{c.cfg.Templates.Dir, c.cfg.Theme.Dir, c.cfg.Assets.Dir} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		dirs = append(dirs, dir)
	}
	return watch.New(watch.Config{Dirs: dirs}, onChange, logging.WatchLogger(c.loggerProvider))
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch cfg.Provider {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("di: configure go-logger provider: %w", err)
		}
		return provider, nil
	default:
		level := consoleLevel(cfg.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	}
}

func consoleLevel(level string) console.Level {
	switch level {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

func parseOptions(cfg runtimeconfig.MarkdownParserConfig) interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: cfg.Extensions,
		Sanitize:   cfg.Sanitize,
		HardWraps:  cfg.HardWraps,
		SafeMode:   cfg.SafeMode,
		Mermaid:    cfg.Mermaid,
	}
}

func generatorConfig(cfg runtimeconfig.Config) generator.Config {
	return generator.Config{
		ContentDir:      ".",
		OutputDir:       cfg.Output.Dir,
		BaseURL:         cfg.Site.BaseURL,
		SiteTitle:       cfg.Site.Title,
		SiteDescription: cfg.Site.Description,
		SiteAuthor:      cfg.Site.Author,
		SiteLanguage:    cfg.Site.Language,
		CleanBuild:      cfg.Output.CleanBuild,
		Incremental:     cfg.Output.Incremental,
		CopyAssets:      cfg.Assets.Enabled,
		AssetsDir:       cfg.Assets.Dir,
		GenerateSitemap: cfg.Sitemap.Enabled,
		GenerateRobots:  cfg.Sitemap.Robots,
		GenerateFeeds:   cfg.Feeds.Enabled,
		FeedLimit:       cfg.Feeds.Limit,
		Workers:         cfg.Build.Workers,
		RequireTags:     cfg.Content.RequireTags,
		TOCMaxLevel:     cfg.Build.TOCMaxLevel,
		Parser:          parseOptions(cfg.Content.Parser),
	}
}
