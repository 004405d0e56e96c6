// Package sitegen turns a directory of Markdown posts into a static HTML
// site: front matter parsing, corpus validation with unique slugs, goldmark
// rendering, and deterministic artifact output with a build manifest.
package sitegen

import (
	"context"

	sitecmd "github.com/goliatone/go-sitegen/internal/commands/site"
	"github.com/goliatone/go-sitegen/internal/di"
	"github.com/goliatone/go-sitegen/internal/generator"
	"github.com/goliatone/go-sitegen/internal/watch"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// Version is the module release identifier.
var Version = "0.1.0"

// GeneratorService exports the build pipeline contract.
type GeneratorService = generator.Service

// BuildOptions narrows the scope of a build run.
type BuildOptions = generator.BuildOptions

// BuildResult reports aggregated build metadata.
type BuildResult = generator.BuildResult

// RenderedPost describes a single rendered artifact.
type RenderedPost = generator.RenderedPost

// Rejection describes a post excluded from the build.
type Rejection = interfaces.Rejection

// BuildSiteCommand triggers a full build through the command layer.
type BuildSiteCommand = sitecmd.BuildSiteCommand

// CleanSiteCommand clears build artifacts through the command layer.
type CleanSiteCommand = sitecmd.CleanSiteCommand

// Module is the top level sitegen runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a sitegen module using the provided configuration and
// optional dependency overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying wiring for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Generator returns the configured build service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Build runs a full site build.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.container.GeneratorService().Build(ctx, opts)
}

// Clean removes previously generated artifacts.
func (m *Module) Clean(ctx context.Context) error {
	return m.container.GeneratorService().Clean(ctx)
}

// Watch rebuilds the site whenever sources change, blocking until ctx is
// cancelled. The initial build runs before watching starts.
func (m *Module) Watch(ctx context.Context) error {
	if _, err := m.Build(ctx, BuildOptions{}); err != nil {
		return err
	}
	watcher := m.container.NewWatcher(func(ctx context.Context, paths []string) {
		_, _ = m.Build(ctx, BuildOptions{})
	})
	return watcher.Run(ctx)
}

// Watcher builds a filesystem watcher bound to this module's directories.
func (m *Module) Watcher(onChange watch.OnChange) *watch.Watcher {
	return m.container.NewWatcher(onChange)
}
