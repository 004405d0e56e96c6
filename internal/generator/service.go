// Package generator orchestrates the build pipeline: discover Markdown
// sources, parse and validate the corpus, render HTML artifacts, and record
// the build manifest. Individual posts fail locally; only infrastructure
// problems fail the build.
package generator

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/markdown"
	"github.com/goliatone/go-sitegen/internal/posts"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errRendererRequired = errors.New("generator: template renderer is required")
	errParserRequired   = errors.New("generator: markdown parser is required")
	errLoaderRequired   = errors.New("generator: source loader is required")
)

// Service describes the static site build contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	ContentDir      string
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	SiteAuthor      string
	SiteLanguage    string
	CleanBuild      bool
	Incremental     bool
	CopyAssets      bool
	AssetsDir       string
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	FeedLimit       int
	Workers         int
	RequireTags     bool
	TOCMaxLevel     int
	Parser          interfaces.ParseOptions
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	// DryRun renders everything but writes nothing.
	DryRun bool
	// Slugs limits the run to the named posts. Scoped runs refresh only the
	// selected artifacts and their manifest entries; site-wide outputs such
	// as the index, feeds, and sitemap are left untouched.
	Slugs []string
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	BuildID       string
	PostsBuilt    int
	PostsSkipped  int
	AssetsBuilt   int
	AssetsSkipped int
	Rejected      []interfaces.Rejection
	Rendered      []RenderedPost
	Diagnostics   []RenderDiagnostic
	Duration      time.Duration
	DryRun        bool
	Errors        []error
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Loader   *markdown.Loader
	Parser   interfaces.MarkdownParser
	Renderer interfaces.TemplateRenderer
	Store    interfaces.ArtifactStore
	Theme    *ThemeSelector
	Logger   interfaces.Logger
	// PostsLogger scopes parse and validation entries to the posts
	// namespace. Falls back to Logger when unset.
	PostsLogger interfaces.Logger
}

// NewService wires a generator with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	if deps.PostsLogger == nil {
		deps.PostsLogger = deps.Logger
	}
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = defaultFeedLimit
	}
	return &service{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg  Config
	deps Dependencies
	now  func() time.Time
}

type disabledService struct{}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if s.deps.Parser == nil {
		return nil, errParserRequired
	}
	if s.deps.Loader == nil {
		return nil, errLoaderRequired
	}

	start := s.now()
	buildID := uuid.NewString()
	scoped := len(opts.Slugs) > 0
	logger := logging.WithBuildContext(s.deps.Logger, buildID)
	logger.Info("build.start", "content_dir", s.cfg.ContentDir, "dry_run", opts.DryRun, "scoped", scoped)

	result := &BuildResult{
		BuildID: buildID,
		DryRun:  opts.DryRun,
	}

	sources, err := s.deps.Loader.LoadDirectory(ctx, s.cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("generator: discover sources: %w", err)
	}
	logger.Debug("build.sources", "count", len(sources))

	batch, parseRejections := s.parseAll(ctx, sources)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The slug registry only decides once the whole corpus has been parsed,
	// so ordering between files never depends on parse timing.
	validator := posts.NewValidator(posts.ValidatorConfig{RequireTags: s.cfg.RequireTags}, s.deps.PostsLogger)
	accepted, validateRejections := validator.Validate(posts.NewRegistry(), batch)

	rejections := append(parseRejections, toRejections(validateRejections)...)

	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].PublishDate.Equal(accepted[j].PublishDate) {
			return accepted[i].Slug < accepted[j].Slug
		}
		return accepted[i].PublishDate.After(accepted[j].PublishDate)
	})

	if scoped {
		accepted = scopeBySlugs(accepted, opts.Slugs)
	}

	// Scoped runs always merge into the previous manifest so entries
	// outside the selection survive the rewrite.
	manifest := newBuildManifest()
	if !opts.DryRun && (scoped || (s.cfg.Incremental && !s.cfg.CleanBuild)) {
		if loaded, err := s.loadManifest(ctx); err != nil {
			logger.Warn("build.manifest_unreadable", "error", err)
		} else if loaded != nil {
			manifest = loaded
		}
	}

	var selection *ThemeSelection
	if s.deps.Theme != nil {
		selection, err = s.deps.Theme.Select()
		if err != nil {
			return nil, err
		}
	}

	outcomes := s.renderAll(ctx, accepted, manifest, selection)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rendered    []RenderedPost
		errorsSlice []error
	)
	for _, outcome := range outcomes {
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		switch {
		case outcome.err != nil:
			// A broken body drops the post, never the build.
			rejections = append(rejections, interfaces.Rejection{
				SourcePath: outcome.diagnostic.Source,
				Code:       posts.CodeOf(outcome.err),
				Reason:     outcome.err.Error(),
			})
		case outcome.skipped:
			result.PostsSkipped++
			rendered = append(rendered, outcome.post)
		default:
			result.PostsBuilt++
			rendered = append(rendered, outcome.post)
		}
	}

	sortRejections(rejections)
	result.Rejected = rejections
	result.Rendered = rendered

	var indexHTML string
	if !scoped {
		indexHTML, err = s.renderIndex(rendered, selection)
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if opts.DryRun {
		result.Duration = s.now().Sub(start)
		logger.Info("build.done", "posts", result.PostsBuilt, "rejected", len(rejections), "dry_run", true)
		return finishBuild(result, errorsSlice)
	}

	if s.cfg.CleanBuild && !scoped {
		if err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	writer := newArtifactWriter(s.deps.Store)
	if err := s.persistPosts(ctx, writer, outcomes); err != nil {
		errorsSlice = append(errorsSlice, err)
	}
	if indexHTML != "" {
		if err := s.persistPage(ctx, writer, indexFileName, indexHTML); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if !scoped {
		if categoryPages, err := s.renderCategoryIndexes(rendered, selection); err != nil {
			errorsSlice = append(errorsSlice, err)
		} else {
			for pagePath, pageHTML := range categoryPages {
				if err := s.persistPage(ctx, writer, pagePath, pageHTML); err != nil {
					errorsSlice = append(errorsSlice, err)
				}
			}
		}
	}

	if s.cfg.CopyAssets && !scoped {
		summary, err := s.copyAssets(ctx, writer, selection, manifest)
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		} else {
			result.AssetsBuilt += summary.Built
			result.AssetsSkipped += summary.Skipped
		}
	}

	if s.cfg.GenerateSitemap && !scoped {
		if err := s.writeSitemap(ctx, writer, rendered, start); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}
	if s.cfg.GenerateRobots && !scoped {
		if err := s.writeRobots(ctx, writer); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}
	if s.cfg.GenerateFeeds && !scoped {
		if err := s.writeFeeds(ctx, writer, rendered, start); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	manifest.BuildID = buildID
	manifest.GeneratedAt = start.UTC()
	keep := map[string]struct{}{}
	for _, post := range rendered {
		keep[manifestKey(post.Slug)] = struct{}{}
		if post.Checksum == "" {
			continue
		}
		manifest.setPost(manifestPost{
			Slug:        post.Slug,
			Title:       post.Title,
			Source:      post.Source,
			Output:      post.Output,
			Hash:        post.SourceHash,
			Checksum:    post.Checksum,
			PublishedAt: post.PublishDate,
			RenderedAt:  start.UTC(),
		})
	}
	if !scoped {
		manifest.prunePosts(keep)
		manifest.Rejected = toManifestRejections(rejections)
	}
	if err := s.persistManifest(ctx, writer, manifest); err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	result.Duration = s.now().Sub(start)
	logger.Info("build.done",
		"posts", result.PostsBuilt,
		"skipped", result.PostsSkipped,
		"rejected", len(rejections),
		"assets", result.AssetsBuilt,
		"duration", result.Duration,
	)
	return finishBuild(result, errorsSlice)
}

// Clean removes the output directory contents.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.deps.Store == nil {
		return nil
	}
	if err := s.deps.Store.Remove(ctx, "."); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("generator: clean output: %w", err)
	}
	return nil
}

// parseAll turns discovered sources into posts, collecting per-file
// rejections instead of failing the batch.
func (s *service) parseAll(ctx context.Context, sources []*markdown.SourceFile) ([]*interfaces.Post, []interfaces.Rejection) {
	parsed := make([]*interfaces.Post, len(sources))
	failures := make([]error, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.effectiveWorkerCount(len(sources)))

	for i, source := range sources {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			post, err := posts.FromSource(source.Path, source.Data, source.ModTime)
			if err != nil {
				failures[i] = err
				return nil
			}
			parsed[i] = post
			return nil
		})
	}
	// Workers only report context cancellation; per-file errors land in failures.
	_ = group.Wait()

	batch := make([]*interfaces.Post, 0, len(sources))
	var rejections []interfaces.Rejection
	for i, source := range sources {
		if failures[i] != nil {
			s.deps.PostsLogger.Warn("post.parse_rejected",
				"path", source.Path,
				"code", posts.CodeOf(failures[i]),
				"error", failures[i],
			)
			rejections = append(rejections, interfaces.Rejection{
				SourcePath: source.Path,
				Code:       posts.CodeOf(failures[i]),
				Reason:     failures[i].Error(),
			})
			continue
		}
		if parsed[i] != nil {
			batch = append(batch, parsed[i])
		}
	}
	return batch, rejections
}

// renderAll runs the render phase over the accepted posts with a bounded
// worker pool. Outcomes preserve input order.
func (s *service) renderAll(ctx context.Context, accepted []*interfaces.Post, manifest *buildManifest, selection *ThemeSelection) []renderOutcome {
	outcomes := make([]renderOutcome, len(accepted))
	if len(accepted) == 0 {
		return outcomes
	}

	workers := s.effectiveWorkerCount(len(accepted))
	if workers <= 1 {
		for i, post := range accepted {
			outcomes[i] = s.renderPost(ctx, post, manifest, selection)
		}
		return outcomes
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					outcomes[i] = renderOutcome{
						diagnostic: RenderDiagnostic{Slug: accepted[i].Slug, Source: accepted[i].SourcePath, Err: ctx.Err()},
						err:        ctx.Err(),
					}
				default:
					outcomes[i] = s.renderPost(ctx, accepted[i], manifest, selection)
				}
			}
		}()
	}

	for i := range accepted {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return outcomes
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return outcomes
}

func (s *service) persistPosts(ctx context.Context, writer artifactWriter, outcomes []renderOutcome) error {
	for i := range outcomes {
		if outcomes[i].err != nil || outcomes[i].skipped {
			continue
		}
		post := &outcomes[i].post
		req := writeFileRequest{
			Path:        post.Output,
			Content:     strings.NewReader(post.HTML),
			Size:        int64(len(post.HTML)),
			Category:    categoryPage,
			ContentType: "text/html; charset=utf-8",
			Checksum:    post.Checksum,
		}
		if err := writer.WriteFile(ctx, req); err != nil {
			return fmt.Errorf("generator: persist %s: %w", post.Output, err)
		}
	}
	return nil
}

func (s *service) persistPage(ctx context.Context, writer artifactWriter, path, html string) error {
	req := writeFileRequest{
		Path:        path,
		Content:     strings.NewReader(html),
		Size:        int64(len(html)),
		Category:    categoryPage,
		ContentType: "text/html; charset=utf-8",
		Checksum:    computeHashFromString(html),
	}
	if err := writer.WriteFile(ctx, req); err != nil {
		return fmt.Errorf("generator: persist %s: %w", path, err)
	}
	return nil
}

func (s *service) loadManifest(ctx context.Context) (*buildManifest, error) {
	if s.deps.Store == nil {
		return nil, nil
	}
	data, err := s.deps.Store.ReadFile(ctx, manifestFileName)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("generator: read manifest: %w", err)
	}
	return parseManifest(data)
}

func (s *service) persistManifest(ctx context.Context, writer artifactWriter, manifest *buildManifest) error {
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	req := writeFileRequest{
		Path:        manifestFileName,
		Content:     strings.NewReader(string(data)),
		Size:        int64(len(data)),
		Category:    categoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
	}
	return writer.WriteFile(ctx, req)
}

func (s *service) effectiveWorkerCount(jobCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if jobCount > 0 && workers > jobCount {
		return jobCount
	}
	return workers
}

func finishBuild(result *BuildResult, errorsSlice []error) (*BuildResult, error) {
	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		return result, errors.Join(errorsSlice...)
	}
	return result, nil
}

// scopeBySlugs keeps only the posts whose slug was requested. Unknown slugs
// are ignored so callers can retry a selection without pre-checking it.
func scopeBySlugs(batch []*interfaces.Post, slugs []string) []*interfaces.Post {
	want := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		if trimmed := strings.TrimSpace(slug); trimmed != "" {
			want[trimmed] = struct{}{}
		}
	}

	scoped := make([]*interfaces.Post, 0, len(want))
	for _, post := range batch {
		if _, ok := want[post.Slug]; ok {
			scoped = append(scoped, post)
		}
	}
	return scoped
}

func toRejections(rejected []posts.Rejected) []interfaces.Rejection {
	out := make([]interfaces.Rejection, 0, len(rejected))
	for _, r := range rejected {
		out = append(out, interfaces.Rejection{
			SourcePath: r.SourcePath,
			Code:       posts.CodeOf(r.Err),
			Reason:     r.Err.Error(),
		})
	}
	return out
}

func sortRejections(rejections []interfaces.Rejection) {
	sort.Slice(rejections, func(i, j int) bool {
		if rejections[i].SourcePath == rejections[j].SourcePath {
			return rejections[i].Code < rejections[j].Code
		}
		return rejections[i].SourcePath < rejections[j].SourcePath
	})
}

func sourceHash(post *interfaces.Post) string {
	return hex.EncodeToString(post.Checksum)
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
