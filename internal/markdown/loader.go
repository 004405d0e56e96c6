package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// LoaderConfig configures how Markdown sources are discovered within a base
// directory.
type LoaderConfig struct {
	// BasePath is the root directory where Markdown posts live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "**/*.md").
	Pattern string
	// Logger receives discovery diagnostics. A nil logger falls back to no-op.
	Logger interfaces.Logger
}

// SourceFile carries a discovered Markdown file along with its raw bytes and
// filesystem metadata.
type SourceFile struct {
	Path    string
	Data    []byte
	ModTime time.Time
}

// Loader discovers Markdown sources on a filesystem.
type Loader struct {
	fs       fs.FS
	basePath string
	pattern  string
	logger   interfaces.Logger
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "**/*.md"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Loader{
		fs:       filesystem,
		basePath: filepath.Clean(cfg.BasePath),
		pattern:  pattern,
		logger:   logger,
	}
}

// LoadFile reads a single Markdown source.
func (l *Loader) LoadFile(ctx context.Context, path string) (*SourceFile, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	return &SourceFile{
		Path:    rel,
		Data:    data,
		ModTime: info.ModTime(),
	}, nil
}

// LoadDirectory discovers Markdown files under dir and returns their sources
// in deterministic path order.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*SourceFile, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.ToSlash(filepath.Clean(root))

	var results []*SourceFile

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(root, rel) {
			return nil
		}

		source, err := l.LoadFile(ctx, rel)
		if err != nil {
			return err
		}
		results = append(results, source)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	l.logger.Debug("loader.discovered", "dir", root, "pattern", l.pattern, "count", len(results))

	return results, nil
}

func (l *Loader) matchesPattern(root, path string) bool {
	target := path
	if root != "." {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false
		}
		target = filepath.ToSlash(rel)
	}

	match, err := doublestar.Match(l.pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
	}
	return rel, nil
}
