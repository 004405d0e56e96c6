package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// ThemeSelector resolves an on-disk theme bundle into the data the render and
// asset phases need. Manifests load once per selector.
type ThemeSelector struct {
	dir     string
	name    string
	variant string

	once      sync.Once
	selection *ThemeSelection
	err       error
}

// ThemeSelection is the resolved view of a theme for a single build.
type ThemeSelection struct {
	Name         string
	Variant      string
	Dir          string
	CSSVariables map[string]string
	// Assets lists theme-relative files to copy into the output.
	Assets []string
}

// NewThemeSelector constructs a selector for the named theme under dir.
func NewThemeSelector(dir, name, variant string) *ThemeSelector {
	return &ThemeSelector{
		dir:     filepath.Clean(strings.TrimSpace(dir)),
		name:    strings.TrimSpace(name),
		variant: strings.TrimSpace(variant),
	}
}

// Select loads the theme manifest and resolves the selection. Safe to call
// repeatedly; the result is cached.
func (s *ThemeSelector) Select() (*ThemeSelection, error) {
	s.once.Do(func() {
		s.selection, s.err = s.resolve()
	})
	return s.selection, s.err
}

func (s *ThemeSelector) resolve() (*ThemeSelection, error) {
	if s.name == "" {
		return nil, nil
	}

	themeDir := filepath.Join(s.dir, s.name)
	manifest, err := gotheme.LoadDir(os.DirFS(themeDir), ".")
	if err != nil {
		return nil, fmt.Errorf("generator: load theme manifest from %s: %w", themeDir, err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		manifest.Name = s.name
	}

	registry := gotheme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("generator: register theme manifest: %w", err)
	}

	selector := gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   manifest.Name,
		DefaultVariant: s.variant,
	}
	selection, err := selector.Select(manifest.Name, s.variant)
	if err != nil {
		return nil, fmt.Errorf("generator: select theme %s: %w", manifest.Name, err)
	}

	return &ThemeSelection{
		Name:         selection.Theme,
		Variant:      selection.Variant,
		Dir:          themeDir,
		CSSVariables: selection.CSSVariables("--"),
		Assets:       collectManifestAssets(selection),
	}, nil
}

// Stylesheets returns site-relative URLs for the theme's CSS assets.
func (sel *ThemeSelection) Stylesheets() []string {
	return sel.assetURLs(".css")
}

// Scripts returns site-relative URLs for the theme's JS assets.
func (sel *ThemeSelection) Scripts() []string {
	return sel.assetURLs(".js")
}

func (sel *ThemeSelection) assetURLs(ext string) []string {
	if sel == nil {
		return nil
	}
	var urls []string
	for _, asset := range sel.Assets {
		if strings.EqualFold(filepath.Ext(asset), ext) {
			urls = append(urls, "/"+assetOutputPath(asset))
		}
	}
	sort.Strings(urls)
	return urls
}

func collectManifestAssets(selection *gotheme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	assets := selection.Manifest.Assets.Files
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok && len(v.Assets.Files) > 0 {
			merged := make(map[string]string, len(selection.Manifest.Assets.Files)+len(v.Assets.Files))
			for key, file := range selection.Manifest.Assets.Files {
				merged[key] = file
			}
			for key, file := range v.Assets.Files {
				merged[key] = file
			}
			assets = merged
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, asset := range assets {
		asset = strings.TrimPrefix(strings.TrimSpace(asset), "/")
		if asset == "" {
			continue
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, filepath.ToSlash(asset))
	}
	sort.Strings(out)
	return out
}
