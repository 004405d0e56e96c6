package generator

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type assetCopySummary struct {
	Built   int
	Skipped int
}

// copyAssets copies the site asset directory plus any theme assets into the
// output's assets/ tree. Copies are recorded in the manifest so incremental
// builds can skip unchanged files.
func (s *service) copyAssets(ctx context.Context, writer artifactWriter, selection *ThemeSelection, manifest *buildManifest) (assetCopySummary, error) {
	summary := assetCopySummary{}

	if dir := strings.TrimSpace(s.cfg.AssetsDir); dir != "" {
		if err := s.copyAssetDir(ctx, writer, dir, manifest, &summary); err != nil {
			return summary, err
		}
	}

	if selection != nil {
		for _, asset := range selection.Assets {
			source := filepath.Join(selection.Dir, filepath.FromSlash(asset))
			if err := s.copyAssetFile(ctx, writer, source, asset, manifest, &summary); err != nil {
				return summary, err
			}
		}
	}
	return summary, nil
}

func (s *service) copyAssetDir(ctx context.Context, writer artifactWriter, dir string, manifest *buildManifest, summary *assetCopySummary) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("generator: inspect assets dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("generator: assets path %q is not a directory", dir)
	}

	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return s.copyAssetFile(ctx, writer, path, filepath.ToSlash(rel), manifest, summary)
	})
}

func (s *service) copyAssetFile(ctx context.Context, writer artifactWriter, sourcePath, rel string, manifest *buildManifest, summary *assetCopySummary) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("generator: read asset %s: %w", sourcePath, err)
	}

	output := assetOutputPath(rel)
	checksum := computeHash(data)

	if s.cfg.Incremental && manifest != nil && manifest.shouldSkipAsset(rel, checksum, output) {
		summary.Skipped++
		return nil
	}

	req := writeFileRequest{
		Path:        output,
		Content:     bytes.NewReader(data),
		Size:        int64(len(data)),
		Category:    categoryAsset,
		ContentType: detectAssetContentType(output),
		Checksum:    checksum,
	}
	if err := writer.WriteFile(ctx, req); err != nil {
		return fmt.Errorf("generator: copy asset %s: %w", rel, err)
	}
	summary.Built++

	if manifest != nil {
		manifest.setAsset(manifestAsset{
			Source:   rel,
			Output:   output,
			Checksum: checksum,
			Size:     int64(len(data)),
			CopiedAt: s.now().UTC(),
		})
	}
	return nil
}

func detectAssetContentType(asset string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(asset), "."))
	switch ext {
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	case "woff", "woff2":
		return "font/" + ext
	default:
		return "application/octet-stream"
	}
}
