// Package storage provides artifact store implementations for build outputs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// NewFilesystem returns an interfaces.ArtifactStore rooted at dir. Paths
// passed to the store are slash-separated and relative to that root.
func NewFilesystem(dir string) interfaces.ArtifactStore {
	return &filesystemStore{root: filepath.Clean(dir)}
}

type filesystemStore struct {
	root string
}

func (s *filesystemStore) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.abs(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

func (s *filesystemStore) WriteFile(ctx context.Context, path string, content io.Reader, meta interfaces.ArtifactMeta) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if content == nil {
		return errors.New("storage: write requires content reader")
	}
	target, err := s.abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("storage: ensure parent of %s: %w", path, err)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", path, err)
	}
	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", path, err)
	}
	return nil
}

func (s *filesystemStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *filesystemStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.abs(path)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("storage: remove %s: %w", path, err)
	}
	return nil
}

// abs resolves path under the root and refuses traversal outside of it.
func (s *filesystemStore) abs(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(strings.TrimSpace(path)))
	if cleaned == "." || cleaned == "" {
		return s.root, nil
	}
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("storage: path %q escapes store root", path)
	}
	return filepath.Join(s.root, cleaned), nil
}
