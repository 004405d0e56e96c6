package interfaces

import (
	"context"
	"io"
)

// ArtifactStore abstracts where build outputs land so generators can target
// the local filesystem, in-memory stores in tests, or remote sinks without
// changing the build pipeline.
type ArtifactStore interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, content io.Reader, meta ArtifactMeta) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}

// ArtifactMeta describes a written artifact for logging and bookkeeping.
type ArtifactMeta struct {
	Category    string
	ContentType string
	Checksum    string
	Size        int64
}
