package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

const (
	manifestFileName    = "manifest.json"
	manifestFileVersion = 1
)

// buildManifest records what the last build produced. It doubles as the
// skip-list for incremental runs and as the machine readable build report.
type buildManifest struct {
	Version     int                     `json:"version"`
	BuildID     string                  `json:"build_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Posts       map[string]manifestPost `json:"posts"`
	Assets      map[string]manifestAsset `json:"assets"`
	Rejected    []manifestRejection     `json:"rejected,omitempty"`
}

type manifestPost struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	Output      string    `json:"output"`
	Hash        string    `json:"hash"`
	Checksum    string    `json:"checksum"`
	PublishedAt time.Time `json:"published_at"`
	RenderedAt  time.Time `json:"rendered_at"`
}

type manifestAsset struct {
	Source   string    `json:"source"`
	Output   string    `json:"output"`
	Checksum string    `json:"checksum"`
	Size     int64     `json:"size"`
	CopiedAt time.Time `json:"copied_at"`
}

type manifestRejection struct {
	Source string `json:"source"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Posts:   map[string]manifestPost{},
		Assets:  map[string]manifestAsset{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	// The marshalled form keeps posts and assets as sorted lists; accept both
	// shapes so hand-edited manifests stay readable.
	var onDisk struct {
		Version     int                 `json:"version"`
		BuildID     string              `json:"build_id"`
		GeneratedAt time.Time           `json:"generated_at"`
		Posts       []manifestPost      `json:"posts"`
		Assets      []manifestAsset     `json:"assets"`
		Rejected    []manifestRejection `json:"rejected"`
	}
	if err := json.Unmarshal(data, &onDisk); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}

	manifest := newBuildManifest()
	manifest.BuildID = onDisk.BuildID
	manifest.GeneratedAt = onDisk.GeneratedAt
	manifest.Rejected = onDisk.Rejected
	if onDisk.Version != 0 {
		manifest.Version = onDisk.Version
	}
	for _, entry := range onDisk.Posts {
		manifest.setPost(entry)
	}
	for _, entry := range onDisk.Assets {
		manifest.setAsset(entry)
	}
	return manifest, nil
}

func (m *buildManifest) marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	// Stable ordering for deterministic output.
	type orderedManifest struct {
		Version     int                 `json:"version"`
		BuildID     string              `json:"build_id"`
		GeneratedAt time.Time           `json:"generated_at"`
		Posts       []manifestPost      `json:"posts"`
		Assets      []manifestAsset     `json:"assets,omitempty"`
		Rejected    []manifestRejection `json:"rejected,omitempty"`
	}
	ordered := orderedManifest{
		Version:     m.Version,
		BuildID:     m.BuildID,
		GeneratedAt: m.GeneratedAt,
		Rejected:    m.Rejected,
		Posts:       make([]manifestPost, 0, len(m.Posts)),
	}
	if ordered.Version == 0 {
		ordered.Version = manifestFileVersion
	}
	for _, entry := range m.Posts {
		ordered.Posts = append(ordered.Posts, entry)
	}
	sort.Slice(ordered.Posts, func(i, j int) bool {
		return ordered.Posts[i].Slug < ordered.Posts[j].Slug
	})
	if len(m.Assets) > 0 {
		ordered.Assets = make([]manifestAsset, 0, len(m.Assets))
		for _, entry := range m.Assets {
			ordered.Assets = append(ordered.Assets, entry)
		}
		sort.Slice(ordered.Assets, func(i, j int) bool {
			return ordered.Assets[i].Source < ordered.Assets[j].Source
		})
	}
	return json.MarshalIndent(ordered, "", "  ")
}

func manifestKey(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func (m *buildManifest) lookupPost(slug string) (manifestPost, bool) {
	if m == nil || len(m.Posts) == 0 {
		return manifestPost{}, false
	}
	entry, ok := m.Posts[manifestKey(slug)]
	return entry, ok
}

func (m *buildManifest) setPost(entry manifestPost) {
	if m == nil {
		return
	}
	if m.Posts == nil {
		m.Posts = map[string]manifestPost{}
	}
	m.Posts[manifestKey(entry.Slug)] = entry
}

// shouldSkipPost reports whether the source is unchanged since the recorded
// build and its artifact still lands at the same path.
func (m *buildManifest) shouldSkipPost(slug, hash, output string) bool {
	entry, ok := m.lookupPost(slug)
	if !ok {
		return false
	}
	if entry.Hash == "" || entry.Hash != hash {
		return false
	}
	return strings.TrimSpace(entry.Output) == strings.TrimSpace(output)
}

func (m *buildManifest) lookupAsset(source string) (manifestAsset, bool) {
	if m == nil || len(m.Assets) == 0 {
		return manifestAsset{}, false
	}
	entry, ok := m.Assets[strings.TrimSpace(source)]
	return entry, ok
}

func (m *buildManifest) setAsset(entry manifestAsset) {
	if m == nil {
		return
	}
	if m.Assets == nil {
		m.Assets = map[string]manifestAsset{}
	}
	m.Assets[strings.TrimSpace(entry.Source)] = entry
}

func (m *buildManifest) shouldSkipAsset(source, checksum, output string) bool {
	entry, ok := m.lookupAsset(source)
	if !ok {
		return false
	}
	if entry.Checksum != checksum {
		return false
	}
	return strings.TrimSpace(entry.Output) == strings.TrimSpace(output)
}

func (m *buildManifest) prunePosts(keep map[string]struct{}) {
	if m == nil || len(m.Posts) == 0 {
		return
	}
	for key := range m.Posts {
		if _, ok := keep[key]; !ok {
			delete(m.Posts, key)
		}
	}
}

func toManifestRejections(rejections []interfaces.Rejection) []manifestRejection {
	if len(rejections) == 0 {
		return nil
	}
	out := make([]manifestRejection, 0, len(rejections))
	for _, r := range rejections {
		out = append(out, manifestRejection{
			Source: r.SourcePath,
			Code:   r.Code,
			Reason: r.Reason,
		})
	}
	return out
}
