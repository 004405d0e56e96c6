package posts

import (
	"crypto/sha256"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitegen/internal/markdown"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// datePrefix matches the conventional YYYY-MM-DD- file name prefix used by
// dated post archives; it is stripped before slugs are derived.
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// FromSource parses raw file content into an immutable Post record. The
// returned error distinguishes a missing or unterminated front matter block
// from individual absent fields; date values are carried through leniently so
// corpus validation can report them without aborting the parse stage.
func FromSource(sourcePath string, data []byte, modified time.Time) (*interfaces.Post, error) {
	meta, body, err := markdown.ParseFrontMatter(data)
	if err != nil {
		return nil, malformedFrontMatter(err)
	}

	if strings.TrimSpace(meta.Title) == "" {
		return nil, missingField("title")
	}
	if _, ok := meta.Raw["date"]; !ok {
		return nil, missingField("date")
	}
	if _, ok := meta.Raw["categories"]; !ok {
		return nil, missingField("categories")
	}

	postSlug, err := deriveSlug(meta.Slug, sourcePath)
	if err != nil {
		return nil, missingField("slug")
	}

	sum := sha256.Sum256(data)

	return &interfaces.Post{
		Slug:         postSlug,
		Title:        strings.TrimSpace(meta.Title),
		PublishDate:  meta.Date,
		Categories:   append([]string(nil), meta.Categories...),
		Tags:         dedupeTags(meta.Tags),
		Mermaid:      meta.Mermaid,
		TOC:          meta.TOC,
		Body:         body,
		SourcePath:   sourcePath,
		FrontMatter:  meta,
		Checksum:     sum[:],
		LastModified: modified,
	}, nil
}

// deriveSlug prefers the declared front matter slug and falls back to the
// source file name, minus extension and date prefix. Both paths run through
// the shared normalizer so uniqueness checks compare canonical values.
func deriveSlug(declared, sourcePath string) (string, error) {
	candidate := strings.TrimSpace(declared)
	if candidate == "" {
		base := path.Base(strings.ReplaceAll(sourcePath, "\\", "/"))
		base = strings.TrimSuffix(base, path.Ext(base))
		candidate = datePrefix.ReplaceAllString(base, "")
	}
	return slug.Normalize(candidate)
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
