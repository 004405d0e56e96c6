package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. The front matter block is mandatory: a missing or
// unterminated delimiter pair is an error. The date value is kept raw in the
// Raw map as well as parsed, so callers can tell an absent key from an
// unparseable value.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.MustParse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

type frontMatterEnvelope struct {
	Title      string         `yaml:"title"`
	Slug       string         `yaml:"slug"`
	Date       string         `yaml:"date"`
	Categories []string       `yaml:"categories"`
	Tags       []string       `yaml:"tags"`
	Mermaid    bool           `yaml:"mermaid"`
	TOC        bool           `yaml:"toc"`
	Custom     map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if strings.TrimSpace(env.Date) != "" {
		raw["date"] = strings.TrimSpace(env.Date)
	}
	if env.Categories != nil {
		raw["categories"] = append([]string(nil), env.Categories...)
	}
	if env.Tags != nil {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	raw["mermaid"] = env.Mermaid
	raw["toc"] = env.TOC

	return interfaces.FrontMatter{
		Title:      env.Title,
		Slug:       env.Slug,
		Date:       lenientDate(env.Date),
		Categories: append([]string(nil), env.Categories...),
		Tags:       append([]string(nil), env.Tags...),
		Mermaid:    env.Mermaid,
		TOC:        env.TOC,
		Custom:     cloneMap(env.Custom),
		Raw:        raw,
	}
}

// lenientDate parses the common date spellings without failing the whole
// parse; a zero time signals the validator to reject with a date error.
func lenientDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05 -0700",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, format := range formats {
		if ts, err := time.Parse(format, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
