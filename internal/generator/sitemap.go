package generator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

func (s *service) writeSitemap(ctx context.Context, writer artifactWriter, rendered []RenderedPost, generatedAt time.Time) error {
	content := buildSitemap(s.cfg.BaseURL, rendered, generatedAt)
	req := writeFileRequest{
		Path:        "sitemap.xml",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    computeHashFromString(content),
	}
	return writer.WriteFile(ctx, req)
}

func (s *service) writeRobots(ctx context.Context, writer artifactWriter) error {
	content := buildRobots(s.cfg.BaseURL, s.cfg.GenerateSitemap)
	req := writeFileRequest{
		Path:        "robots.txt",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryRobots,
		ContentType: "text/plain; charset=utf-8",
		Checksum:    computeHashFromString(content),
	}
	return writer.WriteFile(ctx, req)
}

type sitemapEntry struct {
	Location string
	LastMod  time.Time
}

func buildSitemap(baseURL string, rendered []RenderedPost, fallback time.Time) string {
	base := baseURLWithFallback(baseURL)

	entries := make([]sitemapEntry, 0, len(rendered)+1)
	seen := map[string]struct{}{}

	entries = append(entries, sitemapEntry{Location: base + "/", LastMod: fallback})
	seen[base+"/"] = struct{}{}

	for _, post := range rendered {
		location := base + post.URL
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}
		lastMod := post.PublishDate
		if lastMod.IsZero() {
			lastMod = fallback
		}
		entries = append(entries, sitemapEntry{Location: location, LastMod: lastMod})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Location < entries[j].Location
	})

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escapeXML(entry.Location)))
		if !entry.LastMod.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.LastMod.UTC().Format(time.RFC3339)))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

func buildRobots(baseURL string, includeSitemap bool) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	if includeSitemap {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", baseURLWithFallback(baseURL)))
	}
	return builder.String()
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}
