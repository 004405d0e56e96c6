package generator

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
)

const defaultFeedLimit = 20

type feedItem struct {
	Title       string
	Link        string
	GUID        string
	Categories  []string
	PublishedAt time.Time
}

func (s *service) writeFeeds(ctx context.Context, writer artifactWriter, rendered []RenderedPost, generatedAt time.Time) error {
	items := s.buildFeedItems(rendered, generatedAt)
	if len(items) == 0 {
		return nil
	}

	rssContent := buildRSSFeed(s.feedSite(), items, generatedAt)
	if err := writer.WriteFile(ctx, writeFileRequest{
		Path:        "feed.xml",
		Content:     strings.NewReader(rssContent),
		Size:        int64(len(rssContent)),
		Category:    categoryFeed,
		ContentType: "application/rss+xml",
		Checksum:    computeHashFromString(rssContent),
	}); err != nil {
		return err
	}

	atomContent := buildAtomFeed(s.feedSite(), items, generatedAt)
	return writer.WriteFile(ctx, writeFileRequest{
		Path:        "feed.atom.xml",
		Content:     strings.NewReader(atomContent),
		Size:        int64(len(atomContent)),
		Category:    categoryFeed,
		ContentType: "application/atom+xml",
		Checksum:    computeHashFromString(atomContent),
	})
}

type feedSite struct {
	Title       string
	Description string
	BaseURL     string
	Language    string
}

func (s *service) feedSite() feedSite {
	title := strings.TrimSpace(s.cfg.SiteTitle)
	if title == "" {
		title = baseURLWithFallback(s.cfg.BaseURL)
	}
	description := strings.TrimSpace(s.cfg.SiteDescription)
	if description == "" {
		description = "Latest posts"
	}
	language := strings.TrimSpace(s.cfg.SiteLanguage)
	if language == "" {
		language = "en"
	}
	return feedSite{
		Title:       title,
		Description: description,
		BaseURL:     baseURLWithFallback(s.cfg.BaseURL),
		Language:    language,
	}
}

func (s *service) buildFeedItems(rendered []RenderedPost, generatedAt time.Time) []feedItem {
	items := make([]feedItem, 0, len(rendered))
	seen := map[string]struct{}{}
	base := baseURLWithFallback(s.cfg.BaseURL)

	for _, post := range rendered {
		if _, ok := seen[post.Slug]; ok {
			continue
		}
		seen[post.Slug] = struct{}{}

		publishedAt := post.PublishDate
		if publishedAt.IsZero() {
			publishedAt = generatedAt
		}
		items = append(items, feedItem{
			Title:       post.Title,
			Link:        base + post.URL,
			GUID:        base + post.URL,
			Categories:  post.Categories,
			PublishedAt: publishedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].GUID < items[j].GUID
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	limit := s.cfg.FeedLimit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if len(items) > limit {
		items = append([]feedItem(nil), items[:limit]...)
	}
	return items
}

func buildRSSFeed(site feedSite, items []feedItem, generatedAt time.Time) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(site.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(site.BaseURL)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(site.Description)))
	builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(site.Language)))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	for _, item := range items {
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PublishedAt.UTC().Format(time.RFC1123Z)))
		for _, category := range item.Categories {
			builder.WriteString(fmt.Sprintf("      <category>%s</category>\n", escapeXML(category)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

func buildAtomFeed(site feedSite, items []feedItem, generatedAt time.Time) string {
	feedID := site.BaseURL + "/feed.atom.xml"

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<feed xmlns="http://www.w3.org/2005/Atom" xml:lang="%s">`+"\n", escapeXMLAttr(site.Language)))
	builder.WriteString(fmt.Sprintf("  <id>%s</id>\n", escapeXML(feedID)))
	builder.WriteString(fmt.Sprintf("  <title>%s</title>\n", escapeXML(site.Title)))
	builder.WriteString(fmt.Sprintf("  <updated>%s</updated>\n", generatedAt.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf(`  <link rel="alternate" href="%s" />`+"\n", escapeXMLAttr(site.BaseURL)))
	builder.WriteString(fmt.Sprintf(`  <link rel="self" href="%s" />`+"\n", escapeXMLAttr(feedID)))
	for _, item := range items {
		builder.WriteString("  <entry>\n")
		builder.WriteString(fmt.Sprintf("    <id>%s</id>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf(`    <link href="%s" />`+"\n", escapeXMLAttr(item.Link)))
		builder.WriteString(fmt.Sprintf("    <updated>%s</updated>\n", item.PublishedAt.UTC().Format(time.RFC3339)))
		builder.WriteString(fmt.Sprintf("    <published>%s</published>\n", item.PublishedAt.UTC().Format(time.RFC3339)))
		for _, category := range item.Categories {
			builder.WriteString(fmt.Sprintf(`    <category term="%s" />`+"\n", escapeXMLAttr(category)))
		}
		builder.WriteString("  </entry>\n")
	}
	builder.WriteString(`</feed>` + "\n")
	return builder.String()
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}

func escapeXMLAttr(value string) string {
	return html.EscapeString(value)
}
