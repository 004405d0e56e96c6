package markdown

import (
	"html"
	"strings"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// TOCHTML renders a nested table-of-contents list from a heading outline.
// Headings deeper than maxLevel are skipped; maxLevel <= 0 keeps everything.
// Returns an empty string when there is nothing to list.
func TOCHTML(headings []interfaces.Heading, maxLevel int) string {
	var filtered []interfaces.Heading
	for _, h := range headings {
		if h.Level < 1 {
			continue
		}
		if maxLevel > 0 && h.Level > maxLevel {
			continue
		}
		filtered = append(filtered, h)
	}
	if len(filtered) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<nav class="toc">`)

	level := filtered[0].Level
	sb.WriteString("<ul>")
	depth := 1

	for i, h := range filtered {
		if i > 0 {
			descended := false
			for h.Level > level {
				sb.WriteString("<ul>")
				level++
				depth++
				descended = true
			}
			for h.Level < level && depth > 1 {
				sb.WriteString("</li></ul>")
				level--
				depth--
			}
			// A descent opens a fresh sublist, so only siblings and
			// ascents close the previous item.
			if !descended {
				sb.WriteString("</li>")
			}
			level = h.Level
		}

		sb.WriteString("<li>")
		if h.ID != "" {
			sb.WriteString(`<a href="#`)
			sb.WriteString(html.EscapeString(h.ID))
			sb.WriteString(`">`)
			sb.WriteString(html.EscapeString(h.Text))
			sb.WriteString("</a>")
		} else {
			sb.WriteString(html.EscapeString(h.Text))
		}
	}

	for depth > 0 {
		sb.WriteString("</li></ul>")
		depth--
	}
	sb.WriteString("</nav>")

	return sb.String()
}
