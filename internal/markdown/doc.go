// Package markdown implements the ingestion side of the build pipeline:
// front matter extraction, filesystem discovery, and Markdown to HTML
// conversion including outline collection and diagram fence expansion.
package markdown
