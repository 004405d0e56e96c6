package generator

import (
	"path"
	"strings"
)

const (
	indexFileName = "index.html"
	templatePost  = "post"
	templateList  = "list"
)

// postOutputPath maps a slug to its artifact path relative to the output dir.
func postOutputPath(slug string) string {
	return path.Join("posts", slug, indexFileName)
}

// postURL maps a slug to its site-relative URL with a trailing slash.
func postURL(slug string) string {
	return "/posts/" + strings.Trim(slug, "/") + "/"
}

// categoryOutputPath maps a category slug to its listing artifact path.
func categoryOutputPath(slug string) string {
	return path.Join("categories", slug, indexFileName)
}

func assetOutputPath(rel string) string {
	rel = strings.TrimLeft(strings.TrimSpace(rel), "/")
	return path.Join("assets", rel)
}
