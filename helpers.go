package site

import (
	"net/url"
	"path"
	"strings"

	"github.com/safemama/site/content"
)

// BuildURL joins a base URL with path segments. Directory-like paths get a
// trailing slash; a final segment with a file extension does not.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if path.Ext(u.Path) == "" && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// RelatedArticles returns up to limit published blog posts sharing at least
// one tag with current, newest first.
func RelatedArticles(current content.Article, posts []content.Article, limit int) []content.Article {
	var related []content.Article
	for _, p := range posts {
		if p.Kind == current.Kind && p.Slug == current.Slug {
			continue
		}
		for _, t := range current.Tags {
			if p.HasTag(t) {
				related = append(related, p)
				break
			}
		}
		if len(related) == limit {
			break
		}
	}
	return related
}
