package content

import (
	"fmt"
	"strings"

	"github.com/safemama/site/markdown"
)

// Slugify converts a title to a URL-safe slug: lowercase ASCII letters and
// digits joined by single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Problem is a content issue found by Validate.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// Validate checks every article for broken table-of-contents anchors,
// missing SEO fields and malformed slugs.
func Validate(lib *Library) []Problem {
	var problems []Problem
	for _, a := range lib.All() {
		add := func(format string, args ...any) {
			problems = append(problems, Problem{Path: a.Path(), Message: fmt.Sprintf(format, args...)})
		}
		if want := Slugify(a.Slug); a.Slug != want {
			add("slug %q must be lowercase words joined by hyphens, e.g. %q", a.Slug, want)
		}
		if a.Description == "" {
			add("description is required for search and social previews")
		}
		if a.Kind == KindBlog && a.Date.IsZero() {
			add("blog posts need a date")
		}

		anchors := make(map[string]struct{})
		for _, id := range markdown.HeadingIDs(a.Body) {
			anchors[id] = struct{}{}
		}
		seen := make(map[string]struct{})
		for _, e := range a.TOC {
			if e.AnchorID == "" || e.Label == "" {
				add("table of contents entry needs both id and label")
				continue
			}
			if _, dup := seen[e.AnchorID]; dup {
				add("table of contents lists #%s twice", e.AnchorID)
			}
			seen[e.AnchorID] = struct{}{}
			if _, ok := anchors[e.AnchorID]; !ok {
				add("table of contents entry #%s has no matching heading", e.AnchorID)
			}
		}
	}
	return problems
}
