// Package content holds the site's static pages: blog articles, the safety
// guide series and comparison pages, parsed from markdown with YAML front matter.
package content

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a requested page does not exist.
var ErrNotFound = errors.New("content: not found")

// Kind groups pages by their section of the site.
type Kind string

const (
	KindBlog    Kind = "blog"
	KindGuide   Kind = "guide"
	KindCompare Kind = "compare"
)

// Valid reports whether k is a known section.
func (k Kind) Valid() bool {
	switch k {
	case KindBlog, KindGuide, KindCompare:
		return true
	}
	return false
}

// Section is the first path segment of pages of kind k.
func (k Kind) Section() string {
	switch k {
	case KindGuide:
		return "guides"
	case KindCompare:
		return "compare"
	default:
		return "blog"
	}
}

// TOCEntry is one in-page jump link of an article's table of contents.
type TOCEntry struct {
	AnchorID  string
	Label     string
	Completed bool
}

// Article is a single static page.
type Article struct {
	Kind           Kind
	Slug           string
	Title          string
	Description    string
	Keywords       []string
	Author         string
	Date           time.Time
	Updated        time.Time
	Series         string
	Order          int
	ReadingMinutes int
	Tags           []string
	TOC            []TOCEntry
	OGImage        string
	Draft          bool
	Body           string
}

// Path is the canonical site path, e.g. "/blog/foods-to-avoid-during-pregnancy/".
func (a Article) Path() string {
	return "/" + a.Kind.Section() + "/" + a.Slug + "/"
}

// DateString formats Date as YYYY-MM-DD, or "" when unset.
func (a Article) DateString() string {
	if a.Date.IsZero() {
		return ""
	}
	return a.Date.Format("2006-01-02")
}

// LastModified returns Updated, falling back to Date.
func (a Article) LastModified() time.Time {
	if !a.Updated.IsZero() {
		return a.Updated
	}
	return a.Date
}

// HasTag reports whether a carries tag, case-insensitively.
func (a Article) HasTag(tag string) bool {
	tag = normalizeTag(tag)
	for _, t := range a.Tags {
		if normalizeTag(t) == tag {
			return true
		}
	}
	return false
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
