// Package seo describes the document head metadata of a page and builds the
// schema.org JSON-LD blocks embedded next to it.
package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string // "website" or "article"
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	NoIndex     bool
	OG          OpenGraph
	Twitter     Twitter
}

// Tag is a single <meta> element. Exactly one of Name or Property is set.
type Tag struct {
	Name     string
	Property string
	Content  string
}

// Tags flattens m into the <meta> elements of the document head, filling
// social fields from the page title and description when left empty.
// Empty values are skipped.
func (m Meta) Tags() []Tag {
	var tags []Tag
	name := func(n, v string) {
		if v != "" {
			tags = append(tags, Tag{Name: n, Content: v})
		}
	}
	prop := func(p, v string) {
		if v != "" {
			tags = append(tags, Tag{Property: p, Content: v})
		}
	}

	name("description", m.Description)
	name("keywords", strings.Join(m.Keywords, ", "))
	if m.NoIndex {
		name("robots", "noindex, nofollow")
	}

	og := m.OG
	if og.Title == "" {
		og.Title = m.Title
	}
	if og.Description == "" {
		og.Description = m.Description
	}
	if og.URL == "" {
		og.URL = m.Canonical
	}
	if og.Type == "" {
		og.Type = "website"
	}
	prop("og:type", og.Type)
	prop("og:title", og.Title)
	prop("og:description", og.Description)
	prop("og:url", og.URL)
	prop("og:site_name", og.SiteName)
	prop("og:image", og.Image)

	tw := m.Twitter
	if tw.Card == "" {
		tw.Card = "summary"
		if og.Image != "" || tw.Image != "" {
			tw.Card = "summary_large_image"
		}
	}
	if tw.Image == "" {
		tw.Image = og.Image
	}
	name("twitter:card", tw.Card)
	name("twitter:site", tw.Site)
	name("twitter:title", og.Title)
	name("twitter:description", og.Description)
	name("twitter:image", tw.Image)
	return tags
}
