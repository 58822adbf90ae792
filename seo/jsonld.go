package seo

import (
	"encoding/json"
	"strings"
)

// JSON marshals v to a compact JSON string. It returns "{}" on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a WebSite schema.
func WebSite(name, url, description string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if description != "" {
		m["description"] = description
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ArticleData is the input of Article.
type ArticleData struct {
	Headline      string
	Description   string
	URL           string
	ImageURL      string
	AuthorName    string
	PublisherName string
	DatePublished string
	DateModified  string
	Keywords      []string
}

// Article returns an Article schema payload.
func Article(a ArticleData) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": a.Headline,
	}
	if a.Description != "" {
		m["description"] = a.Description
	}
	if a.URL != "" {
		m["url"] = a.URL
		m["mainEntityOfPage"] = map[string]any{"@type": "WebPage", "@id": a.URL}
	}
	if a.ImageURL != "" {
		m["image"] = a.ImageURL
	}
	if a.AuthorName != "" {
		m["author"] = map[string]any{"@type": "Organization", "name": a.AuthorName}
	}
	if a.PublisherName != "" {
		m["publisher"] = map[string]any{"@type": "Organization", "name": a.PublisherName}
	}
	if a.DatePublished != "" {
		m["datePublished"] = a.DatePublished
	}
	if a.DateModified != "" {
		m["dateModified"] = a.DateModified
	}
	if len(a.Keywords) > 0 {
		m["keywords"] = strings.Join(a.Keywords, ", ")
	}
	return m
}

// MobileApplication describes the app itself, linking its store listings.
func MobileApplication(name, description string, storeURLs ...string) map[string]any {
	m := map[string]any{
		"@context":            "https://schema.org",
		"@type":               "MobileApplication",
		"name":                name,
		"applicationCategory": "HealthApplication",
		"operatingSystem":     "iOS, Android",
		"offers":              map[string]any{"@type": "Offer", "price": "0", "priceCurrency": "USD"},
	}
	if description != "" {
		m["description"] = description
	}
	var links []string
	for _, u := range storeURLs {
		if u != "" {
			links = append(links, u)
		}
	}
	if len(links) > 0 {
		m["sameAs"] = links
	}
	return m
}
