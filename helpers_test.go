package site

import (
	"testing"

	"github.com/safemama/site/content"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://safemama.com", nil, "https://safemama.com/"},
		{"https://safemama.com", []string{"blog", "foods-to-avoid-during-pregnancy"}, "https://safemama.com/blog/foods-to-avoid-during-pregnancy/"},
		{"https://safemama.com/", []string{"/guides/food-safety/"}, "https://safemama.com/guides/food-safety/"},
		{"https://safemama.com", []string{"favicon.svg"}, "https://safemama.com/favicon.svg"},
		{"https://safemama.com", []string{"og", "default.jpg"}, "https://safemama.com/og/default.jpg"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestRelatedArticles(t *testing.T) {
	cur := content.Article{Kind: content.KindBlog, Slug: "a", Tags: []string{"food"}}
	posts := []content.Article{
		cur,
		{Kind: content.KindBlog, Slug: "b", Tags: []string{"Food"}},
		{Kind: content.KindBlog, Slug: "c", Tags: []string{"sleep"}},
		{Kind: content.KindBlog, Slug: "d", Tags: []string{"food", "sleep"}},
	}
	got := RelatedArticles(cur, posts, 1)
	if len(got) != 1 || got[0].Slug != "b" {
		t.Errorf("RelatedArticles = %+v", got)
	}
	if got := RelatedArticles(cur, posts, 5); len(got) != 2 {
		t.Errorf("RelatedArticles without cap = %d, want 2", len(got))
	}
}
