package content

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	Kind           string    `yaml:"kind"`
	Slug           string    `yaml:"slug"`
	Title          string    `yaml:"title"`
	Description    string    `yaml:"description"`
	Keywords       []string  `yaml:"keywords"`
	Author         string    `yaml:"author"`
	Date           string    `yaml:"date"`
	Updated        string    `yaml:"updated"`
	Series         string    `yaml:"series"`
	Order          int       `yaml:"order"`
	ReadingMinutes int       `yaml:"reading_minutes"`
	Tags           []string  `yaml:"tags"`
	OGImage        string    `yaml:"og_image"`
	Draft          bool      `yaml:"draft"`
	TOC            []tocYAML `yaml:"toc"`
}

type tocYAML struct {
	ID        string `yaml:"id"`
	Label     string `yaml:"label"`
	Completed *bool  `yaml:"completed"`
}

// Library is an immutable, indexed set of articles.
type Library struct {
	articles []Article
	byKey    map[string]int
}

func key(kind Kind, slug string) string {
	return string(kind) + "/" + slug
}

// Load parses every *.md file in fsys. Drafts are kept; callers filter them
// with List.
func Load(fsys fs.FS) (*Library, error) {
	lib := &Library{byKey: make(map[string]int)}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		a, err := Parse(p, data)
		if err != nil {
			return err
		}
		k := key(a.Kind, a.Slug)
		if _, dup := lib.byKey[k]; dup {
			return fmt.Errorf("content: duplicate %s page %q (%s)", a.Kind, a.Slug, p)
		}
		lib.byKey[k] = len(lib.articles)
		lib.articles = append(lib.articles, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lib, nil
}

// Parse decodes a single markdown file. name is used for errors and as the
// slug when the front matter leaves it out.
func Parse(name string, data []byte) (Article, error) {
	fm, body := splitFrontMatter(string(data))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Article{}, fmt.Errorf("content: parse front matter %s: %w", name, err)
		}
	}
	kind := Kind(strings.ToLower(strings.TrimSpace(front.Kind)))
	if kind == "" {
		kind = KindBlog
	}
	if !kind.Valid() {
		return Article{}, fmt.Errorf("content: %s: unknown kind %q", name, front.Kind)
	}
	slug := strings.TrimSpace(front.Slug)
	if slug == "" {
		slug = strings.TrimSuffix(path.Base(name), ".md")
	}
	a := Article{
		Kind:           kind,
		Slug:           slug,
		Title:          strings.TrimSpace(front.Title),
		Description:    strings.TrimSpace(front.Description),
		Keywords:       trimAll(front.Keywords),
		Author:         strings.TrimSpace(front.Author),
		Series:         strings.TrimSpace(front.Series),
		Order:          front.Order,
		ReadingMinutes: front.ReadingMinutes,
		Tags:           trimAll(front.Tags),
		OGImage:        strings.TrimSpace(front.OGImage),
		Draft:          front.Draft,
		Body:           body,
	}
	if a.Title == "" {
		return Article{}, fmt.Errorf("content: %s: title is required", name)
	}
	var err error
	if a.Date, err = parseDate(front.Date); err != nil {
		return Article{}, fmt.Errorf("content: %s: date: %w", name, err)
	}
	if a.Updated, err = parseDate(front.Updated); err != nil {
		return Article{}, fmt.Errorf("content: %s: updated: %w", name, err)
	}
	for _, e := range front.TOC {
		completed := true
		if e.Completed != nil {
			completed = *e.Completed
		}
		a.TOC = append(a.TOC, TOCEntry{
			AnchorID:  strings.TrimPrefix(strings.TrimSpace(e.ID), "#"),
			Label:     strings.TrimSpace(e.Label),
			Completed: completed,
		})
	}
	if a.ReadingMinutes == 0 {
		a.ReadingMinutes = readingMinutes(body)
	}
	return a, nil
}

// All returns every article, drafts included, in load order.
func (l *Library) All() []Article {
	out := make([]Article, len(l.articles))
	copy(out, l.articles)
	return out
}

// List returns published articles of kind. Blog posts are newest first;
// guides and comparisons follow their series order.
func (l *Library) List(kind Kind) []Article {
	var out []Article
	for _, a := range l.articles {
		if a.Kind == kind && !a.Draft {
			out = append(out, a)
		}
	}
	sortArticles(kind, out)
	return out
}

// Series returns the published articles of a series in reading order.
func (l *Library) Series(name string) []Article {
	var out []Article
	for _, a := range l.articles {
		if a.Series == name && !a.Draft {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Get returns the published article of kind with slug.
func (l *Library) Get(kind Kind, slug string) (Article, error) {
	i, ok := l.byKey[key(kind, slug)]
	if !ok || l.articles[i].Draft {
		return Article{}, ErrNotFound
	}
	return l.articles[i], nil
}

// Find resolves a canonical path such as "/guides/food-safety/" to its article.
func (l *Library) Find(p string) (Article, bool) {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	if len(parts) != 2 {
		return Article{}, false
	}
	for _, kind := range []Kind{KindBlog, KindGuide, KindCompare} {
		if kind.Section() != parts[0] {
			continue
		}
		a, err := l.Get(kind, parts[1])
		return a, err == nil
	}
	return Article{}, false
}

// Tags returns the sorted, deduplicated tags of published blog posts.
func (l *Library) Tags() []string {
	set := make(map[string]struct{})
	for _, a := range l.List(KindBlog) {
		for _, t := range a.Tags {
			set[normalizeTag(t)] = struct{}{}
		}
	}
	result := make([]string, 0, len(set))
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}

func sortArticles(kind Kind, as []Article) {
	if kind == KindBlog {
		sort.SliceStable(as, func(i, j int) bool { return as[i].Date.After(as[j].Date) })
		return
	}
	sort.SliceStable(as, func(i, j int) bool {
		if as[i].Order != as[j].Order {
			return as[i].Order < as[j].Order
		}
		return as[i].Title < as[j].Title
	})
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", v)
}

// readingMinutes estimates reading time at 200 words per minute.
func readingMinutes(body string) int {
	words := len(strings.Fields(body))
	m := (words + 199) / 200
	if m < 1 {
		m = 1
	}
	return m
}

func trimAll(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
