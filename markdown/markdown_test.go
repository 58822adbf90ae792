package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, input string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, input); err != nil {
		t.Fatalf("RenderMarkdown(%q): %v", input, err)
	}
	return buf.String()
}

func TestRenderMarkdownHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"## Heading Two {#custom}", `<h2 id="custom">Heading Two</h2>`},
		{"### Sub {#sub-heading}", `<h3 id="sub-heading">Sub</h3>`},
	}
	for _, tt := range tests {
		got := strings.TrimSpace(render(t, tt.input))
		if got != tt.expected {
			t.Errorf("RenderMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownAutoHeadingID(t *testing.T) {
	got := render(t, "## Foods to Avoid")
	if !strings.Contains(got, `id="foods-to-avoid"`) {
		t.Errorf("expected generated heading id: %q", got)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	input := "| Food | Safe? |\n|---|---|\n| Sushi | No |"
	got := render(t, input)
	for _, want := range []string{"<table>", "<th>Food</th>", "<td>Sushi</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q: %q", want, got)
		}
	}
}

func TestRenderMarkdownStripsRawHTML(t *testing.T) {
	got := render(t, "hello <script>alert(1)</script> world")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw script survived: %q", got)
	}
}

func TestRenderMarkdownExternalLinks(t *testing.T) {
	got := render(t, "[NHS](https://www.nhs.uk/pregnancy/)")
	if !strings.Contains(got, `href="https://www.nhs.uk/pregnancy/"`) {
		t.Errorf("link href missing: %q", got)
	}
	if !strings.Contains(got, "nofollow") {
		t.Errorf("external link should be nofollow: %q", got)
	}
	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("external link should open in a new tab: %q", got)
	}
}

func TestRenderMarkdownDropsJavascriptLinks(t *testing.T) {
	got := render(t, "[click](javascript:alert(1))")
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript link survived: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("**bold**").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<strong>bold</strong>") {
		t.Errorf("component output = %q", buf.String())
	}
}

func TestHeadings(t *testing.T) {
	input := "# Title {#top}\n\nintro\n\n## Soft **cheese** {#cheese}\n\ntext\n\n## Fish\n"
	hs := Headings(input)
	if len(hs) != 3 {
		t.Fatalf("got %d headings, want 3: %+v", len(hs), hs)
	}
	if hs[0].ID != "top" || hs[0].Level != 1 || hs[0].Text != "Title" {
		t.Errorf("first heading = %+v", hs[0])
	}
	if hs[1].ID != "cheese" || hs[1].Text != "Soft cheese" {
		t.Errorf("second heading = %+v", hs[1])
	}
	if hs[2].ID != "fish" {
		t.Errorf("third heading id = %q, want fish", hs[2].ID)
	}

	ids := HeadingIDs(input)
	if strings.Join(ids, ",") != "top,cheese,fish" {
		t.Errorf("HeadingIDs = %v", ids)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/blog/x/", "/blog/x/"},
		{"#section", "#section"},
		{"https://apps.apple.com/app/id1", "https://apps.apple.com/app/id1"},
		{"mailto:hello@safemama.com", "mailto:hello@safemama.com"},
		{"javascript:alert(1)", ""},
		{"relative/path", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
