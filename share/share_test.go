package share

import (
	"errors"
	"testing"
)

const articleURL = "https://example.com/blog/foods-to-avoid-during-pregnancy"

func TestTargetTemplates(t *testing.T) {
	tests := []struct {
		platform Platform
		title    string
		expected string
	}{
		{
			Facebook, "Foods to Avoid",
			"https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fexample.com%2Fblog%2Ffoods-to-avoid-during-pregnancy",
		},
		{
			Twitter, "Foods to Avoid During Pregnancy",
			"https://twitter.com/intent/tweet?url=https%3A%2F%2Fexample.com%2Fblog%2Ffoods-to-avoid-during-pregnancy&text=Foods%20to%20Avoid%20During%20Pregnancy",
		},
		{
			LinkedIn, "Foods to Avoid",
			"https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fexample.com%2Fblog%2Ffoods-to-avoid-during-pregnancy",
		},
	}
	for _, tt := range tests {
		got, err := Target(Request{Platform: tt.platform, PageURL: articleURL, PageTitle: tt.title})
		if err != nil {
			t.Fatalf("Target(%s) error: %v", tt.platform, err)
		}
		if got != tt.expected {
			t.Errorf("Target(%s)\n  got:  %q\n  want: %q", tt.platform, got, tt.expected)
		}
	}
}

func TestTargetEmptyTitle(t *testing.T) {
	for _, p := range []Platform{Facebook, Twitter, LinkedIn} {
		got, err := Target(Request{Platform: p, PageURL: articleURL})
		if err != nil {
			t.Fatalf("Target(%s) with empty title: %v", p, err)
		}
		if got == "" {
			t.Errorf("Target(%s) returned empty url", p)
		}
	}
	got, _ := Target(Request{Platform: Twitter, PageURL: articleURL})
	want := "https://twitter.com/intent/tweet?url=https%3A%2F%2Fexample.com%2Fblog%2Ffoods-to-avoid-during-pregnancy&text="
	if got != want {
		t.Errorf("twitter empty title = %q, want %q", got, want)
	}
}

func TestTargetEncodesTitle(t *testing.T) {
	got, err := Target(Request{Platform: Twitter, PageURL: articleURL, PageTitle: "Sushi & soft cheese? Mum's guide (2024) 100%"})
	if err != nil {
		t.Fatal(err)
	}
	want := "https://twitter.com/intent/tweet?url=https%3A%2F%2Fexample.com%2Fblog%2Ffoods-to-avoid-during-pregnancy&text=Sushi%20%26%20soft%20cheese%3F%20Mum's%20guide%20(2024)%20100%25"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestTargetCopyIsNotSocial(t *testing.T) {
	_, err := Target(Request{Platform: Copy, PageURL: articleURL})
	if !errors.Is(err, ErrNotSocial) {
		t.Errorf("expected ErrNotSocial, got %v", err)
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"ok", Request{Platform: Copy, PageURL: articleURL}, nil},
		{"unknown platform", Request{Platform: "myspace", PageURL: articleURL}, ErrUnknownPlatform},
		{"relative url", Request{Platform: Facebook, PageURL: "/blog/x"}, ErrInvalidPageURL},
		{"no host", Request{Platform: Facebook, PageURL: "https://"}, ErrInvalidPageURL},
		{"bad scheme", Request{Platform: Facebook, PageURL: "javascript:alert(1)"}, ErrInvalidPageURL},
		{"empty", Request{Platform: LinkedIn}, ErrInvalidPageURL},
	}
	for _, tt := range tests {
		err := tt.req.Validate()
		if tt.wantErr == nil && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestParsePlatform(t *testing.T) {
	for _, p := range Platforms {
		got, err := ParsePlatform(" " + string(p) + " ")
		if err != nil || got != p {
			t.Errorf("ParsePlatform(%q) = %q, %v", p, got, err)
		}
	}
	if got, err := ParsePlatform("LinkedIn"); err != nil || got != LinkedIn {
		t.Errorf("ParsePlatform is case-insensitive, got %q, %v", got, err)
	}
	if _, err := ParsePlatform("email"); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestPopupFeatures(t *testing.T) {
	if got := PopupSize.Features(); got != "width=600,height=400" {
		t.Errorf("Features() = %q", got)
	}
}
