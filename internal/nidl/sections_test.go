package nidl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitRecommendations(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantIntro string
		wantItems []string
	}{
		{
			name:      "lead-in prose",
			text:      "Intro text 1. First item 2. Second item",
			wantIntro: "Intro text",
			wantItems: []string{"First item", "Second item"},
		},
		{
			name:      "no lead-in",
			text:      "1. Alpha.\n2. Beta.",
			wantItems: []string{"Alpha.", "Beta."},
		},
		{
			name:      "multi-digit numerals",
			text:      "9. Ninth 10. Tenth 11. Eleventh",
			wantItems: []string{"Ninth", "Tenth", "Eleventh"},
		},
		{
			name:      "source numerals ignored",
			text:      "3. Later 1. Earlier",
			wantItems: []string{"Later", "Earlier"},
		},
		{
			name:      "no numbering",
			text:      "  Just a sentence.  ",
			wantIntro: "Just a sentence.",
		},
		{
			name:      "decimal is not a boundary",
			text:      "1. Grow exports 4.5% a year",
			wantItems: []string{"Grow exports 4.5% a year"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intro, items := SplitRecommendations(tt.text)
			if intro != tt.wantIntro {
				t.Errorf("intro = %q, want %q", intro, tt.wantIntro)
			}
			if diff := cmp.Diff(tt.wantItems, items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitSources(t *testing.T) {
	got := SplitSources("https://a.example/x | Some Report | https://b.example/y")
	want := []Source{
		{Raw: "https://a.example/x", Label: "a.example", URL: "https://a.example/x"},
		{Raw: "Some Report", Label: "Some Report"},
		{Raw: "https://b.example/y", Label: "b.example", URL: "https://b.example/y"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitSources_EdgeCases(t *testing.T) {
	got := SplitSources(" | javascript:alert(1) | mailto:x@y.z | www.example.com || ")
	for _, s := range got {
		if s.IsLink() {
			t.Errorf("expected %q to render as plain text", s.Raw)
		}
	}
	if len(got) != 3 {
		t.Errorf("expected empty tokens dropped, got %d entries", len(got))
	}
}

func TestSplitSources_OnlyHTTPSchemesLink(t *testing.T) {
	tests := []struct {
		tok  string
		link bool
	}{
		{"https://a.example/x", true},
		{"HTTP://b.example", true},
		{"javascript://evil.example/%0aalert(document.cookie)", false},
		{"ftp://files.example/report.pdf", false},
		{"data://text.example/plain", false},
	}
	for _, tt := range tests {
		got := SplitSources(tt.tok)
		if len(got) != 1 {
			t.Fatalf("SplitSources(%q) returned %d entries", tt.tok, len(got))
		}
		if got[0].IsLink() != tt.link {
			t.Errorf("SplitSources(%q).IsLink() = %v, want %v", tt.tok, got[0].IsLink(), tt.link)
		}
		if !tt.link && got[0].Label != tt.tok {
			t.Errorf("expected plain label %q, got %q", tt.tok, got[0].Label)
		}
	}
}

func TestRender_NonHTTPSourceIsNotAnchor(t *testing.T) {
	res := Render(`<document><source_attribution>javascript://evil.example/%0aalert(1) | https://ok.example</source_attribution></document>`)
	if strings.Contains(res.HTML, `href="javascript:`) {
		t.Errorf("javascript source rendered as a link: %s", res.HTML)
	}
	if !strings.Contains(res.HTML, `href="https://ok.example"`) {
		t.Errorf("expected https source linked: %s", res.HTML)
	}
}
