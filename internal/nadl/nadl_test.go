package nadl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dgallion1/nexusdoc/internal/render"
)

const sampleAnalysis = `<nad:analysis_report xmlns:nad="urn:nexus:nadl">
  <nad:report_title title="Partner Fit: Acme Corp" />
  <nad:report_subtitle subtitle="Deep-dive &amp; outlook" />
  <nad:section title="Synergy">
    <nad:paragraph>Shared port logistics.</nad:paragraph>
    <nad:recommendation>Open a joint office.</nad:recommendation>
    <nad:paragraph>Second paragraph.</nad:paragraph>
  </nad:section>
  <nad:section title="Risks">
    <nad:paragraph>Currency exposure.</nad:paragraph>
  </nad:section>
</nad:analysis_report>`

func TestParse(t *testing.T) {
	doc, err := Parse(sampleAnalysis)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Document{
		Title:    "Partner Fit: Acme Corp",
		Subtitle: "Deep-dive & outlook",
		Sections: []Section{
			{Title: "Synergy", Paragraphs: []string{"Shared port logistics.", "Open a joint office.", "Second paragraph."}},
			{Title: "Risks", Paragraphs: []string{"Currency exposure."}},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_BareTagsAndDefaults(t *testing.T) {
	doc, err := Parse(`<analysis_report><section title="Only"><paragraph>p</paragraph></section></analysis_report>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != DefaultTitle {
		t.Errorf("expected default title, got %q", doc.Title)
	}
	if doc.Subtitle != "" {
		t.Errorf("expected no subtitle, got %q", doc.Subtitle)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Paragraphs[0] != "p" {
		t.Errorf("unexpected sections: %+v", doc.Sections)
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"<nad:analysis_report>", false},
		{"<nad:analysis_report></nad:analysis_report>", true},
		{`<?xml version="1.0"?><!-- c --><r a="1"></r>`, true},
		{"```xml\n<r></r>\n```", true},
		{"<r><s></s>", false},
		{"plain text", false},
		{"<!-- generated <draft> -->\n<nad:analysis_report a=\"1\"></nad:analysis_report>", true},
		{"<!-- generated <draft> -->\n<nad:analysis_report>", false},
		{`<!DOCTYPE r><r></r>`, true},
		{`<?pi <x> ?><r></r>`, true},
		{"<!-- unterminated <r></r>", false},
	}
	for _, tt := range tests {
		if got := IsComplete(tt.text); got != tt.want {
			t.Errorf("IsComplete(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestRender_Complete(t *testing.T) {
	res := Render(sampleAnalysis)
	if res.Mode != render.ModeComplete {
		t.Fatalf("expected complete, got %s", res.Mode)
	}
	synergy := strings.Index(res.HTML, "Synergy")
	risks := strings.Index(res.HTML, "Risks")
	if synergy < 0 || risks < 0 || synergy > risks {
		t.Error("sections out of source order")
	}
	if !strings.Contains(res.HTML, `<p class="text-lg text-gray-600 mt-1">Deep-dive &amp; outlook</p>`) {
		t.Error("expected escaped subtitle")
	}
	if !strings.Contains(res.HTML, "BWGA Nexus AI | Confidential Analysis Document") {
		t.Error("expected footer")
	}
}

func TestRender_NoSubtitle(t *testing.T) {
	out := Render(`<r><report_title title="T"/></r>`).HTML
	if strings.Contains(out, "text-lg text-gray-600") {
		t.Error("subtitle rendered when absent")
	}
}

func TestRender_Malformed(t *testing.T) {
	raw := `<r><section title="x"><paragraph>unclosed</section></r>`
	res := Render(raw)
	if res.Mode != render.ModeError {
		t.Fatalf("expected error, got %s", res.Mode)
	}
	if !strings.Contains(res.HTML, "Error parsing analysis data.") {
		t.Error("expected diagnostic heading")
	}
	if !strings.Contains(res.HTML, render.EscapeRaw(raw)) {
		t.Error("expected escaped raw text")
	}
}

func TestRender_EmptyAndPending(t *testing.T) {
	if res := Render(""); res.HTML != "" || res.Mode != render.ModeComplete {
		t.Errorf("expected empty complete result, got %+v", res)
	}
	if res := Render("<r><section>"); res.Mode != render.ModePending {
		t.Errorf("expected pending, got %s", res.Mode)
	}
}
