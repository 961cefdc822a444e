package nidl

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleReport = `<document>
  <header>
    <report_title title="Regional Partner Assessment: Mindanao" />
    <prepared_for name="J. Santos" department="Trade &amp; Industry" country="Philippines" />
  </header>
  <score_card>
    <overall_score value="78">
      <investment_tier value="Tier 2: Strategic Fit">
        <rationale>Strong logistics base; power costs remain high.</rationale>
      </investment_tier>
    </overall_score>
  </score_card>
  <executive_summary>The region offers a stable labour pool &lt;and&gt; port access.</executive_summary>
  <data_table title="Market Overview" header_color="teal">
    <row><cell>Metric</cell><cell>Value</cell><cell>Trend</cell></row>
    <row><cell>GDP Growth</cell><cell>6.1%</cell><cell>Up</cell></row>
    <row><cell>FDI Inflow</cell><cell>$1.2B</cell><cell>Flat</cell></row>
  </data_table>
  <data_table title="Risk Matrix" header_color="rose">
    <row><cell>Risk</cell><cell>Level</cell></row>
    <row><cell>Typhoon
exposure</cell><cell>High</cell></row>
  </data_table>
  <strategic_recommendations>1. Establish a pilot facility. 2. Engage the provincial board.</strategic_recommendations>
  <source_attribution>https://psa.gov.ph/stats | World Bank Country Brief</source_attribution>
</document>`

func TestParse_FullDocument(t *testing.T) {
	doc, err := Parse(sampleReport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantHeader := &Header{
		ReportTitle: "Regional Partner Assessment: Mindanao",
		PreparedFor: PreparedFor{Name: "J. Santos", Department: "Trade & Industry", Country: "Philippines"},
	}
	if diff := cmp.Diff(wantHeader, doc.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	wantCard := &ScoreCard{
		OverallScore:   "78",
		InvestmentTier: "Tier 2: Strategic Fit",
		Rationale:      "Strong logistics base; power costs remain high.",
	}
	if diff := cmp.Diff(wantCard, doc.ScoreCard); diff != "" {
		t.Errorf("score card mismatch (-want +got):\n%s", diff)
	}

	if doc.ExecutiveSummary == nil || *doc.ExecutiveSummary != "The region offers a stable labour pool <and> port access." {
		t.Errorf("unexpected executive summary: %v", doc.ExecutiveSummary)
	}

	if len(doc.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(doc.Tables))
	}
	first := doc.Tables[0]
	if first.Title != "Market Overview" || first.HeaderColor != HeaderColorTeal {
		t.Errorf("unexpected first table: %+v", first)
	}
	wantRows := []Row{
		{Cells: []string{"Metric", "Value", "Trend"}},
		{Cells: []string{"GDP Growth", "6.1%", "Up"}},
		{Cells: []string{"FDI Inflow", "$1.2B", "Flat"}},
	}
	if diff := cmp.Diff(wantRows, first.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if got := doc.Tables[1].Rows[1].Cells[0]; got != "Typhoon\nexposure" {
		t.Errorf("expected embedded newline kept, got %q", got)
	}

	if doc.Recommendations == nil || !strings.HasPrefix(*doc.Recommendations, "1. Establish") {
		t.Errorf("unexpected recommendations: %v", doc.Recommendations)
	}
	if doc.Sources == nil || !strings.Contains(*doc.Sources, "|") {
		t.Errorf("expected raw source list, got %v", doc.Sources)
	}
}

func TestParse_MissingSectionsAreNil(t *testing.T) {
	doc, err := Parse(`<document><executive_summary>Only this.</executive_summary></document>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Header != nil || doc.ScoreCard != nil || doc.Recommendations != nil || doc.Sources != nil {
		t.Errorf("expected absent sections to be nil: %+v", doc)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("expected no tables, got %d", len(doc.Tables))
	}
}

func TestParse_FirstMatchWins(t *testing.T) {
	doc, err := Parse(`<document>
<executive_summary>first</executive_summary>
<executive_summary>second</executive_summary>
</document>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *doc.ExecutiveSummary != "first" {
		t.Errorf("expected first summary, got %q", *doc.ExecutiveSummary)
	}
}

func TestParse_UnknownElementsIgnored(t *testing.T) {
	doc, err := Parse(`<document><appendix>x</appendix><executive_summary>ok</executive_summary></document>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *doc.ExecutiveSummary != "ok" {
		t.Errorf("unexpected summary %q", *doc.ExecutiveSummary)
	}
}

func TestParse_FencedDocument(t *testing.T) {
	doc, err := Parse("```xml\n<document><executive_summary>fenced</executive_summary></document>\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *doc.ExecutiveSummary != "fenced" {
		t.Errorf("unexpected summary %q", *doc.ExecutiveSummary)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unclosed inner tag", `<document><header></document>`},
		{"wrong root", `<report></report>`},
		{"bare ampersand", `<document><executive_summary>R & D</executive_summary></document>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Raw != tt.text {
				t.Errorf("expected raw text carried on ParseError")
			}
		})
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"<document>", false},
		{"<document></document>", true},
		{"<document></document>\n\n", true},
		{"```xml\n<document></document>\n```", true},
		{"<document></document> trailing", false},
		{"<document></docu", false},
	}
	for _, tt := range tests {
		if got := IsComplete(tt.text); got != tt.want {
			t.Errorf("IsComplete(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseHeaderColor(t *testing.T) {
	tests := map[string]HeaderColor{
		"teal":   HeaderColorTeal,
		" Sky ":  HeaderColorSky,
		"ROSE":   HeaderColorRose,
		"":       HeaderColorNone,
		"purple": HeaderColorNone,
	}
	for in, want := range tests {
		if got := ParseHeaderColor(in); got != want {
			t.Errorf("ParseHeaderColor(%q) = %q, want %q", in, got, want)
		}
	}
	if HeaderColorNone.Class() != "" {
		t.Error("default color must have no class")
	}
	if HeaderColorSky.Class() != "header-sky" {
		t.Errorf("unexpected class %q", HeaderColorSky.Class())
	}
}
