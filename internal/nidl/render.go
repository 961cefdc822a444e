package nidl

import (
	"log/slog"
	"strings"

	"github.com/dgallion1/nexusdoc/internal/render"
)

// Renderer renders NIDL buffers. The zero value is ready to use.
type Renderer struct {
	PreviewLimit int          // Max raw bytes shown while streaming; 0 uses the default
	Log          *slog.Logger // Optional; receives malformed and recovered-panic reports
}

// Render renders with default settings.
func Render(text string) render.Result {
	return Renderer{}.Render(text)
}

// Render picks a mode from the buffer state and renders it. It never panics.
func (r Renderer) Render(text string) (res render.Result) {
	if strings.TrimSpace(text) == "" {
		return render.Result{Mode: render.ModePending, HTML: emptyView}
	}
	if !IsComplete(text) {
		return render.Pending(text, r.PreviewLimit)
	}

	defer func() {
		if p := recover(); p != nil {
			if r.Log != nil {
				r.Log.Error("nidl render panic", "panic", p)
			}
			res = render.Result{Mode: render.ModeError, HTML: failureView("Error Rendering Report",
				"An unexpected error occurred while displaying the report.", text)}
		}
	}()

	doc, err := Parse(text)
	if err != nil {
		if r.Log != nil {
			r.Log.Warn("malformed nidl", "error", err, "raw", render.Truncate(text, 200))
		}
		return render.Result{Mode: render.ModeError, HTML: failureView("Error Parsing Report Data",
			"The AI engine produced an invalid report structure. Please try generating the report again.", text)}
	}
	return render.Result{Mode: render.ModeComplete, HTML: RenderDocument(doc)}
}

const emptyView = `<div class="text-center p-8"><p class="text-gray-500">Your final report will appear here.</p></div>`

func failureView(title, message, raw string) string {
	var sb strings.Builder
	sb.WriteString(`<div class="report-error p-6 bg-red-50 border border-red-200 rounded-lg" data-mode="error">`)
	sb.WriteString(`<h3 class="font-bold text-red-800">` + title + `</h3>`)
	sb.WriteString(`<p class="text-sm text-red-700 mt-2">` + message + `</p>`)
	sb.WriteString(`<pre class="mt-4 text-xs text-red-900 bg-red-100 p-3 rounded-md whitespace-pre-wrap overflow-x-auto">`)
	sb.WriteString(render.EscapeRaw(raw))
	sb.WriteString(`</pre></div>`)
	return sb.String()
}

// RenderDocument renders the six report sections in fixed order: header,
// score card, executive summary, tables, recommendations, sources.
func RenderDocument(doc *Document) string {
	var sb strings.Builder
	sb.WriteString(`<div class="report-document bg-white p-8 sm:p-12 mx-auto max-w-5xl shadow-lg rounded-lg prose max-w-none">`)
	writeHeader(&sb, doc.Header)
	sb.WriteString(`<main>`)
	if doc.ScoreCard != nil {
		writeScoreCard(&sb, doc.ScoreCard)
	}
	if doc.ExecutiveSummary != nil {
		writeSummary(&sb, *doc.ExecutiveSummary)
	}
	for _, t := range doc.Tables {
		writeTable(&sb, t)
	}
	if doc.Recommendations != nil {
		writeRecommendations(&sb, *doc.Recommendations)
	}
	if doc.Sources != nil {
		writeSources(&sb, *doc.Sources)
	}
	sb.WriteString(`</main></div>`)
	return sb.String()
}

func writeHeader(sb *strings.Builder, h *Header) {
	if h == nil {
		h = &Header{}
	}
	title := h.ReportTitle
	if title == "" {
		title = "Report"
	}
	sb.WriteString(`<header class="not-prose report-page-header mb-12">`)
	sb.WriteString(`<div class="prepared-for"><p class="text-sm text-gray-500">Prepared for:</p>`)
	sb.WriteString(`<p class="font-semibold text-gray-700">` + render.Text(h.PreparedFor.Name) + `</p>`)
	sb.WriteString(`<p class="text-sm text-gray-700">` + render.Text(h.PreparedFor.Department) + `</p>`)
	sb.WriteString(`<p class="text-sm text-gray-700">` + render.Text(h.PreparedFor.Country) + `</p></div>`)
	sb.WriteString(`<h1 class="text-4xl font-extrabold text-gray-900 mt-8 text-center tracking-tight">` + render.Text(title) + `</h1>`)
	sb.WriteString(`</header>`)
}

func writeScoreCard(sb *strings.Builder, sc *ScoreCard) {
	sb.WriteString(`<section class="not-prose mb-12 score-card">`)
	sb.WriteString(`<h2 class="report-section-title">Overall Score &amp; Investment Tier</h2>`)
	sb.WriteString(`<div class="grid md:grid-cols-3 gap-6 items-center p-6 bg-slate-50 rounded-xl border border-slate-200">`)
	sb.WriteString(`<div class="text-center"><p class="text-8xl font-bold text-nexus-blue">` + render.Text(orNA(sc.OverallScore)) + `</p>`)
	sb.WriteString(`<p class="text-sm text-gray-600 font-semibold mt-1">Overall Score</p></div>`)
	sb.WriteString(`<div class="md:col-span-2"><h3 class="text-2xl font-bold text-gray-800">` + render.Text(orNA(sc.InvestmentTier)) + `</h3>`)
	sb.WriteString(`<p class="mt-2 text-base leading-relaxed text-gray-700">` + render.Text(sc.Rationale) + `</p></div>`)
	sb.WriteString(`</div></section>`)
}

func writeSummary(sb *strings.Builder, text string) {
	sb.WriteString(`<section class="mb-12 executive-summary"><h2 class="report-section-title">Executive Summary</h2>`)
	sb.WriteString(`<p>` + render.Text(text) + `</p></section>`)
}

func writeTable(sb *strings.Builder, t DataTable) {
	thClass := ""
	if c := t.HeaderColor.Class(); c != "" {
		thClass = ` class="` + c + `"`
	}
	sb.WriteString(`<section class="mb-12 data-table"><h2 class="report-section-title">` + render.Text(t.Title) + `</h2>`)
	sb.WriteString(`<div class="not-prose overflow-x-auto"><table class="report-table">`)
	if head, ok := t.HeaderRow(); ok {
		sb.WriteString(`<thead><tr>`)
		for _, cell := range head.Cells {
			sb.WriteString(`<th` + thClass + `>` + cellHTML(cell) + `</th>`)
		}
		sb.WriteString(`</tr></thead>`)
	}
	sb.WriteString(`<tbody>`)
	for _, row := range t.BodyRows() {
		sb.WriteString(`<tr>`)
		for _, cell := range row.Cells {
			sb.WriteString(`<td>` + cellHTML(cell) + `</td>`)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody></table></div></section>`)
}

func cellHTML(s string) string {
	return strings.ReplaceAll(render.Text(s), "\n", "<br/>")
}

func writeRecommendations(sb *strings.Builder, text string) {
	intro, items := SplitRecommendations(text)
	sb.WriteString(`<section class="mb-12 recommendations"><h2 class="report-section-title">Strategic Recommendations</h2>`)
	if intro != "" {
		sb.WriteString(`<p class="recommendations-intro">` + render.Text(intro) + `</p>`)
	}
	if len(items) > 0 {
		sb.WriteString(`<ol class="space-y-3">`)
		for _, item := range items {
			sb.WriteString(`<li>` + render.Text(item) + `</li>`)
		}
		sb.WriteString(`</ol>`)
	}
	sb.WriteString(`</section>`)
}

func writeSources(sb *strings.Builder, text string) {
	sb.WriteString(`<section class="mt-16 pt-8 border-t sources"><h3 class="text-lg font-semibold text-gray-700 mb-3">Data Sources</h3>`)
	sb.WriteString(`<div class="not-prose text-xs text-gray-500 space-y-1 columns-1 md:columns-2 lg:columns-3 break-inside-avoid">`)
	for _, src := range SplitSources(text) {
		sb.WriteString(`<p class="truncate" title="` + render.Text(src.Raw) + `">`)
		if src.IsLink() {
			sb.WriteString(`<a href="` + render.Text(src.URL) + `" target="_blank" rel="noopener noreferrer" class="hover:text-nexus-blue">`)
			sb.WriteString(render.Text(src.Label) + `</a>`)
		} else {
			sb.WriteString(render.Text(src.Label))
		}
		sb.WriteString(`</p>`)
	}
	sb.WriteString(`</div></section>`)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
