// Package nadl parses and renders NADL, the analysis-report dialect.
//
// Tags are matched by local name, so both the prefixed form
// (<nad:section>) and the bare form (<section>) are accepted.
package nadl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/nexusdoc/internal/render"
	"github.com/dgallion1/nexusdoc/internal/xmltree"
)

// DefaultTitle is used when report_title is missing or empty.
const DefaultTitle = "Analysis Report"

// Document is a parsed analysis report.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

// Section holds paragraphs and recommendations in source order.
type Section struct {
	Title      string
	Paragraphs []string
}

// Parse builds a Document from NADL text.
func Parse(text string) (*Document, error) {
	root, err := xmltree.Parse(render.StripCodeFence(text))
	if err != nil {
		return nil, fmt.Errorf("parse nadl: %w", err)
	}

	doc := &Document{Title: DefaultTitle}
	if t := root.Find("report_title"); t != nil {
		if v := strings.TrimSpace(t.Attr("title")); v != "" {
			doc.Title = v
		}
	}
	if s := root.Find("report_subtitle"); s != nil {
		doc.Subtitle = strings.TrimSpace(s.Attr("subtitle"))
	}
	for _, sn := range root.FindAll("section") {
		sec := Section{Title: strings.TrimSpace(sn.Attr("title"))}
		for _, p := range sn.FindAll("paragraph", "recommendation") {
			sec.Paragraphs = append(sec.Paragraphs, strings.TrimSpace(p.Text()))
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}

// IsComplete reports whether text ends with the closing tag of its first
// element. Like the NIDL check it does not parse.
func IsComplete(text string) bool {
	text = render.TrimTrailingFence(text)
	name := rootName(render.StripCodeFence(text))
	if name == "" {
		return false
	}
	return strings.HasSuffix(text, "</"+name+">")
}

// rootName returns the qualified name of the first start tag, skipping
// declarations, comments, and processing instructions.
func rootName(s string) string {
	for {
		i := strings.IndexByte(s, '<')
		if i < 0 || i+1 >= len(s) {
			return ""
		}
		s = s[i:]
		// Skip prolog markup as a whole so tag-like text inside it is ignored.
		var close string
		switch {
		case strings.HasPrefix(s, "<!--"):
			close = "-->"
		case strings.HasPrefix(s, "<![CDATA["):
			close = "]]>"
		case strings.HasPrefix(s, "<?"):
			close = "?>"
		case strings.HasPrefix(s, "<!"), strings.HasPrefix(s, "</"):
			close = ">"
		}
		if close != "" {
			end := strings.Index(s[2:], close)
			if end < 0 {
				return ""
			}
			s = s[2+end+len(close):]
			continue
		}
		s = s[1:]
		end := strings.IndexAny(s, " \t\r\n/>")
		if end < 0 {
			return ""
		}
		return s[:end]
	}
}

// Renderer renders NADL buffers. The zero value is ready to use.
type Renderer struct {
	PreviewLimit int
	Log          *slog.Logger
}

// Render renders with default settings.
func Render(text string) render.Result {
	return Renderer{}.Render(text)
}

// Render renders text. An empty buffer yields an empty complete result.
func (r Renderer) Render(text string) (res render.Result) {
	if strings.TrimSpace(text) == "" {
		return render.Result{Mode: render.ModeComplete}
	}
	if !IsComplete(text) {
		return render.Pending(text, r.PreviewLimit)
	}

	defer func() {
		if p := recover(); p != nil {
			if r.Log != nil {
				r.Log.Error("nadl render panic", "panic", p)
			}
			res = render.Result{Mode: render.ModeError, HTML: `<p class="text-red-400">Could not render analysis.</p>`}
		}
	}()

	doc, err := Parse(text)
	if err != nil {
		if r.Log != nil {
			r.Log.Warn("malformed nadl", "error", err, "raw", render.Truncate(text, 200))
		}
		return render.Result{
			Mode: render.ModeError,
			HTML: `<p class="text-red-400">Error parsing analysis data.</p><pre>` + render.EscapeRaw(text) + `</pre>`,
		}
	}
	return render.Result{Mode: render.ModeComplete, HTML: RenderDocument(doc)}
}

// RenderDocument renders a parsed analysis.
func RenderDocument(doc *Document) string {
	var sb strings.Builder
	sb.WriteString(`<header class="report-page-header text-center">`)
	sb.WriteString(`<h1 class="text-3xl font-bold font-sans text-gray-900">` + render.Text(doc.Title) + `</h1>`)
	if doc.Subtitle != "" {
		sb.WriteString(`<p class="text-lg text-gray-600 mt-1">` + render.Text(doc.Subtitle) + `</p>`)
	}
	sb.WriteString(`</header><main>`)
	for _, sec := range doc.Sections {
		sb.WriteString(`<section><h2 class="report-section-title text-2xl">` + render.Text(sec.Title) + `</h2><div class="space-y-4">`)
		for _, p := range sec.Paragraphs {
			sb.WriteString(`<p class="text-base leading-relaxed">` + render.Text(p) + `</p>`)
		}
		sb.WriteString(`</div></section>`)
	}
	sb.WriteString(`</main><footer class="mt-12 pt-4 border-t border-gray-300 text-center text-xs text-gray-500">`)
	sb.WriteString(`<p>BWGA Nexus AI | Confidential Analysis Document</p></footer>`)
	return sb.String()
}
