package render

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Mode tells the host which view produced a render result.
type Mode string

const (
	ModePending  Mode = "pending"
	ModeError    Mode = "error"
	ModeComplete Mode = "complete"
)

// Result is a rendered HTML fragment plus the mode that produced it.
type Result struct {
	Mode Mode   `json:"mode"`
	HTML string `json:"html"`
}

// Renderer turns markup text into a displayable fragment. Implementations
// must not panic and must not retain the input.
type Renderer interface {
	Render(text string) Result
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(text string) Result

func (f RendererFunc) Render(text string) Result {
	return f(text)
}

// DefaultPreviewLimit caps the raw preview shown while a document streams.
const DefaultPreviewLimit = 4096

// EscapeRaw escapes raw generator output for display inside a <pre> block.
// All diagnostic views (pending, malformed, NADL failures) go through here.
func EscapeRaw(s string) string {
	return html.EscapeString(s)
}

// Text escapes a decoded text field for element content or attribute values.
func Text(s string) string {
	return html.EscapeString(s)
}

var codeFenceRe = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\r?\n?(.*?)\\s*```$")

// StripCodeFence removes a single fenced code-block wrapper, which generators
// add despite being told not to.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	// Opening fence with no closing fence yet.
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			return strings.TrimSpace(s[i+1:])
		}
	}
	return s
}

// TrimTrailingFence drops a closing fence so suffix checks see the real end
// of a fenced document.
func TrimTrailingFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// Preview returns the last limit bytes of s, cut on a rune boundary, and
// whether anything was dropped.
func Preview(s string, limit int) (string, bool) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	if len(s) <= limit {
		return s, false
	}
	start := len(s) - limit
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:], true
}

// Truncate shortens s for log lines.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

// PendingView is the "still streaming" fragment shared by every dialect that
// supports incremental rendering.
func PendingView(raw string, limit int) string {
	preview, truncated := Preview(raw, limit)
	var sb strings.Builder
	sb.WriteString(`<div class="report-pending p-4 sm:p-6 bg-gray-50 rounded-lg" data-mode="pending">`)
	sb.WriteString(`<h3 class="font-semibold text-gray-700 flex items-center gap-2">`)
	sb.WriteString(`<span class="animate-spin" aria-hidden="true"></span>Generating report... (Streaming)</h3>`)
	sb.WriteString(`<pre class="mt-3 text-xs text-gray-500 whitespace-pre-wrap max-h-96 overflow-y-auto bg-white p-3 rounded-md border">`)
	if truncated {
		sb.WriteString("…")
	}
	sb.WriteString(EscapeRaw(preview))
	sb.WriteString(`</pre></div>`)
	return sb.String()
}

// Pending wraps PendingView in a Result.
func Pending(raw string, limit int) Result {
	return Result{Mode: ModePending, HTML: PendingView(raw, limit)}
}

// Unfinished is the error result for a stream that ended before its
// completion marker arrived. Hosts use it once the generator is done.
func Unfinished(raw string) Result {
	var sb strings.Builder
	sb.WriteString(`<div class="report-error p-6 bg-red-50 border border-red-200 rounded-lg" data-mode="error">`)
	sb.WriteString(`<h3 class="font-bold text-red-800">Report Incomplete</h3>`)
	sb.WriteString(`<p class="text-sm text-red-700 mt-2">The generator stopped before the document was finished.</p>`)
	sb.WriteString(`<pre class="mt-4 text-xs text-red-900 bg-red-100 p-3 rounded-md whitespace-pre-wrap overflow-x-auto">`)
	sb.WriteString(EscapeRaw(raw))
	sb.WriteString(`</pre></div>`)
	return Result{Mode: ModeError, HTML: sb.String()}
}

// Snapshot renders a stream buffer as it stands. complete is the dialect's
// completeness check and done says the producer has stopped. Incomplete text
// is pending while the stream runs and Unfinished once it has ended.
func Snapshot(r Renderer, text string, complete, done bool, limit int) Result {
	switch {
	case complete:
		return r.Render(text)
	case !done:
		return Pending(text, limit)
	case text == "":
		return r.Render(text)
	default:
		return Unfinished(text)
	}
}
