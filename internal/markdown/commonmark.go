package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dgallion1/nexusdoc/internal/render"
)

// Raw HTML in the source is dropped; goldmark's renderer is not in unsafe mode.
var commonMark = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Table),
)

// CommonMark renders full CommonMark with GFM tables and strikethrough.
func CommonMark(text string) render.Result {
	var buf bytes.Buffer
	if err := commonMark.Convert([]byte(text), &buf); err != nil {
		return render.Result{
			Mode: render.ModeError,
			HTML: `<p class="text-red-400">Could not render markdown.</p><pre>` + render.EscapeRaw(text) + `</pre>`,
		}
	}
	return render.Result{Mode: render.ModeComplete, HTML: buf.String()}
}
