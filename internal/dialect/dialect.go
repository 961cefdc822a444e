// Package dialect maps dialect names to renderers.
package dialect

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgallion1/nexusdoc/internal/markdown"
	"github.com/dgallion1/nexusdoc/internal/nadl"
	"github.com/dgallion1/nexusdoc/internal/nidl"
	"github.com/dgallion1/nexusdoc/internal/render"
)

const (
	NIDL       = "nidl"
	NADL       = "nadl"
	Markdown   = "markdown"
	CommonMark = "commonmark"
)

// Supported lists the dialect names ForName accepts.
var Supported = map[string]bool{
	NIDL:       true,
	NADL:       true,
	Markdown:   true,
	CommonMark: true,
}

// Options tune the streaming dialects.
type Options struct {
	PreviewLimit int
	Log          *slog.Logger
}

// ForName returns the renderer for a dialect name.
func ForName(name string, opts Options) (render.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NIDL:
		return nidl.Renderer{PreviewLimit: opts.PreviewLimit, Log: opts.Log}, nil
	case NADL:
		return nadl.Renderer{PreviewLimit: opts.PreviewLimit, Log: opts.Log}, nil
	case Markdown, "md":
		return render.RendererFunc(markdown.Render), nil
	case CommonMark:
		return render.RendererFunc(markdown.CommonMark), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %q", name)
	}
}

// IsSupported checks a dialect name.
func IsSupported(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return Supported[n] || n == "md"
}

// Names returns the supported dialect names, sorted.
func Names() []string {
	names := make([]string, 0, len(Supported))
	for n := range Supported {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Completion returns a cheap completeness predicate for streamed text in the
// dialect. Markdown dialects have no terminal marker and return nil.
func Completion(name string) func(string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NIDL:
		return nidl.IsComplete
	case NADL:
		return nadl.IsComplete
	default:
		return nil
	}
}
