package nidl

import (
	"net/url"
	"regexp"
	"strings"
)

// recommendationBoundary starts a new item: a numeral, a dot, whitespace.
var recommendationBoundary = regexp.MustCompile(`\d+\.\s`)

// SplitRecommendations splits numbered prose into items with their leading
// numerals stripped. Prose before the first numbered item is returned as
// intro rather than as an item.
func SplitRecommendations(text string) (intro string, items []string) {
	locs := recommendationBoundary.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return strings.TrimSpace(text), nil
	}
	intro = strings.TrimSpace(text[:locs[0][0]])
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if item := strings.TrimSpace(text[loc[1]:end]); item != "" {
			items = append(items, item)
		}
	}
	return intro, items
}

// Source is one entry of a source_attribution list.
type Source struct {
	Raw   string // Trimmed token as written
	Label string // Hostname for links, Raw otherwise
	URL   string // Empty for plain-text sources
}

// IsLink reports whether the source renders as a hyperlink.
func (s Source) IsLink() bool {
	return s.URL != ""
}

// SplitSources splits a "|"-delimited source list. Absolute http(s) URLs with
// a host become links labelled by hostname. Other schemes stay plain text.
func SplitSources(text string) []Source {
	var out []Source
	for _, tok := range strings.Split(text, "|") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		src := Source{Raw: tok, Label: tok}
		if u, err := url.Parse(tok); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != "" {
			src.URL = u.String()
			src.Label = u.Hostname()
		}
		out = append(out, src)
	}
	return out
}
