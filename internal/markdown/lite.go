// Package markdown renders the two Markdown flavours used for analysis text:
// a line-oriented lite subset produced by the generator, and full CommonMark
// via goldmark for operator-supplied text.
package markdown

import (
	"regexp"
	"strings"

	"github.com/dgallion1/nexusdoc/internal/render"
)

// BlockKind identifies one block in a lite Markdown document.
type BlockKind int

const (
	Heading2 BlockKind = iota
	Heading3
	Callout
	SectionLabel
	List
	Paragraph
)

func (k BlockKind) String() string {
	switch k {
	case Heading2:
		return "heading2"
	case Heading3:
		return "heading3"
	case Callout:
		return "callout"
	case SectionLabel:
		return "section_label"
	case List:
		return "list"
	case Paragraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Block is one rendered unit. List blocks carry Items; the rest carry Text.
type Block struct {
	Kind  BlockKind
	Text  string
	Items []string
}

// Line prefixes, checked in this order.
const (
	prefixH2      = "## "
	prefixH3      = "### "
	prefixCallout = ">! "
	prefixSection = "**§"
	prefixItem    = "- "
)

// Parse splits text into blocks in a single pass over its lines. Consecutive
// "- " lines merge into one List block; any other line closes the run.
func Parse(text string) []Block {
	var blocks []Block
	var list *Block

	closeList := func() {
		if list != nil {
			blocks = append(blocks, *list)
			list = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, prefixH2):
			closeList()
			blocks = append(blocks, Block{Kind: Heading2, Text: line[len(prefixH2):]})
		case strings.HasPrefix(line, prefixH3):
			closeList()
			blocks = append(blocks, Block{Kind: Heading3, Text: line[len(prefixH3):]})
		case strings.HasPrefix(line, prefixCallout):
			closeList()
			blocks = append(blocks, Block{Kind: Callout, Text: line[len(prefixCallout):]})
		case strings.HasPrefix(line, prefixSection):
			closeList()
			blocks = append(blocks, Block{Kind: SectionLabel, Text: strings.ReplaceAll(line, "**", "")})
		case strings.HasPrefix(line, prefixItem):
			if list == nil {
				list = &Block{Kind: List}
			}
			list.Items = append(list.Items, line[len(prefixItem):])
		default:
			closeList()
			if line != "" {
				blocks = append(blocks, Block{Kind: Paragraph, Text: line})
			}
		}
	}
	closeList()
	return blocks
}

var boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// inline escapes s and applies the one inline transform, **bold**.
func inline(s string) string {
	return boldRe.ReplaceAllString(render.Text(s), "<strong>$1</strong>")
}

// RenderBlocks renders parsed blocks to an HTML fragment.
func RenderBlocks(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case Heading2:
			sb.WriteString("<h2>" + inline(b.Text) + "</h2>")
		case Heading3:
			sb.WriteString("<h3>" + inline(b.Text) + "</h3>")
		case Callout:
			sb.WriteString(`<div class="explanation-box"><p>` + inline(b.Text) + `</p></div>`)
		case SectionLabel:
			sb.WriteString(`<h4 class="text-lg font-semibold text-gray-800 mt-6 mb-2">` + render.Text(b.Text) + `</h4>`)
		case List:
			sb.WriteString(`<ul class="list-disc space-y-2 pl-5">`)
			for _, item := range b.Items {
				sb.WriteString("<li>" + inline(item) + "</li>")
			}
			sb.WriteString("</ul>")
		case Paragraph:
			sb.WriteString("<p>" + inline(b.Text) + "</p>")
		}
	}
	return sb.String()
}

// Render renders lite Markdown. The subset has no partial state, so every
// result is complete.
func Render(text string) render.Result {
	return render.Result{Mode: render.ModeComplete, HTML: RenderBlocks(Parse(text))}
}
