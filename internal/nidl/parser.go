package nidl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/nexusdoc/internal/render"
	"github.com/dgallion1/nexusdoc/internal/xmltree"
)

const (
	// RootElement is the only accepted document root.
	RootElement = "document"
	// CompletionMarker is the literal closing tag that ends a streamed report.
	CompletionMarker = "</" + RootElement + ">"
)

// ErrMalformed matches any *ParseError via errors.Is.
var ErrMalformed = errors.New("malformed nidl document")

// ParseError reports a complete buffer that is not valid NIDL structure.
type ParseError struct {
	Raw string // The text that failed, kept for diagnostic display
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed nidl: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

// IsComplete reports whether text ends with the root closing tag. A closing
// code fence after the tag is ignored. This is a suffix test only.
func IsComplete(text string) bool {
	return strings.HasSuffix(render.TrimTrailingFence(text), CompletionMarker)
}

// Parse builds a Document from complete NIDL text. Structural failures come
// back as *ParseError; missing or extra elements are not errors.
func Parse(text string) (*Document, error) {
	root, err := xmltree.Parse(render.StripCodeFence(text))
	if err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	if root.Name != RootElement {
		return nil, &ParseError{Raw: text, Err: fmt.Errorf("unexpected root element <%s>", root.Name)}
	}
	return fromTree(root), nil
}

func fromTree(root *xmltree.Node) *Document {
	doc := &Document{}

	if h := root.Find("header"); h != nil {
		header := &Header{}
		if t := h.Find("report_title"); t != nil {
			header.ReportTitle = strings.TrimSpace(t.Attr("title"))
		}
		if p := h.Find("prepared_for"); p != nil {
			header.PreparedFor = PreparedFor{
				Name:       strings.TrimSpace(p.Attr("name")),
				Department: strings.TrimSpace(p.Attr("department")),
				Country:    strings.TrimSpace(p.Attr("country")),
			}
		}
		doc.Header = header
	}

	if sc := root.Find("score_card"); sc != nil {
		card := &ScoreCard{}
		if s := sc.Find("overall_score"); s != nil {
			card.OverallScore = strings.TrimSpace(s.Attr("value"))
		}
		if t := sc.Find("investment_tier"); t != nil {
			card.InvestmentTier = strings.TrimSpace(t.Attr("value"))
		}
		if r := sc.Find("rationale"); r != nil {
			card.Rationale = strings.TrimSpace(r.Text())
		}
		doc.ScoreCard = card
	}

	doc.ExecutiveSummary = textOf(root, "executive_summary")

	for _, tn := range root.FindAll("data_table") {
		table := DataTable{
			Title:       strings.TrimSpace(tn.Attr("title")),
			HeaderColor: ParseHeaderColor(tn.Attr("header_color")),
		}
		for _, rn := range tn.FindAll("row") {
			var row Row
			for _, cn := range rn.FindAll("cell") {
				row.Cells = append(row.Cells, strings.TrimSpace(cn.Text()))
			}
			table.Rows = append(table.Rows, row)
		}
		doc.Tables = append(doc.Tables, table)
	}

	doc.Recommendations = textOf(root, "strategic_recommendations")
	doc.Sources = textOf(root, "source_attribution")

	return doc
}

func textOf(root *xmltree.Node, name string) *string {
	n := root.Find(name)
	if n == nil {
		return nil
	}
	s := strings.TrimSpace(n.Text())
	return &s
}
