package nidl

import "strings"

// Document is a parsed NIDL report. Singleton sections are nil when absent;
// tables keep source order.
type Document struct {
	Header           *Header
	ScoreCard        *ScoreCard
	ExecutiveSummary *string
	Tables           []DataTable
	Recommendations  *string // Numbered prose, split at render time
	Sources          *string // "|"-delimited URLs and source names
}

// Header is the report title block.
type Header struct {
	ReportTitle string
	PreparedFor PreparedFor
}

// PreparedFor identifies the report's recipient.
type PreparedFor struct {
	Name       string
	Department string
	Country    string
}

// ScoreCard is the overall_score > investment_tier > rationale chain.
type ScoreCard struct {
	OverallScore   string // 0-100 as text, may be empty
	InvestmentTier string
	Rationale      string
}

// DataTable is one analysis table. Rows[0] is the header row.
type DataTable struct {
	Title       string
	HeaderColor HeaderColor
	Rows        []Row
}

// Row is an ordered list of cells. Cell text may contain newlines.
type Row struct {
	Cells []string
}

// HeaderRow returns the first row, if any.
func (t DataTable) HeaderRow() (Row, bool) {
	if len(t.Rows) == 0 {
		return Row{}, false
	}
	return t.Rows[0], true
}

// BodyRows returns every row after the header row.
func (t DataTable) BodyRows() []Row {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// HeaderColor selects the table header styling.
type HeaderColor string

const (
	HeaderColorNone HeaderColor = ""
	HeaderColorTeal HeaderColor = "teal"
	HeaderColorSky  HeaderColor = "sky"
	HeaderColorRose HeaderColor = "rose"
)

// ParseHeaderColor maps an attribute value to a HeaderColor. Unknown values
// fall back to the default style.
func ParseHeaderColor(s string) HeaderColor {
	switch c := HeaderColor(strings.ToLower(strings.TrimSpace(s))); c {
	case HeaderColorTeal, HeaderColorSky, HeaderColorRose:
		return c
	}
	return HeaderColorNone
}

// Class returns the CSS class for header cells, or "" for the default style.
func (c HeaderColor) Class() string {
	if c == HeaderColorNone {
		return ""
	}
	return "header-" + string(c)
}
