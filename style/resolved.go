package style

import "github.com/tsawler/docxlayout/docx"

// Built-in baseline values, used when neither the document defaults nor
// any style specify a property.
const (
	BaselineFont        = "Calibri"
	BaselineSize        = 11.0 // points
	BaselineCellMargin  = 5.4  // points, left and right
	BaselineOutlineBody = 9
)

// Run is fully resolved character formatting.
type Run struct {
	StyleID      string // character style, empty when none
	Font         string
	FontEastAsia string
	Size         float64 // points
	Bold         bool
	Italic       bool
	Underline    string // empty when not underlined
	Strike       bool
	DoubleStrike bool
	Caps         bool
	SmallCaps    bool
	Hidden       bool
	Color        docx.Color
	Highlight    string
	VertAlign    string
	RTL          bool
}

// Numbering is a resolved numbering reference.
type Numbering struct {
	NumID int
	Level int
}

// Paragraph is fully resolved paragraph formatting.
type Paragraph struct {
	StyleID         string
	StyleName       string
	Justification   docx.Justification
	SpaceBefore     float64
	SpaceAfter      float64
	Line            docx.LineSpacing
	IndentLeft      float64
	IndentRight     float64
	IndentFirstLine float64 // negative for a hanging indent
	KeepNext        bool
	KeepLines       bool
	PageBreakBefore bool
	WidowControl    bool
	Bidi            bool
	OutlineLevel    int // 0-8 for headings, 9 for body text
	Numbering       *Numbering
	Tabs            []docx.TabStop
}

// Edges are resolved per-edge lengths in points.
type Edges struct {
	Top, Left, Bottom, Right float64
}

// TableProps are resolved table properties.
type TableProps struct {
	StyleID       string
	Width         docx.Width
	Justification docx.Justification
	Indent        float64
	Fixed         bool
	CellMargins   Edges
	Borders       docx.Borders
	Look          docx.TableLook
	RowBandSize   int
	ColBandSize   int
}

// Row is resolved row formatting.
type Row struct {
	Height     float64
	HeightRule docx.HeightRule
	Header     bool
	CantSplit  bool
}

// Cell is resolved cell formatting.
type Cell struct {
	Width    docx.Width
	GridSpan int
	VMerge   docx.VMerge // zero when the cell is not merged
	VAlign   docx.VAlign
	Shading  *docx.Color
	NoWrap   bool
	Margins  Edges
	Borders  docx.Borders
}

func deref[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}

func runFrom(rp docx.RunProps) Run {
	r := Run{
		StyleID:      rp.StyleID,
		Font:         deref(rp.Font, BaselineFont),
		FontEastAsia: deref(rp.FontEastAsia, ""),
		Size:         deref(rp.Size, BaselineSize),
		Bold:         deref(rp.Bold, false),
		Italic:       deref(rp.Italic, false),
		Strike:       deref(rp.Strike, false),
		DoubleStrike: deref(rp.DoubleStrike, false),
		Caps:         deref(rp.Caps, false),
		SmallCaps:    deref(rp.SmallCaps, false),
		Hidden:       deref(rp.Vanish, false),
		Color:        deref(rp.Color, docx.Color{Auto: true}),
		Highlight:    deref(rp.Highlight, ""),
		VertAlign:    deref(rp.VertAlign, ""),
		RTL:          deref(rp.RTL, false),
	}
	if u := deref(rp.Underline, ""); u != "none" {
		r.Underline = u
	}
	if r.Highlight == "none" {
		r.Highlight = ""
	}
	return r
}

func paragraphFrom(pp docx.ParaProps) Paragraph {
	p := Paragraph{
		Justification:   deref(pp.Justification, docx.JustifyStart),
		SpaceBefore:     deref(pp.SpaceBefore, 0),
		SpaceAfter:      deref(pp.SpaceAfter, 0),
		Line:            deref(pp.Line, docx.LineSpacing{Rule: docx.LineAuto, Value: 1}),
		IndentLeft:      deref(pp.IndentLeft, 0),
		IndentRight:     deref(pp.IndentRight, 0),
		IndentFirstLine: deref(pp.IndentFirstLine, 0),
		KeepNext:        deref(pp.KeepNext, false),
		KeepLines:       deref(pp.KeepLines, false),
		PageBreakBefore: deref(pp.PageBreakBefore, false),
		WidowControl:    deref(pp.WidowControl, true),
		Bidi:            deref(pp.Bidi, false),
		OutlineLevel:    deref(pp.OutlineLevel, BaselineOutlineBody),
		Tabs:            pp.Tabs,
	}
	if p.Line.Value <= 0 {
		p.Line = docx.LineSpacing{Rule: docx.LineAuto, Value: 1}
	}
	if n := pp.Numbering; n != nil && n.NumID != nil && *n.NumID > 0 {
		p.Numbering = &Numbering{NumID: *n.NumID, Level: deref(n.Level, 0)}
	}
	return p
}

func edgesFrom(m docx.Margins, fallback Edges) Edges {
	return Edges{
		Top:    deref(m.Top, fallback.Top),
		Left:   deref(m.Left, fallback.Left),
		Bottom: deref(m.Bottom, fallback.Bottom),
		Right:  deref(m.Right, fallback.Right),
	}
}
