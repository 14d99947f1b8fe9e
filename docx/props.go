package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/docxlayout/xmltree"
)

// Justification is paragraph or table alignment.
type Justification int

const (
	JustifyStart Justification = iota
	JustifyCenter
	JustifyEnd
	JustifyBoth
	JustifyDistribute
)

func (j Justification) String() string {
	switch j {
	case JustifyCenter:
		return "center"
	case JustifyEnd:
		return "end"
	case JustifyBoth:
		return "both"
	case JustifyDistribute:
		return "distribute"
	default:
		return "start"
	}
}

func parseJustification(v string) (Justification, bool) {
	switch v {
	case "left", "start":
		return JustifyStart, true
	case "center":
		return JustifyCenter, true
	case "right", "end":
		return JustifyEnd, true
	case "both", "lowKashida", "mediumKashida", "highKashida", "thaiDistribute":
		return JustifyBoth, true
	case "distribute":
		return JustifyDistribute, true
	}
	return JustifyStart, false
}

// LineRule selects how a line spacing value is interpreted.
type LineRule int

const (
	// LineAuto spaces lines at a multiple of their natural height.
	LineAuto LineRule = iota
	// LineExact forces an exact line height in points.
	LineExact
	// LineAtLeast uses the natural height or the value, whichever is larger.
	LineAtLeast
)

// LineSpacing pairs a rule with its value. For LineAuto the value is a
// multiplier (1 = single), otherwise it is in points.
type LineSpacing struct {
	Rule  LineRule
	Value float64
}

// Color is an sRGB color or the automatic color.
type Color struct {
	Auto    bool
	R, G, B uint8
}

// ParseColor parses "auto" or a six digit hex value.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if strings.EqualFold(s, "auto") {
		return Color{Auto: true}, nil
	}
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as RRGGBB, or "auto".
func (c Color) Hex() string {
	if c.Auto {
		return "auto"
	}
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// RunProps are character formatting properties.
type RunProps struct {
	StyleID      string
	Bold         *bool
	Italic       *bool
	Underline    *string // underline style, "none" for off
	Strike       *bool
	DoubleStrike *bool
	Caps         *bool
	SmallCaps    *bool
	Vanish       *bool
	Size         *float64 // points
	Font         *string
	FontEastAsia *string
	Color        *Color
	Highlight    *string
	VertAlign    *string // baseline, superscript, subscript
	RTL          *bool
	Extensions   []*xmltree.Node
	ExtAttrs     []xmltree.Attr
}

// Over returns r with every unset property taken from base.
func (r RunProps) Over(base RunProps) RunProps {
	if r.StyleID == "" {
		r.StyleID = base.StyleID
	}
	r.Bold = pick(r.Bold, base.Bold)
	r.Italic = pick(r.Italic, base.Italic)
	r.Underline = pick(r.Underline, base.Underline)
	r.Strike = pick(r.Strike, base.Strike)
	r.DoubleStrike = pick(r.DoubleStrike, base.DoubleStrike)
	r.Caps = pick(r.Caps, base.Caps)
	r.SmallCaps = pick(r.SmallCaps, base.SmallCaps)
	r.Vanish = pick(r.Vanish, base.Vanish)
	r.Size = pick(r.Size, base.Size)
	r.Font = pick(r.Font, base.Font)
	r.FontEastAsia = pick(r.FontEastAsia, base.FontEastAsia)
	r.Color = pick(r.Color, base.Color)
	r.Highlight = pick(r.Highlight, base.Highlight)
	r.VertAlign = pick(r.VertAlign, base.VertAlign)
	r.RTL = pick(r.RTL, base.RTL)
	return r
}

// NumberingRef points a paragraph at a numbering instance and level.
// NumID 0 explicitly removes inherited numbering.
type NumberingRef struct {
	NumID *int
	Level *int
}

// ParaProps are paragraph formatting properties.
type ParaProps struct {
	StyleID         string
	Justification   *Justification
	SpaceBefore     *float64
	SpaceAfter      *float64
	Line            *LineSpacing
	IndentLeft      *float64
	IndentRight     *float64
	IndentFirstLine *float64 // negative for a hanging indent
	KeepNext        *bool
	KeepLines       *bool
	PageBreakBefore *bool
	WidowControl    *bool
	Bidi            *bool
	OutlineLevel    *int
	Numbering       *NumberingRef
	Tabs            []TabStop
	Section         *SectionProps // set on the last paragraph of a section
	Extensions      []*xmltree.Node
	ExtAttrs        []xmltree.Attr
}

// TabStop is a custom tab stop position in points.
type TabStop struct {
	Position float64
	Kind     string // left, center, right, decimal, clear
}

// Over returns p with every unset property taken from base. The section
// break and style id are never inherited.
func (p ParaProps) Over(base ParaProps) ParaProps {
	p.Justification = pick(p.Justification, base.Justification)
	p.SpaceBefore = pick(p.SpaceBefore, base.SpaceBefore)
	p.SpaceAfter = pick(p.SpaceAfter, base.SpaceAfter)
	p.Line = pick(p.Line, base.Line)
	p.IndentLeft = pick(p.IndentLeft, base.IndentLeft)
	p.IndentRight = pick(p.IndentRight, base.IndentRight)
	p.IndentFirstLine = pick(p.IndentFirstLine, base.IndentFirstLine)
	p.KeepNext = pick(p.KeepNext, base.KeepNext)
	p.KeepLines = pick(p.KeepLines, base.KeepLines)
	p.PageBreakBefore = pick(p.PageBreakBefore, base.PageBreakBefore)
	p.WidowControl = pick(p.WidowControl, base.WidowControl)
	p.Bidi = pick(p.Bidi, base.Bidi)
	p.OutlineLevel = pick(p.OutlineLevel, base.OutlineLevel)
	if p.Numbering == nil {
		p.Numbering = base.Numbering
	} else if base.Numbering != nil {
		n := *p.Numbering
		n.NumID = pick(n.NumID, base.Numbering.NumID)
		n.Level = pick(n.Level, base.Numbering.Level)
		p.Numbering = &n
	}
	if len(p.Tabs) == 0 {
		p.Tabs = base.Tabs
	}
	return p
}

// WidthType is the unit of a table or cell width.
type WidthType int

const (
	WidthAuto WidthType = iota
	WidthDxa            // value is in points
	WidthPct            // value is a percentage
	WidthNil
)

// Width is a table, column or cell width.
type Width struct {
	Type  WidthType
	Value float64
}

// Border is a single edge border.
type Border struct {
	Style string  // single, double, nil, none, ...
	Size  float64 // points
	Space float64 // points
	Color Color
}

// Visible reports whether the border draws anything.
func (b Border) Visible() bool {
	return b.Style != "" && b.Style != "nil" && b.Style != "none"
}

// Borders holds the edges of a table or cell. Nil edges inherit.
type Borders struct {
	Top, Left, Bottom, Right *Border
	InsideH, InsideV         *Border
}

// Over returns b with every unset edge taken from base.
func (b Borders) Over(base Borders) Borders {
	b.Top = pick(b.Top, base.Top)
	b.Left = pick(b.Left, base.Left)
	b.Bottom = pick(b.Bottom, base.Bottom)
	b.Right = pick(b.Right, base.Right)
	b.InsideH = pick(b.InsideH, base.InsideH)
	b.InsideV = pick(b.InsideV, base.InsideV)
	return b
}

// Margins are per-edge cell margins in points. Nil edges inherit.
type Margins struct {
	Top, Left, Bottom, Right *float64
}

// Over returns m with every unset edge taken from base.
func (m Margins) Over(base Margins) Margins {
	m.Top = pick(m.Top, base.Top)
	m.Left = pick(m.Left, base.Left)
	m.Bottom = pick(m.Bottom, base.Bottom)
	m.Right = pick(m.Right, base.Right)
	return m
}

// TableLook selects which conditional regions of a table style apply.
type TableLook struct {
	FirstRow    bool
	LastRow     bool
	FirstColumn bool
	LastColumn  bool
	NoHBand     bool
	NoVBand     bool
}

// DefaultTableLook is the look Word applies when tblLook is absent.
var DefaultTableLook = TableLook{FirstRow: true, FirstColumn: true, NoVBand: true}

// TableProps are table-level properties.
type TableProps struct {
	StyleID       string
	Width         *Width
	Justification *Justification
	Indent        *float64
	Layout        *string // fixed or autofit
	CellMargins   Margins
	Borders       Borders
	Look          *TableLook
	RowBandSize   *int
	ColBandSize   *int
	Extensions    []*xmltree.Node
	ExtAttrs      []xmltree.Attr
}

// Over returns t with every unset property taken from base. The style id
// and look are direct properties and are never inherited.
func (t TableProps) Over(base TableProps) TableProps {
	t.Width = pick(t.Width, base.Width)
	t.Justification = pick(t.Justification, base.Justification)
	t.Indent = pick(t.Indent, base.Indent)
	t.Layout = pick(t.Layout, base.Layout)
	t.CellMargins = t.CellMargins.Over(base.CellMargins)
	t.Borders = t.Borders.Over(base.Borders)
	t.RowBandSize = pick(t.RowBandSize, base.RowBandSize)
	t.ColBandSize = pick(t.ColBandSize, base.ColBandSize)
	return t
}

// HeightRule controls a row height value.
type HeightRule int

const (
	HeightAtLeast HeightRule = iota
	HeightExact
	HeightAuto
)

// RowProps are table row properties.
type RowProps struct {
	Height     *float64
	HeightRule *HeightRule
	Header     *bool
	CantSplit  *bool
	Extensions []*xmltree.Node
	ExtAttrs   []xmltree.Attr
}

// Over returns r with every unset property taken from base.
func (r RowProps) Over(base RowProps) RowProps {
	r.Height = pick(r.Height, base.Height)
	r.HeightRule = pick(r.HeightRule, base.HeightRule)
	r.Header = pick(r.Header, base.Header)
	r.CantSplit = pick(r.CantSplit, base.CantSplit)
	return r
}

// VMerge marks a cell as the start or continuation of a vertical merge.
type VMerge int

const (
	VMergeRestart VMerge = iota + 1
	VMergeContinue
)

// VAlign is vertical alignment of cell content.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

func (v VAlign) String() string {
	switch v {
	case VAlignCenter:
		return "center"
	case VAlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// CellProps are table cell properties.
type CellProps struct {
	Width      *Width
	GridSpan   *int
	VMerge     *VMerge
	VAlign     *VAlign
	Shading    *Color
	NoWrap     *bool
	Margins    Margins
	Borders    Borders
	Extensions []*xmltree.Node
	ExtAttrs   []xmltree.Attr
}

// Over returns c with every unset property taken from base. Width, span
// and merge are structural and are never inherited.
func (c CellProps) Over(base CellProps) CellProps {
	c.VAlign = pick(c.VAlign, base.VAlign)
	c.Shading = pick(c.Shading, base.Shading)
	c.NoWrap = pick(c.NoWrap, base.NoWrap)
	c.Margins = c.Margins.Over(base.Margins)
	c.Borders = c.Borders.Over(base.Borders)
	return c
}

// SectionProps are section geometry properties, in points.
type SectionProps struct {
	PageWidth    *float64
	PageHeight   *float64
	Landscape    bool
	MarginTop    *float64
	MarginRight  *float64
	MarginBottom *float64
	MarginLeft   *float64
	MarginHeader *float64
	MarginFooter *float64
	Gutter       *float64
	Type         string // nextPage, continuous, evenPage, oddPage, nextColumn
	Columns      int
	Extensions   []*xmltree.Node
	ExtAttrs     []xmltree.Attr
}

func pick[T any](v, base *T) *T {
	if v != nil {
		return v
	}
	return base
}
