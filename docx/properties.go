package docx

import (
	"strconv"

	"github.com/tsawler/docxlayout/xmltree"
)

// runProps maps a w:rPr element. A nil element yields empty properties.
func (m *mapper) runProps(n *xmltree.Node) RunProps {
	var rp RunProps
	if n == nil {
		return rp
	}
	for _, c := range n.ChildElements() {
		if c.Name.Space != nsW {
			if ext := m.unknown(c); ext != nil {
				rp.Extensions = append(rp.Extensions, ext)
			}
			continue
		}
		rp.ExtAttrs = foreignAttrs(rp.ExtAttrs, c)
		switch c.Name.Local {
		case "rStyle":
			rp.StyleID = wVal(c)
		case "b":
			rp.Bold = onOff(c)
		case "i":
			rp.Italic = onOff(c)
		case "u":
			v := wVal(c)
			if v == "" {
				v = "single"
			}
			rp.Underline = &v
		case "strike":
			rp.Strike = onOff(c)
		case "dstrike":
			rp.DoubleStrike = onOff(c)
		case "caps":
			rp.Caps = onOff(c)
		case "smallCaps":
			rp.SmallCaps = onOff(c)
		case "vanish":
			rp.Vanish = onOff(c)
		case "rtl":
			rp.RTL = onOff(c)
		case "sz":
			if v, ok := parseHalfPoints(wVal(c)); ok && v > 0 {
				rp.Size = &v
			}
		case "rFonts":
			if v, ok := wAttr(c, "ascii"); ok && v != "" {
				rp.Font = &v
			} else if v, ok := wAttr(c, "hAnsi"); ok && v != "" {
				rp.Font = &v
			}
			if v, ok := wAttr(c, "eastAsia"); ok && v != "" {
				rp.FontEastAsia = &v
			}
		case "color":
			if col, err := ParseColor(wVal(c)); err == nil {
				rp.Color = &col
			}
		case "highlight":
			v := wVal(c)
			rp.Highlight = &v
		case "vertAlign":
			v := wVal(c)
			rp.VertAlign = &v
		default:
			if ext := m.unknown(c); ext != nil {
				rp.Extensions = append(rp.Extensions, ext)
			}
		}
	}
	return rp
}

// paraProps maps a w:pPr element. The paragraph mark run properties are
// returned separately.
func (m *mapper) paraProps(n *xmltree.Node) (ParaProps, RunProps) {
	var pp ParaProps
	var mark RunProps
	if n == nil {
		return pp, mark
	}
	for _, c := range n.ChildElements() {
		if c.Name.Space != nsW {
			if ext := m.unknown(c); ext != nil {
				pp.Extensions = append(pp.Extensions, ext)
			}
			continue
		}
		pp.ExtAttrs = foreignAttrs(pp.ExtAttrs, c)
		switch c.Name.Local {
		case "pStyle":
			pp.StyleID = wVal(c)
		case "jc":
			if j, ok := parseJustification(wVal(c)); ok {
				pp.Justification = &j
			}
		case "spacing":
			pp.SpaceBefore = twipsAttr(c, "before")
			pp.SpaceAfter = twipsAttr(c, "after")
			if v, ok := wAttr(c, "beforeAutospacing"); ok && parseOnOff(v, true) && pp.SpaceBefore == nil {
				pp.SpaceBefore = ptr(14.0)
			}
			if v, ok := wAttr(c, "afterAutospacing"); ok && parseOnOff(v, true) && pp.SpaceAfter == nil {
				pp.SpaceAfter = ptr(14.0)
			}
			pp.Line = lineSpacing(c)
		case "ind":
			pp.IndentLeft = firstTwips(c, "left", "start")
			pp.IndentRight = firstTwips(c, "right", "end")
			if h := twipsAttr(c, "hanging"); h != nil {
				pp.IndentFirstLine = ptr(-*h)
			} else {
				pp.IndentFirstLine = twipsAttr(c, "firstLine")
			}
		case "keepNext":
			pp.KeepNext = onOff(c)
		case "keepLines":
			pp.KeepLines = onOff(c)
		case "pageBreakBefore":
			pp.PageBreakBefore = onOff(c)
		case "widowControl":
			pp.WidowControl = onOff(c)
		case "bidi":
			pp.Bidi = onOff(c)
		case "outlineLvl":
			if v, ok := parseInt(wVal(c)); ok {
				pp.OutlineLevel = &v
			}
		case "numPr":
			ref := &NumberingRef{}
			if lvl := c.Child(nsW, "ilvl"); lvl != nil {
				if v, ok := parseInt(wVal(lvl)); ok {
					ref.Level = &v
				}
			}
			if id := c.Child(nsW, "numId"); id != nil {
				if v, ok := parseInt(wVal(id)); ok {
					ref.NumID = &v
				}
			}
			pp.Numbering = ref
		case "tabs":
			for _, tab := range c.Elements(nsW, "tab") {
				pos, ok := parseTwips(tab.AttrValue(nsW, "pos"))
				if !ok {
					continue
				}
				pp.Tabs = append(pp.Tabs, TabStop{Position: pos, Kind: wVal(tab)})
			}
		case "sectPr":
			pp.Section = m.section(c)
		case "rPr":
			mark = m.runProps(c)
		default:
			if ext := m.unknown(c); ext != nil {
				pp.Extensions = append(pp.Extensions, ext)
			}
		}
	}
	return pp, mark
}

func lineSpacing(n *xmltree.Node) *LineSpacing {
	v, ok := wAttr(n, "line")
	if !ok {
		return nil
	}
	raw, ok := parseNumber(v)
	if !ok {
		return nil
	}
	switch n.AttrValue(nsW, "lineRule") {
	case "exact":
		return &LineSpacing{Rule: LineExact, Value: raw / TwipsPerPoint}
	case "atLeast":
		return &LineSpacing{Rule: LineAtLeast, Value: raw / TwipsPerPoint}
	default:
		return &LineSpacing{Rule: LineAuto, Value: raw / 240}
	}
}

func firstTwips(n *xmltree.Node, names ...string) *float64 {
	for _, name := range names {
		if v := twipsAttr(n, name); v != nil {
			return v
		}
	}
	return nil
}

func (m *mapper) tableProps(n *xmltree.Node) TableProps {
	var tp TableProps
	if n == nil {
		return tp
	}
	for _, c := range n.ChildElements() {
		if c.Name.Space != nsW {
			if ext := m.unknown(c); ext != nil {
				tp.Extensions = append(tp.Extensions, ext)
			}
			continue
		}
		tp.ExtAttrs = foreignAttrs(tp.ExtAttrs, c)
		switch c.Name.Local {
		case "tblStyle":
			tp.StyleID = wVal(c)
		case "tblW":
			tp.Width = width(c)
		case "jc":
			if j, ok := parseJustification(wVal(c)); ok {
				tp.Justification = &j
			}
		case "tblInd":
			if w := width(c); w != nil && w.Type == WidthDxa {
				tp.Indent = &w.Value
			}
		case "tblLayout":
			v := c.AttrValue(nsW, "type")
			tp.Layout = &v
		case "tblCellMar":
			tp.CellMargins = margins(c)
		case "tblBorders":
			tp.Borders = borders(c)
		case "tblLook":
			look := tableLook(c)
			tp.Look = &look
		case "tblStyleRowBandSize":
			if v, ok := parseInt(wVal(c)); ok {
				tp.RowBandSize = &v
			}
		case "tblStyleColBandSize":
			if v, ok := parseInt(wVal(c)); ok {
				tp.ColBandSize = &v
			}
		default:
			if ext := m.unknown(c); ext != nil {
				tp.Extensions = append(tp.Extensions, ext)
			}
		}
	}
	return tp
}

func (m *mapper) rowProps(n *xmltree.Node) RowProps {
	var rp RowProps
	if n == nil {
		return rp
	}
	for _, c := range n.ChildElements() {
		if c.Name.Space != nsW {
			if ext := m.unknown(c); ext != nil {
				rp.Extensions = append(rp.Extensions, ext)
			}
			continue
		}
		rp.ExtAttrs = foreignAttrs(rp.ExtAttrs, c)
		switch c.Name.Local {
		case "trHeight":
			if h, ok := parseTwips(wVal(c)); ok {
				rp.Height = &h
				rule := HeightAtLeast
				switch c.AttrValue(nsW, "hRule") {
				case "exact":
					rule = HeightExact
				case "auto":
					rule = HeightAuto
				}
				rp.HeightRule = &rule
			}
		case "tblHeader":
			rp.Header = onOff(c)
		case "cantSplit":
			rp.CantSplit = onOff(c)
		default:
			if ext := m.unknown(c); ext != nil {
				rp.Extensions = append(rp.Extensions, ext)
			}
		}
	}
	return rp
}

func (m *mapper) cellProps(n *xmltree.Node) CellProps {
	var cp CellProps
	if n == nil {
		return cp
	}
	for _, c := range n.ChildElements() {
		if c.Name.Space != nsW {
			if ext := m.unknown(c); ext != nil {
				cp.Extensions = append(cp.Extensions, ext)
			}
			continue
		}
		cp.ExtAttrs = foreignAttrs(cp.ExtAttrs, c)
		switch c.Name.Local {
		case "tcW":
			cp.Width = width(c)
		case "gridSpan":
			if v, ok := parseInt(wVal(c)); ok && v > 0 {
				cp.GridSpan = &v
			}
		case "vMerge":
			vm := VMergeContinue
			if wVal(c) == "restart" {
				vm = VMergeRestart
			}
			cp.VMerge = &vm
		case "vAlign":
			va := VAlignTop
			switch wVal(c) {
			case "center":
				va = VAlignCenter
			case "bottom":
				va = VAlignBottom
			}
			cp.VAlign = &va
		case "shd":
			if col, err := ParseColor(c.AttrValue(nsW, "fill")); err == nil {
				cp.Shading = &col
			}
		case "noWrap":
			cp.NoWrap = onOff(c)
		case "tcMar":
			cp.Margins = margins(c)
		case "tcBorders":
			cp.Borders = borders(c)
		default:
			if ext := m.unknown(c); ext != nil {
				cp.Extensions = append(cp.Extensions, ext)
			}
		}
	}
	return cp
}

func (m *mapper) section(n *xmltree.Node) *SectionProps {
	sp := &SectionProps{Type: "nextPage"}
	for _, c := range n.ChildElements() {
		if c.Name.Space != nsW {
			if ext := m.unknown(c); ext != nil {
				sp.Extensions = append(sp.Extensions, ext)
			}
			continue
		}
		sp.ExtAttrs = foreignAttrs(sp.ExtAttrs, c)
		switch c.Name.Local {
		case "pgSz":
			sp.PageWidth = twipsAttr(c, "w")
			sp.PageHeight = twipsAttr(c, "h")
			sp.Landscape = c.AttrValue(nsW, "orient") == "landscape"
		case "pgMar":
			sp.MarginTop = twipsAttr(c, "top")
			sp.MarginRight = twipsAttr(c, "right")
			sp.MarginBottom = twipsAttr(c, "bottom")
			sp.MarginLeft = twipsAttr(c, "left")
			sp.MarginHeader = twipsAttr(c, "header")
			sp.MarginFooter = twipsAttr(c, "footer")
			sp.Gutter = twipsAttr(c, "gutter")
		case "type":
			if v := wVal(c); v != "" {
				sp.Type = v
			}
		case "cols":
			if v := intAttr(c, "num"); v != nil {
				sp.Columns = *v
			}
		default:
			if ext := m.unknown(c); ext != nil {
				sp.Extensions = append(sp.Extensions, ext)
			}
		}
	}
	return sp
}

// width maps tblW, tcW, tblInd and similar elements.
func width(n *xmltree.Node) *Width {
	v := n.AttrValue(nsW, "w")
	switch n.AttrValue(nsW, "type") {
	case "auto":
		return &Width{Type: WidthAuto}
	case "nil":
		return &Width{Type: WidthNil}
	case "pct":
		if len(v) > 0 && v[len(v)-1] == '%' {
			if f, ok := parseNumber(v[:len(v)-1]); ok {
				return &Width{Type: WidthPct, Value: f}
			}
			return nil
		}
		// Fiftieths of a percent.
		if f, ok := parseNumber(v); ok {
			return &Width{Type: WidthPct, Value: f / 50}
		}
		return nil
	default:
		if f, ok := parseTwips(v); ok {
			return &Width{Type: WidthDxa, Value: f}
		}
		return nil
	}
}

func margins(n *xmltree.Node) Margins {
	var ms Margins
	edge := func(names ...string) *float64 {
		for _, name := range names {
			if c := n.Child(nsW, name); c != nil {
				if w := width(c); w != nil && w.Type == WidthDxa {
					return &w.Value
				}
			}
		}
		return nil
	}
	ms.Top = edge("top")
	ms.Left = edge("left", "start")
	ms.Bottom = edge("bottom")
	ms.Right = edge("right", "end")
	return ms
}

func borders(n *xmltree.Node) Borders {
	edge := func(names ...string) *Border {
		for _, name := range names {
			if c := n.Child(nsW, name); c != nil {
				return border(c)
			}
		}
		return nil
	}
	return Borders{
		Top:     edge("top"),
		Left:    edge("left", "start"),
		Bottom:  edge("bottom"),
		Right:   edge("right", "end"),
		InsideH: edge("insideH"),
		InsideV: edge("insideV"),
	}
}

func border(n *xmltree.Node) *Border {
	b := &Border{Style: wVal(n), Color: Color{Auto: true}}
	if v, ok := parseNumber(n.AttrValue(nsW, "sz")); ok {
		b.Size = v / EighthsPerPoint
	}
	if v, ok := parseNumber(n.AttrValue(nsW, "space")); ok {
		b.Space = v
	}
	if col, err := ParseColor(n.AttrValue(nsW, "color")); err == nil {
		b.Color = col
	}
	return b
}

// tableLook maps w:tblLook, which carries either discrete attributes or a
// legacy hex bitmask in w:val.
func tableLook(n *xmltree.Node) TableLook {
	look := DefaultTableLook
	if v, ok := wAttr(n, "val"); ok {
		if mask, ok := parseHex(v); ok {
			look = TableLook{
				FirstRow:    mask&0x0020 != 0,
				LastRow:     mask&0x0040 != 0,
				FirstColumn: mask&0x0080 != 0,
				LastColumn:  mask&0x0100 != 0,
				NoHBand:     mask&0x0200 != 0,
				NoVBand:     mask&0x0400 != 0,
			}
		}
	}
	set := func(local string, dst *bool) {
		if v, ok := wAttr(n, local); ok {
			*dst = parseOnOff(v, true)
		}
	}
	set("firstRow", &look.FirstRow)
	set("lastRow", &look.LastRow)
	set("firstColumn", &look.FirstColumn)
	set("lastColumn", &look.LastColumn)
	set("noHBand", &look.NoHBand)
	set("noVBand", &look.NoVBand)
	return look
}

func parseHex(s string) (uint64, bool) {
	v, err := strconv.ParseUint(s, 16, 32)
	return v, err == nil
}
