package docx

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docxlayout/xmltree"
)

// Block is a body-level content element: *Paragraph or *Table.
type Block interface {
	isBlock()
}

// RunContent is one item of run content: Text, Break, Tab or Drawing.
type RunContent interface {
	isRunContent()
}

// Text is a span of characters, NFC normalized.
type Text struct {
	Value string
}

// BreakKind distinguishes explicit breaks.
type BreakKind int

const (
	BreakLine BreakKind = iota
	BreakPage
	BreakColumn
)

func (k BreakKind) String() string {
	switch k {
	case BreakPage:
		return "page"
	case BreakColumn:
		return "column"
	default:
		return "line"
	}
}

// Break is an explicit line, page or column break.
type Break struct {
	Kind BreakKind
}

// Tab advances to the next tab stop.
type Tab struct{}

// Drawing is an inline or floating object occupying a fixed extent.
type Drawing struct {
	Width, Height float64 // points
	Name          string
	Inline        bool
}

func (Text) isRunContent()    {}
func (Break) isRunContent()   {}
func (Tab) isRunContent()     {}
func (Drawing) isRunContent() {}

// Run is a span of content sharing one set of run properties.
type Run struct {
	Props    RunProps
	Content  []RunContent
	Offset   int64
	ExtAttrs []xmltree.Attr
}

// Paragraph is a w:p element.
type Paragraph struct {
	Props      ParaProps
	MarkProps  RunProps // properties of the paragraph mark
	Runs       []*Run
	Offset     int64
	Extensions []*xmltree.Node
	ExtAttrs   []xmltree.Attr
	// Fields lists the field instructions completed in this paragraph.
	Fields []Field
}

// Table is a w:tbl element.
type Table struct {
	Props      TableProps
	Grid       []float64 // column widths in points
	Rows       []*Row
	Offset     int64
	Extensions []*xmltree.Node
	ExtAttrs   []xmltree.Attr
}

// Row is a w:tr element.
type Row struct {
	Props      RowProps
	Cells      []*Cell
	Offset     int64
	Extensions []*xmltree.Node
	ExtAttrs   []xmltree.Attr
}

// Cell is a w:tc element.
type Cell struct {
	Props    CellProps
	Blocks   []Block
	Offset   int64
	ExtAttrs []xmltree.Attr
}

func (*Paragraph) isBlock() {}
func (*Table) isBlock()     {}

// DocumentPart is the mapped main document.
type DocumentPart struct {
	Blocks []Block
	// FinalSection is the body-level w:sectPr, nil when absent.
	FinalSection *SectionProps
	// SectionEnd is the number of blocks that precede the body-level
	// w:sectPr, or -1 when there is none. Blocks at or after SectionEnd
	// lie outside every section.
	SectionEnd int
	// ExtraSections counts additional body-level w:sectPr elements.
	ExtraSections int
	Extensions    []*xmltree.Node
}

func (m *mapper) document(root *xmltree.Node) *DocumentPart {
	doc := &DocumentPart{SectionEnd: -1}
	body := root.Child(nsW, "body")
	if body == nil {
		return doc
	}
	for _, c := range root.ChildElements() {
		if c != body && !c.Is(nsW, "background") {
			if ext := m.unknown(c); ext != nil {
				doc.Extensions = append(doc.Extensions, ext)
			}
		}
	}
	m.body(body.ChildElements(), doc)
	return doc
}

func (m *mapper) body(children []*xmltree.Node, doc *DocumentPart) {
	for _, c := range children {
		switch {
		case c.Is(nsW, "sectPr"):
			if doc.FinalSection != nil {
				doc.ExtraSections++
				continue
			}
			doc.FinalSection = m.section(c)
			doc.SectionEnd = len(doc.Blocks)
		case c.Is(nsMC, "AlternateContent"):
			m.body(alternate(c), doc)
		default:
			blocks, exts := m.block(c)
			doc.Blocks = append(doc.Blocks, blocks...)
			doc.Extensions = append(doc.Extensions, exts...)
		}
	}
}

// block maps a block-level element. Containers such as w:sdt and
// w:customXml are flattened into their content. Unrecognized elements,
// including those nested in containers, are returned for the caller's
// extension bag.
func (m *mapper) block(n *xmltree.Node) ([]Block, []*xmltree.Node) {
	if n.Name.Space == nsW {
		switch n.Name.Local {
		case "p":
			return []Block{m.paragraph(n)}, nil
		case "tbl":
			return []Block{m.table(n)}, nil
		case "sdt":
			return m.blocks(n.Child(nsW, "sdtContent").ChildElements())
		case "customXml", "ins", "moveTo":
			return m.blocks(n.ChildElements())
		case "del", "moveFrom", "customXmlPr", "sdtPr", "sdtEndPr":
			return nil, nil
		}
	}
	if n.Is(nsMC, "AlternateContent") {
		return m.blocks(alternate(n))
	}
	if ext := m.unknown(n); ext != nil {
		return nil, []*xmltree.Node{ext}
	}
	return nil, nil
}

func (m *mapper) blocks(children []*xmltree.Node) ([]Block, []*xmltree.Node) {
	var (
		out  []Block
		exts []*xmltree.Node
	)
	for _, c := range children {
		bs, ext := m.block(c)
		out = append(out, bs...)
		exts = append(exts, ext...)
	}
	return out, exts
}

func (m *mapper) paragraph(n *xmltree.Node) *Paragraph {
	p := &Paragraph{Offset: n.Offset, ExtAttrs: foreignAttrs(nil, n)}
	for _, c := range n.ChildElements() {
		if c.Is(nsW, "pPr") {
			p.Props, p.MarkProps = m.paraProps(c)
			continue
		}
		m.inline(c, p)
	}
	p.Fields = m.takeFields()
	return p
}

// inline maps a paragraph child. Wrappers that only annotate runs are
// descended into so their runs keep document order.
func (m *mapper) inline(n *xmltree.Node, p *Paragraph) {
	if n.Is(nsMC, "AlternateContent") {
		for _, c := range alternate(n) {
			m.inline(c, p)
		}
		return
	}
	if n.Name.Space == nsW {
		switch n.Name.Local {
		case "r":
			p.Runs = append(p.Runs, m.run(n))
			return
		case "fldSimple":
			m.simpleField(n)
			for _, c := range n.ChildElements() {
				m.inline(c, p)
			}
			return
		case "hyperlink", "ins", "moveTo", "smartTag", "customXml", "dir", "bdo":
			for _, c := range n.ChildElements() {
				m.inline(c, p)
			}
			return
		case "sdt":
			for _, c := range n.Child(nsW, "sdtContent").ChildElements() {
				m.inline(c, p)
			}
			return
		case "del", "moveFrom", "smartTagPr", "customXmlPr":
			return
		}
	}
	if ext := m.unknown(n); ext != nil {
		p.Extensions = append(p.Extensions, ext)
	}
}

func (m *mapper) run(n *xmltree.Node) *Run {
	r := &Run{Offset: n.Offset, ExtAttrs: foreignAttrs(nil, n)}
	for _, c := range n.ChildElements() {
		m.runContent(c, r)
	}
	return r
}

func (m *mapper) runContent(c *xmltree.Node, r *Run) {
	if c.Is(nsMC, "AlternateContent") {
		for _, alt := range alternate(c) {
			m.runContent(alt, r)
		}
		return
	}
	if c.Name.Space != nsW {
		if ext := m.unknown(c); ext != nil {
			r.Props.Extensions = append(r.Props.Extensions, ext)
		}
		return
	}
	switch c.Name.Local {
	case "rPr":
		ext := r.Props.Extensions
		r.Props = m.runProps(c)
		r.Props.Extensions = append(ext, r.Props.Extensions...)
	case "t":
		r.appendText(norm.NFC.String(c.TextContent()))
	case "fldChar":
		m.fieldChar(c)
	case "instrText":
		m.instrText(c)
	case "tab", "ptab":
		r.Content = append(r.Content, Tab{})
	case "br":
		kind := BreakLine
		switch c.AttrValue(nsW, "type") {
		case "page":
			kind = BreakPage
		case "column":
			kind = BreakColumn
		}
		r.Content = append(r.Content, Break{Kind: kind})
	case "cr":
		r.Content = append(r.Content, Break{Kind: BreakLine})
	case "noBreakHyphen":
		r.appendText("\u2011")
	case "softHyphen":
		r.appendText("\u00ad")
	case "sym":
		if ch, ok := symbolChar(c.AttrValue(nsW, "char")); ok {
			r.appendText(ch)
		}
	case "drawing":
		r.Content = append(r.Content, drawing(c))
	default:
		if ext := m.unknown(c); ext != nil {
			r.Props.Extensions = append(r.Props.Extensions, ext)
		}
	}
}

// appendText merges adjacent text items.
func (r *Run) appendText(s string) {
	if s == "" {
		return
	}
	if k := len(r.Content); k > 0 {
		if t, ok := r.Content[k-1].(Text); ok {
			r.Content[k-1] = Text{Value: t.Value + s}
			return
		}
	}
	r.Content = append(r.Content, Text{Value: s})
}

// symbolChar decodes a w:sym character code. Codes in the F0xx symbol
// font range map back to their low byte.
func symbolChar(code string) (string, bool) {
	v, ok := parseHex(code)
	if !ok || v == 0 {
		return "", false
	}
	if v >= 0xF000 && v <= 0xF0FF {
		v -= 0xF000
	}
	return string(rune(v)), true
}

func drawing(n *xmltree.Node) Drawing {
	d := Drawing{}
	var frame *xmltree.Node
	if frame = n.Child(nsWP, "inline"); frame != nil {
		d.Inline = true
	} else {
		frame = n.Child(nsWP, "anchor")
	}
	if ext := frame.Child(nsWP, "extent"); ext != nil {
		if cx, ok := parseNumber(ext.AttrValue("", "cx")); ok {
			d.Width = cx / EMUPerPoint
		}
		if cy, ok := parseNumber(ext.AttrValue("", "cy")); ok {
			d.Height = cy / EMUPerPoint
		}
	}
	if doc := frame.Child(nsWP, "docPr"); doc != nil {
		d.Name = strings.TrimSpace(doc.AttrValue("", "name"))
	}
	return d
}

func (m *mapper) table(n *xmltree.Node) *Table {
	t := &Table{Offset: n.Offset, ExtAttrs: foreignAttrs(nil, n)}
	for _, c := range n.ChildElements() {
		switch {
		case c.Is(nsW, "tblPr"):
			t.Props = m.tableProps(c)
		case c.Is(nsW, "tblGrid"):
			for _, col := range c.Elements(nsW, "gridCol") {
				w, _ := parseTwips(col.AttrValue(nsW, "w"))
				t.Grid = append(t.Grid, w)
			}
		case c.Is(nsW, "tr"):
			t.Rows = append(t.Rows, m.row(c))
		case c.Is(nsW, "sdt"):
			for _, tr := range c.Child(nsW, "sdtContent").Elements(nsW, "tr") {
				t.Rows = append(t.Rows, m.row(tr))
			}
		case c.Name.Space == nsW && (c.Name.Local == "customXml" || c.Name.Local == "ins"):
			for _, tr := range c.Elements(nsW, "tr") {
				t.Rows = append(t.Rows, m.row(tr))
			}
		default:
			if ext := m.unknown(c); ext != nil {
				t.Extensions = append(t.Extensions, ext)
			}
		}
	}
	return t
}

func (m *mapper) row(n *xmltree.Node) *Row {
	r := &Row{Offset: n.Offset, ExtAttrs: foreignAttrs(nil, n)}
	for _, c := range n.ChildElements() {
		switch {
		case c.Is(nsW, "trPr"):
			r.Props = m.rowProps(c)
		case c.Is(nsW, "tc"):
			r.Cells = append(r.Cells, m.cell(c))
		case c.Is(nsW, "sdt"):
			for _, tc := range c.Child(nsW, "sdtContent").Elements(nsW, "tc") {
				r.Cells = append(r.Cells, m.cell(tc))
			}
		case c.Is(nsW, "customXml"):
			for _, tc := range c.Elements(nsW, "tc") {
				r.Cells = append(r.Cells, m.cell(tc))
			}
		default:
			if ext := m.unknown(c); ext != nil {
				r.Extensions = append(r.Extensions, ext)
			}
		}
	}
	return r
}

func (m *mapper) cell(n *xmltree.Node) *Cell {
	cell := &Cell{Offset: n.Offset, ExtAttrs: foreignAttrs(nil, n)}
	for _, c := range n.ChildElements() {
		if c.Is(nsW, "tcPr") {
			cell.Props = m.cellProps(c)
			continue
		}
		bs, exts := m.block(c)
		cell.Blocks = append(cell.Blocks, bs...)
		cell.Props.Extensions = append(cell.Props.Extensions, exts...)
	}
	return cell
}
