package model

import (
	"strings"

	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/style"
	"github.com/tsawler/docxlayout/xmltree"
)

// Block is a *Paragraph or a *Table.
type Block interface {
	BlockID() int
	isBlock()
}

// Content is a run content item: Text, Break, Tab or Drawing.
type Content interface {
	isContent()
}

// Text is a span of characters.
type Text struct {
	Value string
}

// Break is an explicit line, page or column break.
type Break struct {
	Kind docx.BreakKind
}

// Tab advances to the next tab stop.
type Tab struct{}

// Drawing is an object with a fixed extent in points.
type Drawing struct {
	Width, Height float64
	Name          string
}

func (Text) isContent()    {}
func (Break) isContent()   {}
func (Tab) isContent()     {}
func (Drawing) isContent() {}

// Run is a single content item with resolved character formatting.
type Run struct {
	ID      int
	Props   style.Run
	Content Content
}

// ListItem is the numbering attached to a paragraph.
type ListItem struct {
	NumID    int
	Level    int
	Def      *docx.Level // nil when the numbering definition is missing
	Abstract int         // abstract definition id, -1 when unknown
	Marker   style.Run   // formatting of the marker text
}

// Paragraph is a block of runs with resolved paragraph formatting.
type Paragraph struct {
	ID         int
	Props      style.Paragraph
	Mark       style.Run // paragraph mark formatting, sizes empty paragraphs
	Runs       []*Run
	List       *ListItem
	Extensions []*xmltree.Node
	ExtAttrs   []xmltree.Attr
	Fields     []docx.Field
}

// Table is a grid of rows.
type Table struct {
	ID      int
	Props   style.TableProps
	Columns []float64 // grid column widths in points
	Rows    []*Row
}

// Row is a table row.
type Row struct {
	Props style.Row
	Cells []*Cell
}

// Cell is a table cell. Column is the first grid column it covers.
type Cell struct {
	Props  style.Cell
	Column int
	Blocks []Block
}

func (p *Paragraph) BlockID() int { return p.ID }
func (t *Table) BlockID() int     { return t.ID }
func (*Paragraph) isBlock()       {}
func (*Table) isBlock()           {}

// Text returns the text of the paragraph. Tabs and line breaks render as
// their control characters.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		switch c := r.Content.(type) {
		case Text:
			b.WriteString(c.Value)
		case Tab:
			b.WriteByte('\t')
		case Break:
			if c.Kind == docx.BreakLine {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// IsEmpty reports whether the paragraph has no runs.
func (p *Paragraph) IsEmpty() bool { return len(p.Runs) == 0 }

// ColCount returns the number of grid columns
func (t *Table) ColCount() int {
	n := len(t.Columns)
	for _, row := range t.Rows {
		span := 0
		for _, c := range row.Cells {
			span += c.Props.GridSpan
		}
		if span > n {
			n = span
		}
	}
	return n
}

// RowCount returns the number of rows
func (t *Table) RowCount() int { return len(t.Rows) }

// HeaderRows returns the number of leading rows marked as repeating
// header rows.
func (t *Table) HeaderRows() int {
	n := 0
	for _, row := range t.Rows {
		if !row.Props.Header {
			break
		}
		n++
	}
	return n
}
