package layout

import (
	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
	"github.com/tsawler/docxlayout/text"
)

// Tree is a laid out document.
type Tree struct {
	Pages       []*Page
	Diagnostics []diag.Diagnostic
}

// PageCount returns the number of pages.
func (t *Tree) PageCount() int { return len(t.Pages) }

// Lines returns every line in page order, including lines inside tables.
func (t *Tree) Lines() []*Line {
	var out []*Line
	for _, p := range t.Pages {
		out = append(out, p.Lines()...)
	}
	return out
}

// Page is one page of output.
type Page struct {
	Number   int // 1-based
	Section  int
	Geometry model.PageGeometry
	Items    []Item
}

// Lines returns the lines on the page in order, descending into tables.
func (p *Page) Lines() []*Line {
	var out []*Line
	collectLines(p.Items, &out)
	return out
}

func collectLines(items []Item, out *[]*Line) {
	for _, it := range items {
		switch v := it.(type) {
		case *Line:
			*out = append(*out, v)
		case *TableFragment:
			for _, r := range v.Rows {
				for _, c := range r.Cells {
					collectLines(c.Items, out)
				}
			}
		}
	}
}

// Item is a *Line or a *TableFragment.
type Item interface {
	Bounds() model.Rect
	translate(dx, dy float64)
}

// Line is a laid out line of a paragraph.
type Line struct {
	// Rect spans the available width of the line, after indentation.
	Rect model.Rect
	// Baseline is the y coordinate of the text baseline.
	Baseline float64
	Spans    []Span

	ParagraphID int
	Alignment   docx.Justification
	Direction   text.Direction

	// Natural is the width of the content before justification, not
	// counting trailing whitespace.
	Natural float64
	// Gaps is the number of stretchable inter-word gaps and Extra the
	// space added to each.
	Gaps  int
	Extra float64

	First bool // first line of its paragraph
	Last  bool // last line of its paragraph
	// Break is set when the line ends in an explicit break.
	Break *docx.BreakKind
}

// Bounds implements Item.
func (l *Line) Bounds() model.Rect { return l.Rect }

func (l *Line) translate(dx, dy float64) {
	l.Rect.X += dx
	l.Rect.Y += dy
	l.Baseline += dy
	for i := range l.Spans {
		l.Spans[i].X += dx
	}
}

// Text returns the text of the line's spans, marker included.
func (l *Line) Text() string {
	var b []byte
	for _, s := range l.Spans {
		b = append(b, s.Text...)
	}
	return string(b)
}

// Span is a positioned piece of a run.
type Span struct {
	// Run is the source run, nil for list markers.
	Run *model.Run
	// Props is the character formatting the span was measured with.
	Props  style.Run
	Text   string
	X      float64
	Width  float64
	Marker bool
}

// TableFragment is the part of a table placed on one page.
type TableFragment struct {
	Rect    model.Rect
	TableID int
	Rows    []*RowBox
}

// Bounds implements Item.
func (t *TableFragment) Bounds() model.Rect { return t.Rect }

func (t *TableFragment) translate(dx, dy float64) {
	t.Rect.X += dx
	t.Rect.Y += dy
	for _, r := range t.Rows {
		r.translate(dx, dy)
	}
}

// RowBox is a placed table row.
type RowBox struct {
	Rect  model.Rect
	Index int // row index in the table
	// Repeated marks a header row repeated on a continuation page.
	Repeated bool
	Cells    []*CellBox
}

func (r *RowBox) translate(dx, dy float64) {
	r.Rect.X += dx
	r.Rect.Y += dy
	for _, c := range r.Cells {
		c.Rect.X += dx
		c.Rect.Y += dy
		for _, it := range c.Items {
			it.translate(dx, dy)
		}
	}
}

// CellBox is a placed table cell. Rect is the full cell; content sits
// inside the cell margins.
type CellBox struct {
	Rect   model.Rect
	Column int
	Span   int
	VAlign docx.VAlign
	Items  []Item
}
