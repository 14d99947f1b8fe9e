package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/font"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
)

func (b *docBuilder) cell(col int, blocks ...model.Block) *model.Cell {
	return &model.Cell{Props: style.Cell{GridSpan: 1}, Column: col, Blocks: blocks}
}

func (b *docBuilder) table(columns []float64, rows ...*model.Row) *model.Table {
	return &model.Table{ID: b.id(), Columns: columns, Rows: rows}
}

func (b *docBuilder) row(texts ...string) *model.Row {
	r := &model.Row{Props: style.Row{HeightRule: docx.HeightAtLeast}}
	for i, s := range texts {
		r.Cells = append(r.Cells, b.cell(i, b.text(s)))
	}
	return r
}

func fragments(p *Page) []*TableFragment {
	var out []*TableFragment
	for _, it := range p.Items {
		if f, ok := it.(*TableFragment); ok {
			out = append(out, f)
		}
	}
	return out
}

func TestRowHeightFollowsTallestCell(t *testing.T) {
	var b docBuilder
	tbl := b.table([]float64{30, 30, 40}, b.row("aaaa bbbb", "x", "y"))
	tree := layoutDoc(t, document(tbl))

	frags := fragments(tree.Pages[0])
	if len(frags) != 1 || len(frags[0].Rows) != 1 {
		t.Fatalf("fragments = %+v", frags)
	}
	row := frags[0].Rows[0]
	if row.Rect.Height != 24 || row.Rect.Y != 50 {
		t.Errorf("row rect = %+v, want height 24 at y 50", row.Rect)
	}

	wantX := []float64{50, 80, 110}
	wantW := []float64{30, 30, 40}
	for i, c := range row.Cells {
		if c.Rect.X != wantX[i] || c.Rect.Width != wantW[i] || c.Rect.Height != 24 {
			t.Errorf("cell %d rect = %+v", i, c.Rect)
		}
	}
	if n := len(row.Cells[0].Items); n != 2 {
		t.Errorf("first cell has %d lines, want 2", n)
	}
	for i, c := range row.Cells[1:] {
		ln := c.Items[0].(*Line)
		if ln.Rect.Y != 50 {
			t.Errorf("cell %d line at y %v, want top aligned at 50", i+1, ln.Rect.Y)
		}
	}
}

func TestCellVerticalAlignment(t *testing.T) {
	tests := []struct {
		align docx.VAlign
		want  float64
	}{
		{docx.VAlignTop, 50},
		{docx.VAlignCenter, 56},
		{docx.VAlignBottom, 62},
	}
	for _, tt := range tests {
		var b docBuilder
		r := b.row("aaaa bbbb", "x")
		r.Cells[1].Props.VAlign = tt.align
		tree := layoutDoc(t, document(b.table([]float64{30, 70}, r)))
		ln := fragments(tree.Pages[0])[0].Rows[0].Cells[1].Items[0].(*Line)
		if ln.Rect.Y != tt.want {
			t.Errorf("valign %v: line at y %v, want %v", tt.align, ln.Rect.Y, tt.want)
		}
	}
}

func TestCellMargins(t *testing.T) {
	var b docBuilder
	r := b.row("x")
	r.Cells[0].Props.Margins = style.Edges{Top: 4, Left: 5, Bottom: 4, Right: 5}
	tree := layoutDoc(t, document(b.table([]float64{100}, r)))
	row := fragments(tree.Pages[0])[0].Rows[0]
	if row.Rect.Height != 20 {
		t.Errorf("row height = %v, want 12 plus margins", row.Rect.Height)
	}
	ln := row.Cells[0].Items[0].(*Line)
	if ln.Rect.X != 55 || ln.Rect.Y != 54 || ln.Rect.Width != 90 {
		t.Errorf("line rect = %+v", ln.Rect)
	}
}

func TestExactRowHeight(t *testing.T) {
	var b docBuilder
	r := b.row("aaaa bbbb")
	r.Props = style.Row{Height: 15, HeightRule: docx.HeightExact}
	tree := layoutDoc(t, document(b.table([]float64{30}, r)))
	if h := fragments(tree.Pages[0])[0].Rows[0].Rect.Height; h != 15 {
		t.Errorf("row height = %v, want 15", h)
	}
}

func TestHeaderRowsRepeat(t *testing.T) {
	var b docBuilder
	header := b.row("head")
	header.Props.Header = true
	rows := []*model.Row{header}
	for i := 0; i < 10; i++ {
		rows = append(rows, b.row("body"))
	}
	tree := layoutDoc(t, document(b.table([]float64{100}, rows...)))

	if tree.PageCount() != 2 {
		t.Fatalf("got %d pages, want 2", tree.PageCount())
	}
	first := fragments(tree.Pages[0])[0]
	second := fragments(tree.Pages[1])[0]
	if len(first.Rows) != 8 || len(second.Rows) != 4 {
		t.Fatalf("rows per page = %d, %d; want 8, 4", len(first.Rows), len(second.Rows))
	}
	if first.Rows[0].Repeated {
		t.Error("original header marked as repeated")
	}
	rep := second.Rows[0]
	if !rep.Repeated || rep.Index != 0 || rep.Rect.Y != 50 {
		t.Errorf("repeated header = %+v", rep)
	}
	if got := rep.Cells[0].Items[0].(*Line).Rect.Y; got != 50 {
		t.Errorf("repeated header line at y %v, want 50", got)
	}
	if body := second.Rows[1]; body.Index != 8 || body.Rect.Y != 62 {
		t.Errorf("first continuation row = index %d at y %v", body.Index, body.Rect.Y)
	}
	if first.Rows[0].Cells[0].Items[0] == rep.Cells[0].Items[0] {
		t.Error("repeated header shares items with the original")
	}
}

func TestHeaderRepeatDisabled(t *testing.T) {
	var b docBuilder
	header := b.row("head")
	header.Props.Header = true
	rows := []*model.Row{header}
	for i := 0; i < 10; i++ {
		rows = append(rows, b.row("body"))
	}
	cfg := DefaultConfig()
	cfg.RepeatHeaderRows = false
	tree, err := NewEngineWithConfig(font.Fixed{}, cfg).Layout(document(b.table([]float64{100}, rows...)), nil)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	second := fragments(tree.Pages[1])[0]
	if len(second.Rows) != 3 || second.Rows[0].Repeated {
		t.Errorf("continuation rows = %d, repeated = %v", len(second.Rows), second.Rows[0].Repeated)
	}
}

func TestOversizedRowReported(t *testing.T) {
	var b docBuilder
	r := b.row("x")
	r.Props = style.Row{Height: 150, HeightRule: docx.HeightExact}
	tree := layoutDoc(t, document(b.text("before"), b.table([]float64{100}, r)))

	if tree.PageCount() != 2 {
		t.Errorf("got %d pages, want the row moved to a fresh page", tree.PageCount())
	}
	found := false
	for _, d := range tree.Diagnostics {
		if d.Kind == diag.KindLayoutGeometry && strings.Contains(d.Message, "row 1") {
			found = true
		}
	}
	if !found {
		t.Errorf("no oversized row diagnostic in %v", tree.Diagnostics)
	}
}

func TestColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []float64
		cells   int
		props   style.TableProps
		want    []float64
		left    float64
	}{
		{"grid", []float64{20, 30}, 2, style.TableProps{}, []float64{20, 30}, 0},
		{"scaled to fit", []float64{100, 100}, 2, style.TableProps{}, []float64{50, 50}, 0},
		{"even split", nil, 4, style.TableProps{}, []float64{25, 25, 25, 25}, 0},
		{"explicit width", nil, 2, style.TableProps{Width: docx.Width{Type: docx.WidthDxa, Value: 60}}, []float64{30, 30}, 0},
		{"percent", []float64{10, 30}, 2, style.TableProps{Width: docx.Width{Type: docx.WidthPct, Value: 50}}, []float64{12.5, 37.5}, 0},
		{"indent", []float64{20}, 1, style.TableProps{Indent: 10}, []float64{20}, 10},
		{"centered", []float64{40}, 1, style.TableProps{Justification: docx.JustifyCenter}, []float64{40}, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b docBuilder
			texts := make([]string, tt.cells)
			tbl := b.table(tt.columns, b.row(texts...))
			tbl.Props = tt.props
			g := columns(tbl, 100)
			if len(g.widths) != len(tt.want) {
				t.Fatalf("widths = %v, want %v", g.widths, tt.want)
			}
			for i := range tt.want {
				if !near(g.widths[i], tt.want[i]) {
					t.Errorf("widths = %v, want %v", g.widths, tt.want)
					break
				}
			}
			if !near(g.left, tt.left) {
				t.Errorf("left = %v, want %v", g.left, tt.left)
			}
		})
	}
}

func TestNestedTable(t *testing.T) {
	var b docBuilder
	inner := b.table([]float64{20, 20}, b.row("a", "b"), b.row("c", "d"))
	outer := b.table([]float64{100}, &model.Row{Cells: []*model.Cell{b.cell(0, inner)}})
	tree := layoutDoc(t, document(outer))

	cell := fragments(tree.Pages[0])[0].Rows[0].Cells[0]
	f, ok := cell.Items[0].(*TableFragment)
	if !ok {
		t.Fatalf("cell item = %T", cell.Items[0])
	}
	if f.Rect.Height != 24 || len(f.Rows) != 2 || f.Rows[1].Rect.Y != 62 {
		t.Errorf("nested fragment = %+v", f.Rect)
	}
	if cell.Rect.Height != 24 {
		t.Errorf("outer cell height = %v", cell.Rect.Height)
	}
}
