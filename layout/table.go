package layout

import (
	"math"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/model"
)

// grid holds resolved column geometry relative to the containing box.
type grid struct {
	left   float64
	xs     []float64 // column start positions
	widths []float64
	total  float64
}

// columns computes column widths for t in a box of the given width.
// Grid widths are used when present and scaled down to fit; otherwise
// the available width is split evenly.
func columns(t *model.Table, width float64) grid {
	n := t.ColCount()
	if n == 0 {
		return grid{}
	}
	tp := t.Props
	indent := math.Min(math.Max(tp.Indent, 0), width)
	avail := width - indent

	target := avail
	explicit := false
	switch tp.Width.Type {
	case docx.WidthDxa:
		if tp.Width.Value > 0 {
			target, explicit = math.Min(tp.Width.Value, avail), true
		}
	case docx.WidthPct:
		if tp.Width.Value > 0 {
			target, explicit = math.Min(avail*tp.Width.Value/100, avail), true
		}
	}

	widths := make([]float64, n)
	sum := 0.0
	if len(t.Columns) >= n {
		copy(widths, t.Columns[:n])
		for _, w := range widths {
			sum += math.Max(w, 0)
		}
	}
	switch {
	case sum <= 0:
		for i := range widths {
			widths[i] = target / float64(n)
		}
	case sum > avail || (explicit && tp.Width.Type == docx.WidthPct):
		scale := target / sum
		if !explicit {
			scale = avail / sum
		}
		for i := range widths {
			widths[i] = math.Max(widths[i], 0) * scale
		}
	}

	g := grid{widths: widths, xs: make([]float64, n)}
	for i, w := range widths {
		g.xs[i] = g.total
		g.total += w
	}
	switch tp.Justification {
	case docx.JustifyCenter:
		g.left = (width - g.total) / 2
	case docx.JustifyEnd:
		g.left = width - g.total
	default:
		g.left = indent
	}
	g.left = math.Max(g.left, 0)
	return g
}

// row lays out one row at y 0 relative to the containing box.
func (p *pass) row(t *model.Table, ri int, g grid) *RowBox {
	row := t.Rows[ri]
	n := len(g.widths)
	box := &RowBox{Index: ri}

	naturals := make([]float64, len(row.Cells))
	height := 0.0
	for ci, c := range row.Cells {
		col := min(c.Column, n-1)
		span := max(min(c.Props.GridSpan, n-col), 1)
		x := g.left + g.xs[col]
		w := 0.0
		for _, cw := range g.widths[col : col+span] {
			w += cw
		}

		m := c.Props.Margins
		inner := w - m.Left - m.Right
		if inner <= 0 {
			inner = w
		}
		items, h := p.stack(c.Blocks, inner)
		for _, it := range items {
			it.translate(x+m.Left, m.Top)
		}
		naturals[ci] = m.Top + h + m.Bottom
		height = math.Max(height, naturals[ci])

		box.Cells = append(box.Cells, &CellBox{
			Rect:   model.Rect{X: x, Width: w},
			Column: col,
			Span:   span,
			VAlign: c.Props.VAlign,
			Items:  items,
		})
	}

	rp := row.Props
	switch rp.HeightRule {
	case docx.HeightExact:
		if rp.Height > 0 {
			height = rp.Height
		}
	case docx.HeightAtLeast:
		height = math.Max(height, rp.Height)
	}

	for ci, cb := range box.Cells {
		cb.Rect.Height = height
		off := 0.0
		switch cb.VAlign {
		case docx.VAlignCenter:
			off = (height - naturals[ci]) / 2
		case docx.VAlignBottom:
			off = height - naturals[ci]
		}
		if off > 0 {
			for _, it := range cb.Items {
				it.translate(0, off)
			}
		}
	}
	box.Rect = model.Rect{X: g.left, Width: g.total, Height: height}
	return box
}

// stack lays blocks out top to bottom in a box of the given width
// without pagination. It returns the items relative to the box and the
// total height.
func (p *pass) stack(blocks []model.Block, width float64) ([]Item, float64) {
	var (
		items []Item
		y     float64
	)
	for _, b := range blocks {
		switch v := b.(type) {
		case *model.Paragraph:
			y += v.Props.SpaceBefore
			for _, ln := range p.lines(v, width) {
				ln.translate(0, y)
				items = append(items, ln)
				y += ln.Rect.Height
			}
			y += v.Props.SpaceAfter
		case *model.Table:
			f := p.tableBox(v, width)
			f.translate(0, y)
			items = append(items, f)
			y += f.Rect.Height
		}
	}
	return items, y
}

// tableBox lays out a nested table as a single fragment.
func (p *pass) tableBox(t *model.Table, width float64) *TableFragment {
	g := columns(t, width)
	f := &TableFragment{TableID: t.ID, Rect: model.Rect{X: g.left, Width: g.total}}
	for ri := range t.Rows {
		rb := p.row(t, ri, g)
		rb.translate(0, f.Rect.Height)
		f.Rows = append(f.Rows, rb)
		f.Rect.Height += rb.Rect.Height
	}
	return f
}

// table places a body table, splitting it between rows when it does
// not fit and repeating header rows on continuation pages.
func (p *pass) table(t *model.Table) {
	g := columns(t, p.box.Width)
	g.left += p.box.X

	rows := make([]*RowBox, len(t.Rows))
	for ri := range t.Rows {
		rows[ri] = p.row(t, ri, g)
	}

	headers := 0
	headerHeight := 0.0
	if p.e.config.RepeatHeaderRows {
		headers = t.HeaderRows()
		for _, rb := range rows[:headers] {
			headerHeight += rb.Rect.Height
		}
	}

	var frag *TableFragment
	add := func(rb *RowBox) {
		if frag == nil {
			p.ensure()
			frag = &TableFragment{TableID: t.ID, Rect: model.Rect{X: g.left, Y: p.y, Width: g.total}}
			p.page.Items = append(p.page.Items, frag)
		}
		rb.translate(0, p.y)
		frag.Rows = append(frag.Rows, rb)
		frag.Rect.Height += rb.Rect.Height
		p.y += rb.Rect.Height
	}

	for ri, rb := range rows {
		h := rb.Rect.Height
		if !p.empty() && !p.fits(h) {
			p.newPage()
			frag = nil
			if ri >= headers && headers > 0 && headerHeight+h <= p.box.Height+eps {
				for _, hr := range rows[:headers] {
					c := cloneRow(hr)
					c.translate(0, -hr.Rect.Y)
					c.Repeated = true
					add(c)
				}
			}
		}
		if h > p.box.Height+eps {
			p.diags.Warn(diag.KindLayoutGeometry, "",
				"table %d row %d is taller than the page content area", t.ID, ri+1)
		}
		add(rb)
	}
}

func cloneRow(r *RowBox) *RowBox {
	c := *r
	c.Cells = make([]*CellBox, len(r.Cells))
	for i, cb := range r.Cells {
		cc := *cb
		cc.Items = cloneItems(cb.Items)
		c.Cells[i] = &cc
	}
	return &c
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		switch v := it.(type) {
		case *Line:
			l := *v
			l.Spans = append([]Span(nil), v.Spans...)
			out[i] = &l
		case *TableFragment:
			f := *v
			f.Rows = make([]*RowBox, len(v.Rows))
			for j, r := range v.Rows {
				f.Rows[j] = cloneRow(r)
			}
			out[i] = &f
		}
	}
	return out
}
