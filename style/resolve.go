package style

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
)

// TableLayer places content inside a table cell for resolution: the
// table's style and the conditional regions that apply to the cell, in
// ascending precedence.
type TableLayer struct {
	StyleID string
	Regions []docx.TableRegion
}

// errs collects soft errors without duplicates.
type errs []error

func (e *errs) add(err error) {
	if err == nil {
		return
	}
	for _, prev := range *e {
		if prev.Error() == err.Error() {
			return
		}
	}
	*e = append(*e, err)
}

func (e errs) err() error {
	return errors.Join(e...)
}

// paragraphStyle returns the style governing a paragraph whose pStyle is
// id. Absent or undefined ids fall back to the default paragraph style.
func (t *Table) paragraphStyle(id string, soft *errs) string {
	if id == "" {
		return t.defaultPara
	}
	if _, ok := t.styles.Lookup(id); !ok {
		soft.add(diag.New(diag.KindStyleChain, diag.ErrDanglingStyle, t.part,
			fmt.Sprintf("paragraph style %q is not defined", id)))
		return t.defaultPara
	}
	return id
}

// tableStyle returns the effective style of a table whose tblStyle is id.
func (t *Table) tableStyle(id string) string {
	if id == "" {
		return t.defaultTbl
	}
	return id
}

// chainLayer folds id and records any chain error.
func (t *Table) chainLayer(id string, soft *errs) *flat {
	f := t.flatten(id)
	soft.add(f.err)
	return f
}

// tableLayers returns the flattened table styles with their conditional
// formats, innermost table first, highest precedence first.
func (t *Table) tableLayers(tables []TableLayer, soft *errs) []layer {
	var out []layer
	for _, tl := range tables {
		f := t.chainLayer(t.tableStyle(tl.StyleID), soft)
		regions := append([]docx.TableRegion(nil), tl.Regions...)
		sort.Slice(regions, func(i, j int) bool { return regions[i] > regions[j] })
		for _, r := range regions {
			if cf, ok := f.conditional[r]; ok {
				out = append(out, layer{para: cf.Para, run: cf.Run, row: cf.Row, cell: cf.Cell})
			}
		}
		out = append(out, layer{para: f.para, run: f.run, row: f.row, cell: f.cell})
	}
	return out
}

type layer struct {
	para docx.ParaProps
	run  docx.RunProps
	row  docx.RowProps
	cell docx.CellProps
}

// ResolveParagraph returns the effective paragraph formatting.
func (t *Table) ResolveParagraph(direct docx.ParaProps, tables []TableLayer) (Paragraph, error) {
	return t.ResolveParagraphLevel(direct, tables, docx.ParaProps{})
}

// ResolveParagraphLevel is ResolveParagraph with the paragraph properties
// of a numbering level layered directly beneath the direct formatting.
func (t *Table) ResolveParagraphLevel(direct docx.ParaProps, tables []TableLayer, level docx.ParaProps) (Paragraph, error) {
	var soft errs
	id := t.paragraphStyle(direct.StyleID, &soft)
	style := t.chainLayer(id, &soft)

	pp := direct.Over(level).Over(style.para)
	for _, l := range t.tableLayers(tables, &soft) {
		pp = pp.Over(l.para)
	}
	pp = pp.Over(t.styles.DefaultPara)

	p := paragraphFrom(pp)
	p.StyleID = id
	p.StyleName = style.name
	return p, soft.err()
}

// ResolveRun returns the effective character formatting of a run in a
// paragraph whose pStyle is paraStyle.
func (t *Table) ResolveRun(direct docx.RunProps, paraStyle string, tables []TableLayer) (Run, error) {
	var soft errs
	charID := direct.StyleID
	if charID == "" {
		charID = t.defaultChar
	}
	rp := direct
	if charID != "" {
		rp = rp.Over(t.chainLayer(charID, &soft).run)
	}
	rp = rp.Over(t.chainLayer(t.paragraphStyle(paraStyle, &soft), &soft).run)
	for _, l := range t.tableLayers(tables, &soft) {
		rp = rp.Over(l.run)
	}
	rp = rp.Over(t.styles.DefaultRun)

	r := runFrom(rp)
	r.StyleID = direct.StyleID
	return r, soft.err()
}

// ResolveTable returns the effective table properties.
func (t *Table) ResolveTable(direct docx.TableProps) (TableProps, error) {
	var soft errs
	id := t.tableStyle(direct.StyleID)
	tp := direct.Over(t.chainLayer(id, &soft).table)

	out := TableProps{
		StyleID:       id,
		Width:         deref(tp.Width, docx.Width{Type: docx.WidthAuto}),
		Justification: deref(tp.Justification, docx.JustifyStart),
		Indent:        deref(tp.Indent, 0),
		Fixed:         deref(tp.Layout, "") == "fixed",
		CellMargins:   edgesFrom(tp.CellMargins, Edges{Left: BaselineCellMargin, Right: BaselineCellMargin}),
		Borders:       tp.Borders,
		Look:          deref(direct.Look, docx.DefaultTableLook),
		RowBandSize:   deref(tp.RowBandSize, 1),
		ColBandSize:   deref(tp.ColBandSize, 1),
	}
	if out.RowBandSize < 1 {
		out.RowBandSize = 1
	}
	if out.ColBandSize < 1 {
		out.ColBandSize = 1
	}
	return out, soft.err()
}

// ResolveRow returns the effective row formatting.
func (t *Table) ResolveRow(direct docx.RowProps, tl TableLayer) (Row, error) {
	var soft errs
	rp := direct
	for _, l := range t.tableLayers([]TableLayer{tl}, &soft) {
		rp = rp.Over(l.row)
	}
	return Row{
		Height:     deref(rp.Height, 0),
		HeightRule: deref(rp.HeightRule, docx.HeightAtLeast),
		Header:     deref(rp.Header, false),
		CantSplit:  deref(rp.CantSplit, false),
	}, soft.err()
}

// ResolveCell returns the effective cell formatting. Cell margins and
// borders fall back to those of the resolved table.
func (t *Table) ResolveCell(direct docx.CellProps, tl TableLayer, table TableProps) (Cell, error) {
	var soft errs
	cp := direct
	for _, l := range t.tableLayers([]TableLayer{tl}, &soft) {
		cp = cp.Over(l.cell)
	}
	c := Cell{
		Width:    deref(direct.Width, docx.Width{Type: docx.WidthAuto}),
		GridSpan: deref(direct.GridSpan, 1),
		VMerge:   deref(direct.VMerge, 0),
		VAlign:   deref(cp.VAlign, docx.VAlignTop),
		Shading:  cp.Shading,
		NoWrap:   deref(cp.NoWrap, false),
		Margins:  edgesFrom(cp.Margins, table.CellMargins),
		Borders:  cp.Borders.Over(table.Borders),
	}
	if c.GridSpan < 1 {
		c.GridSpan = 1
	}
	return c, soft.err()
}

// OverlayRun applies every property set in props on top of base. It is
// used for list markers, whose numbering level formatting overrides the
// paragraph's run formatting.
func OverlayRun(base Run, props docx.RunProps) Run {
	if props.Font != nil {
		base.Font = *props.Font
	}
	if props.FontEastAsia != nil {
		base.FontEastAsia = *props.FontEastAsia
	}
	if props.Size != nil {
		base.Size = *props.Size
	}
	if props.Bold != nil {
		base.Bold = *props.Bold
	}
	if props.Italic != nil {
		base.Italic = *props.Italic
	}
	if props.Underline != nil {
		base.Underline = *props.Underline
		if base.Underline == "none" {
			base.Underline = ""
		}
	}
	if props.Strike != nil {
		base.Strike = *props.Strike
	}
	if props.Caps != nil {
		base.Caps = *props.Caps
	}
	if props.SmallCaps != nil {
		base.SmallCaps = *props.SmallCaps
	}
	if props.Vanish != nil {
		base.Hidden = *props.Vanish
	}
	if props.Color != nil {
		base.Color = *props.Color
	}
	return base
}
