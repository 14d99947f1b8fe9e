package builder

import (
	"fmt"

	"github.com/tsawler/docxlayout/diag"
	"github.com/tsawler/docxlayout/docx"
	"github.com/tsawler/docxlayout/model"
	"github.com/tsawler/docxlayout/style"
)

func (b *Builder) table(t *docx.Table, outer []style.TableLayer) (*model.Table, error) {
	props, err := b.styles.ResolveTable(t.Props)
	b.soft(err)

	out := &model.Table{ID: b.id(), Props: props, Columns: append([]float64(nil), t.Grid...)}
	rows := len(t.Rows)

	for ri, row := range t.Rows {
		if len(row.Cells) == 0 {
			return nil, diag.New(diag.KindStructural, diag.ErrStructuralViolation, b.config.Part,
				fmt.Sprintf("table row %d has no cells", ri+1)).At(row.Offset)
		}
		cols := len(row.Cells)

		rowLayer := style.TableLayer{StyleID: props.StyleID, Regions: style.CellRegions(props, ri, 0, rows, cols)}
		rp, err := b.styles.ResolveRow(row.Props, rowLayer)
		b.soft(err)
		mrow := &model.Row{Props: rp}

		column := 0
		for ci, cell := range row.Cells {
			layer := style.TableLayer{StyleID: props.StyleID, Regions: style.CellRegions(props, ri, ci, rows, cols)}
			cp, err := b.styles.ResolveCell(cell.Props, layer, props)
			b.soft(err)

			mcell := &model.Cell{Props: cp, Column: column}
			column += cp.GridSpan

			tables := append([]style.TableLayer{layer}, outer...)
			for _, blk := range cell.Blocks {
				built, err := b.block(blk, tables)
				if err != nil {
					return nil, err
				}
				mcell.Blocks = append(mcell.Blocks, built)
			}
			mrow.Cells = append(mrow.Cells, mcell)
		}
		out.Rows = append(out.Rows, mrow)
	}
	return out, nil
}
