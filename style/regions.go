package style

import "github.com/tsawler/docxlayout/docx"

// CellRegions returns the conditional regions that apply to the cell at
// (row, col) of a rows x cols table, in ascending precedence.
func CellRegions(tp TableProps, row, col, rows, cols int) []docx.TableRegion {
	look := tp.Look
	firstRow := look.FirstRow && row == 0
	lastRow := look.LastRow && row == rows-1 && rows > 1
	firstCol := look.FirstColumn && col == 0
	lastCol := look.LastColumn && col == cols-1 && cols > 1

	rowBand, colBand := max(tp.RowBandSize, 1), max(tp.ColBandSize, 1)
	regions := []docx.TableRegion{docx.RegionWholeTable}

	if !look.NoVBand && !firstCol && !lastCol {
		c := col
		if look.FirstColumn {
			c--
		}
		if (c/colBand)%2 == 0 {
			regions = append(regions, docx.RegionBand1Vert)
		} else {
			regions = append(regions, docx.RegionBand2Vert)
		}
	}
	if !look.NoHBand && !firstRow && !lastRow {
		r := row
		if look.FirstRow {
			r--
		}
		if (r/rowBand)%2 == 0 {
			regions = append(regions, docx.RegionBand1Horz)
		} else {
			regions = append(regions, docx.RegionBand2Horz)
		}
	}
	if firstCol {
		regions = append(regions, docx.RegionFirstCol)
	}
	if lastCol {
		regions = append(regions, docx.RegionLastCol)
	}
	if firstRow {
		regions = append(regions, docx.RegionFirstRow)
	}
	if lastRow {
		regions = append(regions, docx.RegionLastRow)
	}
	switch {
	case firstRow && lastCol:
		regions = append(regions, docx.RegionNECell)
	case firstRow && firstCol:
		regions = append(regions, docx.RegionNWCell)
	case lastRow && lastCol:
		regions = append(regions, docx.RegionSECell)
	case lastRow && firstCol:
		regions = append(regions, docx.RegionSWCell)
	}
	return regions
}
