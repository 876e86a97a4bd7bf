package layout

import (
	pr "github.com/benoitkugler/tablelayout/css/properties"
)

// positionColumns converts the column widths into absolute x offsets and
// sets the used table content width.
//
// Under border-separate, the horizontal spacing is inserted before each
// column and after the last one. Under border-collapse, no spacing is
// inserted; instead each internal column boundary is shifted inward so
// the adjoining cell borders share pixels instead of doubling up, and
// the table narrows by the total overlap.
func positionColumns(tc *tableContext) {
	table := tc.table
	n := tc.columnCount
	positions := make([]pr.Float, n)
	x := table.PositionX + table.BorderLeftWidth + table.PaddingLeft

	if !tc.collapse {
		for c := 0; c < n; c++ {
			x += tc.spacingH
			positions[c] = x
			x += table.ColumnWidths[c]
		}
		table.ColumnPositions = positions
		table.Width = tc.usedWidth
		return
	}

	var reduction pr.Float
	for c := 0; c < n; c++ {
		if c > 0 {
			overlap := tc.boundaryOverlap(c)
			x -= overlap
			reduction += overlap
		}
		positions[c] = x
		x += table.ColumnWidths[c]
	}
	table.ColumnPositions = positions
	table.Width = tc.usedWidth - reduction
}

// boundaryOverlap returns how much the cells on both sides of the
// internal boundary before column c overlap: the smaller of the two
// adjoining borders disappears into the larger one, which both cells
// then share. The resulting boundary line sits half the larger border
// inward of where the separate model would put it.
func (tc *tableContext) boundaryOverlap(c int) pr.Float {
	var left, right pr.Float
	adjacent := false
	for r := 0; r < tc.rowCount; r++ {
		before, after := tc.cellAt(r, c-1), tc.cellAt(r, c)
		if before == nil || after == nil || before == after {
			// a spanning cell crosses the boundary: no border meets here
			continue
		}
		adjacent = true
		left = pr.Max(left, before.BorderRightWidth)
		right = pr.Max(right, after.BorderLeftWidth)
	}
	if !adjacent {
		return 0
	}
	return pr.Min(left, right)
}
