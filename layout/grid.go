package layout

import (
	bo "github.com/benoitkugler/tablelayout/boxes"
	"github.com/benoitkugler/tablelayout/logger"
)

// analyzeGrid builds the row x column occupancy grid and stamps every
// cell with its column and row origin.
//
// Cells are placed in document order, at the first column index where the
// whole colspan x rowspan area is free across every row the span covers.
// A span exceeding the current column count grows the grid: content is
// never truncated. A rowspan extending past the last row is clamped.
func analyzeGrid(tc *tableContext) {
	tc.rowCount = len(tc.rows)
	tc.occupancy = make([][]*bo.TableCellBox, tc.rowCount)

	for r, row := range tc.rows {
		for _, cell := range row.Cells {
			if max := tc.rowCount - r; cell.RowSpan > max {
				logger.WarningLogger.Printf("rowspan %d exceeds the table: clamped to %d", cell.RowSpan, max)
				cell.RowSpan = max
			}
			x := 0
			for !tc.spanFits(r, x, cell) {
				x++
			}
			cell.GridX, cell.GridY = x, r
			tc.markSpan(r, x, cell)
			if end := x + cell.ColSpan; end > tc.columnCount {
				tc.columnCount = end
			}
		}
	}
}

// spanFits returns true when the span area of cell anchored at (r, x) is
// entirely free. Positions beyond the currently marked columns are free.
func (tc *tableContext) spanFits(r, x int, cell *bo.TableCellBox) bool {
	for rr := r; rr < r+cell.RowSpan; rr++ {
		row := tc.occupancy[rr]
		for c := x; c < x+cell.ColSpan && c < len(row); c++ {
			if row[c] != nil {
				return false
			}
		}
	}
	return true
}

func (tc *tableContext) markSpan(r, x int, cell *bo.TableCellBox) {
	for rr := r; rr < r+cell.RowSpan; rr++ {
		for len(tc.occupancy[rr]) < x+cell.ColSpan {
			tc.occupancy[rr] = append(tc.occupancy[rr], nil)
		}
		for c := x; c < x+cell.ColSpan; c++ {
			tc.occupancy[rr][c] = cell
		}
	}
}

// cellAt returns the cell box covering the given grid position, or nil.
func (tc *tableContext) cellAt(r, c int) *bo.TableCellBox {
	if r < 0 || r >= len(tc.occupancy) {
		return nil
	}
	row := tc.occupancy[r]
	if c < 0 || c >= len(row) {
		return nil
	}
	return row[c]
}
