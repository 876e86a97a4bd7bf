package layout

import (
	bo "github.com/benoitkugler/tablelayout/boxes"
	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/logger"
)

// layoutRows flows every cell's content at its final width, computes the
// row heights and positions, and reconciles rowspanning cells.
func layoutRows(ctx *layoutContext, tc *tableContext) {
	table := tc.table

	tc.rowHeights = make([]pr.Float, tc.rowCount)
	tc.rowPositions = make([]pr.Float, tc.rowCount)
	tc.collapsedRows = make([]bool, tc.rowCount)

	// first pass: commit content flow and collect natural heights
	var spanningCells []*bo.TableCellBox
	for r, row := range tc.rows {
		tc.collapsedRows[r] = row.Style().GetVisibility() == "collapse"
		for _, cell := range row.Cells {
			if cell.GridY != r {
				continue
			}
			width := tc.cellBorderBoxWidth(cell)
			cell.Width = pr.Max(width-cell.HorizontalSurroundings(), 0)
			cell.ContentHeight = flowContent(ctx, cell.Children, cell.Width)

			natural := cellNaturalHeight(cell)
			if cell.RowSpan > 1 {
				spanningCells = append(spanningCells, cell)
				continue
			}
			tc.rowHeights[r] = pr.Max(tc.rowHeights[r], natural)
		}
		if height := explicitHeight(row.Style()); height != nil {
			tc.rowHeights[r] = pr.Max(tc.rowHeights[r], height.V())
		}
	}

	// corrective pass: a rowspanning cell taller than the rows it spans
	// pushes the excess into the last spanned row. This runs once, not to
	// a fixed point: overlapping rowspan patterns keep this approximate.
	for _, cell := range spanningCells {
		spanned := tc.spannedHeight(cell)
		if natural := cellNaturalHeight(cell); natural > spanned {
			if target := tc.lastVisibleRow(cell.GridY, cell.RowSpan); target != -1 {
				tc.rowHeights[target] += natural - spanned
			}
		}
	}

	// row positions, reclaiming the space of visibility:collapse rows
	y := table.PositionY + table.BorderTopWidth + table.PaddingTop
	anyVisible := false
	for r := 0; r < tc.rowCount; r++ {
		if tc.collapsedRows[r] {
			tc.rowHeights[r] = 0
			tc.rowPositions[r] = y
			continue
		}
		if !tc.collapse {
			y += tc.spacingV
		}
		anyVisible = true
		tc.rowPositions[r] = y
		y += tc.rowHeights[r]
	}
	if anyVisible && !tc.collapse {
		y += tc.spacingV
	}
	tc.gridHeight = y - (table.PositionY + table.BorderTopWidth + table.PaddingTop)

	tc.placeBoxes()
}

// cellBorderBoxWidth is the distance from the left edge of the first
// spanned column to the right edge of the last one, valid under both
// border models.
func (tc *tableContext) cellBorderBoxWidth(cell *bo.TableCellBox) pr.Float {
	table := tc.table
	last := cell.GridX + cell.ColSpan - 1
	start := table.ColumnPositions[cell.GridX]
	end := table.ColumnPositions[last] + table.ColumnWidths[last]
	// position based, so spanned gaps and collapsed overlaps are included
	return end - start
}

// cellNaturalHeight is the border box height the cell would take on its
// own: measured content or explicit height, whichever is larger.
func cellNaturalHeight(cell *bo.TableCellBox) pr.Float {
	height := cell.ContentHeight
	if explicit := explicitHeight(cell.Style); explicit != nil {
		height = pr.Max(height, explicit.V())
	}
	return height + cell.VerticalSurroundings()
}

// explicitHeight returns a pixel height, or nil. Percentage heights have
// no resolvable base here and fall back to the auto-computed height.
func explicitHeight(style *pr.Style) pr.MaybeFloat {
	h := style.GetHeight()
	if h.IsAuto() {
		return nil
	}
	if h.Unit == pr.Perc {
		logger.WarningLogger.Printf("unsupported percentage height: falling back to auto")
		return nil
	}
	return h.Value
}

// spannedHeight is the total height of the rows a cell spans, plus the
// inter-row spacing it crosses under the separate border model.
func (tc *tableContext) spannedHeight(cell *bo.TableCellBox) pr.Float {
	var out pr.Float
	visible := 0
	for r := cell.GridY; r < cell.GridY+cell.RowSpan; r++ {
		if tc.collapsedRows[r] {
			continue
		}
		out += tc.rowHeights[r]
		visible++
	}
	if visible > 1 && !tc.collapse {
		out += pr.Float(visible-1) * tc.spacingV
	}
	return out
}

// lastVisibleRow returns the index of the last non collapsed row in the
// span, or -1.
func (tc *tableContext) lastVisibleRow(from, span int) int {
	for r := from + span - 1; r >= from; r-- {
		if !tc.collapsedRows[r] {
			return r
		}
	}
	return -1
}

// placeBoxes stamps the final geometry on rows, row-groups and cells,
// and stacks each cell's content at its content box origin.
func (tc *tableContext) placeBoxes() {
	table := tc.table
	contentX := table.PositionX + table.BorderLeftWidth + table.PaddingLeft

	groupStart := make(map[*bo.TableRowGroupBox]int)
	groupEnd := make(map[*bo.TableRowGroupBox]int)
	for r, row := range tc.rows {
		if row.Row != nil {
			row.Row.PositionX = contentX
			row.Row.PositionY = tc.rowPositions[r]
			row.Row.Width = table.Width
			row.Row.Height = tc.rowHeights[r]
		}
		if row.Group != nil {
			if _, ok := groupStart[row.Group]; !ok {
				groupStart[row.Group] = r
			}
			groupEnd[row.Group] = r
		}
		for _, cell := range row.Cells {
			if cell.GridY != r {
				continue
			}
			cell.PositionX = table.ColumnPositions[cell.GridX]
			cell.PositionY = tc.rowPositions[r]
			cell.Height = pr.Max(tc.spannedHeight(cell)-cell.VerticalSurroundings(), 0)

			// stack the content at the cell content box; vertical
			// alignment shifts it afterwards
			stackContent(&cell.BoxFields)
		}
	}
	for group, start := range groupStart {
		end := groupEnd[group]
		group.PositionX = contentX
		group.PositionY = tc.rowPositions[start]
		group.Width = table.Width
		group.Height = tc.rowPositions[end] + tc.rowHeights[end] - tc.rowPositions[start]
	}
}

func childOuterHeight(child bo.Box) pr.Float {
	if table, ok := child.(*bo.TableBox); ok {
		return table.BoundingHeight()
	}
	return child.Box().BorderHeight()
}

// childTop is the top of the child's bounding box: the caption of a
// nested table may sit above its border box.
func childTop(child bo.Box) pr.Float {
	if table, ok := child.(*bo.TableBox); ok && table.Caption != nil {
		return pr.Min(table.PositionY, table.Caption.PositionY)
	}
	return child.Box().PositionY
}

// stackContent stacks the opaque content of a cell or caption at its
// content box origin, moving each child and its descendants.
func stackContent(box *bo.BoxFields) {
	y := box.ContentBoxY()
	for _, child := range box.Children {
		child.Translate(box.ContentBoxX()-child.Box().PositionX, y-childTop(child))
		y += childOuterHeight(child)
	}
}

// flowContent commits the content flow of a cell or caption at its final
// content width, sizing text runs and nested tables stacked vertically,
// and returns the measured content height.
func flowContent(ctx *layoutContext, content []bo.Box, width pr.Float) pr.Float {
	var height pr.Float
	for _, child := range content {
		switch child := child.(type) {
		case *bo.TextBox:
			child.Width = width
			child.Height = ctx.engine.FlowText(child.Text, child.Style, width)
			height += child.Height
		case *bo.TableBox:
			if ctx.depth >= maxTableDepth {
				logger.WarningLogger.Printf("table nested deeper than %d: laid out as empty", maxTableDepth)
				continue
			}
			nested := &layoutContext{engine: ctx.engine, depth: ctx.depth + 1}
			tableLayout(nested, child, width)
			height += child.BoundingHeight()
		}
	}
	return height
}
