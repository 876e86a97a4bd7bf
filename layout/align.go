package layout

import (
	bo "github.com/benoitkugler/tablelayout/boxes"
	pr "github.com/benoitkugler/tablelayout/css/properties"
)

// alignAndFinalize repositions cell content per vertical-align, computes
// the table content height, places the caption and evaluates the
// empty-cells paint flags.
func alignAndFinalize(ctx *layoutContext, tc *tableContext) {
	table := tc.table

	for r, row := range tc.rows {
		for _, cell := range row.Cells {
			if cell.GridY != r {
				continue
			}
			alignCellContent(cell)
			// geometry is unaffected: the painting collaborator consults
			// this flag to skip borders and backgrounds
			cell.SuppressPaint = !tc.collapse &&
				cell.Style.GetEmptyCells() == "hide" && cell.IsEmpty()
		}
	}

	table.Height = tc.gridHeight

	if caption := table.Caption; caption != nil {
		caption.Width = pr.Max(table.BorderWidth()-caption.HorizontalSurroundings(), 0)
		caption.Height = flowContent(ctx, caption.Children, caption.Width)

		caption.PositionX = table.PositionX
		if table.Style.GetCaptionSide() == "bottom" {
			caption.PositionY = table.PositionY + table.BorderHeight()
		} else {
			// shift the grid down and let the caption take the top: the
			// table bounding box then starts at the caption
			captionHeight := caption.BorderHeight()
			table.Caption = nil
			table.Translate(0, captionHeight)
			table.Caption = caption
			caption.PositionY = table.PositionY - captionHeight
		}
		stackContent(&caption.BoxFields)
	}
}

// alignCellContent shifts the cell content inside its content area
// according to the vertical-align mode. The shift goes through Translate,
// so every descendant position record moves with it.
func alignCellContent(cell *bo.TableCellBox) {
	slack := cell.Height - cell.ContentHeight
	if slack <= 0 {
		return
	}
	var offset pr.Float
	switch cell.Style.GetVerticalAlign() {
	case "top", "baseline":
		// baseline currently resolves to top: a row-wide baseline needs
		// font metrics the flow collaborator does not expose
	case "bottom":
		offset = slack
	default: // middle
		offset = slack / 2
	}
	if offset == 0 {
		return
	}
	for _, child := range cell.Children {
		child.Translate(0, offset)
	}
}
