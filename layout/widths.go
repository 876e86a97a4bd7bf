package layout

import (
	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/logger"
	"github.com/benoitkugler/tablelayout/utils"
)

// resolveColumnWidths measures the cells and runs the width distribution
// algorithm selected by the table layout mode, filling
// table.ColumnWidths and tc.usedWidth so that
//
//	sum(ColumnWidths) + horizontalAdjustment == usedWidth
//
// holds exactly, with no cumulative rounding drift.
func resolveColumnWidths(ctx *layoutContext, tc *tableContext, availableWidth pr.Float) {
	collectColumnMeasures(ctx, tc, availableWidth)

	if tc.columnCount == 0 {
		// a table with no columns is sized by its own border and padding
		tc.usedWidth = 0
		tc.table.ColumnWidths = nil
		return
	}

	var widths []pr.Float
	if tc.table.Style.GetTableLayout() == "fixed" {
		widths = fixedWidths(tc, availableWidth)
	} else {
		widths = autoWidths(tc, availableWidth)
	}
	tc.table.ColumnWidths = widths
}

// collectColumnMeasures computes, for every column, the maximum minimum
// and preferred widths contributed by the cells, each measurement rounded
// up to the next whole pixel. A cell spanning N columns distributes its
// measurements equally across those N columns.
func collectColumnMeasures(ctx *layoutContext, tc *tableContext, availableWidth pr.Float) {
	tc.columnMins = make([]pr.Float, tc.columnCount)
	tc.columnPrefs = make([]pr.Float, tc.columnCount)

	// reference for percentage cell widths
	widthRef := availableWidth
	if w := tc.table.Style.GetWidth(); w.IsLength() && w.Unit == pr.Px {
		widthRef = w.Value
	}

	for r, row := range tc.rows {
		for _, cell := range row.Cells {
			if cell.GridY != r {
				continue
			}
			resolveBoxSides(&cell.BoxFields, widthRef)
			min, pref := measureContent(ctx, cell.Children, cell.Style)
			surroundings := cell.HorizontalSurroundings()
			cellMin := utils.Ceil(utils.Fl(min) + utils.Fl(surroundings))
			cellPref := utils.Ceil(utils.Fl(pref) + utils.Fl(surroundings))
			if w := cell.Style.GetWidth(); !w.IsAuto() {
				if used, ok := pr.ResolvePercentage(w, widthRef).(pr.Float); ok {
					cellPref = utils.MaxF(cellPref, utils.Ceil(utils.Fl(used+surroundings)))
				}
			}
			cellPref = utils.MaxF(cellPref, cellMin)

			span := pr.Float(cell.ColSpan)
			minShare := utils.Ceil(cellMin / utils.Fl(span))
			prefShare := utils.Ceil(cellPref / utils.Fl(span))
			for c := cell.GridX; c < cell.GridX+cell.ColSpan; c++ {
				tc.columnMins[c] = pr.Max(tc.columnMins[c], pr.Float(minShare))
				tc.columnPrefs[c] = pr.Max(tc.columnPrefs[c], pr.Float(prefShare))
			}
		}
	}
	for c := range tc.columnPrefs {
		tc.columnPrefs[c] = pr.Max(tc.columnPrefs[c], tc.columnMins[c])
	}
}

// autoWidths implements the CSS 2.1 §17.5.2.2 automatic layout: the used
// width is clamped between the table minimum and preferred widths, and
// columns interpolate between their minimum and maximum accordingly.
func autoWidths(tc *tableContext, availableWidth pr.Float) []pr.Float {
	table := tc.table
	adjustment := tc.horizontalAdjustment()
	tableMin := tc.tableMinWidth()
	tablePref := tc.tablePrefWidth()

	var used pr.Float
	if w := table.Style.GetWidth(); !w.IsAuto() {
		explicit, _ := pr.ResolvePercentage(w, availableWidth).(pr.Float)
		used = pr.Max(explicit, tableMin)
	} else {
		available := availableWidth - table.HorizontalSurroundings()
		used = pr.Min(pr.Max(available, tableMin), tablePref)
	}
	if mw := table.Style.GetMinWidth(); !mw.IsAuto() {
		if minWidth, ok := pr.ResolvePercentage(mw, availableWidth).(pr.Float); ok {
			used = pr.Max(used, minWidth)
		}
	}

	budget := used - adjustment
	sumMin := sum(tc.columnMins)
	sumPref := sum(tc.columnPrefs)
	n := tc.columnCount

	widths := make([]pr.Float, n)
	switch {
	case budget >= sumPref:
		// every column takes its preferred width, then the surplus is
		// distributed in proportion to the preferred widths
		surplus := budget - sumPref
		for c := range widths {
			if sumPref > 0 {
				widths[c] = tc.columnPrefs[c] + surplus*tc.columnPrefs[c]/sumPref
			} else {
				widths[c] = budget / pr.Float(n)
			}
		}
	default:
		// interpolate each column between its minimum and preferred
		// widths, never below the minimum
		var ratio pr.Float
		if denom := sumPref - sumMin; denom > 0 {
			ratio = pr.Min(pr.Max((budget-sumMin)/denom, 0), 1)
		}
		for c := range widths {
			widths[c] = tc.columnMins[c] + (tc.columnPrefs[c]-tc.columnMins[c])*ratio
		}
	}

	tc.usedWidth = used
	return roundWidths(widths, budget)
}

// fixedWidths implements the fixed layout: column widths come from the
// first logical row, and row content does not influence sizing.
func fixedWidths(tc *tableContext, availableWidth pr.Float) []pr.Float {
	table := tc.table
	adjustment := tc.horizontalAdjustment()

	var used pr.Float
	if w := table.Style.GetWidth(); !w.IsAuto() {
		used, _ = pr.ResolvePercentage(w, availableWidth).(pr.Float)
	} else {
		used = availableWidth - table.HorizontalSurroundings()
	}
	used = pr.Max(used, 0)
	budget := used - adjustment

	n := tc.columnCount
	widths := make([]pr.Float, n)
	explicit := make([]bool, n)
	if len(tc.rows) != 0 {
		for _, cell := range tc.rows[0].Cells {
			if cell.GridY != 0 {
				continue
			}
			w := cell.Style.GetWidth()
			if w.IsAuto() {
				continue
			}
			value, ok := pr.ResolvePercentage(w, used).(pr.Float)
			if !ok {
				continue
			}
			share := (value + cell.HorizontalSurroundings()) / pr.Float(cell.ColSpan)
			for c := cell.GridX; c < cell.GridX+cell.ColSpan; c++ {
				widths[c] = pr.Max(widths[c], share)
				explicit[c] = true
			}
		}
	}

	var explicitSum pr.Float
	autoCount := 0
	for c := range widths {
		if explicit[c] {
			explicitSum += widths[c]
		} else {
			autoCount++
		}
	}
	remaining := budget - explicitSum
	if autoCount != 0 {
		share := pr.Max(remaining/pr.Float(autoCount), 0)
		for c := range widths {
			if !explicit[c] {
				widths[c] = share
			}
		}
	} else if remaining > 0 {
		// all columns are explicit: the leftover is spread over all of
		// them, so the table still fills its used width
		for c := range widths {
			widths[c] += remaining / pr.Float(n)
		}
	}

	if total := sum(widths) + adjustment; total > used {
		// over-constrained explicit widths widen the table
		used = total
		budget = used - adjustment
	}
	tc.usedWidth = used
	return roundWidths(widths, budget)
}

// roundWidths rounds the column widths to whole pixels, assigning the
// rounding residual entirely to the last column so the exact-sum
// invariant holds.
func roundWidths(widths []pr.Float, budget pr.Float) []pr.Float {
	n := len(widths)
	if n == 0 {
		return widths
	}
	var total pr.Float
	for c := 0; c < n-1; c++ {
		widths[c] = pr.Float(utils.RoundPixel(utils.Fl(widths[c])))
		total += widths[c]
	}
	last := budget - total
	if last < 0 {
		logger.WarningLogger.Printf("over-constrained columns: last column clamped to zero width")
		last = 0
	}
	widths[n-1] = last
	return widths
}
