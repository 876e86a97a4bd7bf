// Package layout turns a table box skeleton into a fully positioned and
// sized grid of boxes, following the CSS 2.1 table model.
//
// One call to [TableLayout] runs the whole pipeline: grid analysis, width
// resolution, column positioning, row layout, vertical alignment and
// finalization. Boxes in the resulting tree have used values in their
// PositionX, PositionY, Width and Height attributes
// (see https://www.w3.org/TR/CSS21/tables.html#width-layout).
//
// The engine owns grid geometry only: text wrapping and nested block flow
// belong to the [FlowEngine] collaborator. Layout is synchronous and
// stateless across calls; concurrent invocations must not share a table.
package layout

import (
	bo "github.com/benoitkugler/tablelayout/boxes"
	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/logger"
)

// FlowEngine is the external content-flow collaborator, invoked twice per
// cell: once in measurement mode and once in commit mode.
type FlowEngine interface {
	// MeasureText returns the minimum and preferred content widths of the
	// run, without committing any geometry.
	MeasureText(text string, style *pr.Style) (min, pref pr.Float)

	// FlowText performs the content layout at a fixed content width and
	// returns the resulting height.
	FlowText(text string, style *pr.Style, width pr.Float) pr.Float
}

// maxTableDepth bounds the recursion into nested tables, defending
// against adversarial deeply-nested input. A table nested deeper is laid
// out as an opaque zero-sized block, with a warning.
const maxTableDepth = 50

type layoutContext struct {
	engine FlowEngine
	depth  int
}

// tableContext is the working state of one invocation. It is allocated by
// the grid analyzer and discarded once finalization completes; nested
// tables recurse with an independent context.
type tableContext struct {
	table *bo.TableBox
	rows  []bo.LogicalRow

	rowCount, columnCount int

	// occupancy[r][c] is the unique cell box whose span covers the grid
	// position, or nil.
	occupancy [][]*bo.TableCellBox

	columnMins, columnPrefs []pr.Float

	rowHeights, rowPositions []pr.Float
	collapsedRows            []bool

	spacingH, spacingV pr.Float
	collapse           bool

	// usedWidth is the used content width of the table, before the
	// border-collapse overlap reduction.
	usedWidth pr.Float

	// gridHeight is the height of the row block, spacing included.
	gridHeight pr.Float

	captionMin, captionPref pr.Float
}

// TableLayout performs one complete, stateless layout pass over table,
// using availableWidth as the containing block width. The table and its
// descendants are positioned relative to the table position (left at its
// current PositionX, PositionY).
//
// Malformed tables never fail: layout degrades to valid geometry and
// logs warnings.
func TableLayout(engine FlowEngine, table *bo.TableBox, availableWidth pr.Float) *bo.TableBox {
	ctx := &layoutContext{engine: engine}
	tableLayout(ctx, table, availableWidth)
	return table
}

func tableLayout(ctx *layoutContext, table *bo.TableBox, availableWidth pr.Float) {
	tc := newTableContext(ctx, table, availableWidth)

	resolveColumnWidths(ctx, tc, availableWidth)
	positionColumns(tc)
	layoutRows(ctx, tc)
	alignAndFinalize(ctx, tc)
}

// newTableContext resolves the table-level properties, runs the grid
// analyzer and measures the caption, giving a fresh working state.
func newTableContext(ctx *layoutContext, table *bo.TableBox, availableWidth pr.Float) *tableContext {
	resolveBoxSides(&table.BoxFields, availableWidth)

	tc := &tableContext{table: table, rows: table.LogicalRows()}
	tc.collapse = table.Style.GetBorderCollapse() == "collapse"
	if !tc.collapse {
		spacing := table.Style.GetBorderSpacing()
		tc.spacingH = spacing[0].Value
		tc.spacingV = spacing[1].Value
	}

	analyzeGrid(tc)

	if table.Caption != nil {
		resolveBoxSides(&table.Caption.BoxFields, availableWidth)
		tc.captionMin, tc.captionPref = measureContent(ctx, table.Caption.Children, table.Caption.Style)
	}
	return tc
}

// resolveBoxSides fills the used border and padding fields from style,
// resolving percentage paddings against the containing width.
func resolveBoxSides(box *bo.BoxFields, containingWidth pr.Float) {
	style := box.Style
	box.BorderTopWidth = style.BorderTopWidth
	box.BorderRightWidth = style.BorderRightWidth
	box.BorderBottomWidth = style.BorderBottomWidth
	box.BorderLeftWidth = style.BorderLeftWidth
	box.PaddingTop = resolveDimension(style.PaddingTop, containingWidth)
	box.PaddingRight = resolveDimension(style.PaddingRight, containingWidth)
	box.PaddingBottom = resolveDimension(style.PaddingBottom, containingWidth)
	box.PaddingLeft = resolveDimension(style.PaddingLeft, containingWidth)
}

func resolveDimension(dim pr.Dimension, referTo pr.Float) pr.Float {
	if dim.Unit == pr.Perc {
		if referTo < 0 {
			return 0
		}
		return referTo * dim.Value / 100
	}
	return dim.Value
}

// measureContent reports the intrinsic widths of opaque content: the
// maximum over text runs and nested tables.
func measureContent(ctx *layoutContext, content []bo.Box, style *pr.Style) (min, pref pr.Float) {
	for _, child := range content {
		var childMin, childPref pr.Float
		switch child := child.(type) {
		case *bo.TextBox:
			childMin, childPref = ctx.engine.MeasureText(child.Text, child.Style)
		case *bo.TableBox:
			childMin, childPref = tableIntrinsics(ctx, child)
		}
		min = pr.Max(min, childMin)
		pref = pr.Max(pref, childPref)
	}
	return min, pref
}

// tableIntrinsics returns the intrinsic border box widths of a nested
// table, with an independent working state.
func tableIntrinsics(ctx *layoutContext, table *bo.TableBox) (min, pref pr.Float) {
	if ctx.depth >= maxTableDepth {
		logger.WarningLogger.Printf("table nested deeper than %d: measured as empty", maxTableDepth)
		return 0, 0
	}
	nested := &layoutContext{engine: ctx.engine, depth: ctx.depth + 1}

	tc := newTableContext(nested, table, 0)
	collectColumnMeasures(nested, tc, 0)

	min = tc.tableMinWidth()
	pref = tc.tablePrefWidth()
	if width := table.Style.GetWidth(); width.IsLength() && width.Unit == pr.Px {
		pref = pr.Max(pref, width.Value)
	}
	pref = pr.Max(pref, min)
	surroundings := table.BoxFields.HorizontalSurroundings()
	return min + surroundings, pref + surroundings
}

// tableMinWidth is the minimum content width of the table: the sum of
// the column minima plus the border model adjustment.
func (tc *tableContext) tableMinWidth() pr.Float {
	return pr.Max(sum(tc.columnMins)+tc.horizontalAdjustment(), tc.captionMin)
}

// tablePrefWidth is the preferred content width of the table.
func (tc *tableContext) tablePrefWidth() pr.Float {
	return pr.Max(sum(tc.columnPrefs)+tc.horizontalAdjustment(), tc.captionMin)
}

// horizontalAdjustment is the spacing added to the column widths by the
// active border model: (columns+1) gaps under border-separate, none under
// border-collapse.
func (tc *tableContext) horizontalAdjustment() pr.Float {
	if tc.columnCount == 0 {
		return 0
	}
	return pr.Float(tc.columnCount+1) * tc.spacingH
}

func sum(values []pr.Float) pr.Float {
	var out pr.Float
	for _, v := range values {
		out += v
	}
	return out
}
