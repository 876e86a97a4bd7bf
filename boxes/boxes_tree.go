package boxes

import (
	"fmt"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	"golang.org/x/net/html"
)

// Structure describes which structural levels a table or row-group box
// provides itself, when the content tree omits them. It is consulted only
// by [TableBox.LogicalRows]; the rest of the engine iterates logical rows
// without branching on it.
type Structure uint8

const (
	// StructureNormal is a well formed level: a table owning row-groups,
	// or a row-group owning rows.
	StructureNormal Structure = iota
	// ActsAsRowGroup flags a table whose immediate children are rows.
	ActsAsRowGroup
	// ActsAsRow flags a table or row-group whose immediate children are
	// cells.
	ActsAsRow
	// ActsAsRowGroupAndRow combines both: a table owning cells directly.
	ActsAsRowGroupAndRow
)

func (s Structure) String() string {
	switch s {
	case StructureNormal:
		return "normal"
	case ActsAsRowGroup:
		return "acts-as-row-group"
	case ActsAsRow:
		return "acts-as-row"
	case ActsAsRowGroupAndRow:
		return "acts-as-row-group-and-row"
	default:
		return "<invalid structure>"
	}
}

// TableBox is the root of one layout invocation.
type TableBox struct {
	BoxFields

	// Caption is laid out and positioned above or below the grid during
	// finalization. Nil when the table has no caption.
	Caption *TableCaptionBox

	Structure Structure
	// HasAnonymousCellWrapper is set when loose inline content had to be
	// wrapped in an anonymous cell box.
	HasAnonymousCellWrapper bool

	// Filled during layout.
	ColumnWidths, ColumnPositions []pr.Float
}

func NewTableBox(style *pr.Style, element *html.Node, children []Box) *TableBox {
	out := TableBox{BoxFields: newBoxFields(style, element, children)}
	return &out
}

func (b *TableBox) Type() string { return "table" }

func (b *TableBox) String() string {
	return fmt.Sprintf("<TableBox %s>", b.Structure)
}

func (b *TableBox) Translate(dx, dy pr.Float) {
	if dx == 0 && dy == 0 {
		return
	}
	for index, position := range b.ColumnPositions {
		b.ColumnPositions[index] = position + dx
	}
	if b.Caption != nil {
		b.Caption.Translate(dx, dy)
	}
	b.BoxFields.Translate(dx, dy)
}

// BoundingHeight returns the height of the table border box extended by
// the caption, if any.
func (b *TableBox) BoundingHeight() pr.Float {
	out := b.BorderHeight()
	if b.Caption != nil {
		out += b.Caption.BorderHeight()
	}
	return out
}

// TableRowGroupBox groups rows, with head/body/foot semantics.
type TableRowGroupBox struct {
	BoxFields

	IsHeader, IsFooter bool

	Structure Structure // StructureNormal or ActsAsRow
}

func NewTableRowGroupBox(style *pr.Style, element *html.Node, children []Box) *TableRowGroupBox {
	out := TableRowGroupBox{BoxFields: newBoxFields(style, element, children)}
	return &out
}

func (b *TableRowGroupBox) Type() string { return "row-group" }

// TableRowBox owns an ordered sequence of cells.
type TableRowBox struct {
	BoxFields

	// Group is a read-only, non owning back-reference, nil under a table
	// acting as its own row-group. Ownership flows strictly top-down.
	Group *TableRowGroupBox
}

func NewTableRowBox(style *pr.Style, element *html.Node, children []Box) *TableRowBox {
	out := TableRowBox{BoxFields: newBoxFields(style, element, children)}
	return &out
}

func (b *TableRowBox) Type() string { return "row" }

// TableCellBox is the leaf table unit. Its children are opaque content
// (text runs and nested tables), measured and flowed through the
// content-flow collaborator.
type TableCellBox struct {
	BoxFields

	// Row is a read-only, non owning back-reference, nil under a box
	// acting as its own row.
	Row *TableRowBox

	// ColSpan and RowSpan are both >= 1, clamped from malformed input.
	ColSpan, RowSpan int

	// GridX and GridY are the column and row origins in the occupancy
	// grid, stamped by the grid analyzer. They hold -1 before that.
	GridX, GridY int

	// ContentHeight is the measured height of the cell content, before
	// the cell is stretched to its rows. Used by vertical alignment.
	ContentHeight pr.Float

	// Anonymous is set on cells wrapping loose inline content.
	Anonymous bool

	// SuppressPaint is set during finalization for cells whose border and
	// background must not be painted (empty-cells: hide under the
	// separate border model).
	SuppressPaint bool
}

func NewTableCellBox(style *pr.Style, element *html.Node, children []Box) *TableCellBox {
	out := TableCellBox{
		BoxFields: newBoxFields(style, element, children),
		ColSpan:   1, RowSpan: 1,
		GridX: -1, GridY: -1,
	}
	return &out
}

func (b *TableCellBox) Type() string { return "cell" }

// IsEmpty returns true when the cell has no visible rendered content.
func (b *TableCellBox) IsEmpty() bool {
	for _, child := range b.Children {
		if text, ok := child.(*TextBox); ok && text.Text == "" {
			continue
		}
		return false
	}
	return true
}

// TableCaptionBox holds the caption content, laid out at the table width.
type TableCaptionBox struct {
	BoxFields
}

func NewTableCaptionBox(style *pr.Style, element *html.Node, children []Box) *TableCaptionBox {
	out := TableCaptionBox{BoxFields: newBoxFields(style, element, children)}
	return &out
}

func (b *TableCaptionBox) Type() string { return "caption" }

// TextBox is an opaque run of inline content inside a cell or caption.
type TextBox struct {
	BoxFields

	Text string
}

func NewTextBox(style *pr.Style, element *html.Node, text string) *TextBox {
	out := TextBox{BoxFields: newBoxFields(style, element, nil), Text: text}
	return &out
}

func (b *TextBox) Type() string { return "text" }

// LogicalRow is one row of the logical grid, anonymous levels included.
// Group is nil when the table acts as its own row-group; Row is nil when
// the table or the group acts as its own row.
type LogicalRow struct {
	Group *TableRowGroupBox
	Row   *TableRowBox
	Cells []*TableCellBox
}

var anonymousStyle = pr.NewStyle()

// Style returns the row style, or initial values for an anonymous row.
func (r LogicalRow) Style() *pr.Style {
	if r.Row != nil {
		return r.Row.Style
	}
	return anonymousStyle
}

// LogicalRows returns the rows of the table in document order, skipping
// anonymous levels transparently. This is the single navigation routine
// consulting [Structure]; callers never branch on the flags themselves.
func (b *TableBox) LogicalRows() []LogicalRow {
	var out []LogicalRow
	switch b.Structure {
	case ActsAsRowGroupAndRow:
		if cells := childrenCells(b.Children); len(cells) != 0 {
			out = append(out, LogicalRow{Cells: cells})
		}
	case ActsAsRowGroup:
		for _, child := range b.Children {
			if row, ok := child.(*TableRowBox); ok {
				out = append(out, LogicalRow{Row: row, Cells: childrenCells(row.Children)})
			}
		}
	default:
		for _, child := range b.Children {
			group, ok := child.(*TableRowGroupBox)
			if !ok {
				continue
			}
			if group.Structure == ActsAsRow {
				if cells := childrenCells(group.Children); len(cells) != 0 {
					out = append(out, LogicalRow{Group: group, Cells: cells})
				}
				continue
			}
			for _, groupChild := range group.Children {
				if row, ok := groupChild.(*TableRowBox); ok {
					out = append(out, LogicalRow{Group: group, Row: row, Cells: childrenCells(row.Children)})
				}
			}
		}
	}
	return out
}

func childrenCells(children []Box) []*TableCellBox {
	var out []*TableCellBox
	for _, child := range children {
		if cell, ok := child.(*TableCellBox); ok {
			out = append(out, cell)
		}
	}
	return out
}
