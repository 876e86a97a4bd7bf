// Package boxes defines the table box skeleton consumed by the layout
// engine: table, row-group, row, cell and caption boxes, built from a
// content subtree with already resolved style.
//
// Anonymous structural levels (a table acting as its own row-group, a
// row-group acting as its own row) are represented by a [Structure] tag
// plus the uniform [TableBox.LogicalRows] navigation, not by synthesized
// content nodes.
package boxes

import (
	pr "github.com/benoitkugler/tablelayout/css/properties"
	"golang.org/x/net/html"
)

// Box is the common interface of all layout boxes.
type Box interface {
	// Box returns the common fields of the box.
	Box() *BoxFields

	// Translate moves the box and all its descendants by (dx, dy).
	// Every position record is updated: the box fields are the single
	// source of truth for geometry.
	Translate(dx, dy pr.Float)

	// Type returns a short tag used by tree dumps.
	Type() string
}

// BoxFields is the set of fields shared by all boxes.
//
// PositionX and PositionY locate the top-left corner of the border box;
// Width and Height are the used dimensions of the content box.
type BoxFields struct {
	Style   *pr.Style
	Element *html.Node

	Children []Box

	PositionX, PositionY pr.Float
	Width, Height        pr.Float

	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft pr.Float

	BorderTopWidth, BorderRightWidth, BorderBottomWidth, BorderLeftWidth pr.Float
}

func newBoxFields(style *pr.Style, element *html.Node, children []Box) BoxFields {
	return BoxFields{Style: style, Element: element, Children: children}
}

func (b *BoxFields) Box() *BoxFields { return b }

// BorderWidth returns the width of the border box.
func (b *BoxFields) BorderWidth() pr.Float {
	return b.Width + b.PaddingLeft + b.PaddingRight + b.BorderLeftWidth + b.BorderRightWidth
}

// BorderHeight returns the height of the border box.
func (b *BoxFields) BorderHeight() pr.Float {
	return b.Height + b.PaddingTop + b.PaddingBottom + b.BorderTopWidth + b.BorderBottomWidth
}

// PaddingWidth returns the width of the padding box.
func (b *BoxFields) PaddingWidth() pr.Float {
	return b.Width + b.PaddingLeft + b.PaddingRight
}

// ContentBoxX returns the absolute horizontal position of the content box.
func (b *BoxFields) ContentBoxX() pr.Float {
	return b.PositionX + b.BorderLeftWidth + b.PaddingLeft
}

// ContentBoxY returns the absolute vertical position of the content box.
func (b *BoxFields) ContentBoxY() pr.Float {
	return b.PositionY + b.BorderTopWidth + b.PaddingTop
}

// HorizontalSurroundings returns the sum of the left and right border and
// padding widths.
func (b *BoxFields) HorizontalSurroundings() pr.Float {
	return b.BorderLeftWidth + b.PaddingLeft + b.PaddingRight + b.BorderRightWidth
}

// VerticalSurroundings returns the sum of the top and bottom border and
// padding widths.
func (b *BoxFields) VerticalSurroundings() pr.Float {
	return b.BorderTopWidth + b.PaddingTop + b.PaddingBottom + b.BorderBottomWidth
}

func (b *BoxFields) Translate(dx, dy pr.Float) {
	if dx == 0 && dy == 0 {
		return
	}
	b.PositionX += dx
	b.PositionY += dy
	for _, child := range b.Children {
		child.Translate(dx, dy)
	}
}
