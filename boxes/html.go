package boxes

import (
	"strconv"
	"strings"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/logger"
	"golang.org/x/net/html"
)

// StyleFor resolves the style of one content node. It stands for the
// external cascade: the returned values are treated as computed values.
type StyleFor = func(*html.Node) *pr.Style

// StyleFromAttributes resolves style from the "style" attribute alone,
// a minimal resolver for tests and demo tools.
func StyleFromAttributes(node *html.Node) *pr.Style {
	if node.Type == html.ElementNode {
		if css := attributeValue(node, "style"); css != "" {
			return pr.ParseInlineStyle(css)
		}
	}
	return pr.NewStyle()
}

// BuildTable turns the content subtree rooted at element, which must have
// table display behavior, into a table box skeleton: style resolved,
// colspan/rowspan clamped, anonymous structural levels flagged.
//
// Malformed structure never fails: misplaced children are adopted into
// the nearest plausible level, with a warning.
func BuildTable(element *html.Node, styleFor StyleFor) *TableBox {
	builder := tableBuilder{styleFor: styleFor}
	return builder.buildTable(element)
}

type tableBuilder struct {
	styleFor StyleFor
	table    *TableBox
}

func (bd *tableBuilder) buildTable(element *html.Node) *TableBox {
	table := NewTableBox(bd.styleFor(element), element, nil)
	bd.table = table

	var (
		groups []Box
		rows   []Box
		cells  []Box
		loose  []*html.Node
	)
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		switch displayOf(child, bd.styleFor) {
		case "table-caption":
			if table.Caption != nil {
				logger.WarningLogger.Printf("ignored extra <%s> caption", child.Data)
				continue
			}
			table.Caption = NewTableCaptionBox(bd.styleFor(child), child, bd.buildContent(child))
		case "table-row-group", "table-header-group", "table-footer-group":
			groups = append(groups, bd.buildRowGroup(child))
		case "table-row":
			rows = append(rows, bd.buildRow(child, nil))
		case "table-cell":
			cells = append(cells, bd.buildCell(child, nil))
		case "table-column", "table-column-group":
			// column boxes do not contribute to the grid here: explicit
			// widths come from the first row's cells
		case "":
			// skipped: whitespace, comments
		default:
			loose = append(loose, child)
		}
	}

	// A single top-down classification of the immediate children decides
	// the structure tag. A well formed table takes the first branch with
	// no flag set.
	switch {
	case len(groups) != 0:
		table.Structure = StructureNormal
		table.Children = groups
		if len(rows) != 0 || len(cells) != 0 || len(loose) != 0 {
			logger.WarningLogger.Printf("misplaced children in table: adopted into the first row group")
			first := groups[0].(*TableRowGroupBox)
			bd.adopt(first, rows, cells, loose)
		}
	case len(rows) != 0:
		table.Structure = ActsAsRowGroup
		table.Children = rows
		if len(cells) != 0 || len(loose) != 0 {
			logger.WarningLogger.Printf("misplaced cells in table: adopted into the last row")
			last := rows[len(rows)-1].(*TableRowBox)
			last.Children = append(last.Children, cells...)
			if cell := bd.wrapLoose(loose); cell != nil {
				last.Children = append(last.Children, cell)
			}
		}
	case len(cells) != 0 || len(loose) != 0:
		table.Structure = ActsAsRowGroupAndRow
		table.Children = cells
		if cell := bd.wrapLoose(loose); cell != nil {
			table.Children = append(table.Children, cell)
		}
	default:
		table.Structure = StructureNormal
	}
	return table
}

func (bd *tableBuilder) buildRowGroup(element *html.Node) *TableRowGroupBox {
	group := NewTableRowGroupBox(bd.styleFor(element), element, nil)
	switch element.Data {
	case "thead":
		group.IsHeader = true
	case "tfoot":
		group.IsFooter = true
	}

	var (
		rows  []Box
		cells []Box
		loose []*html.Node
	)
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		switch displayOf(child, bd.styleFor) {
		case "table-row":
			rows = append(rows, bd.buildRow(child, group))
		case "table-cell":
			cells = append(cells, bd.buildCell(child, nil))
		case "":
		default:
			loose = append(loose, child)
		}
	}

	switch {
	case len(rows) != 0:
		group.Structure = StructureNormal
		group.Children = rows
		if len(cells) != 0 || len(loose) != 0 {
			logger.WarningLogger.Printf("misplaced cells in <%s>: adopted into the last row", element.Data)
			last := rows[len(rows)-1].(*TableRowBox)
			last.Children = append(last.Children, cells...)
			if cell := bd.wrapLoose(loose); cell != nil {
				last.Children = append(last.Children, cell)
			}
		}
	case len(cells) != 0 || len(loose) != 0:
		group.Structure = ActsAsRow
		group.Children = cells
		if cell := bd.wrapLoose(loose); cell != nil {
			group.Children = append(group.Children, cell)
		}
	default:
		group.Structure = StructureNormal
	}
	return group
}

func (bd *tableBuilder) buildRow(element *html.Node, group *TableRowGroupBox) *TableRowBox {
	row := NewTableRowBox(bd.styleFor(element), element, nil)
	row.Group = group

	var loose []*html.Node
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		switch displayOf(child, bd.styleFor) {
		case "table-cell":
			row.Children = append(row.Children, bd.buildCell(child, row))
		case "":
		default:
			loose = append(loose, child)
		}
	}
	if cell := bd.wrapLoose(loose); cell != nil {
		cell.Row = row
		row.Children = append(row.Children, cell)
	}
	return row
}

func (bd *tableBuilder) buildCell(element *html.Node, row *TableRowBox) *TableCellBox {
	cell := NewTableCellBox(bd.styleFor(element), element, bd.buildContent(element))
	cell.Row = row
	cell.ColSpan = spanAttribute(element, "colspan")
	cell.RowSpan = spanAttribute(element, "rowspan")
	return cell
}

// adopt moves misplaced table children into group.
func (bd *tableBuilder) adopt(group *TableRowGroupBox, rows, cells []Box, loose []*html.Node) {
	if group.Structure == ActsAsRow {
		group.Children = append(group.Children, cells...)
		if cell := bd.wrapLoose(loose); cell != nil {
			group.Children = append(group.Children, cell)
		}
		return
	}
	group.Children = append(group.Children, rows...)
	var last *TableRowBox
	for _, child := range group.Children {
		if row, ok := child.(*TableRowBox); ok {
			last = row
		}
	}
	if last == nil {
		// an empty normal group: the stray cells form its single content
		group.Structure = ActsAsRow
		group.Children = cells
		if cell := bd.wrapLoose(loose); cell != nil {
			group.Children = append(group.Children, cell)
		}
		return
	}
	last.Children = append(last.Children, cells...)
	if cell := bd.wrapLoose(loose); cell != nil {
		last.Children = append(last.Children, cell)
	}
}

// wrapLoose wraps loose inline content in an anonymous cell box, or
// returns nil when the nodes carry no content.
func (bd *tableBuilder) wrapLoose(nodes []*html.Node) *TableCellBox {
	var content []Box
	for _, node := range nodes {
		content = append(content, bd.contentOf(node)...)
	}
	if len(content) == 0 {
		return nil
	}
	cell := NewTableCellBox(pr.NewStyle(), nil, content)
	cell.Anonymous = true
	bd.table.HasAnonymousCellWrapper = true
	return cell
}

// buildContent gathers the opaque content of a cell or caption: one text
// run per contiguous stretch of inline content, plus nested tables.
func (bd *tableBuilder) buildContent(element *html.Node) []Box {
	var out []Box
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, bd.contentOf(child)...)
	}
	return mergeTextRuns(out)
}

func (bd *tableBuilder) contentOf(node *html.Node) []Box {
	switch node.Type {
	case html.TextNode:
		if text := collapseWhitespace(node.Data); text != "" {
			return []Box{NewTextBox(pr.NewStyle(), node, text)}
		}
	case html.ElementNode:
		if displayOf(node, bd.styleFor) == "table" {
			nested := BuildTable(node, bd.styleFor)
			return []Box{nested}
		}
		var out []Box
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			out = append(out, bd.contentOf(child)...)
		}
		return out
	}
	return nil
}

func mergeTextRuns(content []Box) []Box {
	var out []Box
	for _, child := range content {
		text, ok := child.(*TextBox)
		if ok && len(out) != 0 {
			if prev, ok := out[len(out)-1].(*TextBox); ok {
				prev.Text = prev.Text + " " + text.Text
				continue
			}
		}
		out = append(out, child)
	}
	return out
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// displayOf classifies a content node: the resolved "display" property
// wins, else the HTML tag decides. Non element nodes return "".
func displayOf(node *html.Node, styleFor StyleFor) string {
	if node.Type == html.TextNode {
		if collapseWhitespace(node.Data) != "" {
			return "inline"
		}
		return ""
	}
	if node.Type != html.ElementNode {
		return ""
	}
	if display := styleFor(node).GetDisplay(); display != "" {
		return string(display)
	}
	switch node.Data {
	case "table":
		return "table"
	case "thead":
		return "table-header-group"
	case "tbody":
		return "table-row-group"
	case "tfoot":
		return "table-footer-group"
	case "tr":
		return "table-row"
	case "td", "th":
		return "table-cell"
	case "caption":
		return "table-caption"
	case "col":
		return "table-column"
	case "colgroup":
		return "table-column-group"
	default:
		return "inline"
	}
}

// spanAttribute reads a colspan or rowspan attribute. Zero, negative and
// non numeric values are clamped to 1, so the grid can never be zero or
// negative sized.
func spanAttribute(element *html.Node, name string) int {
	value := strings.TrimSpace(attributeValue(element, name))
	if value == "" {
		return 1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil || intValue < 1 {
		logger.WarningLogger.Printf("invalid %s %q: clamped to 1", name, value)
		return 1
	}
	return intValue
}

func attributeValue(element *html.Node, name string) string {
	for _, attr := range element.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
