package boxes

import (
	"strings"
	"testing"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	tu "github.com/benoitkugler/tablelayout/utils/testutils"
	"golang.org/x/net/html"
)

func parseTable(t *testing.T, source string) *html.Node {
	t.Helper()
	document, err := html.Parse(strings.NewReader(source))
	if err != nil {
		t.Fatal(err)
	}
	var find func(*html.Node) *html.Node
	find = func(node *html.Node) *html.Node {
		if node.Type == html.ElementNode && node.Data == "table" {
			return node
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if table := find(child); table != nil {
				return table
			}
		}
		return nil
	}
	table := find(document)
	if table == nil {
		t.Fatal("no <table> in test input")
	}
	return table
}

// elem builds a content node directly. The HTML5 parser foster-parents
// misplaced table content, so the malformed structure cases below bypass
// it.
func elem(tag string, children ...*html.Node) *html.Node {
	node := &html.Node{Type: html.ElementNode, Data: tag}
	for _, child := range children {
		node.AppendChild(child)
	}
	return node
}

func textNode(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

func withAttr(node *html.Node, key, value string) *html.Node {
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
	return node
}

func cellTexts(row LogicalRow) []string {
	var out []string
	for _, cell := range row.Cells {
		text := ""
		if len(cell.Children) != 0 {
			if run, ok := cell.Children[0].(*TextBox); ok {
				text = run.Text
			}
		}
		out = append(out, text)
	}
	return out
}

func TestBuildWellFormed(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(parseTable(t, `
      <table>
        <thead>
          <tr><th>h1</th><th>h2</th></tr>
        </thead>
        <tbody>
          <tr><td>a</td><td>b</td></tr>
          <tr><td>c</td><td>d</td></tr>
        </tbody>
        <tfoot>
          <tr><td>f1</td><td>f2</td></tr>
        </tfoot>
      </table>
    `), StyleFromAttributes)

	tu.AssertEqual(t, table.Structure, StructureNormal)
	tu.AssertEqual(t, table.HasAnonymousCellWrapper, false)

	rows := table.LogicalRows()
	tu.AssertEqual(t, len(rows), 4)
	tu.AssertEqual(t, cellTexts(rows[0]), []string{"h1", "h2"})
	tu.AssertEqual(t, cellTexts(rows[2]), []string{"c", "d"})
	tu.AssertEqual(t, cellTexts(rows[3]), []string{"f1", "f2"})

	tu.AssertEqual(t, rows[0].Group.IsHeader, true)
	tu.AssertEqual(t, rows[1].Group.IsHeader, false)
	tu.AssertEqual(t, rows[3].Group.IsFooter, true)

	// back-references
	tu.AssertEqual(t, rows[1].Row.Group, rows[1].Group)
	tu.AssertEqual(t, rows[1].Cells[0].Row, rows[1].Row)
}

func TestBuildRowsDirectlyInTable(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(elem("table",
		elem("tr", elem("td", textNode("a"))),
		elem("tr", elem("td", textNode("b"))),
	), StyleFromAttributes)

	tu.AssertEqual(t, table.Structure, ActsAsRowGroup)
	rows := table.LogicalRows()
	tu.AssertEqual(t, len(rows), 2)
	if rows[0].Group != nil {
		t.Fatal("expected an anonymous row group")
	}
	tu.AssertEqual(t, cellTexts(rows[1]), []string{"b"})
}

func TestBuildCellsDirectlyInTable(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(elem("table",
		elem("td", textNode("a")),
		elem("td", textNode("b")),
	), StyleFromAttributes)

	tu.AssertEqual(t, table.Structure, ActsAsRowGroupAndRow)
	rows := table.LogicalRows()
	tu.AssertEqual(t, len(rows), 1)
	if rows[0].Group != nil || rows[0].Row != nil {
		t.Fatal("expected anonymous row group and row")
	}
	tu.AssertEqual(t, cellTexts(rows[0]), []string{"a", "b"})
}

func TestBuildCellsDirectlyInGroup(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(elem("table",
		elem("tbody",
			elem("td", textNode("a")),
			elem("td", textNode("b")),
		),
	), StyleFromAttributes)

	tu.AssertEqual(t, table.Structure, StructureNormal)
	rows := table.LogicalRows()
	tu.AssertEqual(t, len(rows), 1)
	tu.AssertEqual(t, rows[0].Group.Structure, ActsAsRow)
	if rows[0].Row != nil {
		t.Fatal("expected an anonymous row")
	}
	tu.AssertEqual(t, cellTexts(rows[0]), []string{"a", "b"})
}

func TestLooseContentWrapped(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(elem("table",
		elem("tr",
			elem("td", textNode("a")),
			textNode("loose content"),
		),
	), StyleFromAttributes)

	tu.AssertEqual(t, table.HasAnonymousCellWrapper, true)
	rows := table.LogicalRows()
	tu.AssertEqual(t, cellTexts(rows[0]), []string{"a", "loose content"})
	anonymous := rows[0].Cells[1]
	tu.AssertEqual(t, anonymous.Anonymous, true)
	tu.AssertEqual(t, anonymous.Row, rows[0].Row)
}

func TestMisplacedCellsAdopted(t *testing.T) {
	c := tu.CaptureLogs()

	table := BuildTable(elem("table",
		elem("tbody",
			elem("tr", elem("td", textNode("a"))),
		),
		elem("td", textNode("stray")),
	), StyleFromAttributes)

	tu.AssertEqual(t, table.Structure, StructureNormal)
	rows := table.LogicalRows()
	tu.AssertEqual(t, len(rows), 1)
	tu.AssertEqual(t, cellTexts(rows[0]), []string{"a", "stray"})
	if logs := c.Logs(); len(logs) != 1 {
		t.Fatalf("expected 1 warning, got %v", logs)
	}
}

func TestExtraCaptionIgnored(t *testing.T) {
	c := tu.CaptureLogs()

	table := BuildTable(elem("table",
		elem("caption", textNode("first")),
		elem("caption", textNode("second")),
		elem("tr", elem("td", textNode("a"))),
	), StyleFromAttributes)

	if table.Caption == nil {
		t.Fatal("missing caption")
	}
	run := table.Caption.Children[0].(*TextBox)
	tu.AssertEqual(t, run.Text, "first")
	if logs := c.Logs(); len(logs) != 1 {
		t.Fatalf("expected 1 warning, got %v", logs)
	}
}

func TestSpanAttributes(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(parseTable(t, `
      <table>
        <tr><td colspan="3" rowspan="2">a</td></tr>
      </table>
    `), StyleFromAttributes)

	cell := table.LogicalRows()[0].Cells[0]
	tu.AssertEqual(t, cell.ColSpan, 3)
	tu.AssertEqual(t, cell.RowSpan, 2)
	// the grid analyzer has not run yet
	tu.AssertEqual(t, cell.GridX, -1)
	tu.AssertEqual(t, cell.GridY, -1)
}

func TestInvalidSpanAttributes(t *testing.T) {
	c := tu.CaptureLogs()

	table := BuildTable(parseTable(t, `
      <table>
        <tr><td colspan="many" rowspan="-1">a</td></tr>
      </table>
    `), StyleFromAttributes)

	cell := table.LogicalRows()[0].Cells[0]
	tu.AssertEqual(t, cell.ColSpan, 1)
	tu.AssertEqual(t, cell.RowSpan, 1)
	if logs := c.Logs(); len(logs) != 2 {
		t.Fatalf("expected 2 warnings, got %v", logs)
	}
}

func TestTextRunsMerged(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(parseTable(t, `
      <table>
        <tr><td>some <b>bold</b>
        words</td></tr>
      </table>
    `), StyleFromAttributes)

	cell := table.LogicalRows()[0].Cells[0]
	tu.AssertEqual(t, len(cell.Children), 1)
	run := cell.Children[0].(*TextBox)
	tu.AssertEqual(t, run.Text, "some bold words")
}

func TestNestedTableContent(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(parseTable(t, `
      <table>
        <tr><td>
          <table><tr><td>inner</td></tr></table>
        </td></tr>
      </table>
    `), StyleFromAttributes)

	cell := table.LogicalRows()[0].Cells[0]
	tu.AssertEqual(t, len(cell.Children), 1)
	nested := cell.Children[0].(*TableBox)
	tu.AssertEqual(t, cellTexts(nested.LogicalRows()[0]), []string{"inner"})
}

func TestDisplayPropertyWins(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	// a div behaving as a row, via the resolved display
	table := BuildTable(elem("table",
		elem("div",
			withAttr(elem("span", textNode("a")), "style", "display: table-cell"),
		),
	), func(node *html.Node) *pr.Style {
		style := StyleFromAttributes(node)
		if node.Data == "div" {
			style.Display = "table-row"
		}
		return style
	})

	tu.AssertEqual(t, table.Structure, ActsAsRowGroup)
	rows := table.LogicalRows()
	tu.AssertEqual(t, len(rows), 1)
	tu.AssertEqual(t, cellTexts(rows[0]), []string{"a"})
}

func TestTranslate(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(parseTable(t, `
      <table>
        <caption>cap</caption>
        <tr><td>a</td></tr>
      </table>
    `), StyleFromAttributes)
	table.ColumnPositions = []pr.Float{10, 60}
	cell := table.LogicalRows()[0].Cells[0]
	cell.PositionX, cell.PositionY = 10, 20

	table.Translate(5, 7)

	tu.AssertEqual(t, table.PositionX, pr.Float(5))
	tu.AssertEqual(t, table.PositionY, pr.Float(7))
	tu.AssertEqual(t, table.ColumnPositions, []pr.Float{15, 65})
	tu.AssertEqual(t, cell.PositionX, pr.Float(15))
	tu.AssertEqual(t, cell.PositionY, pr.Float(27))
	tu.AssertEqual(t, table.Caption.PositionX, pr.Float(5))
}

func TestEmptyTable(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := BuildTable(parseTable(t, `<table></table>`), StyleFromAttributes)
	tu.AssertEqual(t, table.Structure, StructureNormal)
	tu.AssertEqual(t, len(table.LogicalRows()), 0)
}
