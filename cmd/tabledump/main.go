// Command tabledump lays out the first table of an HTML fragment and
// prints the positioned box tree, for debugging and test comparison.
//
// Style is resolved from "style" attributes only: a stand-in for a real
// cascade.
//
// Usage:
//
//	tabledump -width 800 fragment.html
//	cat fragment.html | tabledump
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	bo "github.com/benoitkugler/tablelayout/boxes"
	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/layout"
	"github.com/benoitkugler/tablelayout/logger"
	"github.com/benoitkugler/tablelayout/text"
	"golang.org/x/net/html"
)

func main() {
	width := flag.Float64("width", 800, "available width, in pixels")
	flag.Parse()

	input := io.Reader(os.Stdin)
	if name := flag.Arg(0); name != "" {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	document, err := html.Parse(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid HTML:", err)
		os.Exit(1)
	}
	element := findTable(document)
	if element == nil {
		fmt.Fprintln(os.Stderr, "no <table> found")
		os.Exit(1)
	}

	table := bo.BuildTable(element, bo.StyleFromAttributes)
	layout.TableLayout(text.NewEngine(text.DefaultMetrics), table, pr.Float(*width))
	logger.ProgressLogger.Printf("laid out a %d x %d grid in %dpx",
		len(table.LogicalRows()), len(table.ColumnWidths), int(*width))

	if table.Caption != nil {
		dump(os.Stdout, table.Caption, 0)
	}
	dump(os.Stdout, table, 0)
}

func findTable(node *html.Node) *html.Node {
	if node.Type == html.ElementNode && node.Data == "table" {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if table := findTable(child); table != nil {
			return table
		}
	}
	return nil
}

func dump(w io.Writer, box bo.Box, indent int) {
	fields := box.Box()
	fmt.Fprintf(w, "%s<%s> x=%g y=%g width=%g height=%g",
		strings.Repeat("  ", indent), box.Type(),
		fields.PositionX, fields.PositionY, fields.Width, fields.Height)
	if text, ok := box.(*bo.TextBox); ok {
		fmt.Fprintf(w, " %q", text.Text)
	}
	if cell, ok := box.(*bo.TableCellBox); ok && cell.SuppressPaint {
		fmt.Fprint(w, " (paint suppressed)")
	}
	fmt.Fprintln(w)
	for _, child := range fields.Children {
		dump(w, child, indent+1)
	}
}
