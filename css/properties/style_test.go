package properties

import (
	"testing"

	tu "github.com/benoitkugler/tablelayout/utils/testutils"
)

func TestParseInlineStyle(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := ParseInlineStyle(
		"table-layout: fixed; border-collapse: collapse; caption-side: bottom;" +
			"width: 50px; height: 25%; min-width: 0;" +
			"border-spacing: 2px 4px; padding: 1px 2px; border: 3px solid red")

	tu.AssertEqual(t, style.GetTableLayout(), String("fixed"))
	tu.AssertEqual(t, style.GetBorderCollapse(), String("collapse"))
	tu.AssertEqual(t, style.GetCaptionSide(), String("bottom"))

	tu.AssertEqual(t, style.GetWidth(), DimOrS{Dimension: Dimension{Value: 50, Unit: Px}})
	tu.AssertEqual(t, style.GetHeight(), DimOrS{Dimension: Dimension{Value: 25, Unit: Perc}})
	tu.AssertEqual(t, style.GetMinWidth(), DimOrS{Dimension: Dimension{Value: 0, Unit: Px}})

	tu.AssertEqual(t, style.GetBorderSpacing(), Point{
		{Value: 2, Unit: Px}, {Value: 4, Unit: Px},
	})
	tu.AssertEqual(t, style.PaddingTop, Dimension{Value: 1, Unit: Px})
	tu.AssertEqual(t, style.PaddingRight, Dimension{Value: 2, Unit: Px})
	tu.AssertEqual(t, style.BorderLeftWidth, Float(3))
}

func TestParseDefaults(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := ParseInlineStyle("")
	tu.AssertEqual(t, style.GetWidth().IsAuto(), true)
	tu.AssertEqual(t, style.GetHeight().IsAuto(), true)
	tu.AssertEqual(t, style.GetTableLayout(), String("auto"))
	tu.AssertEqual(t, style.GetBorderCollapse(), String("separate"))
	tu.AssertEqual(t, style.GetEmptyCells(), String("show"))
	tu.AssertEqual(t, style.GetVisibility(), String("visible"))
}

func TestParseInvalidDeclarations(t *testing.T) {
	c := tu.CaptureLogs()

	style := ParseInlineStyle(
		"width: wide; table-layout: grid; border-spacing: 2em; color: red; nonsense")
	if logs := c.Logs(); len(logs) != 5 {
		t.Fatalf("expected 5 warnings, got %v", logs)
	}
	// invalid values leave the initial ones in place
	tu.AssertEqual(t, style.GetWidth().IsAuto(), true)
	tu.AssertEqual(t, style.GetTableLayout(), String("auto"))
	tu.AssertEqual(t, style.GetBorderSpacing(), Point{})
}

func TestResolvePercentage(t *testing.T) {
	tu.AssertEqual(t, ResolvePercentage(SToV("auto"), 100), AutoF)
	tu.AssertEqual(t, ResolvePercentage(DimOrS{Dimension: Dimension{Value: 50, Unit: Perc}}, 200), Float(100))
	tu.AssertEqual(t, ResolvePercentage(DimOrS{Dimension: Dimension{Value: 30, Unit: Px}}, 200), Float(30))
}
