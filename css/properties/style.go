package properties

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/tablelayout/logger"
)

// Style stores the resolved values of the properties the table engine
// consumes. The zero value is not usable: use [NewStyle], which seeds the
// CSS initial values.
type Style struct {
	Display String

	Width    DimOrS
	Height   DimOrS
	MinWidth DimOrS

	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft Dimension

	BorderTopWidth, BorderRightWidth, BorderBottomWidth, BorderLeftWidth Float

	TableLayout    String // "auto" or "fixed"
	BorderCollapse String // "separate" or "collapse"
	BorderSpacing  Point
	CaptionSide    String // "top" or "bottom"
	EmptyCells     String // "show" or "hide"
	VerticalAlign  String // "top", "middle", "bottom" or "baseline"
	Visibility     String // "visible", "hidden" or "collapse"
}

// NewStyle returns a style holding the CSS initial values, with
// vertical-align defaulted to "middle" as cells use it.
func NewStyle() *Style {
	return &Style{
		Width:          SToV("auto"),
		Height:         SToV("auto"),
		MinWidth:       SToV("auto"),
		TableLayout:    "auto",
		BorderCollapse: "separate",
		CaptionSide:    "top",
		EmptyCells:     "show",
		VerticalAlign:  "middle",
		Visibility:     "visible",
	}
}

func (s *Style) GetDisplay() String        { return s.Display }
func (s *Style) GetWidth() DimOrS          { return s.Width }
func (s *Style) GetHeight() DimOrS         { return s.Height }
func (s *Style) GetMinWidth() DimOrS       { return s.MinWidth }
func (s *Style) GetTableLayout() String    { return s.TableLayout }
func (s *Style) GetBorderCollapse() String { return s.BorderCollapse }
func (s *Style) GetBorderSpacing() Point   { return s.BorderSpacing }
func (s *Style) GetCaptionSide() String    { return s.CaptionSide }
func (s *Style) GetEmptyCells() String     { return s.EmptyCells }
func (s *Style) GetVerticalAlign() String  { return s.VerticalAlign }
func (s *Style) GetVisibility() String     { return s.Visibility }

// Copy returns a shallow copy.
func (s *Style) Copy() *Style {
	out := *s
	return &out
}

// ParseInlineStyle reads "property: value" declarations, for the
// properties this engine consumes. It stands in for the external cascade
// in tests and demo tools; unknown properties and invalid values are
// skipped with a warning.
func ParseInlineStyle(css string) *Style {
	style := NewStyle()
	for _, decl := range strings.Split(css, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			logger.WarningLogger.Printf("invalid declaration %q", decl)
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if err := style.setProperty(name, value); err != "" {
			logger.WarningLogger.Printf("ignored declaration %q: %s", decl, err)
		}
	}
	return style
}

// setProperty returns a non empty message on unsupported input.
func (s *Style) setProperty(name, value string) string {
	switch name {
	case "display":
		s.Display = String(value)
	case "table-layout":
		return s.setKeyword(&s.TableLayout, value, "auto", "fixed")
	case "border-collapse":
		return s.setKeyword(&s.BorderCollapse, value, "separate", "collapse")
	case "caption-side":
		return s.setKeyword(&s.CaptionSide, value, "top", "bottom")
	case "empty-cells":
		return s.setKeyword(&s.EmptyCells, value, "show", "hide")
	case "vertical-align":
		return s.setKeyword(&s.VerticalAlign, value, "top", "middle", "bottom", "baseline")
	case "visibility":
		return s.setKeyword(&s.Visibility, value, "visible", "hidden", "collapse")
	case "border-spacing":
		fields := strings.Fields(value)
		var h, v Dimension
		var okH, okV bool
		switch len(fields) {
		case 1:
			h, okH = parseLength(fields[0])
			v, okV = h, okH
		case 2:
			h, okH = parseLength(fields[0])
			v, okV = parseLength(fields[1])
		}
		if !okH || !okV || h.Unit == Perc || v.Unit == Perc {
			return "expected one or two lengths"
		}
		s.BorderSpacing = Point{h, v}
	case "width":
		return s.setDimOrS(&s.Width, value)
	case "height":
		return s.setDimOrS(&s.Height, value)
	case "min-width":
		return s.setDimOrS(&s.MinWidth, value)
	case "padding":
		values, ok := parseShorthand(value)
		if !ok {
			return "expected one to four lengths"
		}
		s.PaddingTop, s.PaddingRight, s.PaddingBottom, s.PaddingLeft = values[0], values[1], values[2], values[3]
	case "padding-top":
		return s.setPadding(&s.PaddingTop, value)
	case "padding-right":
		return s.setPadding(&s.PaddingRight, value)
	case "padding-bottom":
		return s.setPadding(&s.PaddingBottom, value)
	case "padding-left":
		return s.setPadding(&s.PaddingLeft, value)
	case "border", "border-width":
		// only the width component of the "border" shorthand matters here
		for _, field := range strings.Fields(value) {
			if dim, ok := parseLength(field); ok && dim.Unit == Px {
				s.BorderTopWidth = dim.Value
				s.BorderRightWidth = dim.Value
				s.BorderBottomWidth = dim.Value
				s.BorderLeftWidth = dim.Value
				return ""
			}
		}
		if name == "border-width" {
			return "expected a length"
		}
	case "border-top-width":
		return s.setBorderWidth(&s.BorderTopWidth, value)
	case "border-right-width":
		return s.setBorderWidth(&s.BorderRightWidth, value)
	case "border-bottom-width":
		return s.setBorderWidth(&s.BorderBottomWidth, value)
	case "border-left-width":
		return s.setBorderWidth(&s.BorderLeftWidth, value)
	default:
		return "unsupported property"
	}
	return ""
}

func (s *Style) setKeyword(dst *String, value string, allowed ...string) string {
	value = strings.ToLower(value)
	for _, kw := range allowed {
		if value == kw {
			*dst = String(kw)
			return ""
		}
	}
	return "unsupported keyword"
}

func (s *Style) setDimOrS(dst *DimOrS, value string) string {
	if strings.ToLower(value) == "auto" {
		*dst = SToV("auto")
		return ""
	}
	dim, ok := parseLength(value)
	if !ok {
		return "expected a length, a percentage or auto"
	}
	*dst = DimOrS{Dimension: dim}
	return ""
}

func (s *Style) setPadding(dst *Dimension, value string) string {
	dim, ok := parseLength(value)
	if !ok {
		return "expected a length or a percentage"
	}
	*dst = dim
	return ""
}

func (s *Style) setBorderWidth(dst *Float, value string) string {
	dim, ok := parseLength(value)
	if !ok || dim.Unit != Px {
		return "expected a length"
	}
	*dst = dim.Value
	return ""
}

func parseShorthand(value string) ([4]Dimension, bool) {
	fields := strings.Fields(value)
	var out [4]Dimension
	if len(fields) == 0 || len(fields) > 4 {
		return out, false
	}
	dims := make([]Dimension, len(fields))
	for i, f := range fields {
		dim, ok := parseLength(f)
		if !ok {
			return out, false
		}
		dims[i] = dim
	}
	switch len(dims) {
	case 1:
		out = [4]Dimension{dims[0], dims[0], dims[0], dims[0]}
	case 2:
		out = [4]Dimension{dims[0], dims[1], dims[0], dims[1]}
	case 3:
		out = [4]Dimension{dims[0], dims[1], dims[2], dims[1]}
	case 4:
		out = [4]Dimension{dims[0], dims[1], dims[2], dims[3]}
	}
	return out, true
}

// parseLength accepts "<number>px", "<number>%" and "0".
func parseLength(value string) (Dimension, bool) {
	unit := Px
	switch {
	case strings.HasSuffix(value, "px"):
		value = strings.TrimSuffix(value, "px")
	case strings.HasSuffix(value, "%"):
		value = strings.TrimSuffix(value, "%")
		unit = Perc
	case value == "0":
		// unitless zero is valid in CSS
	default:
		return Dimension{}, false
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil || f < 0 {
		return Dimension{}, false
	}
	return Dimension{Value: Float(f), Unit: unit}, true
}
