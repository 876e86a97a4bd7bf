// This package defines the resolved CSS values consumed by the table layout
// engine. The cascade producing them is an external concern: callers hand in
// one [Style] per element, already computed.
package properties

import (
	"fmt"

	"github.com/benoitkugler/tablelayout/utils"
)

type Fl = utils.Fl

type Float Fl

func (f Float) V() Float { return f }

// MaybeFloat is a float or the "auto" keyword.
type MaybeFloat interface {
	V() Float
}

type autoType uint8

func (autoType) V() Float { return 0 }

// AutoF is the "auto" keyword, as a [MaybeFloat].
const AutoF = autoType(1)

func Min(x, y Float) Float {
	if x < y {
		return x
	}
	return y
}

func Max(x, y Float) Float {
	if x > y {
		return x
	}
	return y
}

type Unit uint8

const (
	// means no unit, but a valid value
	Scalar Unit = iota
	Px
	// percentage (%)
	Perc
)

func (u Unit) String() string {
	switch u {
	case Scalar:
		return ""
	case Px:
		return "px"
	case Perc:
		return "%"
	default:
		return "<invalid unit>"
	}
}

// Dimension without unit is interpreted as float
type Dimension struct {
	Value Float
	Unit  Unit
}

func NewDim(v Float, u Unit) Dimension { return Dimension{Value: v, Unit: u} }

func (d Dimension) String() string {
	return fmt.Sprintf("<%g %s>", d.Value, d.Unit)
}

// DimOrS is a dimension or a keyword, such as "auto".
type DimOrS struct {
	S string
	Dimension
}

func (ds DimOrS) String() string {
	if ds.S != "" {
		return ds.S
	}
	return ds.Dimension.String()
}

func (ds DimOrS) IsAuto() bool { return ds.S == "auto" }

// IsLength returns true for a resolved, non percentage value.
func (ds DimOrS) IsLength() bool { return ds.S == "" && ds.Unit != Perc }

// SToV wraps a keyword.
func SToV(s string) DimOrS { return DimOrS{S: s} }

// FToPx wraps a pixel length.
func FToPx(f Float) DimOrS { return DimOrS{Dimension: Dimension{Value: f, Unit: Px}} }

// PercToV wraps a percentage.
func PercToV(f Float) DimOrS { return DimOrS{Dimension: Dimension{Value: f, Unit: Perc}} }

// ResolvePercentage returns the used value of value,
// with percentages resolved against referTo.
// "auto" is returned as [AutoF].
func ResolvePercentage(value DimOrS, referTo Float) MaybeFloat {
	if value.S == "auto" {
		return AutoF
	}
	if value.Unit == Perc {
		return referTo * value.Value / 100
	}
	return value.Value
}

type String string

// Point stores the two computed values of the "border-spacing" property.
type Point [2]Dimension
