package utils

import (
	"math"
)

type Fl = float32

func MinInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func MaxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

func Maxs(values ...Fl) Fl {
	max := values[0]
	for _, w := range values {
		if w > max {
			max = w
		}
	}
	return max
}

func Floor(x Fl) Fl {
	return Fl(math.Floor(float64(x)))
}

// Ceil rounds x up to the next whole pixel. Intrinsic width measurements
// go through this: under-rounding them causes visible overflow.
func Ceil(x Fl) Fl {
	return Fl(math.Ceil(float64(x)))
}

// RoundPixel rounds x to the nearest whole pixel.
func RoundPixel(x Fl) Fl {
	return Fl(math.Round(float64(x)))
}

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return Fl(math.Round(float64(f)*n10) / n10)
}

// Round rounds f with 6 digits precision
func Round(f Fl) Fl {
	return RoundPrec(f, 6)
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
