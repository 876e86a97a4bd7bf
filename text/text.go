// Package text provides a monospace content-flow engine: the default
// collaborator measuring and flowing cell content for the table layout.
//
// It models text as fixed-width character cells, with display widths from
// go-runewidth and word segmentation from uniseg. A shaping based engine
// can replace it through the layout.FlowEngine interface.
package text

import (
	"strings"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/utils"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Metrics are the dimensions of one character cell, in pixels.
type Metrics struct {
	CharWidth, LineHeight pr.Float
}

// DefaultMetrics approximates a 16px monospace font.
var DefaultMetrics = Metrics{CharWidth: 8, LineHeight: 16}

// Engine measures and flows text runs on a fixed-width character grid.
// It holds no mutable state: one engine may serve concurrent layouts.
type Engine struct {
	metrics Metrics
}

func NewEngine(metrics Metrics) *Engine {
	return &Engine{metrics: metrics}
}

// MeasureText returns the minimum content width (the widest unbreakable
// segment) and the preferred content width (the widest line, unwrapped)
// of the run, without committing any geometry.
func (e *Engine) MeasureText(text string, _ *pr.Style) (min, pref pr.Float) {
	for _, line := range strings.Split(text, "\n") {
		pref = pr.Max(pref, pr.Float(runewidth.StringWidth(line))*e.metrics.CharWidth)
		for _, word := range segments(line) {
			min = pr.Max(min, pr.Float(runewidth.StringWidth(word))*e.metrics.CharWidth)
		}
	}
	return min, pref
}

// FlowText wraps the run greedily at the given content width and returns
// the resulting height. A segment wider than the width overflows on its
// own line rather than disappearing.
func (e *Engine) FlowText(text string, _ *pr.Style, width pr.Float) pr.Float {
	if text == "" {
		return 0
	}
	availableCells := int(utils.Floor(utils.Fl(width / e.metrics.CharWidth)))
	var lineCount int
	for _, line := range strings.Split(text, "\n") {
		lineCount += wrappedLines(segments(line), availableCells)
	}
	return pr.Float(lineCount) * e.metrics.LineHeight
}

func wrappedLines(words []string, availableCells int) int {
	if len(words) == 0 {
		return 1
	}
	lines, used := 1, 0
	for _, word := range words {
		cells := runewidth.StringWidth(word)
		switch {
		case used == 0:
			used = cells
		case used+1+cells <= availableCells:
			used += 1 + cells
		default:
			lines++
			used = cells
		}
	}
	return lines
}

// segments splits a line at word boundaries, dropping the blank ones.
func segments(line string) []string {
	var out []string
	state := -1
	var word string
	for len(line) > 0 {
		word, line, state = uniseg.FirstWordInString(line, state)
		if trimmed := strings.TrimSpace(word); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
