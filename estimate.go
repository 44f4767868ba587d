package paratext

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Metrics carries the font-derived numbers the height heuristic needs.
// It is constructed once by the embedding editor (from its font metrics
// and text-area width) and passed in explicitly; there is no global
// default registry.
type Metrics struct {
	LineHeight   float64 // height of one text line
	CharsPerLine int     // wrap width divided by average character width
}

// normalized clamps degenerate metrics so that estimates stay positive.
func (m Metrics) normalized() Metrics {
	if m.LineHeight <= 0 {
		m.LineHeight = 1
	}
	if m.CharsPerLine < 1 {
		m.CharsPerLine = 1
	}
	return m
}

// EstimateHeight guesses the height of a paragraph from its text alone,
// without running layout: lines = ceil(cells / CharsPerLine), height =
// max(1, lines) * LineHeight. Text width is measured in terminal-style
// cells (East Asian wide characters count twice), which tracks the
// monospace reference shaper closely enough for the estimate to converge
// on empty and single-line paragraphs.
//
// Empty text occupies exactly one line's height.
func (m Metrics) EstimateHeight(text string) float64 {
	m = m.normalized()
	if text == "" {
		return m.LineHeight
	}
	cells := runewidth.StringWidth(text)
	lines := math.Ceil(float64(cells) / float64(m.CharsPerLine))
	if lines < 1 {
		lines = 1
	}
	return lines * m.LineHeight
}
