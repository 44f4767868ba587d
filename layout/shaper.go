package layout

import (
	"bufio"
	"strings"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"
)

// Shaper turns paragraph text into a Layout at a given wrap width. It is
// the seam to the embedding editor's text-shaping engine: paratext treats
// the result as opaque apart from its height and line geometry.
//
// Implementations must return a layout with at least one line; empty text
// occupies exactly one line's height.
type Shaper interface {
	Shape(text string, width float64) *Layout
}

// Monospace is a reference Shaper for fixed-width rendering (terminals,
// tests). It breaks lines at UAX#14 line-break opportunities and measures
// fragments in fixed-width cells per UAX#11, so East Asian wide
// characters occupy two cells.
//
// A fragment wider than the whole wrap width is put on a line of its own
// rather than broken mid-word.
type Monospace struct {
	CellWidth  float64 // horizontal advance of one cell
	LineHeight float64
	Context    *uax11.Context // resolution context for ambiguous widths
}

// NewMonospace creates a monospace shaper, resolving ambiguous East Asian
// widths from the user's environment.
func NewMonospace(cellWidth, lineHeight float64) *Monospace {
	return &Monospace{
		CellWidth:  cellWidth,
		LineHeight: lineHeight,
		Context:    uax11.ContextFromEnvironment(),
	}
}

// Shape lays out text at the given wrap width.
func (m *Monospace) Shape(text string, width float64) *Layout {
	cellw, lineh := m.CellWidth, m.LineHeight
	if cellw <= 0 {
		cellw = 1
	}
	if lineh <= 0 {
		lineh = 1
	}
	ctx := m.Context
	if ctx == nil {
		ctx = uax11.ContextFromEnvironment()
	}
	cellsPerLine := int(width / cellw)
	if cellsPerLine < 1 {
		cellsPerLine = 1
	}
	measure := func(s string) float64 {
		return float64(uax11.StringWidth(grapheme.StringFromString(s), ctx)) * cellw
	}
	lay := &Layout{
		text:    text,
		width:   width,
		measure: measure,
	}
	if text == "" {
		lay.lines = []Line{{Start: 0, End: 0, Y: 0, Height: lineh, Width: 0}}
		lay.height = lineh
		return lay
	}

	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(strings.NewReader(text)))

	var lines []Line
	lineStart, linePos := 0, 0 // byte range of the line under construction
	lineCells := 0
	flush := func() {
		y := float64(len(lines)) * lineh
		lines = append(lines, Line{
			Start:  lineStart,
			End:    linePos,
			Y:      y,
			Height: lineh,
			Width:  float64(lineCells) * cellw,
		})
		lineStart = linePos
		lineCells = 0
	}
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		gstr := grapheme.StringFromString(frag)
		fragCells := uax11.StringWidth(gstr, ctx)
		if lineCells > 0 && lineCells+fragCells > cellsPerLine {
			flush()
		}
		linePos += len(frag)
		lineCells += fragCells
	}
	if lineCells > 0 || len(lines) == 0 {
		flush()
	}
	lay.lines = lines
	lay.height = float64(len(lines)) * lineh
	tracer().Debugf("monospace shaper: %d bytes → %d lines", len(text), len(lines))
	return lay
}
