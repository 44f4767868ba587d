package layout

// Line is the geometry of one laid-out text line within a paragraph.
// Offsets are byte positions into the paragraph's text.
type Line struct {
	Start, End int     // byte range [Start, End) of the line's text
	Y          float64 // vertical position relative to the paragraph top
	Height     float64
	Width      float64 // advance width of the line's text
}

// Layout is the heavy per-paragraph layout object: the result of shaping
// a paragraph's text at a given wrap width. It is immutable once built;
// a text, font or width change produces a new Layout.
//
// Layout is deliberately opaque about glyphs. Consumers get a queryable
// height and per-line geometry, which is all the height index and the
// render pipeline need.
type Layout struct {
	text    string
	width   float64 // wrap width the layout was computed for
	lines   []Line
	height  float64
	measure func(s string) float64 // set by the shaper, used for hit tests
}

// Height returns the summed height of all lines.
func (l *Layout) Height() float64 {
	if l == nil {
		return 0
	}
	return l.height
}

// Text returns the paragraph text the layout was computed from.
func (l *Layout) Text() string {
	if l == nil {
		return ""
	}
	return l.text
}

// WrapWidth returns the wrap width the layout was computed for.
func (l *Layout) WrapWidth() float64 {
	if l == nil {
		return 0
	}
	return l.width
}

// LineCount returns the number of lines.
func (l *Layout) LineCount() int {
	if l == nil {
		return 0
	}
	return len(l.lines)
}

// Line returns the geometry of line i, or a zero Line if i is out of
// range.
func (l *Layout) Line(i int) Line {
	if l == nil || i < 0 || i >= len(l.lines) {
		return Line{}
	}
	return l.lines[i]
}

// LineForOffset returns the index of the line containing byte offset pos,
// clamped to the first/last line for out-of-range offsets.
func (l *Layout) LineForOffset(pos int) int {
	if l == nil || len(l.lines) == 0 {
		return 0
	}
	for i, ln := range l.lines {
		if pos < ln.End {
			return i
		}
	}
	return len(l.lines) - 1
}

// LineAt returns the index of the line containing vertical position y
// (relative to the paragraph top). Positions above the first line map to
// line 0, positions below the last line to the last line.
func (l *Layout) LineAt(y float64) int {
	if l == nil || len(l.lines) == 0 {
		return 0
	}
	for i, ln := range l.lines {
		if y < ln.Y+ln.Height {
			return i
		}
	}
	return len(l.lines) - 1
}

// IndexAt hit-tests the point (x, y), both relative to the paragraph top
// left, and returns the byte offset of the closest position within the
// hit line. x left of the line start maps to the line's first byte, x
// beyond the line's width to the line's end.
func (l *Layout) IndexAt(x, y float64) int {
	if l == nil || len(l.lines) == 0 {
		return 0
	}
	ln := l.lines[l.LineAt(y)]
	if x <= 0 || l.measure == nil {
		return ln.Start
	}
	if x >= ln.Width {
		return ln.End
	}
	// walk the line's rune boundaries until the measured prefix passes x
	text := l.text[ln.Start:ln.End]
	prev := 0
	for i := range text {
		if i == 0 {
			continue
		}
		if l.measure(text[:i]) > x {
			return ln.Start + prev
		}
		prev = i
	}
	return ln.End
}
