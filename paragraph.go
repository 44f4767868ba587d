package paratext

// HeightState tells how trustworthy a paragraph's height value is.
type HeightState int8

const (
	// Estimated marks a height computed by the cheap text-length
	// heuristic, before any real layout has run.
	Estimated HeightState = iota
	// Calculated marks a height measured by an actual layout pass.
	Calculated
	// Invalid marks a height made stale by a text, font or wrap-width
	// change. Buffer recomputes an estimate immediately, so a paragraph
	// observable from outside is never left in this state.
	Invalid
)

func (s HeightState) String() string {
	switch s {
	case Estimated:
		return "Estimated"
	case Calculated:
		return "Calculated"
	case Invalid:
		return "Invalid"
	}
	return "HeightState(?)"
}

// FormatRun is a non-owning reference to a run of inline formatting
// within a paragraph. The formatting itself lives in the format layer;
// the buffer only carries the run boundaries along with the text so that
// layout can hand them to the shaper.
type FormatRun struct {
	Start  int // byte offset within the paragraph, inclusive
	End    int // byte offset within the paragraph, exclusive
	Format FormatRef
}

// FormatRef is an opaque handle into the format layer.
type FormatRef uint32

// Length returns the run length in bytes.
func (r FormatRun) Length() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether byte position pos falls inside the run.
func (r FormatRun) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// paragraph is one record of the buffer's ordered sequence. The height
// value mirrors the fenwick entry at the same position at all times.
type paragraph struct {
	text   string
	runs   []FormatRun
	height float64
	state  HeightState
}
