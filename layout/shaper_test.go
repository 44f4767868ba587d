package layout

import (
	"testing"

	"github.com/npillmayer/uax/grapheme"
)

func testShaper() *Monospace {
	grapheme.SetupGraphemeClasses()
	return NewMonospace(1, 10)
}

func TestShapeEmptyText(t *testing.T) {
	lay := testShaper().Shape("", 100)
	if lay.LineCount() != 1 {
		t.Fatalf("empty text → %d lines, want 1", lay.LineCount())
	}
	if lay.Height() != 10 {
		t.Errorf("empty text height = %g, want one line height", lay.Height())
	}
}

func TestShapeSingleLine(t *testing.T) {
	lay := testShaper().Shape("hello world", 40)
	if lay.LineCount() != 1 {
		t.Fatalf("got %d lines, want 1", lay.LineCount())
	}
	ln := lay.Line(0)
	if ln.Start != 0 || ln.End != len("hello world") {
		t.Errorf("line range = [%d, %d)", ln.Start, ln.End)
	}
	if ln.Width != 11 {
		t.Errorf("line width = %g, want 11 cells", ln.Width)
	}
}

func TestShapeWraps(t *testing.T) {
	// 10 cells per line; "aaaa bbbb cccc" must wrap at word boundaries
	lay := testShaper().Shape("aaaa bbbb cccc", 10)
	if lay.LineCount() < 2 {
		t.Fatalf("got %d lines, want wrapping", lay.LineCount())
	}
	if lay.Height() != float64(lay.LineCount())*10 {
		t.Errorf("height %g does not match %d lines", lay.Height(), lay.LineCount())
	}
	// lines tile the text exactly
	pos := 0
	for i := 0; i < lay.LineCount(); i++ {
		ln := lay.Line(i)
		if ln.Start != pos {
			t.Errorf("line %d starts at %d, want %d", i, ln.Start, pos)
		}
		if ln.Y != float64(i)*10 {
			t.Errorf("line %d y = %g, want %g", i, ln.Y, float64(i)*10)
		}
		pos = ln.End
	}
	if pos != len("aaaa bbbb cccc") {
		t.Errorf("lines cover %d bytes, want %d", pos, len("aaaa bbbb cccc"))
	}
}

func TestShapeDeterministic(t *testing.T) {
	sh := testShaper()
	a := sh.Shape("the quick brown fox jumps over the lazy dog", 20)
	b := sh.Shape("the quick brown fox jumps over the lazy dog", 20)
	if a.LineCount() != b.LineCount() || a.Height() != b.Height() {
		t.Fatalf("shaping is not deterministic: %d/%g vs %d/%g",
			a.LineCount(), a.Height(), b.LineCount(), b.Height())
	}
	for i := 0; i < a.LineCount(); i++ {
		if a.Line(i) != b.Line(i) {
			t.Errorf("line %d differs: %+v vs %+v", i, a.Line(i), b.Line(i))
		}
	}
}

func TestLineForOffsetAndLineAt(t *testing.T) {
	lay := testShaper().Shape("aaaa bbbb cccc", 10)
	if got := lay.LineForOffset(0); got != 0 {
		t.Errorf("LineForOffset(0) = %d", got)
	}
	last := lay.LineCount() - 1
	if got := lay.LineForOffset(9999); got != last {
		t.Errorf("LineForOffset beyond end = %d, want %d", got, last)
	}
	if got := lay.LineAt(-5); got != 0 {
		t.Errorf("LineAt(-5) = %d, want 0", got)
	}
	if got := lay.LineAt(lay.Height() + 100); got != last {
		t.Errorf("LineAt below = %d, want %d", got, last)
	}
}

func TestIndexAtHitTest(t *testing.T) {
	lay := testShaper().Shape("abcdef", 100)
	if got := lay.IndexAt(-1, 0); got != 0 {
		t.Errorf("IndexAt left of line = %d, want 0", got)
	}
	if got := lay.IndexAt(9999, 0); got != 6 {
		t.Errorf("IndexAt right of line = %d, want 6", got)
	}
	if got := lay.IndexAt(2.5, 0); got != 2 {
		t.Errorf("IndexAt(2.5) = %d, want 2", got)
	}
}

func TestNilLayoutIsHarmless(t *testing.T) {
	var lay *Layout
	if lay.Height() != 0 || lay.LineCount() != 0 || lay.Text() != "" {
		t.Errorf("nil layout leaked non-zero values")
	}
	if lay.IndexAt(3, 3) != 0 {
		t.Errorf("nil layout hit test should be 0")
	}
}
