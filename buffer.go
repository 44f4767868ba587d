package paratext

import (
	"math"
	"strings"

	"github.com/npillmayer/paratext/fenwick"
)

// HeightEpsilon is the threshold below which height changes are treated
// as noise: no notification fires and the visible range cannot shift.
const HeightEpsilon = 0.001

// Buffer is the ordered sequence of paragraph records of one document.
// It owns the paragraph text, delegates height bookkeeping to a
// fenwick.Tree, and keeps both in lockstep: every structural mutation
// changes them at the same index in the same call.
//
// A Buffer is exclusively owned by one document instance and must only be
// used from the UI goroutine; none of its operations suspend.
type Buffer struct {
	paras   []paragraph
	tree    *fenwick.Tree
	metrics Metrics
	reg     registry
	batch   *Batch // non-nil while a batch insert window is open
	calced  int    // number of paragraphs in state Calculated

	lastTotal float64 // last total height reported to observers
}

// NewBuffer creates an empty buffer using the given estimation metrics.
func NewBuffer(m Metrics) *Buffer {
	return &Buffer{
		tree:    fenwick.New(0),
		metrics: m.normalized(),
	}
}

// Subscribe registers an observer. Observers are notified in
// subscription order.
func (b *Buffer) Subscribe(o Observer) Subscription {
	return b.reg.subscribe(o)
}

// Unsubscribe detaches the observer registered under id.
func (b *Buffer) Unsubscribe(id Subscription) {
	b.reg.unsubscribe(id)
}

// Metrics returns the current estimation metrics.
func (b *Buffer) Metrics() Metrics {
	return b.metrics
}

// SetMetrics replaces the estimation metrics, typically after a font or
// wrap-width change. Estimates are not recomputed here; the layout cache
// triggers that through InvalidateHeight when it invalidates layouts.
func (b *Buffer) SetMetrics(m Metrics) {
	b.metrics = m.normalized()
}

// --- Query surface ---------------------------------------------------------

// ParagraphCount returns the number of paragraphs.
func (b *Buffer) ParagraphCount() int {
	return len(b.paras)
}

// ParagraphText returns the text of paragraph i, or "" if i is out of
// range.
func (b *Buffer) ParagraphText(i int) string {
	if i < 0 || i >= len(b.paras) {
		return ""
	}
	return b.paras[i].text
}

// FormatRuns returns the inline format runs attached to paragraph i.
// The returned slice is owned by the buffer and must not be mutated.
func (b *Buffer) FormatRuns(i int) []FormatRun {
	if i < 0 || i >= len(b.paras) {
		return nil
	}
	return b.paras[i].runs
}

// SetFormatRuns attaches inline format runs to paragraph i. The runs are
// non-owning references; out-of-range indices are ignored.
func (b *Buffer) SetFormatRuns(i int, runs []FormatRun) {
	if i < 0 || i >= len(b.paras) {
		return
	}
	b.paras[i].runs = runs
}

// ParagraphY returns the vertical start position of paragraph i.
func (b *Buffer) ParagraphY(i int) float64 {
	b.assertNoBatch()
	return b.tree.Y(i)
}

// ParagraphHeight returns the best-known height of paragraph i, or 0 if
// i is out of range.
func (b *Buffer) ParagraphHeight(i int) float64 {
	if i < 0 || i >= len(b.paras) {
		return 0
	}
	return b.paras[i].height
}

// HeightState returns the height state of paragraph i; out-of-range
// indices report Estimated.
func (b *Buffer) HeightState(i int) HeightState {
	if i < 0 || i >= len(b.paras) {
		return Estimated
	}
	return b.paras[i].state
}

// TotalHeight returns the summed height of all paragraphs.
func (b *Buffer) TotalHeight() float64 {
	b.assertNoBatch()
	return b.tree.Total()
}

// ParagraphAtY returns the index of the paragraph containing vertical
// position y, clamped to the valid index range.
func (b *Buffer) ParagraphAtY(y float64) int {
	b.assertNoBatch()
	return b.tree.IndexAtY(y)
}

// CalculatedCount returns the number of paragraphs whose height has been
// measured by real layout (state Calculated).
func (b *Buffer) CalculatedCount() int {
	return b.calced
}

// --- Mutation --------------------------------------------------------------

// InsertParagraph inserts a paragraph before index i, which is clamped to
// [0, ParagraphCount()]. The new paragraph starts out with an estimated
// height. While a batch window is open the insert is staged on the batch
// guard and the height index is left untouched until Commit.
func (b *Buffer) InsertParagraph(i int, text string) {
	if i < 0 {
		i = 0
	}
	if i > len(b.paras) {
		i = len(b.paras)
	}
	est := b.metrics.EstimateHeight(text)
	para := paragraph{text: text, height: est, state: Estimated}

	if b.batch != nil {
		b.batch.stage(i, para)
		return
	}
	pos := b.paragraphOffset(i)
	b.paras = append(b.paras, paragraph{})
	copy(b.paras[i+1:], b.paras[i:])
	b.paras[i] = para
	b.tree.Insert(i, est)
	b.checkLockstep()

	T().Debugf("buffer: inserted paragraph %d (%.1f estimated)", i, est)
	b.reg.each(func(o Observer) { o.ParagraphInserted(i) })
	b.reg.each(func(o Observer) { o.TextInserted(pos, len(text)+1) })
	b.notifyTotal()
}

// RemoveParagraph removes the paragraph at index i. Out-of-range indices
// are a no-op.
func (b *Buffer) RemoveParagraph(i int) {
	if i < 0 || i >= len(b.paras) {
		return
	}
	b.assertNoBatch()
	pos := b.paragraphOffset(i)
	length := len(b.paras[i].text) + 1
	if b.paras[i].state == Calculated {
		b.calced--
	}
	b.paras = append(b.paras[:i], b.paras[i+1:]...)
	b.tree.Remove(i)
	b.checkLockstep()

	b.reg.each(func(o Observer) { o.ParagraphRemoved(i) })
	b.reg.each(func(o Observer) { o.TextDeleted(pos, length) })
	b.notifyTotal()
}

// SetParagraphText replaces the text of paragraph i. The height becomes
// stale and is immediately re-estimated; real measurement happens on the
// next layout pass. Out-of-range indices are a no-op.
func (b *Buffer) SetParagraphText(i int, text string) {
	if i < 0 || i >= len(b.paras) {
		return
	}
	b.assertNoBatch()
	pos := b.paragraphOffset(i)
	oldLen := len(b.paras[i].text)
	b.paras[i].text = text
	b.reestimate(i)

	if oldLen > 0 {
		b.reg.each(func(o Observer) { o.TextDeleted(pos, oldLen) })
	}
	if len(text) > 0 {
		b.reg.each(func(o Observer) { o.TextInserted(pos, len(text)) })
	}
	b.reg.each(func(o Observer) { o.ParagraphChanged(i) })
	b.notifyTotal()
}

// SetText replaces the whole document, splitting text into paragraphs on
// newlines. All heights start out estimated. Observers receive a single
// DocumentChanged notification.
func (b *Buffer) SetText(text string) {
	b.assertNoBatch()
	lines := strings.Split(text, "\n")
	b.paras = make([]paragraph, len(lines))
	heights := make([]float64, len(lines))
	for i, line := range lines {
		est := b.metrics.EstimateHeight(line)
		b.paras[i] = paragraph{text: line, height: est, state: Estimated}
		heights[i] = est
	}
	b.calced = 0
	b.tree.Rebuild(heights)
	b.checkLockstep()

	b.reg.each(func(o Observer) { o.DocumentChanged() })
	b.notifyTotal()
}

// Clear removes all paragraphs. Observers receive a single
// DocumentChanged notification.
func (b *Buffer) Clear() {
	b.assertNoBatch()
	b.paras = nil
	b.calced = 0
	b.tree.Rebuild(nil)

	b.reg.each(func(o Observer) { o.DocumentChanged() })
	b.notifyTotal()
}

// --- Height reconciliation ---------------------------------------------------

// CommitMeasuredHeight records a height measured by a real layout pass
// for paragraph i. The paragraph transitions to state Calculated and the
// height index is updated by delta. HeightChanged fires only when the
// measurement differs from the previous value by more than HeightEpsilon;
// this is the one permitted feedback correction per paragraph per layout
// pass.
//
// Degenerate measurements (≤ 0) are clamped to one line height so that
// the total height stays monotonically increasing in paragraph count.
func (b *Buffer) CommitMeasuredHeight(i int, measured float64) {
	b.assertNoBatch()
	if i < 0 || i >= len(b.paras) {
		return
	}
	if measured <= 0 {
		measured = b.metrics.normalized().LineHeight
	}
	para := &b.paras[i]
	old := para.height
	if para.state != Calculated {
		b.calced++
	}
	para.height = measured
	para.state = Calculated
	b.tree.SetHeight(i, measured)

	if math.Abs(old-measured) > HeightEpsilon {
		T().Debugf("buffer: paragraph %d height %.2f → %.2f (measured)", i, old, measured)
		b.reg.each(func(o Observer) { o.HeightChanged(i, old, measured) })
		b.notifyTotal()
	}
}

// InvalidateHeight marks the height of paragraph i stale and immediately
// replaces it with a fresh estimate, so the paragraph is never left with
// an outdated value. Real measurement is deferred to the next layout
// pass. Out-of-range indices are a no-op.
func (b *Buffer) InvalidateHeight(i int) {
	b.assertNoBatch()
	if i < 0 || i >= len(b.paras) {
		return
	}
	b.reestimate(i)
	b.notifyTotal()
}

// reestimate runs the Invalid → Estimated transition for paragraph i and
// fires HeightChanged if the estimate moved.
func (b *Buffer) reestimate(i int) {
	para := &b.paras[i]
	old := para.height
	if para.state == Calculated {
		b.calced--
	}
	est := b.metrics.EstimateHeight(para.text)
	para.height = est
	para.state = Estimated
	b.tree.SetHeight(i, est)

	if math.Abs(old-est) > HeightEpsilon {
		b.reg.each(func(o Observer) { o.HeightChanged(i, old, est) })
	}
}

// --- Internal ---------------------------------------------------------------

// paragraphOffset returns the absolute byte offset of the start of
// paragraph i, counting paragraphs as joined by single newlines. Linear,
// but only walked for human-paced edits.
func (b *Buffer) paragraphOffset(i int) int {
	pos := 0
	for j := 0; j < i && j < len(b.paras); j++ {
		pos += len(b.paras[j].text) + 1
	}
	return pos
}

// notifyTotal fires TotalHeightChanged when the total moved by more than
// HeightEpsilon since the last notification.
func (b *Buffer) notifyTotal() {
	total := b.tree.Total()
	if math.Abs(total-b.lastTotal) <= HeightEpsilon {
		return
	}
	b.lastTotal = total
	b.reg.each(func(o Observer) { o.TotalHeightChanged(total) })
}

func (b *Buffer) assertNoBatch() {
	assert(b.batch == nil, "paratext: height query/mutation inside open batch window")
}

func (b *Buffer) checkLockstep() {
	assert(len(b.paras) == b.tree.Len(),
		"paratext: paragraph list and height index diverged in length")
}
