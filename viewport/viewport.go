package viewport

import (
	"math"

	"github.com/npillmayer/paratext"
)

// DefaultBufferMargin is the number of paragraphs laid out beyond the
// strictly visible range, absorbing small scrolls without a layout stall.
const DefaultBufferMargin = 5

// Controller owns the scroll state of one view onto a document. It
// derives visible paragraph ranges from the buffer's height index in
// O(log n) and keeps the scroll offset clamped to the document extent.
//
// A Controller subscribes to the buffer and re-derives its range when
// heights or structure change; call Close to detach. Like the buffer it
// is confined to the UI goroutine.
type Controller struct {
	buf    *paratext.Buffer
	margin int

	scrollY       float64
	width, height float64
	first, last   int // visible range, inclusive; last < first when empty

	onRange func(first, last int)
	sub     paratext.Subscription
}

// New creates a controller over buf with the given prefetch margin in
// paragraphs; margin < 0 selects DefaultBufferMargin.
func New(buf *paratext.Buffer, margin int) *Controller {
	if margin < 0 {
		margin = DefaultBufferMargin
	}
	c := &Controller{buf: buf, margin: margin, last: -1}
	c.sub = buf.Subscribe(&controllerObserver{c})
	c.updateVisibleRange()
	return c
}

// Close detaches the controller from the buffer.
func (c *Controller) Close() {
	c.buf.Unsubscribe(c.sub)
}

// OnRangeChange registers a callback invoked whenever the visible range
// changes; the layout cache's EnsureLayouted is the typical consumer.
// Only one callback is held; nil clears it.
func (c *Controller) OnRangeChange(f func(first, last int)) {
	c.onRange = f
}

// BufferMargin returns the prefetch margin in paragraphs.
func (c *Controller) BufferMargin() int {
	return c.margin
}

// SetViewportSize sets the viewport extent in document units and
// re-derives the visible range. The scroll offset is re-clamped: growing
// the viewport near the document end scrolls content back into view.
func (c *Controller) SetViewportSize(width, height float64) {
	if width == c.width && height == c.height {
		return
	}
	c.width = math.Max(0, width)
	c.height = math.Max(0, height)
	c.scrollY = c.clamp(c.scrollY)
	c.updateVisibleRange()
}

// ViewportSize returns the current viewport extent.
func (c *Controller) ViewportSize() (width, height float64) {
	return c.width, c.height
}

// ScrollOffset returns the current scroll offset (document units from
// the top).
func (c *Controller) ScrollOffset() float64 {
	return c.scrollY
}

// MaxScrollOffset returns the largest valid scroll offset: the total
// document height minus the viewport height, or 0 when the content fits.
func (c *Controller) MaxScrollOffset() float64 {
	max := c.buf.TotalHeight() - c.height
	if max < 0 {
		return 0
	}
	return max
}

// SetScrollOffset scrolls to y, clamped to [0, MaxScrollOffset], and
// returns the effective offset.
func (c *Controller) SetScrollOffset(y float64) float64 {
	clamped := c.clamp(y)
	if math.Abs(clamped-c.scrollY) > paratext.HeightEpsilon {
		c.scrollY = clamped
		c.updateVisibleRange()
	}
	return c.scrollY
}

// ScrollBy scrolls relative to the current offset and returns the
// effective offset.
func (c *Controller) ScrollBy(delta float64) float64 {
	return c.SetScrollOffset(c.scrollY + delta)
}

// ScrollToParagraph scrolls the minimal distance that makes paragraph i
// fully visible: paragraphs above the viewport align to the top edge,
// paragraphs below to the bottom edge. Paragraphs taller than the
// viewport align to the top. Already-visible paragraphs leave the offset
// untouched. Returns the effective offset.
func (c *Controller) ScrollToParagraph(i int) float64 {
	n := c.buf.ParagraphCount()
	if n == 0 {
		return c.scrollY
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	y := c.buf.ParagraphY(i)
	h := c.buf.ParagraphHeight(i)
	if y >= c.scrollY && y+h <= c.scrollY+c.height {
		return c.scrollY // already fully visible
	}
	if y < c.scrollY || h > c.height {
		return c.SetScrollOffset(y)
	}
	return c.SetScrollOffset(y + h - c.height)
}

// VisibleRange returns the inclusive range of paragraphs intersecting
// the viewport. For an empty document last < first.
func (c *Controller) VisibleRange() (first, last int) {
	return c.first, c.last
}

// BufferedRange widens the visible range by the prefetch margin on both
// sides, clamped to the document.
func (c *Controller) BufferedRange() (first, last int) {
	if c.last < c.first {
		return c.first, c.last
	}
	first = c.first - c.margin
	if first < 0 {
		first = 0
	}
	last = c.last + c.margin
	if n := c.buf.ParagraphCount(); last >= n {
		last = n - 1
	}
	return first, last
}

// IsVisible reports whether paragraph i intersects the viewport.
func (c *Controller) IsVisible(i int) bool {
	return i >= c.first && i <= c.last
}

// IsBuffered reports whether paragraph i falls into the prefetch range.
func (c *Controller) IsBuffered(i int) bool {
	first, last := c.BufferedRange()
	return i >= first && i <= last
}

// --- Scrollbar geometry ------------------------------------------------------

// ScrollbarNeeded reports whether the content exceeds the viewport.
func (c *Controller) ScrollbarNeeded() bool {
	return c.buf.TotalHeight() > c.height
}

// ScrollbarPosition returns the scroll offset as a fraction in [0, 1].
func (c *Controller) ScrollbarPosition() float64 {
	max := c.MaxScrollOffset()
	if max <= 0 {
		return 0
	}
	return c.scrollY / max
}

// ScrollbarThumbSize returns the thumb extent as a fraction of the
// scrollbar track, at least 0.05 so the thumb stays grabbable.
func (c *Controller) ScrollbarThumbSize() float64 {
	total := c.buf.TotalHeight()
	if total <= 0 {
		return 1
	}
	thumb := c.height / total
	return math.Min(1, math.Max(0.05, thumb))
}

// SetScrollbarPosition scrolls to a track fraction in [0, 1].
func (c *Controller) SetScrollbarPosition(pos float64) {
	pos = math.Min(1, math.Max(0, pos))
	c.SetScrollOffset(pos * c.MaxScrollOffset())
}

// --- Range derivation --------------------------------------------------------

// updateVisibleRange re-derives the visible paragraph range from the
// height index; two O(log n) queries.
func (c *Controller) updateVisibleRange() {
	oldFirst, oldLast := c.first, c.last
	n := c.buf.ParagraphCount()
	if n == 0 || c.height <= 0 {
		c.first, c.last = 0, -1
	} else {
		c.first = c.buf.ParagraphAtY(c.scrollY)
		// a paragraph starting exactly on the bottom edge intersects zero
		// pixels and is not visible
		bottom := c.scrollY + c.height - paratext.HeightEpsilon
		if bottom < c.scrollY {
			bottom = c.scrollY
		}
		c.last = c.buf.ParagraphAtY(bottom)
		if c.last >= n {
			c.last = n - 1
		}
	}
	if c.first != oldFirst || c.last != oldLast {
		tracer().Debugf("viewport: visible range %d–%d", c.first, c.last)
		if c.onRange != nil {
			first, last := c.BufferedRange()
			c.onRange(first, last)
		}
	}
}

func (c *Controller) clamp(y float64) float64 {
	if y < 0 {
		return 0
	}
	if max := c.MaxScrollOffset(); y > max {
		return max
	}
	return y
}

// controllerObserver re-derives the range when the document changes
// under the viewport.
type controllerObserver struct {
	c *Controller
}

var _ paratext.Observer = &controllerObserver{}

func (o *controllerObserver) ParagraphInserted(int) { o.c.updateVisibleRange() }
func (o *controllerObserver) ParagraphRemoved(int)  { o.c.reclampAndUpdate() }
func (o *controllerObserver) ParagraphChanged(int)  { o.c.updateVisibleRange() }
func (o *controllerObserver) DocumentChanged()      { o.c.reclampAndUpdate() }

func (o *controllerObserver) HeightChanged(int, float64, float64) {
	o.c.updateVisibleRange()
}

func (o *controllerObserver) TotalHeightChanged(float64) {
	o.c.reclampAndUpdate()
}

func (o *controllerObserver) TextInserted(int, int) {}
func (o *controllerObserver) TextDeleted(int, int)  {}

func (c *Controller) reclampAndUpdate() {
	c.scrollY = c.clamp(c.scrollY)
	c.updateVisibleRange()
}
