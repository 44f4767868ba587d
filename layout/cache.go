package layout

import (
	"github.com/npillmayer/paratext"
)

// DefaultMaxCached bounds the number of layout objects kept alive when no
// explicit limit is configured.
const DefaultMaxCached = 256

// Config configures a layout cache. The explicit config object replaces
// any notion of global defaults; the embedding editor constructs it once
// from its font metrics and text-area geometry.
type Config struct {
	// Width is the wrap width paragraphs are laid out at.
	Width float64
	// MaxCached bounds the number of live layout objects; 0 means
	// DefaultMaxCached.
	MaxCached int
}

func (cfg Config) normalized() Config {
	if cfg.MaxCached <= 0 {
		cfg.MaxCached = DefaultMaxCached
	}
	return cfg
}

// entry is one cached layout with LRU bookkeeping.
type entry struct {
	layout     *Layout
	lastAccess uint64
	dirty      bool
}

// Cache lazily creates and destroys the heavy per-paragraph layout
// objects. It owns the map from paragraph index to layout handle and
// keeps it aligned with the buffer by observing paragraph insertions and
// removals.
//
// Measured heights flow back into the buffer through
// CommitMeasuredHeight; evicting a layout never touches heights.
type Cache struct {
	buf    *paratext.Buffer
	shaper Shaper
	cfg    Config

	layouts map[int]*entry
	clock   uint64 // monotonically increasing access counter
	sub     paratext.Subscription
}

// NewCache creates a cache over buf using the given shaper, and
// subscribes to the buffer's change notifications. Call Close to detach.
func NewCache(buf *paratext.Buffer, shaper Shaper, cfg Config) *Cache {
	c := &Cache{
		buf:     buf,
		shaper:  shaper,
		cfg:     cfg.normalized(),
		layouts: make(map[int]*entry),
	}
	c.sub = buf.Subscribe(&cacheObserver{c})
	return c
}

// Close detaches the cache from the buffer and drops all layouts.
func (c *Cache) Close() {
	c.buf.Unsubscribe(c.sub)
	c.layouts = make(map[int]*entry)
}

// Width returns the current wrap width.
func (c *Cache) Width() float64 {
	return c.cfg.Width
}

// SetWidth changes the wrap width. Every cached layout becomes stale and
// every height reverts to an estimate; re-measurement happens on the next
// EnsureLayouted pass.
func (c *Cache) SetWidth(w float64) {
	if w == c.cfg.Width {
		return
	}
	c.cfg.Width = w
	c.InvalidateAll()
}

// Layout returns the cached layout for paragraph i, or nil if the
// paragraph is not currently laid out. Callers should have run
// EnsureLayouted over the range they are about to paint; Layout itself
// never computes anything.
func (c *Cache) Layout(i int) *Layout {
	e, ok := c.layouts[i]
	if !ok || e.dirty {
		return nil
	}
	c.clock++
	e.lastAccess = c.clock
	return e.layout
}

// HasLayout reports whether paragraph i has a current (non-stale) layout.
func (c *Cache) HasLayout(i int) bool {
	e, ok := c.layouts[i]
	return ok && !e.dirty
}

// CachedCount returns the number of layout objects currently alive,
// stale ones included.
func (c *Cache) CachedCount() int {
	return len(c.layouts)
}

// EnsureLayouted lays out every paragraph in [first, last] that has no
// current layout. Measured heights are committed to the buffer, which
// updates the height index and notifies observers of any height that
// moved by more than the epsilon, the one permitted feedback correction
// per paragraph per pass. The range is clamped to the buffer.
func (c *Cache) EnsureLayouted(first, last int) {
	if first < 0 {
		first = 0
	}
	if n := c.buf.ParagraphCount(); last >= n {
		last = n - 1
	}
	for i := first; i <= last; i++ {
		c.layoutParagraph(i)
	}
	c.releaseOverflow(first, last)
}

func (c *Cache) layoutParagraph(i int) {
	if e, ok := c.layouts[i]; ok && !e.dirty {
		c.clock++
		e.lastAccess = c.clock
		return
	}
	lay := c.shaper.Shape(c.buf.ParagraphText(i), c.cfg.Width)
	c.clock++
	c.layouts[i] = &entry{layout: lay, lastAccess: c.clock}
	c.buf.CommitMeasuredHeight(i, lay.Height())
	tracer().Debugf("layout cache: paragraph %d laid out, height %.2f", i, lay.Height())
}

// EvictOutside destroys the layout objects of all paragraphs outside
// [keepFirst, keepLast]. Height states and the height index stay
// untouched: after scrolling back, EnsureLayouted reproduces identical
// heights and geometry.
func (c *Cache) EvictOutside(keepFirst, keepLast int) {
	for i := range c.layouts {
		if i < keepFirst || i > keepLast {
			delete(c.layouts, i)
		}
	}
}

// Invalidate marks paragraph i's layout stale and reverts its height to a
// fresh estimate. The next EnsureLayouted pass re-measures it.
func (c *Cache) Invalidate(i int) {
	if e, ok := c.layouts[i]; ok {
		e.dirty = true
	}
	c.buf.InvalidateHeight(i)
}

// InvalidateAll marks every layout stale, for changes that affect all
// paragraphs at once (font, wrap width, global formatting). Estimates are
// recomputed immediately; re-measurement is deferred to the next
// EnsureLayouted.
func (c *Cache) InvalidateAll() {
	for _, e := range c.layouts {
		e.dirty = true
	}
	for i := 0; i < c.buf.ParagraphCount(); i++ {
		c.buf.InvalidateHeight(i)
	}
}

// releaseOverflow bounds memory: when more layouts are alive than
// MaxCached, the ones least recently touched are dropped first, sparing
// the protected window.
func (c *Cache) releaseOverflow(protectFirst, protectLast int) {
	for len(c.layouts) > c.cfg.MaxCached {
		oldest, found := 0, false
		var oldestAccess uint64
		for i, e := range c.layouts {
			if i >= protectFirst && i <= protectLast {
				continue
			}
			if !found || e.lastAccess < oldestAccess {
				oldest, oldestAccess, found = i, e.lastAccess, true
			}
		}
		if !found {
			return // everything alive is inside the protected window
		}
		delete(c.layouts, oldest)
	}
}

// cacheObserver keeps the index-keyed layout map aligned with the buffer.
type cacheObserver struct {
	c *Cache
}

var _ paratext.Observer = &cacheObserver{}

func (o *cacheObserver) ParagraphInserted(i int) { o.c.shiftIndices(i, +1) }

func (o *cacheObserver) ParagraphRemoved(i int) {
	delete(o.c.layouts, i)
	o.c.shiftIndices(i, -1)
}

func (o *cacheObserver) ParagraphChanged(i int) {
	if e, ok := o.c.layouts[i]; ok {
		e.dirty = true
	}
}

func (o *cacheObserver) DocumentChanged() {
	o.c.layouts = make(map[int]*entry)
}

func (o *cacheObserver) HeightChanged(int, float64, float64) {}
func (o *cacheObserver) TotalHeightChanged(float64)          {}
func (o *cacheObserver) TextInserted(int, int)               {}
func (o *cacheObserver) TextDeleted(int, int)                {}

// shiftIndices renumbers cached layouts at or above from by delta.
func (c *Cache) shiftIndices(from, delta int) {
	if len(c.layouts) == 0 {
		return
	}
	shifted := make(map[int]*entry, len(c.layouts))
	for i, e := range c.layouts {
		if i >= from {
			shifted[i+delta] = e
		} else {
			shifted[i] = e
		}
	}
	c.layouts = shifted
}
