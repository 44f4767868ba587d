/*
Package viewport ties scroll positions to paragraph ranges.

A Controller holds the scroll offset and viewport size of one view onto a
document and derives from the buffer's height index which paragraphs are
visible, plus a prefetch-buffered range for the layout cache. It clamps
scrolling to the document extent, implements “scroll to make paragraph
visible”, and exposes scrollbar geometry.

The controller only reads the buffer; it owns nothing but its own scroll
state. Height changes reported by the buffer (layout results trickling
in) re-derive the visible range, which is the one permitted feedback
correction per height change.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package viewport

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'paratext'
func tracer() tracing.Trace {
	return tracing.Select("paratext")
}
