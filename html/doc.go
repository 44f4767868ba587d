/*
Package html converts between paragraph buffers and HTML.

FromHTML fills a buffer from an HTML document: block-level elements
become paragraphs, inline markup like <strong> or <em> becomes format
runs. Snapshot goes the other way and dumps a buffer as a standalone
HTML document, with the height bookkeeping attached as data attributes;
its main use is inspecting estimation quality in a browser.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'paratext'
func tracer() tracing.Trace {
	return tracing.Select("paratext")
}
