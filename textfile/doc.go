/*
Package textfile fills a paragraph buffer from text files.

Loading happens through the buffer's batch interface, so a document of N
paragraphs costs one height-index rebuild instead of N. Progress during a
load is broadcast to any number of subscribers, letting a UI display a
progress indicator for large files without the loader knowing about it.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'paratext'
func tracer() tracing.Trace {
	return tracing.Select("paratext")
}
