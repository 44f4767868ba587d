/*
Package layout materializes per-paragraph layout objects lazily.

Real text layout (shaping, line breaking) is expensive, so it is only
performed for paragraphs the viewport (plus a prefetch buffer) actually
needs. The Cache creates layout objects on demand through a Shaper,
reports measured heights back to the buffer, and evicts layouts once the
user scrolls away. Eviction trades memory for a future re-layout cost,
never correctness: the last measured height stays authoritative in the
buffer's height index.

Shaping proper is a collaborator concern hidden behind the Shaper
interface. The package ships one reference implementation, Monospace,
which breaks lines with the Unicode line-breaking algorithm (UAX#14) and
measures them in fixed-width cells (UAX#11); frontends with real font
metrics plug in their own Shaper.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'paratext'
func tracer() tracing.Trace {
	return tracing.Select("paratext")
}
