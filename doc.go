/*
Package paratext keeps a live, randomly-mutated list of variable-height
paragraphs queryable in sub-linear time.

Long documents (think book manuscripts) cannot afford to lay out every
paragraph: layout is the expensive step, and only a screenful of
paragraphs is ever visible. paratext therefore keeps text and a best-known
height per paragraph, indexes the heights with a Fenwick tree (package
fenwick), and lets layout results trickle in lazily (package layout).
A viewport controller (package viewport) maps scroll positions to
paragraph ranges through the same index.

The central type is Buffer, an ordered sequence of paragraph records.
Every paragraph carries a height in one of three states:

	Estimated  → heuristic, computed from text length before layout
	Calculated → measured by a real layout pass
	Invalid    → stale after a text/font/width change; a fresh estimate
	             is recomputed immediately, real measurement is deferred

Buffer keeps its paragraph list and the height index in lockstep and
notifies subscribed observers synchronously, in call order, after each
mutation has fully committed.

This is a hot, latency-sensitive path inside an interactive editor. The
query surface never fails for routine out-of-range input; accessors clamp
or return a documented zero value. Only two conditions are treated as
programmer error and panic: a length divergence between the paragraph
list and the height index, and calling a height query while a batch
insert window is open.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package paratext

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// BufferError is an error type for the paratext module.
type BufferError string

func (e BufferError) Error() string {
	return string(e)
}

// ErrBatchOpen signals that a batch insert window is already open;
// batch windows are not reentrant.
const ErrBatchOpen = BufferError("batch insert window already open")

// ErrBatchCommitted signals that a batch guard has already been committed
// and may not stage further inserts.
const ErrBatchCommitted = BufferError("batch window has been committed")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
