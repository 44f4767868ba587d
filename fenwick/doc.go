/*
Package fenwick implements an order-statistics index over per-paragraph
heights, backed by a Fenwick tree (binary indexed tree).

The tree answers two questions a document view asks constantly while the
user scrolls or edits:

  - “at which vertical position does paragraph i start?” (prefix sum), and
  - “which paragraph contains vertical position y?” (value-to-index search),

both in O(log n), while heights of individual paragraphs keep changing as
layout results trickle in.

Structural changes (inserting or removing a paragraph) are O(n) full
rebuilds. Interactive edits arrive one at a time, so this is cheap; bulk
loads avoid the quadratic trap by staging heights elsewhere and committing
them with a single Rebuild.

A Tree holds plain float64 heights and knows nothing about text or layout.
All operations clamp out-of-range arguments instead of failing; the zero
length tree answers every query with 0.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package fenwick
