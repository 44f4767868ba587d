package paratext

// Batch is a scoped bulk-insert window. While a batch is open, calls to
// Buffer.InsertParagraph stage records without touching the height index;
// Commit installs them with a single index rebuild. Loading N paragraphs
// this way costs O(N) index maintenance instead of the O(N²) that N
// individual inserts would incur.
//
// The window is a single-writer critical section: height queries
// (ParagraphY, TotalHeight, ParagraphAtY) and non-insert mutations are
// illegal between BeginBatch and Commit, and are treated as programmer
// error. Batch windows are not reentrant.
//
// A Batch must end with exactly one call to Commit (or Discard). Typical
// use:
//
//	batch, _ := buf.BeginBatch()
//	defer batch.Commit()
//	for _, line := range lines {
//		buf.InsertParagraph(buf.ParagraphCount(), line)
//	}
type Batch struct {
	buf  *Buffer
	prev []paragraph // snapshot for Discard
	done bool
}

// BeginBatch opens a batch insert window on the buffer. It fails with
// ErrBatchOpen if another window is still open.
func (b *Buffer) BeginBatch() (*Batch, error) {
	if b.batch != nil {
		return nil, ErrBatchOpen
	}
	b.batch = &Batch{buf: b, prev: append([]paragraph(nil), b.paras...)}
	T().Debugf("buffer: batch insert window opened")
	return b.batch, nil
}

// stage inserts the record into the paragraph list only; index
// maintenance is deferred to Commit. ParagraphCount stays accurate during
// the batch, so loaders can append with buf.InsertParagraph(buf.ParagraphCount(), …).
func (batch *Batch) stage(i int, para paragraph) {
	b := batch.buf
	b.paras = append(b.paras, paragraph{})
	copy(b.paras[i+1:], b.paras[i:])
	b.paras[i] = para
}

// Commit closes the window and rebuilds the height index from the staged
// heights in one pass. Observers receive a single DocumentChanged
// notification followed by TotalHeightChanged. Committing twice is a
// no-op returning ErrBatchCommitted.
func (batch *Batch) Commit() error {
	if batch.done {
		return ErrBatchCommitted
	}
	batch.done = true
	b := batch.buf
	b.batch = nil

	heights := make([]float64, len(b.paras))
	for i := range b.paras {
		heights[i] = b.paras[i].height
	}
	b.tree.Rebuild(heights)
	b.checkLockstep()
	T().Debugf("buffer: batch committed, %d paragraphs", len(b.paras))

	b.reg.each(func(o Observer) { o.DocumentChanged() })
	b.notifyTotal()
	return nil
}

// Discard closes the window and drops every paragraph staged since
// BeginBatch, restoring the pre-batch document. Already committed
// batches cannot be discarded.
func (batch *Batch) Discard() error {
	if batch.done {
		return ErrBatchCommitted
	}
	batch.done = true
	b := batch.buf
	b.batch = nil

	b.paras = batch.prev
	b.checkLockstep()
	return nil
}
