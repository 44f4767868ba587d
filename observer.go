package paratext

// Observer receives change notifications from a Buffer. Notifications are
// delivered synchronously and in call order, after the mutation they
// describe has fully committed: an observer reading the buffer from
// within a callback always sees post-mutation state.
//
// Embed NopObserver to implement only a subset of the interface.
type Observer interface {
	// ParagraphInserted fires after a paragraph has been inserted at index.
	ParagraphInserted(index int)
	// ParagraphRemoved fires after the paragraph at index has been removed.
	ParagraphRemoved(index int)
	// ParagraphChanged fires after the text of paragraph index was replaced.
	ParagraphChanged(index int)
	// HeightChanged fires when a paragraph's height moved by more than
	// HeightEpsilon, either by estimation or by real measurement.
	HeightChanged(index int, oldHeight, newHeight float64)
	// TotalHeightChanged fires after any mutation that changed the
	// document's total height.
	TotalHeightChanged(total float64)
	// DocumentChanged fires after a wholesale replacement (SetText or a
	// committed batch load); per-paragraph notifications are suppressed
	// in that case.
	DocumentChanged()
	// TextInserted and TextDeleted report mutations as absolute byte
	// offsets into the document (paragraphs joined by single newlines).
	// The format layer uses these to shift its own ranges.
	TextInserted(pos, length int)
	TextDeleted(pos, length int)
}

// NopObserver is an Observer that ignores every notification. Embed it to
// pick out individual callbacks.
type NopObserver struct{}

func (NopObserver) ParagraphInserted(int)                {}
func (NopObserver) ParagraphRemoved(int)                 {}
func (NopObserver) ParagraphChanged(int)                 {}
func (NopObserver) HeightChanged(int, float64, float64)  {}
func (NopObserver) TotalHeightChanged(float64)           {}
func (NopObserver) DocumentChanged()                     {}
func (NopObserver) TextInserted(int, int)                {}
func (NopObserver) TextDeleted(int, int)                 {}

var _ Observer = NopObserver{}

// Subscription identifies a registered observer. Detaching is keyed by
// the subscription id; no pointer identity comparison is involved.
type Subscription int64

type subscriber struct {
	id  Subscription
	obs Observer
}

// registry holds observers in subscription order.
type registry struct {
	subs   []subscriber
	nextID Subscription
}

func (r *registry) subscribe(o Observer) Subscription {
	r.nextID++
	r.subs = append(r.subs, subscriber{id: r.nextID, obs: o})
	return r.nextID
}

func (r *registry) unsubscribe(id Subscription) {
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}

// each iterates over a copied snapshot, so observers may unsubscribe
// themselves (or others) from within a callback without affecting the
// current delivery round.
func (r *registry) each(f func(Observer)) {
	snapshot := append([]subscriber(nil), r.subs...)
	for _, s := range snapshot {
		f(s.obs)
	}
}
