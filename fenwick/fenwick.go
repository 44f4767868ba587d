package fenwick

// Tree is a Fenwick tree (binary indexed tree) over a sequence of
// paragraph heights.
//
// The zero value is a valid empty tree. Internally the tree array is
// 1-indexed and has length n+1, following the classic Fenwick layout:
// tree[i] holds the sum of a dyadic block of heights ending at i.
type Tree struct {
	heights []float64
	tree    []float64 // 1-indexed, len(heights)+1
}

// New creates a tree over n paragraphs, all with height 0.
func New(n int) *Tree {
	t := &Tree{}
	t.Resize(n)
	return t
}

// Len returns the number of height entries.
func (t *Tree) Len() int {
	return len(t.heights)
}

// Resize resets the tree to n zero heights.
func (t *Tree) Resize(n int) {
	if n < 0 {
		n = 0
	}
	t.heights = make([]float64, n)
	t.tree = make([]float64, n+1)
}

// Rebuild replaces all heights in one pass. This is the bulk-load path:
// staging N heights and rebuilding once is O(N log N), where N individual
// Inserts would be O(N²).
func (t *Tree) Rebuild(heights []float64) {
	t.heights = append(t.heights[:0:0], heights...)
	t.tree = make([]float64, len(t.heights)+1)
	for i, h := range t.heights {
		t.add(i, h)
	}
}

// Height returns the height of paragraph i, or 0 if i is out of range.
func (t *Tree) Height(i int) float64 {
	if i < 0 || i >= len(t.heights) {
		return 0
	}
	return t.heights[i]
}

// SetHeight sets the height of paragraph i, adjusting all prefix sums by
// the difference to the previous height. Out-of-range indices are ignored.
func (t *Tree) SetHeight(i int, h float64) {
	if i < 0 || i >= len(t.heights) {
		return
	}
	t.Add(i, h-t.heights[i])
}

// Add adds delta to the height of paragraph i.
// Out-of-range indices are ignored.
func (t *Tree) Add(i int, delta float64) {
	if i < 0 || i >= len(t.heights) {
		return
	}
	t.heights[i] += delta
	t.add(i, delta)
}

// add propagates delta to every tree node covering index i.
func (t *Tree) add(i int, delta float64) {
	for j := i + 1; j < len(t.tree); j += lowbit(j) {
		t.tree[j] += delta
	}
}

// PrefixSum returns the sum of heights[0..k], inclusive of k.
// k < 0 yields 0; k beyond the last entry is clamped.
func (t *Tree) PrefixSum(k int) float64 {
	if k < 0 || len(t.heights) == 0 {
		return 0
	}
	if k >= len(t.heights) {
		k = len(t.heights) - 1
	}
	sum := 0.0
	for j := k + 1; j > 0; j -= lowbit(j) {
		sum += t.tree[j]
	}
	return sum
}

// Y returns the vertical start position of paragraph i, i.e. the summed
// heights of all paragraphs before it. Y(0) is 0. An index beyond the end
// yields the total height.
func (t *Tree) Y(i int) float64 {
	return t.PrefixSum(i - 1)
}

// Total returns the summed height of all paragraphs.
func (t *Tree) Total() float64 {
	return t.PrefixSum(len(t.heights) - 1)
}

// IndexAtY returns the index of the paragraph containing vertical
// position y, i.e. the j with Y(j) ≤ y < Y(j)+Height(j). Paragraphs of
// height 0 span no positions and are skipped over.
//
// The search lifts over descending powers of two, consuming tree nodes
// greedily while the accumulated sum stays ≤ y; O(log n).
//
// The result is clamped to [0, Len()-1]: y ≤ 0 yields 0, y ≥ Total()
// yields the last index. An empty tree yields 0.
func (t *Tree) IndexAtY(y float64) int {
	n := len(t.heights)
	if n == 0 || y <= 0 {
		return 0
	}
	pos := 0
	sum := 0.0
	for bit := highestBit(n); bit > 0; bit >>= 1 {
		next := pos + bit
		if next < len(t.tree) && sum+t.tree[next] <= y {
			pos = next
			sum += t.tree[next]
		}
	}
	// pos is the count of paragraphs entirely above y, which equals the
	// 0-based index of the paragraph containing y.
	if pos >= n {
		pos = n - 1
	}
	return pos
}

// Insert inserts a paragraph of height h before index i, shifting all
// following entries. i is clamped to [0, Len()]. O(n).
func (t *Tree) Insert(i int, h float64) {
	if i < 0 {
		i = 0
	}
	if i > len(t.heights) {
		i = len(t.heights)
	}
	t.heights = append(t.heights, 0)
	copy(t.heights[i+1:], t.heights[i:])
	t.heights[i] = h
	t.rebuild()
}

// Remove removes the height entry at index i, shifting all following
// entries. Out-of-range indices are ignored. O(n).
func (t *Tree) Remove(i int) {
	if i < 0 || i >= len(t.heights) {
		return
	}
	t.heights = append(t.heights[:i], t.heights[i+1:]...)
	t.rebuild()
}

// rebuild reconstructs the tree array from the heights slice.
func (t *Tree) rebuild() {
	t.tree = make([]float64, len(t.heights)+1)
	for i, h := range t.heights {
		t.add(i, h)
	}
}

// lowbit isolates the lowest set bit of x, the step width of Fenwick
// traversal.
func lowbit(x int) int {
	return x & (-x)
}

// highestBit returns the highest power of two ≤ n.
func highestBit(n int) int {
	bit := 1
	for bit <= n {
		bit <<= 1
	}
	return bit >> 1
}
