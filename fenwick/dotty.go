package fenwick

import (
	"fmt"
	"io"
)

// Tree2Dot outputs the internal structure of a Tree in Graphviz DOT format
// (for debugging purposes). Every tree node is labelled with the dyadic
// range of heights it covers and its partial sum; leaves show the raw
// height values.
func Tree2Dot(t *Tree, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	n := t.Len()
	for j := 1; j <= n; j++ {
		lo := j - lowbit(j) // covers heights[lo .. j-1]
		label := fmt.Sprintf("t[%d]=%.2f\\n[%d..%d]", j, t.tree[j], lo, j-1)
		fmt.Fprintf(w, "\"n%d\" [label=\"%s\" shape=box];\n", j, label)
		// parent in update order: next node covering this one
		if p := j + lowbit(j); p <= n {
			fmt.Fprintf(w, "\"n%d\" -> \"n%d\";\n", j, p)
		}
	}
	for i, h := range t.heights {
		fmt.Fprintf(w, "\"h%d\" [label=\"h[%d]=%.2f\" shape=plaintext];\n", i, i, h)
		fmt.Fprintf(w, "\"h%d\" -> \"n%d\" [style=dotted];\n", i, i+1)
	}
	io.WriteString(w, "}\n")
}
