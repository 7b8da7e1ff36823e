//go:build go1.21

package kdtree

import (
	"fmt"
	"io"
	"strconv"
)

// dump writes a human-readable listing of the arena: a header with the
// point and node counts, then one entry per slot in arena order. The format
// is diagnostic, not a stable interface.
func (t *tree[I]) dump(w io.Writer) error {
	_, err := fmt.Fprintf(w, "== KD TREE IMPLEMENTATION ====\nPOINT COUNT: %d\nNODE COUNT: %d\n\n",
		len(t.points), len(t.nodes))
	if err != nil {
		return err
	}

	if _, err = io.WriteString(w, "-- NODES ----\n"); err != nil {
		return err
	}

	for i := range t.nodes {
		n := &t.nodes[i]

		_, err = fmt.Fprintf(w, "%d: %s, POINT %d: %s\n  CHILDREN: %s %s\n",
			i, n.axis, int(n.point), t.points[n.point],
			childString(n.left), childString(n.right))
		if err != nil {
			return err
		}
	}

	return nil
}

// childString renders a child index, with the sentinel as "NONE".
func childString[I Index](idx I) string {
	if idx == none[I]() {
		return "NONE"
	}

	return strconv.FormatUint(uint64(idx), 10)
}
