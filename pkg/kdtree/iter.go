//go:build go1.23

package kdtree

import (
	"iter"

	"github.com/flier/kdtree/pkg/vec"
)

// Points iterates over the reordered point store in index order.
func (t *Tree) Points() iter.Seq2[int, vec.V3] {
	return func(yield func(int, vec.V3) bool) {
		for i := 0; i < t.Len(); i++ {
			if !yield(i, t.At(i)) {
				return
			}
		}
	}
}

// Nodes iterates over the arena slots in order; the last slot is the root.
func (t *Tree) Nodes() iter.Seq2[int, NodeInfo] {
	return func(yield func(int, NodeInfo) bool) {
		for i := 0; i < t.Len(); i++ {
			if !yield(i, t.NodeAt(i)) {
				return
			}
		}
	}
}
