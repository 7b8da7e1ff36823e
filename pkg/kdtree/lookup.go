//go:build go1.21

package kdtree

import (
	"math/bits"

	"github.com/dolthub/maphash"

	"github.com/flier/kdtree/pkg/vec"
)

// table is a flat open-addressing index over the point store, keyed by the
// bitwise value of each point. It serves exact-membership queries without
// walking the tree.
//
// The store is immutable and sized once, so the table needs no growth, no
// tombstones, and no grouping: a power-of-two slot array at most half full,
// probed linearly, with the index sentinel marking empty slots.
type table[I Index] struct {
	hash  maphash.Hasher[vec.V3]
	slots []I
	mask  uint64
}

// newTable indexes every point; duplicate values keep their lowest store
// index.
func newTable[I Index](points []vec.V3) table[I] {
	if len(points) == 0 {
		return table[I]{}
	}

	size := uint64(1) << bits.Len(uint(2*len(points)-1))
	t := table[I]{
		hash:  maphash.NewHasher[vec.V3](),
		slots: make([]I, size),
		mask:  size - 1,
	}

	for i := range t.slots {
		t.slots[i] = none[I]()
	}

	for i, p := range points {
		for s := t.hash.Hash(p) & t.mask; ; s = (s + 1) & t.mask {
			at := t.slots[s]
			if at == none[I]() {
				t.slots[s] = I(i)
				break
			}
			if points[at] == p {
				break
			}
		}
	}

	return t
}

// indexOf returns the lowest store index holding a point bitwise-equal to
// p.
func (t *table[I]) indexOf(points []vec.V3, p vec.V3) (int, bool) {
	if len(t.slots) == 0 {
		return 0, false
	}

	for s := t.hash.Hash(p) & t.mask; ; s = (s + 1) & t.mask {
		at := t.slots[s]
		if at == none[I]() {
			return 0, false
		}
		if points[at] == p {
			return int(at), true
		}
	}
}

func (t *tree[I]) indexOf(p vec.V3) (int, bool) {
	return t.lookup.indexOf(t.points, p)
}
