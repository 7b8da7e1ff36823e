//go:build go1.21

package kdtree

import (
	"github.com/flier/kdtree/internal/debug"
	"github.com/flier/kdtree/pkg/vec"
)

// tree is the width-specialized k-d tree over a point store.
//
// Both slices are sized during construction and never mutated afterwards;
// queries take no locks and allocate nothing beyond a pooled descent stack.
type tree[I Index] struct {
	nodes  []node[I]
	points []vec.V3
	lookup table[I]
	stacks stackPool[I]
}

// newTree builds the tree for the chosen index width. It reorders points in
// place; node point indices refer to the reordered slice.
func newTree[I Index](points []vec.V3) *tree[I] {
	t := &tree[I]{
		nodes:  make([]node[I], 0, len(points)),
		points: points,
	}

	if n := len(points); n > 0 {
		t.build(0, I(n))
	}
	t.lookup = newTable[I](points)

	debug.Log(nil, "build", "%d points, %d nodes", len(t.points), len(t.nodes))

	return t
}

// build constructs the subtree over points[begin:end) and returns the arena
// index of its root, appending nodes post-order so that every child
// precedes its parent and the final append is the tree root.
func (t *tree[I]) build(begin, end I) I {
	if begin >= end {
		return none[I]()
	}

	axis := t.chooseSplitAxis(begin, end)

	if end-begin == 1 {
		t.nodes = append(t.nodes, node[I]{point: begin, left: none[I](), right: none[I](), axis: axis})
		return t.rootIndex()
	}

	m := t.partitionAroundMedian(begin, end, axis)
	left := t.build(begin, m)
	right := t.build(m+1, end)

	t.nodes = append(t.nodes, node[I]{point: m, left: left, right: right, axis: axis})
	return t.rootIndex()
}

// rootIndex returns the arena index of the most recently appended node.
func (t *tree[I]) rootIndex() I {
	debug.Assert(len(t.nodes) > 0, "rootIndex on empty arena")
	return I(len(t.nodes) - 1)
}

// chooseSplitAxis picks the axis along which points[begin:end) has the
// largest extent. Ties resolve X before Y before Z; a single-point slice is
// X by convention.
func (t *tree[I]) chooseSplitAxis(begin, end I) vec.Axis {
	debug.Assert(begin < end, "chooseSplitAxis on empty range [%d, %d)", begin, end)

	if begin+1 == end {
		return vec.X
	}

	lo := t.points[begin]
	hi := lo
	for _, p := range t.points[begin+1 : end] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}

	switch ext := hi.Sub(lo); {
	case ext.Y > ext.X && ext.Y > ext.Z:
		return vec.Y
	case ext.Z > ext.X && ext.Z > ext.Y:
		return vec.Z
	default:
		return vec.X
	}
}

// partitionAroundMedian reorders points[begin:end) so that the middle
// element is the median on the chosen axis, with <= components on its left
// and >= components on its right, and returns its position.
func (t *tree[I]) partitionAroundMedian(begin, end I, axis vec.Axis) I {
	m := begin + (end-begin)/2
	nthElement(t.points, int(begin), int(end), int(m), axis)
	return m
}

// balanced reports whether every subtree's children differ in size by at
// most one. Trees of up to two nodes are trivially balanced.
func (t *tree[I]) balanced() bool {
	if len(t.nodes) <= 2 {
		return true
	}

	return t.balancedAt(t.rootIndex())
}

func (t *tree[I]) len() int { return len(t.points) }

func (t *tree[I]) pointAt(i int) vec.V3 { return t.points[i] }
