//go:build go1.21

package kdtree

import (
	"github.com/flier/kdtree/pkg/vec"
)

// Index is the set of unsigned widths a tree may use for point and node
// indices. The width is chosen at construction so that the point count is
// strictly below the maximum value of the type; the maximum itself is
// reserved as the "no node" sentinel.
type Index interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// none returns the sentinel index for width I.
func none[I Index]() I { return ^I(0) }

// node is one slot of the flat tree arena.
//
// point indexes the reordered point store and is never the sentinel; left
// and right index earlier arena slots or are the sentinel. Keeping the
// record free of pointers and as narrow as the point count allows is what
// makes descent cache-dense.
type node[I Index] struct {
	point I
	left  I
	right I
	axis  vec.Axis
}

// leaf reports whether both children are the sentinel.
func (n *node[I]) leaf() bool {
	return n.left == none[I]() && n.right == none[I]()
}

// size returns the number of nodes in the subtree rooted at idx, with the
// sentinel counting as an empty subtree.
func (t *tree[I]) size(idx I) int {
	if idx == none[I]() {
		return 0
	}

	n := &t.nodes[idx]
	return 1 + t.size(n.left) + t.size(n.right)
}

// balancedAt reports whether the subtree rooted at idx is weight-balanced:
// every node's child subtrees differ in size by at most one.
func (t *tree[I]) balancedAt(idx I) bool {
	if idx == none[I]() {
		return true
	}

	n := &t.nodes[idx]
	l, r := t.size(n.left), t.size(n.right)
	if l > r+1 || r > l+1 {
		return false
	}

	return t.balancedAt(n.left) && t.balancedAt(n.right)
}

// NodeInfo is the public projection of one arena slot, as reported by
// [Tree.NodeAt] and [Tree.Nodes]. Child fields hold arena positions, or -1
// for "no child".
type NodeInfo struct {
	Point int
	Left  int
	Right int
	Axis  vec.Axis
}

func (t *tree[I]) nodeAt(i int) NodeInfo {
	n := &t.nodes[i]
	return NodeInfo{
		Point: int(n.point),
		Left:  childIndex(n.left),
		Right: childIndex(n.right),
		Axis:  n.axis,
	}
}

func childIndex[I Index](idx I) int {
	if idx == none[I]() {
		return -1
	}
	return int(idx)
}
