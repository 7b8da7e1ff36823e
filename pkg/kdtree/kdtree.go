//go:build go1.21

package kdtree

import (
	"io"
	"math"

	"github.com/flier/kdtree/pkg/vec"
)

// impl is the operation surface every width specialization provides. The
// dispatcher picks one specialization at construction and forwards to it
// for the tree's whole lifetime.
type impl interface {
	nearest(q vec.V3, r *Nearest) bool
	balanced() bool
	dump(w io.Writer) error
	indexOf(p vec.V3) (int, bool)
	nodeAt(i int) NodeInfo
	pointAt(i int) vec.V3
	len() int
}

// Tree is a static, balanced 3-D k-d tree over a fixed point cloud.
//
// A Tree is immutable after construction; any number of goroutines may
// query it concurrently. The zero Tree is not usable — construct one with
// [New] or [NewCopy].
type Tree struct {
	impl impl
	wid  Width
}

// New builds a tree over points, choosing the narrowest index width that
// can address them (8-bit below 255 points, then 16, 32, 64).
//
// New takes ownership of the slice: construction reorders it in place, and
// all point indices reported by the tree refer to the reordered slice.
// Callers that need the original order should use [NewCopy].
//
// Returns [ErrCapacityExceeded] if the point count does not fit the widest
// supported index.
func New(points []vec.V3) (*Tree, error) {
	switch n := uint64(len(points)); {
	case n < math.MaxUint8:
		return &Tree{newTree[uint8](points), W8}, nil
	case n < math.MaxUint16:
		return &Tree{newTree[uint16](points), W16}, nil
	case n < math.MaxUint32:
		return &Tree{newTree[uint32](points), W32}, nil
	case n < math.MaxUint64:
		return &Tree{newTree[uint64](points), W64}, nil
	default:
		return nil, ErrCapacityExceeded
	}
}

// NewCopy is [New] over a private copy of points, leaving the caller's
// slice untouched.
func NewCopy(points []vec.V3) (*Tree, error) {
	own := make([]vec.V3, len(points))
	copy(own, points)
	return New(own)
}

// NearestNeighbor finds the point closest to q by squared Euclidean
// distance.
//
// The caller initializes r (see [Nearest.Reset]); on return r holds the
// closest point and its squared distance to q. Ties keep the first point
// encountered. Returns false iff the tree is empty, leaving r untouched.
func (t *Tree) NearestNeighbor(q vec.V3, r *Nearest) bool {
	return t.impl.nearest(q, r)
}

// IsBalanced reports whether every subtree's children differ in size by at
// most one. The builder guarantees this; the check exists as a testable
// invariant.
func (t *Tree) IsBalanced() bool {
	return t.impl.balanced()
}

// Dump writes a diagnostic listing of the node arena to w, propagating any
// write error. The format is not a stable interface.
func (t *Tree) Dump(w io.Writer) error {
	return t.impl.dump(w)
}

// IndexOf returns the store index of the point bitwise-equal to p, if any.
// Duplicate points report the lowest index.
func (t *Tree) IndexOf(p vec.V3) (int, bool) {
	return t.impl.indexOf(p)
}

// Contains reports whether a point bitwise-equal to p was used to build the
// tree.
func (t *Tree) Contains(p vec.V3) bool {
	_, ok := t.impl.indexOf(p)
	return ok
}

// At returns the point at store index i. Panics if i is out of range.
func (t *Tree) At(i int) vec.V3 {
	return t.impl.pointAt(i)
}

// NodeAt returns the projection of the arena slot at position i. Panics if
// i is out of range. The last slot is the root.
func (t *Tree) NodeAt(i int) NodeInfo {
	return t.impl.nodeAt(i)
}

// Len returns the number of points in the tree, which equals the number of
// arena slots.
func (t *Tree) Len() int {
	return t.impl.len()
}

// Width returns the index width the tree was materialized with.
func (t *Tree) Width() Width {
	return t.wid
}
