//go:build go1.21

package kdtree

import (
	"math"
	"math/bits"
	"sync"

	"github.com/flier/kdtree/internal/debug"
	"github.com/flier/kdtree/pkg/vec"
)

// Nearest is the mutable result record for [Tree.NearestNeighbor].
//
// The caller owns it and must initialize Dist2 to a ceiling before the
// first query, either with [Nearest.Reset] or by hand; the search only ever
// replaces it on a strict improvement, so a ceiling already below every
// point in the tree comes back unchanged even though the call reports the
// tree as non-empty.
type Nearest struct {
	Point vec.V3
	Dist2 float64
}

// Reset restores the +Inf distance ceiling so the record can be reused for
// a fresh query.
func (r *Nearest) Reset() {
	*r = Nearest{Dist2: math.Inf(1)}
}

// stackPool recycles descent stacks between queries. Each query borrows a
// private stack, so concurrent queries against the same tree never share
// mutable state.
type stackPool[I Index] struct {
	impl sync.Pool
}

// get returns an empty stack with at least hint capacity.
func (p *stackPool[I]) get(hint int) []I {
	if s, _ := p.impl.Get().(*[]I); s != nil {
		return (*s)[:0]
	}

	return make([]I, 0, hint)
}

func (p *stackPool[I]) put(s []I) {
	p.impl.Put(&s)
}

// nearest finds the point closest to q by squared Euclidean distance.
//
// It descends to a leaf along q, then backtracks: each node on the path is
// tested against the running best, and the far subtree is re-entered only
// when the splitting plane is strictly closer than the best distance so
// far. The descent path is an explicit stack; its log2(N) capacity is a
// hint, growth is unbounded.
func (t *tree[I]) nearest(q vec.V3, r *Nearest) bool {
	if len(t.nodes) == 0 {
		return false
	}

	stack := t.stacks.get(bits.Len(uint(len(t.points))))
	defer func() { t.stacks.put(stack) }()

	stack = append(stack, t.rootIndex())

	var last I
	descend := true
	for {
		if descend {
			stack = t.walkToLeaf(stack, q)

			top := stack[len(stack)-1]
			t.improve(top, q, r)
			last = top
			stack = stack[:len(stack)-1]
			descend = false
		}

		if len(stack) == 0 {
			break
		}

		top := stack[len(stack)-1]
		n := &t.nodes[top]
		t.improve(top, q, r)

		// The far side of the splitting plane is worth entering only when
		// the plane is strictly closer than the best so far, and only on
		// the first return to this node: coming back from the near child.
		// A return from the far child means both subtrees are done.
		if t.planeDist2(n, q) < r.Dist2 && last == t.nextChild(n, q) {
			opposite := n.right
			if last == n.right {
				opposite = n.left
			}

			if opposite != none[I]() {
				stack = append(stack, opposite)
				descend = true
				continue
			}
		}

		last = top
		stack = stack[:len(stack)-1]
	}

	return true
}

// walkToLeaf pushes the descent path from the top of the stack down to a
// leaf, at each level following the side of the splitting plane that q
// falls on.
func (t *tree[I]) walkToLeaf(stack []I, q vec.V3) []I {
	for {
		n := &t.nodes[stack[len(stack)-1]]
		if n.leaf() {
			return stack
		}

		stack = append(stack, t.nextChild(n, q))
	}
}

// nextChild picks the child to descend into. A sole child wins outright;
// otherwise ties on the splitting coordinate go left.
func (t *tree[I]) nextChild(n *node[I], q vec.V3) I {
	debug.Assert(!n.leaf(), "nextChild on a leaf")

	if n.left == none[I]() {
		return n.right
	}
	if n.right == none[I]() {
		return n.left
	}

	if q.At(n.axis) <= t.points[n.point].At(n.axis) {
		return n.left
	}
	return n.right
}

// improve replaces the running best with the node's point iff it is
// strictly closer, so the first-encountered point wins distance ties.
func (t *tree[I]) improve(idx I, q vec.V3, r *Nearest) {
	p := t.points[t.nodes[idx].point]

	if d2 := q.Dist2(p); d2 < r.Dist2 {
		r.Point = p
		r.Dist2 = d2
	}
}

// planeDist2 returns the squared distance from q to the node's splitting
// plane.
func (t *tree[I]) planeDist2(n *node[I], q vec.V3) float64 {
	d := q.At(n.axis) - t.points[n.point].At(n.axis)
	return d * d
}
