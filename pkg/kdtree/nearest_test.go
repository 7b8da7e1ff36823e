//go:build go1.21

package kdtree_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flier/kdtree/pkg/kdtree"
	"github.com/flier/kdtree/pkg/vec"
)

const seed = 1987

// randomCloud draws n points from the unit cube scaled by 100.
func randomCloud(rng *rand.Rand, n int) []vec.V3 {
	points := make([]vec.V3, n)
	for i := range points {
		points[i] = vec.New(rng.Float64()*100, rng.Float64()*100, rng.Float64()*100)
	}
	return points
}

// bruteNearest is the linear-scan oracle: same arithmetic, same strict
// comparison, so a correct tree must agree bit-for-bit.
func bruteNearest(points []vec.V3, q vec.V3) (vec.V3, float64) {
	best := math.Inf(1)
	var bp vec.V3

	for _, p := range points {
		if d2 := q.Dist2(p); d2 < best {
			bp, best = p, d2
		}
	}

	return bp, best
}

// checkInvariants verifies the arena invariants: size identity, point
// coverage, acyclic post-order layout, sentinel disjointness, and weight
// balance.
func checkInvariants(t *testing.T, tree *kdtree.Tree) {
	t.Helper()

	n := tree.Len()
	coverage := make([]int, n)

	for i := 0; i < n; i++ {
		node := tree.NodeAt(i)

		require.GreaterOrEqual(t, node.Point, 0, "node %d point index", i)
		require.Less(t, node.Point, n, "node %d point index", i)
		coverage[node.Point]++

		for _, child := range []int{node.Left, node.Right} {
			if child == -1 {
				continue
			}
			require.GreaterOrEqual(t, child, 0, "node %d child", i)
			require.Less(t, child, i, "node %d child must precede it", i)
		}
	}

	for i, c := range coverage {
		require.Equal(t, 1, c, "point %d must back exactly one node", i)
	}

	if n > 0 {
		var size func(i int) int
		size = func(i int) int {
			if i < 0 {
				return 0
			}
			node := tree.NodeAt(i)
			return 1 + size(node.Left) + size(node.Right)
		}
		require.Equal(t, n, size(n-1), "every node must be reachable from the root")
	}

	require.True(t, tree.IsBalanced())
}

func TestNearestNeighbor_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(seed))

	for _, n := range []int{1, 2, 10, 1000} {
		points := randomCloud(rng, n)
		oracle := append([]vec.V3(nil), points...)

		tree, err := kdtree.New(points)
		require.NoError(t, err)

		checkInvariants(t, tree)

		for i := 0; i < 200; i++ {
			q := vec.New(rng.Float64()*120-10, rng.Float64()*120-10, rng.Float64()*120-10)

			wantPoint, wantDist2 := bruteNearest(oracle, q)

			var r kdtree.Nearest
			r.Reset()

			require.True(t, tree.NearestNeighbor(q, &r))
			assert.Equal(t, wantPoint, r.Point, "n=%d query %v", n, q)
			assert.Equal(t, wantDist2, r.Dist2, "n=%d query %v", n, q)
		}
	}
}

func TestNearestNeighbor_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(seed))

	tree, err := kdtree.New(randomCloud(rng, 100))
	require.NoError(t, err)

	q := vec.New(50, 50, 50)

	var first kdtree.Nearest
	first.Reset()
	require.True(t, tree.NearestNeighbor(q, &first))

	var second kdtree.Nearest
	second.Reset()
	require.True(t, tree.NearestNeighbor(q, &second))

	assert.Equal(t, first, second)
}

func TestNearestNeighbor_SelfQuery(t *testing.T) {
	rng := rand.New(rand.NewSource(seed))

	tree, err := kdtree.New(randomCloud(rng, 500))
	require.NoError(t, err)

	for i := 0; i < tree.Len(); i++ {
		q := tree.At(i)

		var r kdtree.Nearest
		r.Reset()

		require.True(t, tree.NearestNeighbor(q, &r))
		assert.Equal(t, q, r.Point, "point %d", i)
		assert.Zero(t, r.Dist2, "point %d", i)
	}
}

// axisPoint places v on the given axis, leaving the other components zero.
func axisPoint(a vec.Axis, v float64) vec.V3 {
	switch a {
	case vec.X:
		return vec.New(v, 0, 0)
	case vec.Y:
		return vec.New(0, v, 0)
	default:
		return vec.New(0, 0, v)
	}
}

func TestNearestNeighbor_ColinearSweep(t *testing.T) {
	for _, axis := range []vec.Axis{vec.X, vec.Y, vec.Z} {
		points := make([]vec.V3, 0, 11)
		for v := -5; v <= 5; v++ {
			points = append(points, axisPoint(axis, float64(v)))
		}

		tree, err := kdtree.New(points)
		require.NoError(t, err)

		for i := -6; i <= 6; i++ {
			q := axisPoint(axis, float64(i)+0.025)

			want := i
			if want < -5 {
				want = -5
			}
			if want > 5 {
				want = 5
			}

			var r kdtree.Nearest
			r.Reset()

			require.True(t, tree.NearestNeighbor(q, &r))
			assert.Equal(t, axisPoint(axis, float64(want)), r.Point, "axis %s offset %d", axis, i)
		}
	}
}

func TestNearestNeighbor_IdenticalPoints(t *testing.T) {
	points := make([]vec.V3, 37)
	for i := range points {
		points[i] = vec.New(4, 5, 6)
	}

	tree, err := kdtree.New(points)
	require.NoError(t, err)

	checkInvariants(t, tree)

	q := vec.New(5, 5, 6)

	var r kdtree.Nearest
	r.Reset()

	require.True(t, tree.NearestNeighbor(q, &r))
	assert.Equal(t, vec.New(4, 5, 6), r.Point)
	assert.Equal(t, q.Dist2(vec.New(4, 5, 6)), r.Dist2)
}

// TestNearestNeighbor_QueryOnSplittingPlane pins the backtrack loop's
// termination when the query sits exactly on a splitting plane, where the
// plane distance stays below every candidate distance.
func TestNearestNeighbor_QueryOnSplittingPlane(t *testing.T) {
	tree, err := kdtree.New([]vec.V3{
		vec.New(1, 0, 0),
		vec.New(2, 0, 0),
		vec.New(3, 0, 0),
	})
	require.NoError(t, err)

	q := vec.New(2, 0.5, 0)

	var r kdtree.Nearest
	r.Reset()

	require.True(t, tree.NearestNeighbor(q, &r))
	assert.Equal(t, vec.New(2, 0, 0), r.Point)
	assert.Equal(t, 0.25, r.Dist2)
}

func TestNearestNeighbor_LargeSeededCloud(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping million point build in short mode")
	}

	rng := rand.New(rand.NewSource(seed))
	points := randomCloud(rng, 1_000_000)

	subset := append([]vec.V3(nil), points[:10_000]...)

	tree, err := kdtree.New(points)
	require.NoError(t, err)
	require.Equal(t, kdtree.W32, tree.Width())
	require.True(t, tree.IsBalanced())

	subTree, err := kdtree.NewCopy(subset)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		q := vec.New(rng.Float64()*100, rng.Float64()*100, rng.Float64()*100)

		wantPoint, wantDist2 := bruteNearest(subset, q)

		var r kdtree.Nearest
		r.Reset()

		require.True(t, subTree.NearestNeighbor(q, &r))
		require.Equal(t, wantPoint, r.Point)
		require.Equal(t, wantDist2, r.Dist2)
	}
}

func TestNearestNeighbor_Concurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(seed))

	points := randomCloud(rng, 2000)
	oracle := append([]vec.V3(nil), points...)

	tree, err := kdtree.New(points)
	require.NoError(t, err)

	queries := randomCloud(rng, 64)

	t.Run("group", func(t *testing.T) {
		for g := 0; g < 8; g++ {
			t.Run("worker", func(t *testing.T) {
				t.Parallel()

				for _, q := range queries {
					wantPoint, wantDist2 := bruteNearest(oracle, q)

					var r kdtree.Nearest
					r.Reset()

					require.True(t, tree.NearestNeighbor(q, &r))
					require.Equal(t, wantPoint, r.Point)
					require.Equal(t, wantDist2, r.Dist2)
				}
			})
		}
	})
}
