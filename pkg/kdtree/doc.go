// Package kdtree provides a static, in-memory 3-D k-d tree over a fixed
// point cloud, supporting balanced construction and exact nearest-neighbor
// queries.
//
// # Overview
//
// A tree is built once from a point slice and never mutated again. The
// builder recursively splits each range of points around its median on the
// axis of largest extent, so the result is weight-balanced: every node's
// two subtrees differ in size by at most one. Queries, balance
// verification, and a diagnostic dump all run against the same immutable
// structure, so any number of goroutines may use one tree concurrently.
//
// # Storage
//
// Nodes are never allocated individually. The tree is a flat arena of
// fixed-size records appended in post-order — children always precede
// their parent, and the last slot is the root. Each record holds a point
// index, two child indices, and the splitting axis.
//
// At construction the narrowest index width that can address the point set
// is chosen from 8, 16, 32, and 64 bits, and the arena is materialized for
// that width; the maximum value of the width is reserved as the "no node"
// sentinel. For small clouds this halves or quarters the node record
// compared to a fixed 32-bit layout, which matters because nearest-neighbor
// search is memory-bound on the arena.
//
// # Nearest-Neighbor Search
//
// Search is iterative: descend to a leaf along the query, then backtrack
// with an explicit stack, re-entering the far side of a splitting plane
// only when the plane is strictly closer than the best distance found so
// far. Distances are squared Euclidean throughout; callers wanting the
// metric distance take a square root of the result. All improvements are
// strict, so the first-encountered point wins distance ties.
//
// # Usage
//
//	tree, err := kdtree.New(points)
//	if err != nil {
//		return err
//	}
//
//	var r kdtree.Nearest
//	r.Reset()
//	if tree.NearestNeighbor(query, &r) {
//		fmt.Println(r.Point, math.Sqrt(r.Dist2))
//	}
//
// [New] takes ownership of its slice and reorders it; use [NewCopy] to
// keep the caller's slice intact.
package kdtree
