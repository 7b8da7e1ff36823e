//go:build go1.21

package kdtree

import (
	"github.com/flier/kdtree/pkg/vec"
)

// nthInsertionCutoff is the slice length at or below which nthElement falls
// back to a full insertion sort instead of partitioning further.
const nthInsertionCutoff = 16

// nthElement partially reorders points[begin:end) in place so that the
// element at position k ends up where a full sort on the axis component
// would put it, everything in [begin, k) compares <= points[k], and
// everything in (k, end) compares >=. Comparison is strictly < on the axis
// component; the ordering within each side is unspecified.
//
// Expected O(n): quickselect with a median-of-three pivot and a three-way
// partition, so runs of equal components collapse in a single pass.
func nthElement(points []vec.V3, begin, end, k int, axis vec.Axis) {
	for end-begin > nthInsertionCutoff {
		pivot := medianOfThree(points, begin, begin+(end-begin)/2, end-1, axis)
		lt, gt := partition3(points, begin, end, pivot, axis)

		switch {
		case k < lt:
			end = lt
		case k >= gt:
			begin = gt
		default:
			// k landed inside the run of elements equal to the pivot.
			return
		}
	}

	insertionSort(points, begin, end, axis)
}

// medianOfThree returns the middle of the axis components at positions
// i, j, and k.
func medianOfThree(points []vec.V3, i, j, k int, axis vec.Axis) float64 {
	a, b, c := points[i].At(axis), points[j].At(axis), points[k].At(axis)

	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}

	return b
}

// partition3 rearranges points[begin:end) into three runs: components
// < pivot, == pivot, > pivot. It returns the bounds [lt, gt) of the middle
// run.
func partition3(points []vec.V3, begin, end int, pivot float64, axis vec.Axis) (lt, gt int) {
	lt, gt = begin, end

	for i := begin; i < gt; {
		switch c := points[i].At(axis); {
		case c < pivot:
			points[i], points[lt] = points[lt], points[i]
			lt++
			i++
		case pivot < c:
			gt--
			points[i], points[gt] = points[gt], points[i]
		default:
			i++
		}
	}

	return lt, gt
}

// insertionSort sorts points[begin:end) by the axis component.
func insertionSort(points []vec.V3, begin, end int, axis vec.Axis) {
	for i := begin + 1; i < end; i++ {
		for j := i; j > begin && points[j].At(axis) < points[j-1].At(axis); j-- {
			points[j], points[j-1] = points[j-1], points[j]
		}
	}
}
