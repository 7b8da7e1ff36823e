package kdtree

import "errors"

// ErrCapacityExceeded is returned by [New] and [NewCopy] when the point count
// does not fit any supported index width.
//
// Since the widest supported index is 64 bits, this requires 2^64-1 points
// and is unreachable on any realistic platform; it exists so the capacity
// contract is explicit rather than a silent truncation.
var ErrCapacityExceeded = errors.New("kdtree: point count exceeds index capacity")
