//go:build go1.21

// Package vec provides the 3-D double-precision vector type consumed by the
// k-d tree.
//
// V3 is a plain comparable struct: equality is bitwise on its three
// components, which makes it usable both as the tree's point type and as a
// hash key for exact membership lookups.
package vec

import "fmt"

// Axis identifies one of the three coordinate directions.
//
// It is a byte-sized type so that records which store an axis per entry
// stay compact.
type Axis uint8

const (
	X Axis = iota
	Y
	Z
)

// String implements [fmt.Stringer].
func (a Axis) String() string {
	switch a {
	case X:
		return "X AXIS"
	case Y:
		return "Y AXIS"
	case Z:
		return "Z AXIS"
	default:
		return fmt.Sprintf("AXIS(%d)", int(a))
	}
}

// V3 is an immutable 3-component vector of float64.
type V3 struct {
	X, Y, Z float64
}

// New constructs a V3 from its components.
func New(x, y, z float64) V3 {
	return V3{x, y, z}
}

// At returns the component on the given axis.
func (v V3) At(a Axis) float64 {
	switch a {
	case X:
		return v.X
	case Y:
		return v.Y
	default:
		return v.Z
	}
}

// Sub returns the component-wise difference v - o.
func (v V3) Sub(o V3) V3 {
	return V3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Len2 returns the squared length of v.
//
// Components are accumulated in X, Y, Z order with no widening, so two
// vectors with equal components always produce bit-identical results.
func (v V3) Len2() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dist2 returns the squared Euclidean distance between v and o.
func (v V3) Dist2(o V3) float64 {
	return v.Sub(o).Len2()
}

// Min returns the component-wise minimum of v and o.
func (v V3) Min(o V3) V3 {
	return V3{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)}
}

// Max returns the component-wise maximum of v and o.
func (v V3) Max(o V3) V3 {
	return V3{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)}
}

// String implements [fmt.Stringer].
func (v V3) String() string {
	return fmt.Sprintf("(%g %g %g)", v.X, v.Y, v.Z)
}
