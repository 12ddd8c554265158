// Package geom provides the fixed-point 2-D primitives used throughout the
// path planning core: points expressed in micrometers, and the small amount
// of vector arithmetic (dot products, squared lengths, 90-degree rotation)
// that the orderer and the comber both build on.
//
// The conventions for this package are x increases to the right, and y
// increases up the page, the same convention a normal Cartesian plot uses.
package geom

// Point holds a 2-D coordinate in micrometers (µ; 1 µ = 10⁻³ mm). All
// geometry in this module is integer, to avoid floating-point drift
// accumulating across many layers of a print.
type Point struct {
	X, Y int64
}

// Vector is an alias for Point, used where a value represents a direction or
// displacement rather than a location.
type Vector = Point

// Equal reports whether two points have identical coordinates.
func Equal(a, b Point) bool {
	return a.X == b.X && a.Y == b.Y
}

// Add returns a + b.
func Add(a, b Point) Point {
	return Point{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func Sub(a, b Point) Point {
	return Point{a.X - b.X, a.Y - b.Y}
}

// Dot returns the dot product of a and b. Intermediate products fit in
// int64 as long as coordinates stay within roughly ±2³¹ µ, the precondition
// the orderer's projection math relies on.
func Dot(a, b Point) int64 {
	return a.X*b.X + a.Y*b.Y
}

// VSize2 returns the squared length of v. All distance comparisons in this
// module are done on squared lengths, to avoid square roots and their
// rounding.
func VSize2(v Vector) int64 {
	return Dot(v, v)
}

// DistSize2 returns the squared distance between a and b.
func DistSize2(a, b Point) int64 {
	return VSize2(Sub(a, b))
}

// Turn90CCW rotates v by 90 degrees counter-clockwise: (x, y) -> (-y, x).
func Turn90CCW(v Vector) Vector {
	return Vector{-v.Y, v.X}
}

// Turn90CW rotates v by 90 degrees clockwise: (x, y) -> (y, -x).
func Turn90CW(v Vector) Vector {
	return Vector{v.Y, -v.X}
}
