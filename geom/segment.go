package geom

// ClosestPointOnSegment returns the point on segment a-b closest to p, and
// the squared distance from p to that point. The projection itself is done
// in floating point since it only ever feeds distance comparisons that
// already tolerate rounding (spec.md §9: "Integer rounding policy"), and is
// truncated toward zero back onto the integer grid on return.
func ClosestPointOnSegment(p, a, b Point) (Point, int64) {
	ab := Sub(b, a)
	abLen2 := VSize2(ab)
	if abLen2 == 0 {
		return a, DistSize2(p, a)
	}
	ap := Sub(p, a)
	t := float64(Dot(ap, ab)) / float64(abLen2)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := Point{
		X: a.X + int64(float64(ab.X)*t),
		Y: a.Y + int64(float64(ab.Y)*t),
	}
	return closest, DistSize2(p, closest)
}
