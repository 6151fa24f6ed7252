package sim

import "math"

// SolveBallisticArc computes the low-angle launch direction that carries a
// projectile from origin to target under gravity g at the given speed.
//
// With d the horizontal distance, h the height difference and v the speed,
// the arc exists when
//
//	v^4 - g*(g*d^2 + 2*h*v^2) >= 0
//
// and the low solution is
//
//	angle = atan((v^2 - sqrt(discriminant)) / (g*d))
//
// The returned direction is the horizontal unit vector raised by tan(angle),
// renormalized. When the target is unreachable (negative discriminant) or
// the inputs are degenerate (near-zero speed or horizontal distance), the
// zero vector and false are returned; callers fall back to direct aim.
func SolveBallisticArc(origin, target Vec3, speed, gravity float64) (Vec3, bool) {
	if speed < vecEpsilon {
		return Vec3{}, false
	}

	delta := target.Sub(origin)
	flat := delta.Horizontal()
	d := flat.Length()
	if d < vecEpsilon {
		return Vec3{}, false
	}
	h := delta.Y

	if gravity < vecEpsilon {
		// No gravity to fight: a straight shot always reaches.
		return delta.Normalized(), true
	}

	v2 := speed * speed
	disc := v2*v2 - gravity*(gravity*d*d+2*h*v2)
	if disc < 0 {
		return Vec3{}, false
	}

	angle := math.Atan((v2 - math.Sqrt(disc)) / (gravity * d))
	dir := flat.Scale(1 / d)
	dir.Y = math.Tan(angle)
	return dir.Normalized(), true
}
