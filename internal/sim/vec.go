package sim

import "math"

// Epsilon below which a vector is treated as zero for normalization and
// reflection. Guards against NaN propagation from degenerate inputs.
const vecEpsilon = 1e-6

// Vec3 is a position, direction or velocity in arena space.
// Y is up; the X/Z plane is the horizontal ground plane.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the magnitude of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// LengthSq returns the squared magnitude, avoiding the sqrt when only
// comparisons are needed.
func (v Vec3) LengthSq() float64 {
	return v.Dot(v)
}

// Normalized returns v with unit length, or the zero vector when v is
// shorter than vecEpsilon.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l < vecEpsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// IsZero reports whether v is shorter than vecEpsilon.
func (v Vec3) IsZero() bool {
	return v.LengthSq() < vecEpsilon*vecEpsilon
}

// Horizontal returns v projected onto the ground plane (Y zeroed).
func (v Vec3) Horizontal() Vec3 {
	return Vec3{v.X, 0, v.Z}
}

// DistanceTo returns the straight-line distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float64 {
	return o.Sub(v).Length()
}

// Reflect returns v mirrored about the plane with unit normal n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// MoveToward returns v advanced toward target by at most maxDelta,
// never overshooting.
func (v Vec3) MoveToward(target Vec3, maxDelta float64) Vec3 {
	delta := target.Sub(v)
	dist := delta.Length()
	if dist <= maxDelta || dist < vecEpsilon {
		return target
	}
	return v.Add(delta.Scale(maxDelta / dist))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
