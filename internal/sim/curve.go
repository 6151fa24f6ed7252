package sim

// CurvePoint is one keyed sample of a piecewise-linear curve.
type CurvePoint struct {
	Key   float64 // input value (distance, scale delta, ...)
	Value float64 // output multiplier at that key
}

// Curve is a piecewise-linear function over sorted key points.
// Inputs outside the keyed range clamp to the first/last value, so a
// single-point curve behaves as a constant.
//
// Damage falloff curves are authored monotonically non-increasing; speed
// boost curves monotonically non-decreasing. The evaluator does not enforce
// monotonicity - that is a contract on the authored data.
type Curve []CurvePoint

// Eval returns the interpolated value at key.
func (c Curve) Eval(key float64) float64 {
	if len(c) == 0 {
		return 1.0
	}
	if key <= c[0].Key {
		return c[0].Value
	}
	last := c[len(c)-1]
	if key >= last.Key {
		return last.Value
	}
	for i := 1; i < len(c); i++ {
		if key <= c[i].Key {
			prev := c[i-1]
			span := c[i].Key - prev.Key
			if span < vecEpsilon {
				return c[i].Value
			}
			t := (key - prev.Key) / span
			return lerp(prev.Value, c[i].Value, t)
		}
	}
	return last.Value
}
