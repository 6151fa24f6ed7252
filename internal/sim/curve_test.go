package sim

import (
	"math"
	"testing"
)

func TestCurveEval(t *testing.T) {
	falloff := Curve{
		{Key: 0, Value: 1.0},
		{Key: 10, Value: 1.0},
		{Key: 30, Value: 0.7},
	}

	tests := []struct {
		name string
		key  float64
		want float64
	}{
		{"below first key clamps", -5, 1.0},
		{"at first key", 0, 1.0},
		{"flat span", 5, 1.0},
		{"interpolated", 20, 0.85},
		{"at last key", 30, 0.7},
		{"past last key clamps", 100, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := falloff.Eval(tt.key); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Eval(%v) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestCurveDegenerate(t *testing.T) {
	if got := (Curve{}).Eval(5); got != 1.0 {
		t.Errorf("empty curve = %v, want the identity multiplier", got)
	}
	if got := (Curve{{Key: 3, Value: 0.5}}).Eval(99); got != 0.5 {
		t.Errorf("single-point curve = %v, want constant 0.5", got)
	}
}

func TestVecMoveToward(t *testing.T) {
	v := Vec3{X: 1}
	target := Vec3{X: 5}

	stepped := v.MoveToward(target, 1)
	if stepped != (Vec3{X: 2}) {
		t.Errorf("MoveToward = %+v, want {2 0 0}", stepped)
	}

	// Never overshoots.
	if got := v.MoveToward(target, 100); got != target {
		t.Errorf("MoveToward with a big step = %+v, want the target", got)
	}
}

func TestVecReflect(t *testing.T) {
	v := Vec3{X: 3, Y: -4}
	got := v.Reflect(Vec3{Y: 1})
	if got != (Vec3{X: 3, Y: 4}) {
		t.Errorf("Reflect = %+v, want {3 4 0}", got)
	}
}

func TestVecNormalizedDegenerate(t *testing.T) {
	if !(Vec3{X: 1e-9}).Normalized().IsZero() {
		t.Error("near-zero vector should normalize to zero, not NaN")
	}
}
